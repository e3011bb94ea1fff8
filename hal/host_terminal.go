//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal frontend.
type TerminalConfig struct {
	HostConfig
	FPS int
}

// tapHold is how long a terminal key keeps its button line pressed.
// Terminals report no key releases, so a tap must outlast the debounce
// window but stay clear of a long press.
const tapHold = 120 * time.Millisecond

// RunTerminal shows the emulated panel in the terminal with half block
// characters and runs fn against a host HAL. Arrow keys and Enter tap the
// button lines; Escape or Ctrl-C quits. Unless cfg.Log is set, log lines
// are held while the screen is up and written to stderr afterwards.
func RunTerminal(ctx context.Context, cfg TerminalConfig, fn RunFunc) error {
	if cfg.Log == nil {
		held := new(bytes.Buffer)
		cfg.Log = held
		defer func() { os.Stderr.Write(held.Bytes()) }()
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	return runTerminal(ctx, s, cfg, fn)
}

var terminalKeys = map[tcell.Key]KeyCode{
	tcell.KeyUp:    KeyUp,
	tcell.KeyDown:  KeyDown,
	tcell.KeyLeft:  KeyLeft,
	tcell.KeyRight: KeyRight,
	tcell.KeyEnter: KeyEnter,
}

func runTerminal(ctx context.Context, s tcell.Screen, cfg TerminalConfig, fn RunFunc) error {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	h := NewHost(cfg.HostConfig)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := startApp(ctx, h, fn)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go s.ChannelEvents(events, quit)

	frame := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer frame.Stop()

	style := tcell.StyleDefault.Foreground(tcell.ColorLightCyan).Background(tcell.ColorBlack)
	var line []rune
	for {
		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return <-done
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					cancel()
					return <-done
				case ev.Key() == tcell.KeyRune:
					h.Key(KeyEvent{Press: true, Rune: ev.Rune()})
				default:
					if code, ok := terminalKeys[ev.Key()]; ok {
						tap(h, code)
					}
				}
			case *tcell.EventResize:
				s.Sync()
			}
		case <-frame.C:
			img := h.emu.Snapshot()
			for row := 0; row < HalfBlockRows(img); row++ {
				line = AppendHalfBlocks(line[:0], img, row)
				for x, r := range line {
					s.SetContent(x, row, r, nil, style)
				}
			}
			s.Show()
		}
	}
}

func tap(h *Host, code KeyCode) {
	h.Key(KeyEvent{Code: code, Press: true})
	time.AfterFunc(tapHold, func() {
		h.Key(KeyEvent{Code: code, Press: false})
	})
}
