//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"ssdui/ssd1306"
)

// HostConfig sizes the emulated panel of a host HAL.
type HostConfig struct {
	Width int
	Pages int

	// Log receives Logger lines. Nil means os.Stdout.
	Log io.Writer
}

// RunFunc is the application entry point a host runner drives. It must
// return once ctx is cancelled.
type RunFunc func(ctx context.Context, h HAL) error

// Host is the desktop HAL: an emulated controller, virtual button lines
// and a keyboard fed by whichever frontend is running.
type Host struct {
	logger  *hostLogger
	emu     *ssd1306.Emulator
	buttons map[string]*buttonPin
	gpio    GPIO
	kbd     *chanKeyboard
}

// NewHost returns a host HAL with the default 128x64 panel when cfg is
// zero.
func NewHost(cfg HostConfig) *Host {
	if cfg.Width <= 0 {
		cfg.Width = ssd1306.DefaultWidth
	}
	if cfg.Pages <= 0 {
		cfg.Pages = ssd1306.DefaultPages
	}
	if cfg.Log == nil {
		cfg.Log = os.Stdout
	}
	h := &Host{
		logger:  &hostLogger{w: cfg.Log},
		emu:     ssd1306.NewEmulator(cfg.Width, cfg.Pages),
		buttons: make(map[string]*buttonPin, len(ButtonNames)),
		kbd:     newChanKeyboard(),
	}
	pins := make([]GPIOPin, 0, len(ButtonNames))
	for _, name := range ButtonNames {
		p := newButtonPin(name)
		h.buttons[name] = p
		pins = append(pins, p)
	}
	h.gpio = newPinSet(pins)
	return h
}

func (h *Host) Logger() Logger     { return h.logger }
func (h *Host) Renderer() Renderer { return h.emu }
func (h *Host) Buttons() GPIO      { return h.gpio }
func (h *Host) Keyboard() Keyboard { return h.kbd }

// Emulator is the software controller behind Renderer.
func (h *Host) Emulator() *ssd1306.Emulator { return h.emu }

// Press drives the named button line as if the switch were pressed or
// released.
func (h *Host) Press(name string, down bool) error {
	p, ok := h.buttons[name]
	if !ok {
		return fmt.Errorf("hal: no button %q", name)
	}
	p.set(!down)
	return nil
}

// Key forwards a key event to the keyboard and mirrors arrow keys and
// Enter onto the matching button lines.
func (h *Host) Key(ev KeyEvent) {
	h.kbd.emit(ev)
	if name, ok := keyButtons[ev.Code]; ok {
		_ = h.Press(name, ev.Press)
	}
}

var keyButtons = map[KeyCode]string{
	KeyUp:    ButtonUp,
	KeyDown:  ButtonDown,
	KeyLeft:  ButtonLeft,
	KeyRight: ButtonRight,
	KeyEnter: ButtonStart,
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
