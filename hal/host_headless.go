//go:build !tinygo

package hal

import (
	"context"
	"time"

	"ssdui/logging"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	HostConfig

	// Duration stops the run after this long. Zero runs until ctx is
	// done or fn returns.
	Duration time.Duration

	// Autoplay replaces START, RIGHT and DOWN with signal sources that
	// press them periodically.
	Autoplay bool

	// Dump logs the final panel contents as text.
	Dump bool
}

// RunHeadless runs fn against a host HAL without any frontend.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, fn RunFunc) error {
	h := NewHost(cfg.HostConfig)
	if cfg.Autoplay {
		h.autoplay()
	}
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}
	err := <-startApp(ctx, h, fn)
	if cfg.Dump {
		dumpPanel(h)
	}
	return err
}

// autoplay swaps some button lines for active-low pulse trains with
// coprime periods, so the pressed combinations keep changing.
func (h *Host) autoplay() {
	signals := map[string]GPIOPin{
		ButtonStart: invertedPin{newSignalPin(ButtonStart, 3*time.Second, 100*time.Millisecond)},
		ButtonRight: invertedPin{newSignalPin(ButtonRight, 1700*time.Millisecond, 100*time.Millisecond)},
		ButtonDown:  invertedPin{newSignalPin(ButtonDown, 2300*time.Millisecond, 100*time.Millisecond)},
	}
	pins := make([]GPIOPin, 0, len(ButtonNames))
	for _, name := range ButtonNames {
		if p, ok := signals[name]; ok {
			pins = append(pins, p)
			continue
		}
		pins = append(pins, h.buttons[name])
	}
	h.gpio = newPinSet(pins)
}

func dumpPanel(h *Host) {
	img := h.emu.Snapshot()
	cmd, data := h.emu.Bytes()
	logging.Logger().Info("hal: panel", "command_bytes", cmd, "data_bytes", data)
	var line []rune
	for row := 0; row < HalfBlockRows(img); row++ {
		line = AppendHalfBlocks(line[:0], img, row)
		h.logger.WriteLineString(string(line))
	}
}
