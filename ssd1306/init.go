package ssd1306

import (
	"context"
	"fmt"
	"time"

	"ssdui/logging"
)

// Renderer is the command/data transport to the controller. Both calls
// return how many bytes actually went out.
type Renderer interface {
	Command(b []byte) int
	Data(b []byte) int
}

// ResetContrast is the contrast the controller comes out of reset with.
const ResetContrast = 0x7F

// InitSequence returns the power-up commands for cfg. The order matters:
// the controller ignores some settings sent before the clock and charge
// pump are configured. A contrast other than ResetContrast is appended
// after the display is switched on.
func InitSequence(cfg Config) [][]byte {
	seq := [][]byte{
		SetDisplay(false),
		SetClock(cfg.ClockRatio, cfg.ClockFrequency),
		SetMultiplex(cfg.MultiplexRatio),
		SetDisplayOffset(cfg.DisplayOffset),
		SetAddressing(cfg.AddressingMode),
		SetStartLine(cfg.StartLine),
		SetSegmentRemap(cfg.HorizontalFlip),
		SetCOMScan(cfg.VerticalFlip),
		SetCOMPins(cfg.COMPins),
		SetPrecharge(cfg.PrechargePhase1, cfg.PrechargePhase2),
		SetVCOMH(cfg.VCOMH),
		SetEntireOn(cfg.EntireDisplayOn),
		SetInvert(cfg.Inverse),
		SetChargePump(cfg.ChargePumpEnable),
		SetPageRange(cfg.PageStart, cfg.PageEnd),
		SetColumnRange(cfg.ColumnStart, cfg.ColumnEnd),
		SetDisplay(cfg.DisplayOn),
	}
	if cfg.Contrast != ResetContrast {
		seq = append(seq, SetContrast(cfg.Contrast))
	}
	return seq
}

// Initialize waits delay for the panel to power up, then sends
// InitSequence(cfg). It stops at the first short write.
func Initialize(ctx context.Context, r Renderer, cfg Config, delay time.Duration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if delay > 0 {
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	for i, cmd := range InitSequence(cfg) {
		if n := r.Command(cmd); n != len(cmd) {
			return fmt.Errorf("ssd1306: init step %d (%#x): sent %d of %d bytes: %w", i, cmd[0], n, len(cmd), ErrShortWrite)
		}
	}
	logging.Logger().Debug("ssd1306: initialized",
		"width", cfg.Width, "pages", cfg.Pages, "mode", cfg.AddressingMode.String())
	return nil
}
