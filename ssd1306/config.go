// Package ssd1306 speaks the SSD1306 command set: configuration, command
// encoding, the init sequence, address windows for dirty regions, and
// renderers for I2C, SPI and a software emulator.
//
// Datasheet: https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306

import (
	"fmt"
	"time"
)

// AddressingMode selects how the GDDRAM pointer advances after each data
// byte.
type AddressingMode uint8

const (
	Horizontal AddressingMode = 0x00
	Vertical   AddressingMode = 0x01
	Page       AddressingMode = 0x02
)

func (m AddressingMode) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Page:
		return "page"
	default:
		return fmt.Sprintf("AddressingMode(%d)", uint8(m))
	}
}

// COMPins is the COM pins hardware configuration (command 0xDA).
type COMPins uint8

const (
	COMSequential         COMPins = 0x02
	COMSequentialRemapped COMPins = 0x22
	COMAlternative        COMPins = 0x12
	COMAlternativeRemap   COMPins = 0x32
)

const (
	DefaultWidth     = 128
	DefaultPages     = 8
	PageSize         = 8
	DefaultFPS       = 30
	DefaultInitDelay = 100 * time.Millisecond

	// I2C addresses. Most 128x64 modules answer on 0x3C.
	Address    = 0x3C
	AddressAlt = 0x3D
)

// Config describes the panel geometry and every tuning value sent during
// initialization.
type Config struct {
	Width int
	Pages int

	AddressingMode AddressingMode

	// Window programmed at init time. Ignored by the controller in page mode.
	PageStart   uint8
	PageEnd     uint8
	ColumnStart uint8
	ColumnEnd   uint8

	ClockRatio     uint8 // low nibble of 0xD5
	ClockFrequency uint8 // high nibble of 0xD5

	PrechargePhase1 uint8
	PrechargePhase2 uint8

	VCOMH    uint8
	Contrast uint8
	COMPins  COMPins

	EntireDisplayOn bool
	Inverse         bool
	DisplayOn       bool

	StartLine      uint8
	HorizontalFlip bool
	VerticalFlip   bool
	DisplayOffset  uint8

	MultiplexRatio   uint8
	ChargePumpEnable bool

	FPS int
}

// DefaultConfig is a 128x64 panel in page addressing mode at 30 fps.
func DefaultConfig() Config {
	return Config{
		Width:            DefaultWidth,
		Pages:            DefaultPages,
		AddressingMode:   Page,
		PageStart:        0,
		PageEnd:          DefaultPages - 1,
		ColumnStart:      0,
		ColumnEnd:        DefaultWidth - 1,
		ClockRatio:       0x00,
		ClockFrequency:   0x08,
		PrechargePhase1:  0x01,
		PrechargePhase2:  0x0F,
		VCOMH:            0x40,
		Contrast:         0x7F,
		COMPins:          COMAlternative,
		DisplayOn:        true,
		MultiplexRatio:   DefaultPages * PageSize,
		ChargePumpEnable: true,
		FPS:              DefaultFPS,
	}
}

// Height is the pixel height covered by Pages.
func (c Config) Height() int { return c.Pages * PageSize }

// FrameInterval is the target time per frame.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}

// Validate checks the values against the controller's limits.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Width > 128:
		return fmt.Errorf("ssd1306: width %d out of range 1..128", c.Width)
	case c.Pages <= 0 || c.Pages > 8:
		return fmt.Errorf("ssd1306: pages %d out of range 1..8", c.Pages)
	case c.AddressingMode > Page:
		return fmt.Errorf("ssd1306: invalid addressing mode %d", uint8(c.AddressingMode))
	case c.MultiplexRatio < 16 || c.MultiplexRatio > 64:
		return fmt.Errorf("ssd1306: multiplex ratio %d out of range 16..64", c.MultiplexRatio)
	case c.ClockRatio > 0x0F || c.ClockFrequency > 0x0F:
		return fmt.Errorf("ssd1306: clock ratio/frequency must be 4-bit")
	case c.PrechargePhase1 == 0 || c.PrechargePhase1 > 0x0F || c.PrechargePhase2 == 0 || c.PrechargePhase2 > 0x0F:
		return fmt.Errorf("ssd1306: precharge phases must be 1..15")
	case c.StartLine > 63 || c.DisplayOffset > 63:
		return fmt.Errorf("ssd1306: start line/offset must be 0..63")
	case c.PageStart > c.PageEnd || int(c.PageEnd) >= c.Pages:
		return fmt.Errorf("ssd1306: init page window %d..%d invalid", c.PageStart, c.PageEnd)
	case c.ColumnStart > c.ColumnEnd || int(c.ColumnEnd) >= c.Width:
		return fmt.Errorf("ssd1306: init column window %d..%d invalid", c.ColumnStart, c.ColumnEnd)
	case c.FPS <= 0:
		return fmt.Errorf("ssd1306: fps must be positive")
	}
	return nil
}
