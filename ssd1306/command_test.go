package ssd1306

import (
	"bytes"
	"testing"

	"ssdui/geom"
)

func TestCommandBytes(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"display on", SetDisplay(true), []byte{0xAF}},
		{"display off", SetDisplay(false), []byte{0xAE}},
		{"invert", SetInvert(true), []byte{0xA7}},
		{"normal", SetInvert(false), []byte{0xA6}},
		{"entire on", SetEntireOn(true), []byte{0xA5}},
		{"entire resume", SetEntireOn(false), []byte{0xA4}},
		{"contrast", SetContrast(0x7F), []byte{0x81, 0x7F}},
		{"segment remap", SetSegmentRemap(true), []byte{0xA1}},
		{"segment normal", SetSegmentRemap(false), []byte{0xA0}},
		{"com scan dec", SetCOMScan(true), []byte{0xC8}},
		{"com scan inc", SetCOMScan(false), []byte{0xC0}},
		{"multiplex", SetMultiplex(64), []byte{0xA8, 0x3F}},
		{"offset", SetDisplayOffset(3), []byte{0xD3, 0x03}},
		{"clock", SetClock(0x00, 0x08), []byte{0xD5, 0x80}},
		{"precharge", SetPrecharge(0x01, 0x0F), []byte{0xD9, 0xF1}},
		{"vcomh", SetVCOMH(0x40), []byte{0xDB, 0x40}},
		{"com pins", SetCOMPins(COMAlternative), []byte{0xDA, 0x12}},
		{"charge pump on", SetChargePump(true), []byte{0x8D, 0x14}},
		{"charge pump off", SetChargePump(false), []byte{0x8D, 0x10}},
		{"addressing", SetAddressing(Horizontal), []byte{0x20, 0x00}},
		{"start line", SetStartLine(5), []byte{0x45}},
		{"column range", SetColumnRange(0, 127), []byte{0x21, 0x00, 0x7F}},
		{"page range", SetPageRange(0, 7), []byte{0x22, 0x00, 0x07}},
		{"page start", SetPageStart(3), []byte{0xB3}},
		{"column start", SetColumnStart(0x5A), []byte{0x0A, 0x15}},
		{"nop", Nop(), []byte{0xE3}},
	}
	for _, tt := range tests {
		if !bytes.Equal(tt.got, tt.want) {
			t.Fatalf("%s = %#v, want %#v", tt.name, tt.got, tt.want)
		}
	}
}

func TestAppendAddressWindow(t *testing.T) {
	tests := []struct {
		mode AddressingMode
		r    geom.Rect
		want []byte
		ok   bool
	}{
		{Horizontal, geom.R(10, 0, 2, 1), []byte{0x21, 10, 11, 0x22, 0, 0}, true},
		{Vertical, geom.R(0, 2, 128, 3), []byte{0x21, 0, 127, 0x22, 2, 4}, true},
		{Page, geom.R(0x23, 5, 4, 1), []byte{0xB5, 0x03, 0x12}, true},
		{Page, geom.R(0, 0, 4, 2), nil, false},
		{Horizontal, geom.R(0, 0, 0, 1), nil, false},
		{Horizontal, geom.R(120, 0, 9, 1), nil, false},
		{Horizontal, geom.R(0, 7, 1, 2), nil, false},
	}
	for _, tt := range tests {
		got, ok := AppendAddressWindow(nil, tt.mode, tt.r)
		if ok != tt.ok || !bytes.Equal(got, tt.want) {
			t.Fatalf("AppendAddressWindow(%v, %v) = %#v,%v, want %#v,%v", tt.mode, tt.r, got, ok, tt.want, tt.ok)
		}
	}

	// Pure: appending keeps the prefix and repeats exactly.
	prefix := []byte{0xE3}
	a, _ := AppendAddressWindow(prefix, Horizontal, geom.R(1, 1, 1, 1))
	b, _ := AppendAddressWindow([]byte{0xE3}, Horizontal, geom.R(1, 1, 1, 1))
	if !bytes.Equal(a, b) || a[0] != 0xE3 {
		t.Fatalf("AppendAddressWindow not deterministic: %#v vs %#v", a, b)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	bad := []func(*Config){
		func(c *Config) { c.Width = 0 },
		func(c *Config) { c.Pages = 9 },
		func(c *Config) { c.FPS = 0 },
		func(c *Config) { c.MultiplexRatio = 8 },
		func(c *Config) { c.ClockRatio = 0x10 },
		func(c *Config) { c.PageEnd = 8 },
		func(c *Config) { c.ColumnStart, c.ColumnEnd = 10, 5 },
	}
	for i, mut := range bad {
		c := DefaultConfig()
		mut(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: Validate() = nil, want error", i)
		}
	}
}

func TestFrameInterval(t *testing.T) {
	c := DefaultConfig()
	if got := c.FrameInterval(); got.Milliseconds() != 33 {
		t.Fatalf("FrameInterval() = %v, want ~33ms", got)
	}
	if got, want := c.Height(), 64; got != want {
		t.Fatalf("Height() = %d, want %d", got, want)
	}
}
