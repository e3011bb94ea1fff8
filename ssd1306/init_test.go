package ssd1306

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestInitSequenceOrder(t *testing.T) {
	want := [][]byte{
		{0xAE},
		{0xD5, 0x80},
		{0xA8, 0x3F},
		{0xD3, 0x00},
		{0x20, 0x02},
		{0x40},
		{0xA0},
		{0xC0},
		{0xDA, 0x12},
		{0xD9, 0xF1},
		{0xDB, 0x40},
		{0xA4},
		{0xA6},
		{0x8D, 0x14},
		{0x22, 0x00, 0x07},
		{0x21, 0x00, 0x7F},
		{0xAF},
	}
	got := InitSequence(DefaultConfig())
	if len(got) != len(want) {
		t.Fatalf("InitSequence() has %d steps, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Fatalf("step %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestInitSequenceContrast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Contrast = 0x20
	seq := InitSequence(cfg)
	if last := seq[len(seq)-1]; !bytes.Equal(last, []byte{0x81, 0x20}) {
		t.Fatalf("last step = %#v, want contrast", last)
	}
}

func TestInitializeProgramsEmulator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddressingMode = Horizontal
	cfg.HorizontalFlip = true

	e := NewEmulator(cfg.Width, cfg.Pages)
	e.Trace(true)
	if err := Initialize(context.Background(), e, cfg, 0); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	st := e.State()
	if !st.On || st.Mode != Horizontal || !st.SegmentRemap || !st.ChargePump {
		t.Fatalf("State() = %+v", st)
	}
	if got := len(e.History()); got != len(InitSequence(cfg)) {
		t.Fatalf("History() has %d commands, want %d", got, len(InitSequence(cfg)))
	}
}

func TestInitializeShortWrite(t *testing.T) {
	e := NewEmulator(128, 8)
	e.InjectShortWrite(0)
	err := Initialize(context.Background(), e, DefaultConfig(), 0)
	if !errors.Is(err, ErrShortWrite) {
		t.Fatalf("Initialize() = %v, want ErrShortWrite", err)
	}
}

func TestInitializeDelayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewEmulator(128, 8)
	if err := Initialize(ctx, e, DefaultConfig(), time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("Initialize() = %v, want context.Canceled", err)
	}
}
