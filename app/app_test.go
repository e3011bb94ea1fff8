//go:build !tinygo

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"ssdui/draw"
	"ssdui/hal"
	"ssdui/ssd1306"
	"ssdui/ui"
)

func TestRunStopsAfterFrames(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Run(ctx, h, Options{Frames: 3, FPS: 100, Seed: 1}); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run returned only after the deadline")
	}
	st := h.Emulator().State()
	if !st.On || st.Contrast != 0x7F {
		t.Fatalf("panel state = %+v", st)
	}
	if _, data := h.Emulator().Bytes(); data == 0 {
		t.Fatal("no frame data reached the panel")
	}
}

func TestRunCancelled(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	if err := Run(ctx, h, Options{}); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
}

func TestOptionsConfig(t *testing.T) {
	cfg := Options{FPS: 10, Contrast: 0x20, Flip: true}.config()
	if cfg.FPS != 10 || cfg.Contrast != 0x20 || !cfg.HorizontalFlip || !cfg.VerticalFlip {
		t.Fatalf("config() = %+v", cfg)
	}
	if cfg.Width != ssd1306.DefaultWidth {
		t.Fatalf("Width = %d, want default", cfg.Width)
	}
	if got := (Options{}).config().Contrast; got != 0x7F {
		t.Fatalf("default Contrast = %#x, want 0x7f", got)
	}
}

func TestFitWidth(t *testing.T) {
	if p, r := fitWidth("ok", 128); p != "ok" || r != "" {
		t.Fatalf("fitWidth(ok) = %q, %q", p, r)
	}
	long := "panic: runtime error: index out of range [7] with length 3"
	p, r := fitWidth(long, 60)
	if p == "" || p+r != long {
		t.Fatalf("fitWidth split %q into %q + %q", long, p, r)
	}
	if w := draw.TextWidth(nil, p); w > 60 {
		t.Fatalf("prefix %q is %d px wide", p, w)
	}
	if p, _ := fitWidth("WWW", 1); p != "W" {
		t.Fatalf("fitWidth should take one rune when nothing fits, got %q", p)
	}
}

func TestShowPanic(t *testing.T) {
	cfg := ssd1306.DefaultConfig()
	emu := ssd1306.NewEmulator(cfg.Width, cfg.Pages)
	ShowPanic(emu, cfg, "boom", []byte("goroutine 1 [running]:\nmain.main()\n\t/src/main.go:3\n"))

	if !emu.State().On {
		t.Fatal("panel should be switched on")
	}
	lit := 0
	for _, b := range emu.RAM()[:cfg.Width] {
		if b != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("first page is blank")
	}
}

func TestRecoverRepanics(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{})
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("recover() = %v, want boom", r)
		}
		if _, data := h.Emulator().Bytes(); data == 0 {
			t.Fatal("panic screen not drawn")
		}
	}()
	func() {
		defer Recover(h, ssd1306.Config{})
		panic("boom")
	}()
}

func TestFinishShowsComponentPanic(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{})
	pe := &ui.PanicError{Value: "render boom", Stack: []byte("ssdui/ui.(*Ticker).frame()\n")}

	err := finish(h, ssd1306.DefaultConfig(), pe)
	if !errors.Is(err, pe) {
		t.Fatalf("finish() = %v, want %v", err, pe)
	}
	if !h.Emulator().State().On {
		t.Fatal("panic screen should switch the panel on")
	}
	lit := false
	for _, b := range h.Emulator().RAM() {
		if b != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatal("panic screen not drawn")
	}

	if err := finish(h, ssd1306.DefaultConfig(), errFrameLimit); err != nil {
		t.Fatalf("finish(frame limit) = %v, want nil", err)
	}
}
