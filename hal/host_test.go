//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"testing"
	"time"

	"ssdui/ssd1306"
)

func readButton(t *testing.T, g GPIO, name string) bool {
	t.Helper()
	p := PinByName(g, name)
	if p == nil {
		t.Fatalf("no pin %s", name)
	}
	level, err := p.Read()
	if err != nil {
		t.Fatalf("%s Read: %v", name, err)
	}
	return level
}

func TestHostKeyMirrorsButtons(t *testing.T) {
	h := NewHost(HostConfig{})
	if err := ConfigureButtons(h.Buttons()); err != nil {
		t.Fatalf("ConfigureButtons: %v", err)
	}
	if !readButton(t, h.Buttons(), ButtonUp) {
		t.Fatal("UP should start released")
	}

	h.Key(KeyEvent{Code: KeyUp, Press: true})
	if readButton(t, h.Buttons(), ButtonUp) {
		t.Fatal("UP should read low while pressed")
	}
	h.Key(KeyEvent{Code: KeyUp, Press: false})
	if !readButton(t, h.Buttons(), ButtonUp) {
		t.Fatal("UP should read high after release")
	}

	for i, want := range []bool{true, false} {
		select {
		case ev := <-h.Keyboard().Events():
			if ev.Code != KeyUp || ev.Press != want {
				t.Fatalf("event %d = %+v", i, ev)
			}
		default:
			t.Fatalf("event %d missing", i)
		}
	}

	if err := h.Press("FIRE", true); err == nil {
		t.Fatal("Press(FIRE) should fail")
	}
}

func TestHostPanelSize(t *testing.T) {
	h := NewHost(HostConfig{Width: 64, Pages: 4})
	w, ht := h.Emulator().Size()
	if w != 64 || ht != 32 {
		t.Fatalf("Size() = %d, %d, want 64, 32", w, ht)
	}
}

func TestRunHeadlessDuration(t *testing.T) {
	cfg := HeadlessConfig{Duration: 20 * time.Millisecond, Autoplay: true}
	var sawStart bool
	err := RunHeadless(context.Background(), cfg, func(ctx context.Context, h HAL) error {
		if err := ConfigureButtons(h.Buttons()); err != nil {
			return err
		}
		// START pulses at t=0.
		level, err := PinByName(h.Buttons(), ButtonStart).Read()
		if err != nil {
			return err
		}
		sawStart = !level
		h.Renderer().Command(ssd1306.SetDisplay(true))
		<-ctx.Done()
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("RunHeadless() = %v, want nil", err)
	}
	if !sawStart {
		t.Fatal("autoplay START should be pressed at start")
	}
}

func TestRunHeadlessError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), HeadlessConfig{}, func(context.Context, HAL) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless() = %v, want %v", err, boom)
	}
}
