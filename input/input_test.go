package input

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ssdui/hal"
	"ssdui/ssd1306"
	"ssdui/ui"
)

type ev int

const (
	evStart ev = iota
	evMenu
	evTick
	evUp
)

type state struct{}

type ctx = ui.Context[ev, state]

func TestButtonClick(t *testing.T) {
	b := NewButton()
	t0 := time.Unix(0, 0)
	at := func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

	steps := []struct {
		ms    int
		level bool
		want  Gesture
	}{
		{0, true, None},
		{100, false, None},
		{140, false, None},
		{150, false, Press},
		{160, false, None},
		{300, true, None},
		{340, true, None},
		{350, true, Click},
		{400, true, None},
	}
	for _, s := range steps {
		if got := b.Update(s.level, at(s.ms)); got != s.want {
			t.Fatalf("Update(%v) at %dms = %v, want %v", s.level, s.ms, got, s.want)
		}
	}
}

func TestButtonBounceIgnored(t *testing.T) {
	b := NewButton()
	t0 := time.Unix(0, 0)
	at := func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

	levels := []bool{true, false, true, false, true, false, true}
	for i, l := range levels {
		if got := b.Update(l, at(i*10)); got != None {
			t.Fatalf("bounce sample %d = %v, want none", i, got)
		}
	}
	if b.Pressed() {
		t.Fatal("Pressed() = true after bounce")
	}
}

func TestButtonLongPress(t *testing.T) {
	b := NewButton()
	t0 := time.Unix(0, 0)
	var got []Gesture
	for ms := 0; ms <= 2500; ms += 10 {
		level := !(ms >= 1000 && ms < 2000)
		if g := b.Update(level, t0.Add(time.Duration(ms)*time.Millisecond)); g != None {
			got = append(got, g)
		}
	}
	want := []Gesture{Press, LongPress, Release}
	if len(got) != len(want) {
		t.Fatalf("gestures = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("gestures = %v, want %v", got, want)
		}
	}
}

func TestButtonActiveHigh(t *testing.T) {
	b := NewButton()
	b.ActiveHigh = true
	t0 := time.Unix(0, 0)
	b.Update(false, t0)
	b.Update(true, t0.Add(10*time.Millisecond))
	if g := b.Update(true, t0.Add(60*time.Millisecond)); g != Press {
		t.Fatalf("Update = %v, want press", g)
	}
}

type fakeLine struct {
	name  string
	level atomic.Bool
	err   error
}

func newLine(name string) *fakeLine {
	l := &fakeLine{name: name}
	l.level.Store(true)
	return l
}

func (l *fakeLine) Name() string { return l.name }

func (l *fakeLine) Read() (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.level.Load(), nil
}

func newContext(t *testing.T, root ui.Component[ev, state]) (*ctx, *ui.Ticker[ev, state]) {
	t.Helper()
	cfg := ssd1306.DefaultConfig()
	c, err := ui.New(cfg, ssd1306.NewEmulator(cfg.Width, cfg.Pages), root)
	if err != nil {
		t.Fatalf("ui.New: %v", err)
	}
	return c, ui.NewTicker(c)
}

func TestScannerPollTriggers(t *testing.T) {
	start := newLine(hal.ButtonStart)
	broken := newLine("BROKEN")
	broken.err = errors.New("bus error")

	now := time.Unix(0, 0)
	sc := &Scanner[ev, state]{
		Bindings: []Binding[ev]{
			{Line: start, On: map[Gesture]ev{Click: evStart, LongPress: evMenu}},
			OnClick(broken, evUp),
		},
		Now: func() time.Time { return now },
	}
	c, tk := newContext(t, sc)
	if err := tk.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	var starts, menus int
	c.Register(evStart, func(*ctx, any) { starts++ })
	c.Register(evMenu, func(*ctx, any) { menus++ })

	press := func(from, to int) {
		for ms := from; ms < to; ms += 10 {
			now = time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)
			start.level.Store(false)
			sc.Poll(c)
		}
		for ms := to; ms < to+100; ms += 10 {
			now = time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)
			start.level.Store(true)
			sc.Poll(c)
		}
	}
	press(0, 200)
	press(1000, 2000)
	c.Events().DispatchPending(c)

	if starts != 1 || menus != 1 {
		t.Fatalf("starts=%d menus=%d, want 1 and 1", starts, menus)
	}
	if got := c.Events().Listeners(evUp); got != 0 {
		t.Fatalf("unexpected listeners: %d", got)
	}
}

func TestKeysLookup(t *testing.T) {
	k := &Keys[ev, state]{
		Codes: map[hal.KeyCode]ev{hal.KeyUp: evUp, hal.KeyEnter: evStart},
		Runes: map[rune]ev{'w': evUp, ' ': evStart},
	}
	tests := []struct {
		in   hal.KeyEvent
		want ev
		ok   bool
	}{
		{hal.KeyEvent{Code: hal.KeyUp, Press: true}, evUp, true},
		{hal.KeyEvent{Code: hal.KeyUp, Press: false}, 0, false},
		{hal.KeyEvent{Rune: ' ', Press: true}, evStart, true},
		{hal.KeyEvent{Rune: 'w', Press: true}, evUp, true},
		{hal.KeyEvent{Rune: 'x', Press: true}, 0, false},
		{hal.KeyEvent{Code: hal.KeyLeft, Press: true}, 0, false},
	}
	for _, tt := range tests {
		got, ok := k.Lookup(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Lookup(%+v) = %v,%v, want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

type chanKeyboard chan hal.KeyEvent

func (k chanKeyboard) Events() <-chan hal.KeyEvent { return k }

func TestKeysAndEveryRun(t *testing.T) {
	kbd := make(chanKeyboard, 4)
	keys := &Keys[ev, state]{Keyboard: kbd, Codes: map[hal.KeyCode]ev{hal.KeyEnter: evStart}}
	every := &Every[ev, state]{Interval: time.Millisecond, Event: evTick}

	gotStart := make(chan struct{})
	gotTicks := make(chan struct{})
	var ticks atomic.Int32
	root := ui.NewGroup[ev, state](keys, every, ui.RenderFunc[ev, state](func(*ctx) {}))
	c, tk := newContext(t, root)
	c.Register(evStart, func(*ctx, any) { close(gotStart) })
	c.Register(evTick, func(*ctx, any) {
		if ticks.Add(1) == 3 {
			close(gotTicks)
		}
	})

	rctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tk.Run(rctx) }()

	kbd <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	for _, ch := range []chan struct{}{gotStart, gotTicks} {
		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			t.Fatal("event not delivered")
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() = %v", err)
	}
}
