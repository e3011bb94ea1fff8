package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"ssdui/geom"
	"ssdui/logging"
	"ssdui/ssd1306"
)

var ErrTickerStarted = errors.New("ui: ticker already started")

// TickerState is the scheduler's lifecycle position.
type TickerState uint32

const (
	Idle TickerState = iota
	Mounting
	Running
	Stopped
)

func (s TickerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Mounting:
		return "mounting"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("TickerState(%d)", uint32(s))
	}
}

// TickerStats counts scheduler work since construction.
type TickerStats struct {
	Frames      uint64
	Regions     uint64
	Bytes       uint64
	ShortWrites uint64
	Overruns    uint64
	LastFrame   time.Duration
}

// TickerOption configures NewTicker.
type TickerOption func(*tickerOptions)

type tickerOptions struct {
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	full  bool
}

// WithClock replaces the wall clock and the frame sleep.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) TickerOption {
	return func(o *tickerOptions) {
		if now != nil {
			o.now = now
		}
		if sleep != nil {
			o.sleep = sleep
		}
	}
}

// WithFullRefresh rewrites the whole panel on the first frame instead of
// assuming it starts blank.
func WithFullRefresh() TickerOption {
	return func(o *tickerOptions) { o.full = true }
}

// Ticker mounts a context's tree and then renders, diffs and flushes one
// frame per configured interval.
type Ticker[E comparable, S any] struct {
	c     *Context[E, S]
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	state   atomic.Uint32
	mountMu sync.Mutex
	mounted bool

	// Frame state, owned by whoever is producing frames.
	refresh bool
	regions []geom.Rect
	cmd     []byte

	statsMu sync.Mutex
	stats   TickerStats
}

func NewTicker[E comparable, S any](c *Context[E, S], opts ...TickerOption) *Ticker[E, S] {
	o := tickerOptions{now: time.Now, sleep: sleepContext}
	for _, opt := range opts {
		opt(&o)
	}
	return &Ticker[E, S]{
		c:       c,
		now:     o.now,
		sleep:   o.sleep,
		refresh: o.full,
		regions: make([]geom.Rect, 0, c.buf.Pages()),
		cmd:     make([]byte, 0, 8),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (t *Ticker[E, S]) State() TickerState { return TickerState(t.state.Load()) }

// Stats returns a snapshot of the counters.
func (t *Ticker[E, S]) Stats() TickerStats {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	return t.stats
}

// Run mounts the tree, starts the dispatch loop and every background
// activity registered through Context.Go, and produces frames until ctx is
// cancelled. It waits for all of them before returning. A Ticker runs at
// most once.
func (t *Ticker[E, S]) Run(ctx context.Context) error {
	if !t.state.CompareAndSwap(uint32(Idle), uint32(Mounting)) {
		return ErrTickerStarted
	}
	log := logging.Logger()
	if err := t.mount(); err != nil {
		t.state.Store(uint32(Stopped))
		t.c.stop()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	t.c.start(g, gctx)
	g.Go(func() error { return t.c.events.Run(gctx, t.c) })
	g.Go(func() error { return t.loop(gctx) })
	t.state.Store(uint32(Running))
	log.Info("ui: ticker running",
		"width", t.c.buf.Width(), "pages", t.c.buf.Pages(), "fps", t.c.config.FPS())

	err := g.Wait()
	t.c.stop()
	t.state.Store(uint32(Stopped))
	st := t.Stats()
	log.Info("ui: ticker stopped",
		"frames", st.Frames, "short_writes", st.ShortWrites, "overruns", st.Overruns)
	return err
}

// Frame mounts the tree if needed and produces one frame immediately. It is
// for tests and hosts that pace frames themselves, and fails while Run is
// active. Events are not dispatched; call Events().DispatchPending.
func (t *Ticker[E, S]) Frame() error {
	switch t.State() {
	case Mounting, Running:
		return ErrTickerStarted
	}
	if err := t.mount(); err != nil {
		return err
	}
	return catch(func() error { t.frame(); return nil })
}

func (t *Ticker[E, S]) mount() error {
	t.mountMu.Lock()
	defer t.mountMu.Unlock()
	if t.mounted {
		return nil
	}
	if err := mountTree(t.c, t.c.root); err != nil {
		return fmt.Errorf("ui: mount: %w", err)
	}
	t.mounted = true
	logging.Logger().Debug("ui: tree mounted")
	return nil
}

func (t *Ticker[E, S]) loop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		start := t.now()
		if err := catch(func() error { t.frame(); return nil }); err != nil {
			logging.Logger().Error("ui: render panic", "err", err)
			return err
		}
		elapsed := t.now().Sub(start)
		interval := t.c.config.FrameInterval()

		t.statsMu.Lock()
		t.stats.LastFrame = elapsed
		if elapsed >= interval {
			t.stats.Overruns++
		}
		t.statsMu.Unlock()

		if elapsed >= interval {
			logging.Logger().Debug("ui: frame overrun", "elapsed", elapsed, "interval", interval)
			continue
		}
		if err := t.sleep(ctx, interval-elapsed); err != nil {
			return nil
		}
	}
}

func (t *Ticker[E, S]) frame() {
	c := t.c
	buf := c.buf
	if t.refresh || c.config.takeRemapped() {
		buf.Invalidate()
		t.refresh = false
	}

	c.root.Render(c)

	mode := c.config.AddressingMode()
	t.regions = buf.AppendDirtyRegions(t.regions[:0])
	var sent, short uint64
	for _, r := range t.regions {
		var ok bool
		t.cmd, ok = ssd1306.AppendAddressWindow(t.cmd[:0], mode, r)
		if !ok {
			continue
		}
		if n := c.renderer.Command(t.cmd); n != len(t.cmd) {
			short++
			logging.Logger().Warn("ui: short write", "channel", "command", "region", r.String(), "sent", n, "want", len(t.cmd))
			continue
		}
		data := buf.Span(r)
		n := c.renderer.Data(data)
		sent += uint64(n)
		if n != len(data) {
			short++
			logging.Logger().Warn("ui: short write", "channel", "data", "region", r.String(), "sent", n, "want", len(data))
		}
	}
	// The panel no longer matches the previous plane; resend everything
	// next frame.
	if short > 0 {
		t.refresh = true
	}

	buf.Swap()
	buf.Clear()

	t.statsMu.Lock()
	t.stats.Frames++
	t.stats.Regions += uint64(len(t.regions))
	t.stats.Bytes += sent
	t.stats.ShortWrites += short
	t.statsMu.Unlock()
}
