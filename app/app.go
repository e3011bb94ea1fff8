// Package app wires a HAL to the snake demo: logging, panel bring-up and
// the frame loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ssdui/app/snake"
	"ssdui/hal"
	"ssdui/internal/buildinfo"
	"ssdui/logging"
	"ssdui/ssd1306"
	"ssdui/ui"
)

type Options struct {
	// Config is the panel setup. A zero Width selects DefaultConfig.
	Config ssd1306.Config

	// Overrides applied on top of Config. Zero keeps the configured
	// value.
	FPS      int
	Contrast int
	Flip     bool

	// Frames stops the run after that many frames; 0 runs until ctx is
	// done.
	Frames uint64

	// InitDelay is how long Initialize waits before sending the init
	// sequence.
	InitDelay time.Duration

	FullRefresh bool
	Verbose     bool
	Seed        uint32
}

var errFrameLimit = errors.New("app: frame limit reached")

// Run brings up the panel on h and runs the demo until ctx is done, the
// frame limit is hit or a component fails. A component panic comes back
// as a *ui.PanicError after the panic screen is drawn.
func Run(ctx context.Context, h hal.HAL, o Options) error {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(logging.NewLineHandler(h.Logger(), &slog.HandlerOptions{Level: level})))
	log := logging.Logger()

	cfg := o.config()
	if err := hal.ConfigureButtons(h.Buttons()); err != nil {
		return fmt.Errorf("app: buttons: %w", err)
	}
	if err := ssd1306.Initialize(ctx, h.Renderer(), cfg, o.InitDelay); err != nil {
		return fmt.Errorf("app: init display: %w", err)
	}

	c, err := snake.NewContext(cfg, h.Renderer(), snake.Options{
		Seed:     o.Seed,
		Buttons:  h.Buttons(),
		Keyboard: h.Keyboard(),
	})
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	var topts []ui.TickerOption
	if o.FullRefresh {
		topts = append(topts, ui.WithFullRefresh())
	}
	tk := ui.NewTicker(c, topts...)

	if o.Frames > 0 {
		c.Go(func(ctx context.Context) error {
			return waitFrames(ctx, tk, o.Frames, cfg.FrameInterval())
		})
	}
	if l, ok := h.(interface{ LED() hal.LED }); ok {
		c.Go(func(ctx context.Context) error { return heartbeat(ctx, l.LED()) })
	}

	log.Info("app: start", "version", buildinfo.Short(),
		"width", cfg.Width, "height", cfg.Height(), "fps", cfg.FPS, "mode", cfg.AddressingMode.String())
	err = finish(h, cfg, tk.Run(ctx))

	st := tk.Stats()
	ev := c.Events().Stats()
	log.Info("app: stopped", "frames", st.Frames, "bytes", st.Bytes,
		"short_writes", st.ShortWrites, "overruns", st.Overruns,
		"events", ev.Dispatched, "panics", ev.Panics)
	return err
}

// finish maps the ticker's result to Run's. A panic recovered on one of
// the ticker's goroutines is shown on the panel and returned.
func finish(h hal.HAL, cfg ssd1306.Config, err error) error {
	if errors.Is(err, errFrameLimit) {
		return nil
	}
	var pe *ui.PanicError
	if errors.As(err, &pe) {
		reportPanic(h, cfg, pe.Value, pe.Stack)
	}
	return err
}

func (o Options) config() ssd1306.Config {
	cfg := o.Config
	if cfg.Width == 0 {
		cfg = ssd1306.DefaultConfig()
	}
	if o.FPS > 0 {
		cfg.FPS = o.FPS
	}
	if o.Contrast > 0 && o.Contrast <= 0xFF {
		cfg.Contrast = uint8(o.Contrast)
	}
	if o.Flip {
		cfg.HorizontalFlip = !cfg.HorizontalFlip
		cfg.VerticalFlip = !cfg.VerticalFlip
	}
	return cfg
}

func waitFrames(ctx context.Context, tk *ui.Ticker[snake.Event, snake.State], n uint64, every time.Duration) error {
	if every <= 0 {
		every = time.Millisecond
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if tk.Stats().Frames >= n {
				return errFrameLimit
			}
		}
	}
}

func heartbeat(ctx context.Context, led hal.LED) error {
	t := time.NewTicker(500 * time.Millisecond)
	defer t.Stop()
	on := false
	for {
		select {
		case <-ctx.Done():
			led.Low()
			return ctx.Err()
		case <-t.C:
			on = !on
			if on {
				led.High()
			} else {
				led.Low()
			}
		}
	}
}
