package input

import (
	"context"
	"time"

	"ssdui/ui"
)

// Every triggers Event at a fixed interval while the ticker runs.
type Every[E comparable, S any] struct {
	Interval time.Duration
	Event    E
}

func (e *Every[E, S]) Mount(c *ui.Context[E, S]) error {
	if e.Interval <= 0 {
		return nil
	}
	c.Go(func(ctx context.Context) error {
		t := time.NewTicker(e.Interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				c.Trigger(e.Event)
			}
		}
	})
	return nil
}

func (e *Every[E, S]) Render(*ui.Context[E, S]) {}
