package input

import (
	"context"
	"time"

	"ssdui/logging"
	"ssdui/ui"
)

// Line is a readable digital input. hal.GPIOPin satisfies it.
type Line interface {
	Name() string
	Read() (bool, error)
}

// Binding maps one button's gestures to events. Gestures missing from On
// are ignored.
type Binding[E comparable] struct {
	Line   Line
	Button *Button
	On     map[Gesture]E
}

// Scanner polls its button lines on a fixed interval for as long as the
// context's ticker runs, triggering the bound events.
type Scanner[E comparable, S any] struct {
	Interval time.Duration
	Bindings []Binding[E]

	// Now defaults to time.Now.
	Now func() time.Time

	failed []bool
}

// OnClick is a binding that triggers e on click.
func OnClick[E comparable](line Line, e E) Binding[E] {
	return Binding[E]{Line: line, On: map[Gesture]E{Click: e}}
}

// OnPress is a binding that triggers e as soon as the press is debounced.
func OnPress[E comparable](line Line, e E) Binding[E] {
	return Binding[E]{Line: line, On: map[Gesture]E{Press: e}}
}

func (s *Scanner[E, S]) Mount(c *ui.Context[E, S]) error {
	if s.Interval <= 0 {
		s.Interval = DefaultPollInterval
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	for i := range s.Bindings {
		if s.Bindings[i].Button == nil {
			s.Bindings[i].Button = NewButton()
		}
	}
	s.failed = make([]bool, len(s.Bindings))
	c.Go(func(ctx context.Context) error {
		t := time.NewTicker(s.Interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				s.Poll(c)
			}
		}
	})
	return nil
}

func (s *Scanner[E, S]) Render(*ui.Context[E, S]) {}

// Poll samples every line once. The polling loop calls it; tests may call
// it directly after Mount.
func (s *Scanner[E, S]) Poll(c *ui.Context[E, S]) {
	now := s.Now()
	for i := range s.Bindings {
		b := &s.Bindings[i]
		if b.Line == nil {
			continue
		}
		level, err := b.Line.Read()
		if err != nil {
			if !s.failed[i] {
				s.failed[i] = true
				logging.Logger().Warn("input: read failed", "line", b.Line.Name(), "err", err)
			}
			continue
		}
		s.failed[i] = false
		g := b.Button.Update(level, now)
		if g == None {
			continue
		}
		if e, ok := b.On[g]; ok {
			c.Trigger(e)
		}
	}
}
