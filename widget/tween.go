package widget

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"ssdui/geom"
	"ssdui/ui"
)

// Tween moves a drawing from From to To over Duration with an easing
// curve. The animation advances by wall-clock time between renders, so it
// runs at the same speed whatever the frame rate.
type Tween[E comparable, S any] struct {
	From, To geom.Point
	Duration time.Duration
	Ease     ease.TweenFunc
	Draw     func(c *ui.Context[E, S], at geom.Point)

	// Now defaults to time.Now.
	Now func() time.Time

	x, y *gween.Tween
	last time.Time
	pos  geom.Point
	done bool
}

func (w *Tween[E, S]) init() {
	fn := w.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	if w.Now == nil {
		w.Now = time.Now
	}
	d := float32(w.Duration.Seconds())
	w.x = gween.New(float32(w.From.X), float32(w.To.X), d, fn)
	w.y = gween.New(float32(w.From.Y), float32(w.To.Y), d, fn)
	w.pos = w.From
	w.done = w.Duration <= 0
	if w.done {
		w.pos = w.To
	}
	w.last = time.Time{}
}

// Restart plays the animation again from From.
func (w *Tween[E, S]) Restart() { w.init() }

// Done reports whether the drawing has reached To.
func (w *Tween[E, S]) Done() bool { return w.x != nil && w.done }

// Pos is where the drawing was placed on the last render.
func (w *Tween[E, S]) Pos() geom.Point { return w.pos }

func (w *Tween[E, S]) Render(c *ui.Context[E, S]) {
	if w.x == nil {
		w.init()
	}
	now := w.Now()
	if !w.done && !w.last.IsZero() {
		dt := float32(now.Sub(w.last).Seconds())
		x, xdone := w.x.Update(dt)
		y, ydone := w.y.Update(dt)
		w.pos = geom.Pt(round(x), round(y))
		w.done = xdone && ydone
	}
	w.last = now
	if w.Draw != nil {
		w.Draw(c, w.pos)
	}
}

func round(v float32) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
