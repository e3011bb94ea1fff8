// Package widget wraps the draw primitives as ui components.
package widget

import (
	"image"

	"golang.org/x/image/font"
	"tinygo.org/x/tinyfont"

	"ssdui/draw"
	"ssdui/geom"
	"ssdui/ui"
)

// Point lights one pixel.
type Point[E comparable, S any] struct {
	At geom.Point
}

func (w *Point[E, S]) Render(c *ui.Context[E, S]) { draw.Point(c.Buffer(), w.At) }

type Line[E comparable, S any] struct {
	geom.Line
}

func (w *Line[E, S]) Render(c *ui.Context[E, S]) { draw.Line(c.Buffer(), w.Line) }

// Rect is a filled rectangle, or its outline when Outline is set.
type Rect[E comparable, S any] struct {
	geom.Rect
	Outline bool
}

func (w *Rect[E, S]) Render(c *ui.Context[E, S]) {
	if w.Outline {
		draw.Frame(c.Buffer(), w.Rect)
		return
	}
	draw.Rect(c.Buffer(), w.Rect)
}

type Circle[E comparable, S any] struct {
	Center geom.Point
	Radius int
	Fill   bool
}

func (w *Circle[E, S]) Render(c *ui.Context[E, S]) {
	draw.Circle(c.Buffer(), w.Center, w.Radius, w.Fill)
}

// Text draws a tinyfont string whose content is read every frame.
type Text[E comparable, S any] struct {
	At    geom.Point // left end of the baseline
	Font  tinyfont.Fonter
	Value func(c *ui.Context[E, S]) string

	// Centered places At.X at the middle of the string instead.
	Centered bool
}

// StaticText returns a Text that always shows s.
func StaticText[E comparable, S any](at geom.Point, s string) *Text[E, S] {
	return &Text[E, S]{At: at, Value: func(*ui.Context[E, S]) string { return s }}
}

func (w *Text[E, S]) Render(c *ui.Context[E, S]) {
	if w.Value == nil {
		return
	}
	s := w.Value(c)
	at := w.At
	if w.Centered {
		at.X -= draw.TextWidth(w.Font, s) / 2
	}
	draw.Text(c.Buffer(), w.Font, at, s)
}

// Label is Text for x/image font faces.
type Label[E comparable, S any] struct {
	At    geom.Point
	Face  font.Face
	Value func(c *ui.Context[E, S]) string
}

func (w *Label[E, S]) Render(c *ui.Context[E, S]) {
	if w.Value == nil {
		return
	}
	draw.Label(c.Buffer(), w.Face, w.At, w.Value(c))
}

// Image blits Src with its top-left corner at At.
type Image[E comparable, S any] struct {
	At  geom.Point
	Src image.Image
}

func (w *Image[E, S]) Render(c *ui.Context[E, S]) {
	if w.Src != nil {
		draw.Image(c.Buffer(), w.Src, w.At)
	}
}
