// Package geom holds the integer point, line and rectangle types shared by
// the framebuffer, the drawing helpers and the dirty-region tracker.
package geom

import "fmt"

// Point is a signed 2D coordinate.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Mul(k int) Point   { return Point{X: p.X * k, Y: p.Y * k} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Line is a segment between two inclusive end points.
type Line struct {
	A Point
	B Point
}

// Translate moves both end points by d.
func (l Line) Translate(d Point) Line { return Line{A: l.A.Add(d), B: l.B.Add(d)} }

// Rect is an axis-aligned rectangle. A non-positive size is empty.
type Rect struct {
	Origin Point
	Size   Point
}

// R is shorthand for Rect{Pt(x, y), Pt(w, h)}.
func R(x, y, w, h int) Rect { return Rect{Origin: Pt(x, y), Size: Pt(w, h)} }

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.Size.X <= 0 || r.Size.Y <= 0 }

// Max returns the exclusive bottom-right corner.
func (r Rect) Max() Point { return r.Origin.Add(r.Size) }

// Area is zero for empty rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Size.X * r.Size.Y
}

func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	m := r.Max()
	return p.X >= r.Origin.X && p.X < m.X && p.Y >= r.Origin.Y && p.Y < m.Y
}

func (r Rect) Translate(d Point) Rect { return Rect{Origin: r.Origin.Add(d), Size: r.Size} }

// Intersect returns the overlap of r and o, or the zero Rect if they do not
// overlap.
func (r Rect) Intersect(o Rect) Rect {
	if r.Empty() || o.Empty() {
		return Rect{}
	}
	rm, om := r.Max(), o.Max()
	x0 := max(r.Origin.X, o.Origin.X)
	y0 := max(r.Origin.Y, o.Origin.Y)
	x1 := min(rm.X, om.X)
	y1 := min(rm.Y, om.Y)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%dx%d", r.Origin, r.Size.X, r.Size.Y)
}
