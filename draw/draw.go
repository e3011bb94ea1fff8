// Package draw rasterises primitives into a framebuffer. Every primitive
// ORs pixels into the current plane, so overlapping draws in one frame
// accumulate. Pixels outside the plane are dropped.
package draw

import (
	"ssdui/framebuffer"
	"ssdui/geom"
)

// Point lights one pixel.
func Point(b *framebuffer.Buffer, p geom.Point) {
	b.MixPixel(p.X, p.Y)
}

// Line draws l with Bresenham's algorithm, both end points included.
func Line(b *framebuffer.Buffer, l geom.Line) {
	x0, y0, x1, y1 := l.A.X, l.A.Y, l.B.X, l.B.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		b.MixPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect fills r. A rectangle with no area draws nothing.
func Rect(b *framebuffer.Buffer, r geom.Rect) {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return
	}
	end := r.Max()
	for x := r.Origin.X; x < end.X; x++ {
		y := r.Origin.Y
		// Whole bytes where the column crosses full pages.
		for y < end.Y {
			if y%framebuffer.PageSize == 0 && y+framebuffer.PageSize <= end.Y {
				b.Mix(x, y/framebuffer.PageSize, 0xFF)
				y += framebuffer.PageSize
				continue
			}
			b.MixPixel(x, y)
			y++
		}
	}
}

// Frame outlines r one pixel wide, inside its bounds.
func Frame(b *framebuffer.Buffer, r geom.Rect) {
	if r.Empty() {
		return
	}
	end := r.Max()
	x0, y0, x1, y1 := r.Origin.X, r.Origin.Y, end.X-1, end.Y-1
	for x := x0; x <= x1; x++ {
		b.MixPixel(x, y0)
		b.MixPixel(x, y1)
	}
	for y := y0; y <= y1; y++ {
		b.MixPixel(x0, y)
		b.MixPixel(x1, y)
	}
}

// Circle draws a circle of radius r around c with the midpoint algorithm,
// filled when fill is set. A negative radius draws nothing.
func Circle(b *framebuffer.Buffer, c geom.Point, r int, fill bool) {
	if r < 0 {
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		if fill {
			hline(b, c.X-x, c.X+x, c.Y+y)
			hline(b, c.X-x, c.X+x, c.Y-y)
			hline(b, c.X-y, c.X+y, c.Y+x)
			hline(b, c.X-y, c.X+y, c.Y-x)
		} else {
			b.MixPixel(c.X+x, c.Y+y)
			b.MixPixel(c.X-x, c.Y+y)
			b.MixPixel(c.X+x, c.Y-y)
			b.MixPixel(c.X-x, c.Y-y)
			b.MixPixel(c.X+y, c.Y+x)
			b.MixPixel(c.X-y, c.Y+x)
			b.MixPixel(c.X+y, c.Y-x)
			b.MixPixel(c.X-y, c.Y-x)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func hline(b *framebuffer.Buffer, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		b.MixPixel(x, y)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
