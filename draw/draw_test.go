package draw

import (
	"image"
	"image/color"
	"testing"

	"ssdui/framebuffer"
	"ssdui/geom"
)

func newBuf(t *testing.T) *framebuffer.Buffer {
	t.Helper()
	b, err := framebuffer.New(128, 8)
	if err != nil {
		t.Fatalf("framebuffer.New: %v", err)
	}
	return b
}

func lit(b *framebuffer.Buffer) (n int, box geom.Rect) {
	minX, minY, maxX, maxY := b.Width(), b.Height(), -1, -1
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !b.Pixel(x, y) {
				continue
			}
			n++
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	if n == 0 {
		return 0, geom.Rect{}
	}
	return n, geom.R(minX, minY, maxX-minX+1, maxY-minY+1)
}

func TestLine(t *testing.T) {
	tests := []struct {
		l    geom.Line
		want int
	}{
		{geom.Line{A: geom.Pt(0, 0), B: geom.Pt(9, 0)}, 10},
		{geom.Line{A: geom.Pt(3, 9), B: geom.Pt(3, 0)}, 10},
		{geom.Line{A: geom.Pt(0, 0), B: geom.Pt(7, 7)}, 8},
		{geom.Line{A: geom.Pt(10, 2), B: geom.Pt(0, 7)}, 11},
		{geom.Line{A: geom.Pt(5, 5), B: geom.Pt(5, 5)}, 1},
	}
	for _, tt := range tests {
		b := newBuf(t)
		Line(b, tt.l)
		if n, _ := lit(b); n != tt.want {
			t.Fatalf("Line(%v) lit %d pixels, want %d", tt.l, n, tt.want)
		}
		if !b.Pixel(tt.l.A.X, tt.l.A.Y) || !b.Pixel(tt.l.B.X, tt.l.B.Y) {
			t.Fatalf("Line(%v) missing an end point", tt.l)
		}
	}
}

func TestLineClipsOffscreen(t *testing.T) {
	b := newBuf(t)
	Line(b, geom.Line{A: geom.Pt(-5, 0), B: geom.Pt(4, 0)})
	if n, box := lit(b); n != 5 || box != geom.R(0, 0, 5, 1) {
		t.Fatalf("lit = %d %v, want 5 %v", n, box, geom.R(0, 0, 5, 1))
	}
}

func TestRect(t *testing.T) {
	tests := []struct {
		r    geom.Rect
		want geom.Rect
	}{
		{geom.R(2, 3, 5, 20), geom.R(2, 3, 5, 20)},
		{geom.R(0, 0, 128, 64), geom.R(0, 0, 128, 64)},
		{geom.R(120, 60, 20, 20), geom.R(120, 60, 8, 4)},
		{geom.R(-3, -3, 5, 5), geom.R(0, 0, 2, 2)},
	}
	for _, tt := range tests {
		b := newBuf(t)
		Rect(b, tt.r)
		n, box := lit(b)
		if n != tt.want.Area() || box != tt.want {
			t.Fatalf("Rect(%v) lit %d in %v, want %d in %v", tt.r, n, box, tt.want.Area(), tt.want)
		}
	}

	b := newBuf(t)
	Rect(b, geom.R(4, 4, 0, 10))
	Rect(b, geom.R(4, 4, 10, -1))
	if n, _ := lit(b); n != 0 {
		t.Fatalf("empty rects lit %d pixels", n)
	}
}

func TestFrame(t *testing.T) {
	b := newBuf(t)
	r := geom.R(10, 10, 6, 4)
	Frame(b, r)
	n, box := lit(b)
	if want := 2*6 + 2*4 - 4; n != want || box != r {
		t.Fatalf("Frame(%v) lit %d in %v, want %d in %v", r, n, box, want, r)
	}
	if b.Pixel(12, 12) {
		t.Fatal("Frame filled its inside")
	}
}

func TestCircle(t *testing.T) {
	c := geom.Pt(30, 30)

	b := newBuf(t)
	Circle(b, c, 5, false)
	_, box := lit(b)
	if box != geom.R(25, 25, 11, 11) {
		t.Fatalf("Circle bounds = %v, want %v", box, geom.R(25, 25, 11, 11))
	}
	if b.Pixel(c.X, c.Y) {
		t.Fatal("outline circle lit its centre")
	}
	for _, p := range []geom.Point{{X: 35, Y: 30}, {X: 25, Y: 30}, {X: 30, Y: 35}, {X: 30, Y: 25}} {
		if !b.Pixel(p.X, p.Y) {
			t.Fatalf("Circle missing %v", p)
		}
	}

	b = newBuf(t)
	Circle(b, c, 5, true)
	if !b.Pixel(c.X, c.Y) || !b.Pixel(32, 32) {
		t.Fatal("filled circle has holes")
	}

	b = newBuf(t)
	Circle(b, c, 0, false)
	if n, _ := lit(b); n != 1 {
		t.Fatalf("radius 0 lit %d pixels, want 1", n)
	}
	Circle(b, c, -1, true)
	if n, _ := lit(b); n != 1 {
		t.Fatalf("negative radius lit pixels")
	}
}

func TestLabel(t *testing.T) {
	b := newBuf(t)
	Label(b, nil, geom.Pt(2, 20), "HI")
	n, box := lit(b)
	if n == 0 {
		t.Fatal("Label lit nothing")
	}
	if box.Origin.X < 2 || box.Max().Y > 20+LabelFace.Metrics().Descent.Ceil() || box.Max().X > 2+LabelWidth(nil, "HI") {
		t.Fatalf("Label drawn at %v, outside its line box", box)
	}
	if got := LabelWidth(nil, "HI"); got != 14 {
		t.Fatalf("LabelWidth = %d, want 14", got)
	}
}

func TestText(t *testing.T) {
	b := newBuf(t)
	Text(b, nil, geom.Pt(0, 12), "SCORE 1")
	n, box := lit(b)
	if n == 0 {
		t.Fatal("Text lit nothing")
	}
	if box.Max().Y > 12+4 || box.Max().X > TextWidth(nil, "SCORE 1")+1 {
		t.Fatalf("Text drawn at %v", box)
	}
}

func TestImageThreshold(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 2))
	src.SetGray(0, 0, color.Gray{Y: 0xFF})
	src.SetGray(3, 1, color.Gray{Y: 0x90})
	src.SetGray(1, 0, color.Gray{Y: 0x40})

	b := newBuf(t)
	b.MixPixel(11, 5)
	Image(b, src, geom.Pt(10, 5))
	for _, p := range []geom.Point{{X: 10, Y: 5}, {X: 13, Y: 6}, {X: 11, Y: 5}} {
		if !b.Pixel(p.X, p.Y) {
			t.Fatalf("pixel %v off, want on", p)
		}
	}
	if n, _ := lit(b); n != 3 {
		t.Fatalf("lit %d pixels, want 3 (dark pixels leave the plane alone)", n)
	}
}
