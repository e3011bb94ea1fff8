package framebuffer

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Displayer lets TinyGo drawing code (tinyfont and friends) write into the
// current plane. Any non-black colour lights the pixel; black clears it.
type Displayer struct {
	B *Buffer
}

var _ drivers.Displayer = Displayer{}

func (d Displayer) Size() (x, y int16) {
	if d.B == nil {
		return 0, 0
	}
	return int16(d.B.Width()), int16(d.B.Height())
}

func (d Displayer) SetPixel(x, y int16, c color.RGBA) {
	if d.B == nil {
		return
	}
	d.B.SetPixel(int(x), int(y), c.R|c.G|c.B != 0)
}

// Display is a no-op; the ticker flushes the plane.
func (d Displayer) Display() error { return nil }
