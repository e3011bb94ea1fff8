package draw

import (
	"image"
	"image/color"
	stddraw "image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"

	"ssdui/framebuffer"
	"ssdui/geom"
)

// Image lights every pixel of src that is bright and opaque enough,
// placing src's top-left corner at at. Dark pixels leave the plane as it
// is.
func Image(b *framebuffer.Buffer, src image.Image, at geom.Point) {
	sb := src.Bounds()
	dr := image.Rect(at.X, at.Y, at.X+sb.Dx(), at.Y+sb.Dy())
	stddraw.DrawMask(b.Image(), dr, image.NewUniform(image1bit.On), image.Point{},
		thresholdMask{src}, sb.Min, stddraw.Over)
}

// thresholdMask is opaque where the source pixel is at least half
// bright and half opaque, transparent elsewhere.
type thresholdMask struct {
	image.Image
}

func (thresholdMask) ColorModel() color.Model { return color.AlphaModel }

func (m thresholdMask) At(x, y int) color.Color {
	g := color.GrayModel.Convert(m.Image.At(x, y)).(color.Gray)
	_, _, _, a := m.Image.At(x, y).RGBA()
	if g.Y >= 0x80 && a >= 0x8000 {
		return color.Alpha{A: 0xFF}
	}
	return color.Alpha{}
}
