package draw

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"ssdui/framebuffer"
	"ssdui/geom"
)

var on = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// DefaultFont is the small proportional font used for HUD text.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// Text writes s with a tinyfont font. origin is the left end of the
// baseline.
func Text(b *framebuffer.Buffer, f tinyfont.Fonter, origin geom.Point, s string) {
	if f == nil {
		f = DefaultFont
	}
	tinyfont.WriteLine(framebuffer.Displayer{B: b}, f, int16(origin.X), int16(origin.Y), s, on)
}

// TextWidth is the advance width of s in pixels.
func TextWidth(f tinyfont.Fonter, s string) int {
	if f == nil {
		f = DefaultFont
	}
	_, w := tinyfont.LineWidth(f, s)
	return int(w)
}

// LabelFace is the fixed 7x13 face used by Label when none is given.
var LabelFace font.Face = basicfont.Face7x13

// Label writes s with an x/image font face straight into the image view
// of the current plane. origin is the left end of the baseline.
func Label(b *framebuffer.Buffer, face font.Face, origin geom.Point, s string) {
	if face == nil {
		face = LabelFace
	}
	d := font.Drawer{
		Dst:  b.Image(),
		Src:  image.NewUniform(image1bit.On),
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(s)
}

// LabelWidth is the advance width of s in face, in pixels.
func LabelWidth(face font.Face, s string) int {
	if face == nil {
		face = LabelFace
	}
	return font.MeasureString(face, s).Ceil()
}
