// Package framebuffer implements the double-buffered, page-packed
// monochrome frame used by the runtime.
//
// Each plane is width*pages bytes. Bit k of the byte at (x, page) is the
// pixel (x, page*8+k), which is the GDDRAM layout of SSD1306-class
// controllers.
package framebuffer

import (
	"errors"
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"

	"ssdui/geom"
)

// PageSize is the number of pixel rows packed into one byte.
const PageSize = 8

var ErrInvalidSize = errors.New("framebuffer: invalid size")

// Buffer holds the current plane that components draw into and the previous
// plane that mirrors what the display already shows.
type Buffer struct {
	width int
	pages int

	cur  []byte
	prev []byte

	full bool
}

// New allocates both planes. The dimensions never change afterwards.
func New(width, pages int) (*Buffer, error) {
	if width <= 0 || pages <= 0 {
		return nil, ErrInvalidSize
	}
	n := width * pages
	return &Buffer{
		width: width,
		pages: pages,
		cur:   make([]byte, n),
		prev:  make([]byte, n),
	}, nil
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Pages() int  { return b.pages }
func (b *Buffer) Height() int { return b.pages * PageSize }

// Bounds returns the pixel rectangle of the plane.
func (b *Buffer) Bounds() geom.Rect { return geom.R(0, 0, b.width, b.Height()) }

func (b *Buffer) index(x, page int) int {
	if x < 0 || x >= b.width || page < 0 || page >= b.pages {
		return -1
	}
	return page*b.width + x
}

// Set overwrites the byte at (x, page) in the current plane.
func (b *Buffer) Set(x, page int, v byte) {
	if i := b.index(x, page); i >= 0 {
		b.cur[i] = v
	}
}

// Mix ORs mask into the byte at (x, page), so overlapping draws within one
// frame accumulate.
func (b *Buffer) Mix(x, page int, mask byte) {
	if i := b.index(x, page); i >= 0 {
		b.cur[i] |= mask
	}
}

// At reads the current plane.
func (b *Buffer) At(x, page int) byte {
	if i := b.index(x, page); i >= 0 {
		return b.cur[i]
	}
	return 0
}

// Prev reads the previous plane.
func (b *Buffer) Prev(x, page int) byte {
	if i := b.index(x, page); i >= 0 {
		return b.prev[i]
	}
	return 0
}

// SetPixel sets or clears one pixel. Pixels outside the plane are dropped.
func (b *Buffer) SetPixel(x, y int, on bool) {
	if y < 0 {
		return
	}
	i := b.index(x, y/PageSize)
	if i < 0 {
		return
	}
	mask := byte(1) << uint(y%PageSize)
	if on {
		b.cur[i] |= mask
	} else {
		b.cur[i] &^= mask
	}
}

// MixPixel turns one pixel on.
func (b *Buffer) MixPixel(x, y int) {
	if y < 0 {
		return
	}
	b.Mix(x, y/PageSize, byte(1)<<uint(y%PageSize))
}

// Pixel reports whether (x, y) is lit in the current plane.
func (b *Buffer) Pixel(x, y int) bool {
	if y < 0 {
		return false
	}
	return b.At(x, y/PageSize)&(byte(1)<<uint(y%PageSize)) != 0
}

// Swap exchanges the planes. The old current plane becomes the baseline
// for the next diff.
func (b *Buffer) Swap() {
	b.cur, b.prev = b.prev, b.cur
	b.full = false
}

// Clear zeroes the current plane.
func (b *Buffer) Clear() {
	clear(b.cur)
}

// Invalidate makes the next extraction report every page row in full,
// regardless of the previous plane. Swap resets it.
func (b *Buffer) Invalidate() {
	b.full = true
}

// Span returns the current-plane bytes of a single-page region. The slice
// aliases the plane and is only valid until the next Swap.
func (b *Buffer) Span(r geom.Rect) []byte {
	r = r.Intersect(geom.R(0, 0, b.width, b.pages))
	if r.Empty() || r.Size.Y != 1 {
		return nil
	}
	i := r.Origin.Y*b.width + r.Origin.X
	return b.cur[i : i+r.Size.X]
}

// Bytes exposes the current plane in page-major order.
func (b *Buffer) Bytes() []byte { return b.cur }

// Image returns an image view sharing the current plane's memory.
func (b *Buffer) Image() *image1bit.VerticalLSB { return b.view(b.cur) }

// PrevImage returns an image view of the previous plane.
func (b *Buffer) PrevImage() *image1bit.VerticalLSB { return b.view(b.prev) }

func (b *Buffer) view(pix []byte) *image1bit.VerticalLSB {
	return &image1bit.VerticalLSB{
		Pix:    pix,
		Stride: b.width,
		Rect:   image.Rect(0, 0, b.width, b.Height()),
	}
}
