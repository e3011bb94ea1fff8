package ssd1306

import "ssdui/geom"

// AppendAddressWindow appends the commands that point the controller at r,
// a region in (column, page) coordinates, and reports whether r was
// addressable. It has no state: the same inputs always give the same bytes.
//
// Horizontal and vertical modes get a column range and a page range. Page
// mode has no window, so the pointer is set to the region's first page and
// column and r must be one page tall. Regions outside the controller's
// 128x8 address space, or empty ones, append nothing.
func AppendAddressWindow(dst []byte, mode AddressingMode, r geom.Rect) ([]byte, bool) {
	if r.Empty() {
		return dst, false
	}
	m := r.Max()
	if r.Origin.X < 0 || r.Origin.Y < 0 || m.X > 128 || m.Y > 8 {
		return dst, false
	}
	x0, x1 := uint8(r.Origin.X), uint8(m.X-1)
	p0, p1 := uint8(r.Origin.Y), uint8(m.Y-1)

	switch mode {
	case Horizontal, Vertical:
		dst = append(dst, cmdColumnAddr, x0, x1, cmdPageAddr, p0, p1)
	case Page:
		if p0 != p1 {
			return dst, false
		}
		dst = append(dst, cmdPageStart|p0, cmdLowerColumn|x0&0x0F, cmdUpperColumn|x0>>4)
	default:
		return dst, false
	}
	return dst, true
}
