package framebuffer

import "ssdui/geom"

// DirtyRegions returns the runs of bytes where the current plane differs
// from the previous one. Regions are in page (x, page) coordinates with a
// height of exactly one page. Runs are coalesced within a page row only.
func (b *Buffer) DirtyRegions() []geom.Rect {
	return b.AppendDirtyRegions(nil)
}

// AppendDirtyRegions is DirtyRegions appending to dst, so a caller can
// reuse one slice across frames.
func (b *Buffer) AppendDirtyRegions(dst []geom.Rect) []geom.Rect {
	if b.full {
		for page := 0; page < b.pages; page++ {
			dst = append(dst, geom.R(0, page, b.width, 1))
		}
		return dst
	}
	for page := 0; page < b.pages; page++ {
		row := page * b.width
		cur := b.cur[row : row+b.width]
		prev := b.prev[row : row+b.width]
		x := 0
		for x < b.width {
			if cur[x] == prev[x] {
				x++
				continue
			}
			start := x
			for x < b.width && cur[x] != prev[x] {
				x++
			}
			dst = append(dst, geom.R(start, page, x-start, 1))
		}
	}
	return dst
}
