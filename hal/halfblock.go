package hal

import "periph.io/x/devices/v3/ssd1306/image1bit"

// AppendHalfBlocks renders text row `row` of img, which covers pixel rows
// 2*row and 2*row+1, as one rune per column using half block characters.
func AppendHalfBlocks(dst []rune, img *image1bit.VerticalLSB, row int) []rune {
	b := img.Bounds()
	y := b.Min.Y + 2*row
	for x := b.Min.X; x < b.Max.X; x++ {
		top := y < b.Max.Y && img.BitAt(x, y) == image1bit.On
		bottom := y+1 < b.Max.Y && img.BitAt(x, y+1) == image1bit.On
		switch {
		case top && bottom:
			dst = append(dst, '█')
		case top:
			dst = append(dst, '▀')
		case bottom:
			dst = append(dst, '▄')
		default:
			dst = append(dst, ' ')
		}
	}
	return dst
}

// HalfBlockRows is the number of text rows AppendHalfBlocks needs for img.
func HalfBlockRows(img *image1bit.VerticalLSB) int {
	return (img.Bounds().Dy() + 1) / 2
}
