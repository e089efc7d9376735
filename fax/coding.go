package fax

import bitmap "github.com/boljen/go-bitmap"

// scanline reports the color of pixel i of one coded line. Positions
// outside the line are white.
type scanline interface {
	black(i int) bool
}

// packedLine is a row of packed samples, most significant bit first, where
// a 1 bit is black.
type packedLine []byte

func (l packedLine) black(i int) bool {
	if i < 0 || i>>3 >= len(l) {
		return false
	}

	return l[i>>3]&(0x80>>(i&7)) != 0
}

// bitmapLine is a line of unpacked samples, one bitmap bit per pixel, set
// when the pixel is black.
type bitmapLine struct {
	bits  bitmap.Bitmap
	width int
}

func (l bitmapLine) black(i int) bool {
	if i < 0 || i >= l.width {
		return false
	}

	return l.bits.Get(i)
}

// whiteLine is the imaginary all-white reference above the first line.
type whiteLine struct{}

func (whiteLine) black(int) bool { return false }

// findColor returns the first position at or after from whose color matches
// black, or width when there is none.
func findColor(line scanline, from, width int, black bool) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < width; i++ {
		if line.black(i) == black {
			return i
		}
	}

	return width
}

// findB1 returns the first changing element on the reference line to the
// right of a0 whose color is opposite to the current color.
func findB1(ref scanline, a0, width int, black bool) int {
	b1 := findColor(ref, a0+1, width, !black)
	// A run of the opposite color already in progress at a0 is not a
	// changing element; advance to the start of the next one.
	if b1 < width && b1 == a0+1 && a0 >= 0 && ref.black(a0) == !black {
		b1 = findColor(ref, findColor(ref, b1, width, black), width, !black)
	}

	return b1
}

// encode1D writes line as alternating white and black runs starting with a
// (possibly empty) white run.
func encode1D(w *bitWriter, line scanline, width int) {
	black := false
	pos := 0
	for {
		next := findColor(line, pos, width, !black)
		w.writeRun(black, next-pos)
		if next >= width {
			return
		}
		pos = next
		black = !black
	}
}

// encode2D codes cur against ref using pass, vertical and horizontal modes.
func encode2D(w *bitWriter, cur, ref scanline, width int) {
	a0 := -1
	black := false
	for a0 < width {
		a1 := findColor(cur, a0+1, width, !black)
		b1 := findB1(ref, a0, width, black)
		b2 := findColor(ref, b1+1, width, black)

		if b2 < a1 {
			w.writeCode(passCode)
			a0 = b2

			continue
		}

		if d := a1 - b1; d >= -3 && d <= 3 {
			w.writeCode(verticalCodes[d+3])
			a0 = a1
			black = !black

			continue
		}

		a2 := findColor(cur, a1+1, width, black)
		w.writeCode(horizontalCode)
		w.writeRun(black, a1-max(a0, 0))
		w.writeRun(!black, a2-a1)
		a0 = a2
	}
}
