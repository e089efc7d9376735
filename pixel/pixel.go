package pixel

import "iter"

// Color is the value of one bi-level sample as seen by a fax encoder.
//
// The zero value is White, the background color of a fax page.
type Color uint8

const (
	White Color = iota // White is the background color.
	Black              // Black is the foreground color.
)

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}

// Unpack expands one byte into 8 samples, most significant bit first.
// A 1 bit is White and a 0 bit is Black.
func Unpack(v byte) [8]Color {
	var out [8]Color
	for i := range out {
		if v&(0x80>>i) == 0 {
			out[i] = Black
		}
	}

	return out
}

// UnpackRow appends the samples of row to dst and truncates the result to
// width samples, discarding the padding bits of the final byte.
//
// A row shorter than BytesPerRow(width) yields fewer than width samples.
func UnpackRow(dst []Color, row []byte, width int) []Color {
	start := len(dst)
	for _, b := range row {
		pels := Unpack(b)
		dst = append(dst, pels[:]...)
	}

	if width >= 0 && len(dst)-start > width {
		dst = dst[:start+width]
	}

	return dst
}

// Invert appends the bitwise complement (255 - b) of every byte in src to dst.
func Invert(dst, src []byte) []byte {
	for _, b := range src {
		dst = append(dst, ^b)
	}

	return dst
}

// BytesPerRow returns ceil(bitsPerRow / 8), the packed stride of one row.
func BytesPerRow(bitsPerRow int) int {
	if bitsPerRow <= 0 {
		return 0
	}

	return (bitsPerRow + 7) / 8
}

// RowCount returns the number of rows Rows yields for a buffer of length n.
func RowCount(n, bitsPerRow int) int {
	if n <= 0 {
		return 0
	}

	stride := BytesPerRow(bitsPerRow)
	if stride == 0 {
		return 1
	}

	return (n + stride - 1) / stride
}

// Rows returns a sequence of consecutive row slices of data.
//
// Every row is BytesPerRow(bitsPerRow) bytes long except possibly the last,
// which holds whatever remains. A non-positive bitsPerRow yields the whole
// buffer as a single row. The sequence can be ranged over any number of
// times; the yielded slices alias data.
func Rows(data []byte, bitsPerRow int) iter.Seq[[]byte] {
	stride := BytesPerRow(bitsPerRow)

	return func(yield func([]byte) bool) {
		if len(data) == 0 {
			return
		}
		if stride == 0 {
			yield(data)
			return
		}

		for off := 0; off < len(data); off += stride {
			end := min(off+stride, len(data))
			if !yield(data[off:end:end]) {
				return
			}
		}
	}
}
