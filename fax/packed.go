package fax

import "github.com/arloliu/faxstrip/pixel"

// PackedEncoder T.6-codes a strip of packed rows in one pass.
//
// Rows are BytesPerRow(bitsPerRow) bytes long, most significant bit first,
// and a 1 bit is black. No polarity conversion is applied.
type PackedEncoder struct {
	// SkipTail is the number of padding bits at the end of the last byte of
	// each row. The coded width is stride*8 - SkipTail pixels.
	SkipTail int

	bitsPerRow int
	data       []byte
}

// NewPackedEncoder creates a PackedEncoder over data. data is read, never
// modified or retained after Encode returns.
func NewPackedEncoder(bitsPerRow int, data []byte) *PackedEncoder {
	return &PackedEncoder{bitsPerRow: bitsPerRow, data: data}
}

// Width returns the number of pixels coded per row.
func (e *PackedEncoder) Width() int {
	return max(pixel.BytesPerRow(e.bitsPerRow)*8-e.SkipTail, 0)
}

// Encode codes every row against the row above it, the first against an
// all-white line, appends an EOFB and returns the byte-padded stream.
func (e *PackedEncoder) Encode() []byte {
	w := newBitWriter()
	width := e.Width()

	var ref scanline = whiteLine{}
	for row := range pixel.Rows(e.data, e.bitsPerRow) {
		cur := packedLine(row)
		encode2D(w, cur, ref, width)
		ref = cur
	}

	w.writeCode(eolCode)
	w.writeCode(eolCode)

	return w.finish()
}
