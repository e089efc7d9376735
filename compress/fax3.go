package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/faxstrip/fax"
	"github.com/arloliu/faxstrip/format"
	"github.com/arloliu/faxstrip/pixel"
)

// T4Options bits (TIFF tag 292).
const (
	T4Option2D       uint32 = 1 << 0 // two-dimensional coding used
	T4OptionFillBits uint32 = 1 << 2 // fill bits before each EOL
)

// Huffman codes bi-level strips with CCITT modified Huffman run lengths
// (TIFF compression 2). Every row is one-dimensionally coded and byte
// aligned.
type Huffman struct {
	bitsPerRow int
}

var _ Algorithm = Huffman{}

func (Huffman) sealed() {}

// Method returns format.CompressionHuffman.
func (Huffman) Method() format.CompressionMethod {
	return format.CompressionHuffman
}

// ForWidth returns a Compressor coding rows of samplesPerRow pixels.
func (a Huffman) ForWidth(samplesPerRow int) Compressor {
	a.bitsPerRow = samplesPerRow
	return NewCompressor(a)
}

// CompressTo codes data row by row and writes the coded block.
func (a Huffman) CompressTo(data []byte, w io.Writer) (int64, error) {
	return encodeLines(data, a.bitsPerRow, w, format.CompressionHuffman, fax.WithScheme(fax.SchemeHuffman))
}

// Fax3 codes bi-level strips with CCITT T.4 (TIFF compression 3).
//
// K bounds consecutive two-dimensionally coded rows: every K-th row is
// coded one-dimensionally. K of 1 or less selects pure one-dimensional
// coding, the default.
type Fax3 struct {
	// K is the T.4 K parameter.
	K int
	// FillBits pads before each EOL so that every EOL ends on a byte boundary.
	FillBits bool

	bitsPerRow int
}

var _ Algorithm = Fax3{}

func (Fax3) sealed() {}

// Method returns format.CompressionFax3.
func (Fax3) Method() format.CompressionMethod {
	return format.CompressionFax3
}

// ForWidth returns a Compressor coding rows of samplesPerRow pixels.
func (a Fax3) ForWidth(samplesPerRow int) Compressor {
	a.bitsPerRow = samplesPerRow
	return NewCompressor(a)
}

// T4Options returns the value of the TIFF T4Options tag matching a.
func (a Fax3) T4Options() uint32 {
	var opts uint32
	if a.K > 1 {
		opts |= T4Option2D
	}
	if a.FillBits {
		opts |= T4OptionFillBits
	}

	return opts
}

// CompressTo codes data row by row and writes the coded block.
func (a Fax3) CompressTo(data []byte, w io.Writer) (int64, error) {
	return encodeLines(data, a.bitsPerRow, w, format.CompressionFax3,
		fax.WithScheme(fax.SchemeT4),
		fax.WithK(a.K),
		fax.WithFillBits(a.FillBits),
	)
}

// encodeLines feeds every row of data through a fax line encoder.
//
// Packed rows store 1 as black while the unpacker reads 1 as white, so each
// row is inverted before it is unpacked.
func encodeLines(data []byte, bitsPerRow int, w io.Writer, method format.CompressionMethod, opts ...fax.Option) (int64, error) {
	enc, err := fax.NewEncoder(opts...)
	if err != nil {
		return 0, fmt.Errorf("%s encoder: %w", method, err)
	}

	inverted := make([]byte, 0, pixel.BytesPerRow(bitsPerRow))
	pels := make([]pixel.Color, 0, max(bitsPerRow, 0))
	for row := range pixel.Rows(data, bitsPerRow) {
		inverted = pixel.Invert(inverted[:0], row)
		pels = pixel.UnpackRow(pels[:0], inverted, bitsPerRow)
		enc.EncodeLine(pels, bitsPerRow)
	}

	return writeBlock(w, enc.Finish(), method)
}
