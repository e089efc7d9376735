package compress

import (
	"io"

	"github.com/arloliu/faxstrip/fax"
	"github.com/arloliu/faxstrip/format"
)

// Fax4 codes bi-level strips with CCITT T.6 (TIFF compression 4).
//
// Rows are coded directly from their packed form, 1 bit = black, with the
// padding bits at the end of each row skipped.
type Fax4 struct {
	bitsPerRow int
}

var _ Algorithm = Fax4{}

func (Fax4) sealed() {}

// Method returns format.CompressionFax4.
func (Fax4) Method() format.CompressionMethod {
	return format.CompressionFax4
}

// ForWidth returns a Compressor coding rows of samplesPerRow pixels.
func (a Fax4) ForWidth(samplesPerRow int) Compressor {
	a.bitsPerRow = samplesPerRow
	return NewCompressor(a)
}

// CompressTo codes data and writes the coded block.
func (a Fax4) CompressTo(data []byte, w io.Writer) (int64, error) {
	enc := fax.NewPackedEncoder(a.bitsPerRow, data)
	enc.SkipTail = SkipBits(a.bitsPerRow)

	return writeBlock(w, enc.Encode(), format.CompressionFax4)
}

// SkipBits returns the number of padding bits at the end of a packed row of
// bitsPerRow samples. Byte-aligned rows have none.
func SkipBits(bitsPerRow int) int {
	return (8 - bitsPerRow%8) % 8
}
