package compress

import (
	"io"

	"github.com/arloliu/faxstrip/format"
)

// Uncompressed writes strips unchanged. It is the default algorithm.
type Uncompressed struct{}

var _ Algorithm = Uncompressed{}

func (Uncompressed) sealed() {}

// Method returns format.CompressionNone.
func (Uncompressed) Method() format.CompressionMethod {
	return format.CompressionNone
}

// ForWidth returns a Compressor for a; the row width does not matter.
func (a Uncompressed) ForWidth(int) Compressor {
	return NewCompressor(a)
}

// CompressTo writes data as is.
func (Uncompressed) CompressTo(data []byte, w io.Writer) (int64, error) {
	return writeBlock(w, data, format.CompressionNone)
}
