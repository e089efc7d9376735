package compress

import (
	"fmt"
	"io"

	"github.com/hhrutter/lzw"

	"github.com/arloliu/faxstrip/format"
	"github.com/arloliu/faxstrip/internal/pool"
)

// LZW compresses strips with TIFF LZW: MSB-first codes, 8-bit literals, a
// leading clear code and early code-width change.
type LZW struct{}

var _ Algorithm = LZW{}

func (LZW) sealed() {}

// Method returns format.CompressionLZW.
func (LZW) Method() format.CompressionMethod {
	return format.CompressionLZW
}

// ForWidth returns a Compressor for a; LZW does not depend on the row width.
func (a LZW) ForWidth(int) Compressor {
	return NewCompressor(a)
}

// CompressTo compresses data and writes the result to w.
func (LZW) CompressTo(data []byte, w io.Writer) (int64, error) {
	buf := pool.GetStripBuffer()
	defer pool.PutStripBuffer(buf)

	// The pooled buffer implements io.ByteWriter, so the encoder writes into
	// it without an extra bufio layer.
	lw := lzw.NewWriter(&flushBuffer{buf}, true)
	if _, err := lw.Write(data); err != nil {
		return 0, fmt.Errorf("lzw compression failed: %w", err)
	}
	if err := lw.Close(); err != nil {
		return 0, fmt.Errorf("lzw compression failed: %w", err)
	}

	return writeBlock(w, buf.Bytes(), format.CompressionLZW)
}

// flushBuffer adds a no-op Flush to a pooled buffer.
type flushBuffer struct {
	*pool.ByteBuffer
}

func (flushBuffer) Flush() error { return nil }
