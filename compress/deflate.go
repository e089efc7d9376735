package compress

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/faxstrip/format"
	"github.com/arloliu/faxstrip/internal/pool"
)

// DeflateLevel selects the speed/ratio trade-off of Deflate.
type DeflateLevel uint8

const (
	DeflateBalanced DeflateLevel = iota // DeflateBalanced is zlib's default level.
	DeflateFast                         // DeflateFast favors speed.
	DeflateBest                         // DeflateBest favors compression ratio.
)

func (l DeflateLevel) zlibLevel() int {
	switch l {
	case DeflateFast:
		return zlib.BestSpeed
	case DeflateBest:
		return zlib.BestCompression
	default:
		return zlib.DefaultCompression
	}
}

func (l DeflateLevel) String() string {
	switch l {
	case DeflateFast:
		return "fast"
	case DeflateBest:
		return "best"
	default:
		return "balanced"
	}
}

// zlibWriterPools pools zlib writers per level; Reset rebinds them to a
// new destination without reallocating the compressor state.
var zlibWriterPools [DeflateBest + 1]sync.Pool

// Deflate compresses strips into a zlib stream (TIFF compression 8, Adobe
// Deflate).
type Deflate struct {
	Level DeflateLevel
}

var _ Algorithm = Deflate{}

func (Deflate) sealed() {}

// Method returns format.CompressionDeflate.
func (Deflate) Method() format.CompressionMethod {
	return format.CompressionDeflate
}

// ForWidth returns a Compressor for a; Deflate does not depend on the row width.
func (a Deflate) ForWidth(int) Compressor {
	return NewCompressor(a)
}

// CompressTo compresses data and writes the zlib stream to w.
func (a Deflate) CompressTo(data []byte, w io.Writer) (int64, error) {
	level := a.Level
	if level > DeflateBest {
		level = DeflateBalanced
	}

	buf := pool.GetStripBuffer()
	defer pool.PutStripBuffer(buf)

	zw, err := getZlibWriter(level, buf)
	if err != nil {
		return 0, err
	}
	defer zlibWriterPools[level].Put(zw)

	if _, err := zw.Write(data); err != nil {
		return 0, fmt.Errorf("deflate compression failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("deflate compression failed: %w", err)
	}

	return writeBlock(w, buf.Bytes(), format.CompressionDeflate)
}

func getZlibWriter(level DeflateLevel, dst io.Writer) (*zlib.Writer, error) {
	if zw, ok := zlibWriterPools[level].Get().(*zlib.Writer); ok {
		zw.Reset(dst)
		return zw, nil
	}

	zw, err := zlib.NewWriterLevel(dst, level.zlibLevel())
	if err != nil {
		return nil, fmt.Errorf("create zlib writer (%s): %w", level, err)
	}

	return zw, nil
}
