package compress

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/faxstrip/format"
)

// zstdEncoderPools pools zstd encoders per level for reuse. EncodeAll is
// stateless, so a pooled encoder can serve any call.
var zstdEncoderPools sync.Map // zstd.EncoderLevel -> *sync.Pool

func zstdEncoderPool(level zstd.EncoderLevel) *sync.Pool {
	if p, ok := zstdEncoderPools.Load(level); ok {
		return p.(*sync.Pool)
	}

	p, _ := zstdEncoderPools.LoadOrStore(level, &sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderConcurrency(1),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				// This should never happen with valid options
				panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
			}

			return encoder
		},
	})

	return p.(*sync.Pool)
}

// Zstd compresses strips into a single Zstandard frame (TIFF compression
// 50000).
type Zstd struct {
	// Level is a zstd command-line style level (1..22). Zero selects the
	// library default.
	Level int
}

var _ Algorithm = Zstd{}

func (Zstd) sealed() {}

// Method returns format.CompressionZstd.
func (Zstd) Method() format.CompressionMethod {
	return format.CompressionZstd
}

// ForWidth returns a Compressor for a; Zstd does not depend on the row width.
func (a Zstd) ForWidth(int) Compressor {
	return NewCompressor(a)
}

// EncoderLevel returns the encoder speed setting matching a.Level.
func (a Zstd) EncoderLevel() zstd.EncoderLevel {
	if a.Level <= 0 {
		return zstd.SpeedDefault
	}

	return zstd.EncoderLevelFromZstd(a.Level)
}

// CompressTo compresses data and writes the frame to w.
func (a Zstd) CompressTo(data []byte, w io.Writer) (int64, error) {
	p := zstdEncoderPool(a.EncoderLevel())
	encoder, _ := p.Get().(*zstd.Encoder)
	defer p.Put(encoder)

	compressed := encoder.EncodeAll(data, nil)

	return writeBlock(w, compressed, format.CompressionZstd)
}
