package compress

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/faxstrip/format"
)

// ErrUnsupportedMethod is returned when no algorithm is registered for a
// compression method tag.
var ErrUnsupportedMethod = errors.New("unsupported compression method")

// Algorithm compresses one strip of raw pixel bytes.
//
// Each concrete algorithm in this package is a small value type. The zero
// value carries default settings; ForWidth returns a copy bound to a row
// width, ready to encode strips of that geometry. The set of algorithms is
// closed: only types in this package implement Algorithm.
//
// Implementations are not safe for concurrent use of a single CompressTo
// call, but the values themselves are immutable and may be shared.
type Algorithm interface {
	// Method returns the TIFF Compression tag value of the algorithm.
	Method() format.CompressionMethod

	// CompressTo encodes data and writes the result to w in a single Write
	// call. It returns the number of bytes written.
	//
	// data is read-only and is not retained after the call returns. An error
	// is returned only when w fails; in that case the written block, if any,
	// is incomplete and must be discarded.
	CompressTo(data []byte, w io.Writer) (int64, error)

	// ForWidth returns a Compressor for strips whose rows hold samplesPerRow
	// one-bit samples.
	ForWidth(samplesPerRow int) Compressor

	sealed()
}

// Compressor wraps exactly one Algorithm. It is the value passed between the
// strip layout layer and the algorithms.
//
// The zero value is the uncompressed pass-through.
type Compressor struct {
	alg Algorithm
}

// NewCompressor wraps alg. A nil alg yields the uncompressed pass-through.
func NewCompressor(alg Algorithm) Compressor {
	return Compressor{alg: alg}
}

// Algorithm returns the wrapped algorithm.
func (c Compressor) Algorithm() Algorithm {
	if c.alg == nil {
		return Uncompressed{}
	}

	return c.alg
}

// Method returns the compression method tag of the wrapped algorithm.
func (c Compressor) Method() format.CompressionMethod {
	return c.Algorithm().Method()
}

// CompressTo delegates to the wrapped algorithm.
func (c Compressor) CompressTo(data []byte, w io.Writer) (int64, error) {
	return c.Algorithm().CompressTo(data, w)
}

// builtinAlgorithms holds the default configuration of every algorithm.
var builtinAlgorithms = map[format.CompressionMethod]Algorithm{
	format.CompressionNone:     Uncompressed{},
	format.CompressionHuffman:  Huffman{},
	format.CompressionFax3:     Fax3{},
	format.CompressionFax4:     Fax4{},
	format.CompressionLZW:      LZW{},
	format.CompressionDeflate:  Deflate{},
	format.CompressionPackBits: PackBits{},
	format.CompressionZstd:     Zstd{},
}

// Lookup returns the algorithm registered for method with default settings.
func Lookup(method format.CompressionMethod) (Algorithm, error) {
	if alg, ok := builtinAlgorithms[method]; ok {
		return alg, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnsupportedMethod, uint16(method))
}

// ForMethod returns a Compressor for method with default settings, bound to
// rows of samplesPerRow samples.
func ForMethod(method format.CompressionMethod, samplesPerRow int) (Compressor, error) {
	alg, err := Lookup(method)
	if err != nil {
		return Compressor{}, err
	}

	return alg.ForWidth(samplesPerRow), nil
}

// writeBlock writes buf to w in one call and reports the number of bytes
// accepted by w.
func writeBlock(w io.Writer, buf []byte, method format.CompressionMethod) (int64, error) {
	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("write %s strip: %w", method, err)
	}
	if n != len(buf) {
		return int64(n), fmt.Errorf("write %s strip: %w", method, io.ErrShortWrite)
	}

	return int64(n), nil
}

// CompressionStats describes one CompressTo call.
type CompressionStats struct {
	// Method identifies the compression algorithm used.
	Method format.CompressionMethod

	// OriginalSize is the size of the raw strip.
	OriginalSize int64

	// CompressedSize is the size of the encoded block.
	CompressedSize int64

	// CompressionTimeNs is the time spent in CompressTo.
	CompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size.
//
// Values below 1.0 indicate a gain. Returns 0 when the original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage of the original size.
// Incompressible input yields a negative value.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses data with c into w and reports sizes and timing.
func Measure(c Compressor, data []byte, w io.Writer) (CompressionStats, error) {
	start := time.Now()
	n, err := c.CompressTo(data, w)
	stats := CompressionStats{
		Method:            c.Method(),
		OriginalSize:      int64(len(data)),
		CompressedSize:    n,
		CompressionTimeNs: time.Since(start).Nanoseconds(),
	}

	return stats, err
}
