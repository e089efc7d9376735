// Package compress provides the strip compression algorithms of a baseline
// TIFF writer.
//
// A strip is a run of consecutive rows of packed pixel data. Each algorithm
// converts one strip into one contiguous block written to an io.Writer.
//
// # Overview
//
// Every algorithm is a small value type implementing Algorithm and reports
// the TIFF Compression tag it produces:
//   - Uncompressed (1): the strip as is. This is the default.
//   - Huffman (2): CCITT modified Huffman run lengths, bi-level only.
//   - Fax3 (3): CCITT T.4, one- or two-dimensional, bi-level only.
//   - Fax4 (4): CCITT T.6, bi-level only.
//   - LZW (5): TIFF LZW with early code-width change.
//   - Deflate (8): zlib stream.
//   - PackBits (32773): per-row PackBits.
//   - Zstd (50000): one Zstandard frame.
//
// # Architecture
//
// The set of algorithms is closed. Compressor wraps exactly one Algorithm and
// is what callers pass around:
//
//	type Algorithm interface {
//	    Method() format.CompressionMethod
//	    CompressTo(data []byte, w io.Writer) (int64, error)
//	    ForWidth(samplesPerRow int) Compressor
//	}
//
// ForWidth binds an algorithm to a row width. The bi-level algorithms and
// PackBits need it to find row boundaries; the others ignore it.
//
// # Bi-level polarity
//
// Strips use the TIFF WhiteIsZero convention: a packed 0 bit is white and a
// 1 bit is black. Huffman and Fax3 invert each row and unpack it with the
// pixel package, which reads 1 as white, before feeding the fax line
// encoder. Fax4 codes the packed rows directly and skips the padding bits at
// the end of each row (see SkipBits).
//
// # Usage
//
//	c, err := compress.ForMethod(format.CompressionFax4, width)
//	if err != nil {
//	    return err
//	}
//	n, err := c.CompressTo(strip, w)
//
// Or with explicit settings:
//
//	c := compress.Fax3{K: 4, FillBits: true}.ForWidth(width)
//
// # Error Handling
//
// The only failure of CompressTo is a failing writer. Errors wrap the
// writer's error, so errors.Is works; a short write reports io.ErrShortWrite.
//
// # Thread Safety
//
// Algorithm values are immutable and may be shared. Each CompressTo call
// uses its own encoder state; pooled zlib and zstd encoders are never shared
// between concurrent calls.
package compress
