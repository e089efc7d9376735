package compress

import (
	"io"

	"github.com/arloliu/faxstrip/format"
	"github.com/arloliu/faxstrip/internal/pool"
	"github.com/arloliu/faxstrip/pixel"
)

// maxPackBitsRun is the longest literal or replicate run of one header.
const maxPackBitsRun = 128

// PackBits compresses strips with Macintosh PackBits (TIFF compression
// 32773). Each row is packed separately, so no run crosses a row boundary.
type PackBits struct {
	bitsPerRow int
}

var _ Algorithm = PackBits{}

func (PackBits) sealed() {}

// Method returns format.CompressionPackBits.
func (PackBits) Method() format.CompressionMethod {
	return format.CompressionPackBits
}

// ForWidth returns a Compressor packing rows of samplesPerRow one-bit samples.
func (a PackBits) ForWidth(samplesPerRow int) Compressor {
	a.bitsPerRow = samplesPerRow
	return NewCompressor(a)
}

// CompressTo packs data row by row and writes the result to w.
func (a PackBits) CompressTo(data []byte, w io.Writer) (int64, error) {
	buf := pool.GetStripBuffer()
	defer pool.PutStripBuffer(buf)

	for row := range pixel.Rows(data, a.bitsPerRow) {
		packBits(buf, row)
	}

	return writeBlock(w, buf.Bytes(), format.CompressionPackBits)
}

// packBits appends the PackBits encoding of data to buf.
//
// A header n in 0..127 is followed by n+1 literal bytes; a header n in
// -127..-1 is followed by one byte repeated 1-n times.
func packBits(buf *pool.ByteBuffer, data []byte) {
	i := 0
	for i < len(data) {
		runLen := 1
		for i+runLen < len(data) && runLen < maxPackBitsRun && data[i+runLen] == data[i] {
			runLen++
		}

		if runLen > 1 {
			buf.B = append(buf.B, byte(int8(-(runLen - 1))), data[i])
			i += runLen

			continue
		}

		// Literal run: stop before three identical bytes, which pack
		// better as a replicate run.
		litLen := 1
		for i+litLen < len(data) && litLen < maxPackBitsRun {
			if i+litLen+2 < len(data) &&
				data[i+litLen] == data[i+litLen+1] &&
				data[i+litLen] == data[i+litLen+2] {
				break
			}
			litLen++
		}

		buf.B = append(buf.B, byte(litLen-1))
		buf.B = append(buf.B, data[i:i+litLen]...)
		i += litLen
	}
}
