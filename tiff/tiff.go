// Package tiff writes single-page bi-level baseline TIFF files.
//
// The file is laid out as header, image file directory, out-of-line field
// values and strip data, in that order. Strips are compressed before
// anything is written, so every offset is known up front and the sink only
// sees appends.
package tiff

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"

	"github.com/arloliu/faxstrip/compress"
	"github.com/arloliu/faxstrip/endian"
	"github.com/arloliu/faxstrip/internal/options"
	"github.com/arloliu/faxstrip/internal/pool"
	"github.com/arloliu/faxstrip/internal/raster"
	"github.com/arloliu/faxstrip/pixel"
	"github.com/arloliu/faxstrip/strip"
)

var (
	// ErrInvalidImage is returned for a nil or empty raster.
	ErrInvalidImage = errors.New("tiff: invalid image")
	// ErrTooLarge is returned when the file would exceed 4 GiB.
	ErrTooLarge = errors.New("tiff: file exceeds 4 GiB")
)

// Encode writes img to w as a TIFF file and returns the number of bytes
// written.
func Encode(w io.Writer, img *raster.Bilevel, opts ...Option) (int64, error) {
	return EncodeContext(context.Background(), w, img, opts...)
}

// EncodeContext is Encode with a context that cancels strip compression.
func EncodeContext(ctx context.Context, w io.Writer, img *raster.Bilevel, opts ...Option) (int64, error) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return 0, ErrInvalidImage
	}

	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return 0, err
	}
	if cfg.uniqueID == uuid.Nil {
		cfg.uniqueID = uuid.New()
	}

	stripOpts := []strip.Option{
		strip.WithCompression(cfg.alg),
		strip.WithDedup(cfg.dedup),
		strip.WithConcurrency(cfg.concurrency),
	}
	if cfg.rowsPerStrip > 0 {
		stripOpts = append(stripOpts, strip.WithRowsPerStrip(cfg.rowsPerStrip))
	}
	enc, err := strip.NewEncoder(img.Width, img.Height, stripOpts...)
	if err != nil {
		return 0, err
	}

	pix, err := packed(img)
	if err != nil {
		return 0, err
	}
	res, err := enc.Compress(ctx, pix)
	if err != nil {
		return 0, err
	}

	entries := directory(&cfg, img, enc, res, 0)
	dataStart := layoutSize(entries)
	if dataStart+res.Size() > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, dataStart+res.Size())
	}
	entries = directory(&cfg, img, enc, res, uint32(dataStart))

	buf := pool.GetStripBuffer()
	defer pool.PutStripBuffer(buf)
	buf.Grow(int(dataStart))
	buf.B = appendLayout(buf.B, cfg.engine, entries)

	n, err := w.Write(buf.B)
	written := int64(n)
	if err != nil {
		return written, fmt.Errorf("write header: %w", err)
	}
	if n != len(buf.B) {
		return written, fmt.Errorf("write header: %w", io.ErrShortWrite)
	}

	m, err := res.WriteTo(w)
	written += m

	return written, err
}

// packed returns the pixels of img with rows of exactly
// pixel.BytesPerRow(width) bytes.
func packed(img *raster.Bilevel) ([]byte, error) {
	stride := pixel.BytesPerRow(img.Width)
	if img.Stride < stride || len(img.Pix) < img.Stride*img.Height {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d with stride %d",
			strip.ErrShortBuffer, len(img.Pix), img.Width, img.Height, img.Stride)
	}
	if img.Stride == stride {
		return img.Pix[:stride*img.Height], nil
	}

	out := make([]byte, 0, stride*img.Height)
	for y := range img.Height {
		out = append(out, img.Row(y)[:stride]...)
	}

	return out, nil
}

// directory builds the IFD entries in ascending tag order. dataStart is the
// file offset of the first strip byte.
func directory(cfg *config, img *raster.Bilevel, enc *strip.Encoder, res *strip.Result, dataStart uint32) []Entry {
	engine := cfg.engine
	method := enc.Compressor().Method()

	offsets := make([]uint32, len(res.Infos))
	counts := make([]uint32, len(res.Infos))
	for i, info := range res.Infos {
		offsets[i] = dataStart + uint32(info.Offset)
		counts[i] = uint32(info.ByteCount)
	}

	entries := []Entry{
		longEntry(engine, TagNewSubfileType, 0),
		longEntry(engine, TagImageWidth, uint32(img.Width)),
		longEntry(engine, TagImageLength, uint32(img.Height)),
		shortEntry(engine, TagBitsPerSample, 1),
		shortEntry(engine, TagCompression, uint16(method)),
		shortEntry(engine, TagPhotometricInterpretation, photometricWhiteIsZero),
		shortEntry(engine, TagFillOrder, fillOrderMSB2LSB),
		longEntry(engine, TagStripOffsets, offsets...),
		shortEntry(engine, TagSamplesPerPixel, 1),
		longEntry(engine, TagRowsPerStrip, uint32(enc.RowsPerStrip())),
		longEntry(engine, TagStripByteCounts, counts...),
		rationalEntry(engine, TagXResolution, cfg.dpi, 1),
		rationalEntry(engine, TagYResolution, cfg.dpi, 1),
	}

	switch alg := enc.Compressor().Algorithm().(type) {
	case compress.Fax3:
		entries = append(entries, longEntry(engine, TagT4Options, alg.T4Options()))
	case compress.Fax4:
		entries = append(entries, longEntry(engine, TagT6Options, 0))
	}

	entries = append(entries, shortEntry(engine, TagResolutionUnit, resolutionUnitInch))
	if cfg.software != "" {
		entries = append(entries, asciiEntry(TagSoftware, cfg.software))
	}

	return append(entries, asciiEntry(TagImageUniqueID, hex.EncodeToString(cfg.uniqueID[:])))
}

// layoutSize returns the size of header, IFD and out-of-line values.
func layoutSize(entries []Entry) int64 {
	size := int64(HeaderSize + 2 + len(entries)*EntrySize + 4)
	for _, e := range entries {
		if !e.Inline() {
			size += int64(wordAligned(len(e.Data)))
		}
	}

	return size
}

// appendLayout encodes header, IFD and out-of-line values. Out-of-line
// values start on word boundaries right after the IFD.
func appendLayout(b []byte, engine endian.EndianEngine, entries []Entry) []byte {
	b = append(b, Header{Engine: engine, IFDOffset: HeaderSize}.Bytes()...)
	b = engine.AppendUint16(b, uint16(len(entries)))

	offset := uint32(HeaderSize + 2 + len(entries)*EntrySize + 4)
	for _, e := range entries {
		b = e.appendTo(b, engine, offset)
		if !e.Inline() {
			offset += uint32(wordAligned(len(e.Data)))
		}
	}
	b = engine.AppendUint32(b, 0) // no next IFD

	for _, e := range entries {
		if e.Inline() {
			continue
		}
		b = append(b, e.Data...)
		if len(e.Data)%2 != 0 {
			b = append(b, 0)
		}
	}

	return b
}

func wordAligned(n int) int {
	return n + n%2
}
