// Package strip splits a packed bi-level image into TIFF strips and
// compresses them.
//
// Strips are compressed in parallel, each with its own compressor, and are
// emitted in order. Offsets are relative to the first strip byte so that a
// container writer can place the strip data anywhere.
package strip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/faxstrip/compress"
	"github.com/arloliu/faxstrip/format"
	"github.com/arloliu/faxstrip/internal/collision"
	"github.com/arloliu/faxstrip/internal/options"
	"github.com/arloliu/faxstrip/internal/pool"
	"github.com/arloliu/faxstrip/pixel"
)

var (
	// ErrInvalidGeometry is returned for non-positive image or strip sizes.
	ErrInvalidGeometry = errors.New("strip: invalid geometry")
	// ErrShortBuffer is returned when the pixel buffer is smaller than the
	// image it describes.
	ErrShortBuffer = errors.New("strip: pixel buffer too short")
)

// Info describes one encoded strip.
type Info struct {
	Index     int                      // strip number
	FirstRow  int                      // first image row in the strip
	Rows      int                      // rows in the strip
	Offset    int64                    // offset of the encoded block from the first strip byte
	RawBytes  int64                    // size of the raw strip
	ByteCount int64                    // size of the encoded block
	Method    format.CompressionMethod // compression applied
	Digest    uint64                   // xxhash of the raw strip, zero unless dedup is enabled
	Reused    bool                     // block shared with an earlier identical strip
	Elapsed   time.Duration            // time spent compressing; zero when reused
}

// Stats returns the compression statistics of the strip.
func (i Info) Stats() compress.CompressionStats {
	return compress.CompressionStats{
		Method:            i.Method,
		OriginalSize:      i.RawBytes,
		CompressedSize:    i.ByteCount,
		CompressionTimeNs: i.Elapsed.Nanoseconds(),
	}
}

// Encoder splits images of a fixed geometry into strips.
type Encoder struct {
	width  int
	height int
	stride int
	cfg    config
}

// NewEncoder creates an Encoder for images of width x height one-bit
// pixels.
func NewEncoder(width, height int, opts ...Option) (*Encoder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}

	e := &Encoder{
		width:  width,
		height: height,
		stride: pixel.BytesPerRow(width),
	}
	if err := options.Apply(&e.cfg, opts...); err != nil {
		return nil, err
	}

	if e.cfg.rowsPerStrip == 0 {
		e.cfg.rowsPerStrip = max(DefaultStripSize/e.stride, 1)
	}
	e.cfg.rowsPerStrip = min(e.cfg.rowsPerStrip, height)
	if e.cfg.concurrency < 1 {
		e.cfg.concurrency = runtime.GOMAXPROCS(0)
	}

	return e, nil
}

// RowsPerStrip returns the number of rows in every strip but the last.
func (e *Encoder) RowsPerStrip() int {
	return e.cfg.rowsPerStrip
}

// StripCount returns the number of strips in an image.
func (e *Encoder) StripCount() int {
	return (e.height + e.cfg.rowsPerStrip - 1) / e.cfg.rowsPerStrip
}

// Compressor returns the compressor applied to every strip.
func (e *Encoder) Compressor() compress.Compressor {
	if e.cfg.alg == nil {
		return compress.Compressor{}.Algorithm().ForWidth(e.width)
	}

	return e.cfg.alg.ForWidth(e.width)
}

// Result holds the encoded strips of one image.
type Result struct {
	Infos     []Info
	Distinct  int      // strips with their own block
	Collision bool     // two different strips shared a digest during dedup
	blocks    [][]byte // encoded blocks; nil for reused strips
	size      int64
}

// Size returns the number of bytes WriteTo writes.
func (r *Result) Size() int64 {
	return r.size
}

// WriteTo writes the encoded blocks in strip order. Reused strips are not
// written again.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, block := range r.blocks {
		if block == nil {
			continue
		}
		n, err := w.Write(block)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("write strip %d: %w", i, err)
		}
		if n != len(block) {
			return total, fmt.Errorf("write strip %d: %w", i, io.ErrShortWrite)
		}
	}

	return total, nil
}

// Encode compresses data and writes the strips to w in order.
func (e *Encoder) Encode(ctx context.Context, w io.Writer, data []byte) ([]Info, error) {
	res, err := e.Compress(ctx, data)
	if err != nil {
		return nil, err
	}
	if _, err := res.WriteTo(w); err != nil {
		return nil, err
	}

	return res.Infos, nil
}

// Compress compresses every strip of data. At most the configured number of
// strips are compressed at once; errors from all failed strips are
// aggregated. Cancelling ctx stops scheduling further strips.
func (e *Encoder) Compress(ctx context.Context, data []byte) (*Result, error) {
	need := e.stride * e.height
	if len(data) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(data), need)
	}

	count := e.StripCount()
	infos := make([]Info, count)
	raws := make([][]byte, count)
	method := e.Compressor().Method()
	for i := range infos {
		first := i * e.cfg.rowsPerStrip
		rows := min(e.cfg.rowsPerStrip, e.height-first)
		raws[i] = data[first*e.stride : (first+rows)*e.stride]
		infos[i] = Info{
			Index:    i,
			FirstRow: first,
			Rows:     rows,
			RawBytes: int64(len(raws[i])),
			Method:   method,
		}
	}

	// source[i] is the strip whose block strip i uses.
	source := make([]int, count)
	for i := range source {
		source[i] = i
	}
	res := &Result{Infos: infos, Distinct: count}
	if e.cfg.dedup {
		tracker := dedup(infos, raws, source)
		res.Distinct = tracker.Distinct()
		res.Collision = tracker.HasCollision()
	}

	blocks := make([][]byte, count)
	var (
		mu   sync.Mutex
		errs *multierror.Error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.concurrency)
	for i := range infos {
		if source[i] != i {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			block, stats, err := compressStrip(e.Compressor(), raws[i])
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("strip %d: %w", i, err))
				mu.Unlock()

				return nil
			}
			blocks[i] = block
			infos[i].Elapsed = time.Duration(stats.CompressionTimeNs)

			return nil
		})
	}
	waitErr := g.Wait()
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var offset int64
	for i := range infos {
		if src := source[i]; src != i {
			infos[i].Offset = infos[src].Offset
			infos[i].ByteCount = infos[src].ByteCount
			infos[i].Reused = true

			continue
		}
		infos[i].Offset = offset
		infos[i].ByteCount = int64(len(blocks[i]))
		offset += infos[i].ByteCount
	}
	res.blocks = blocks
	res.size = offset

	return res, nil
}

// compressStrip compresses raw through a pooled buffer and returns an owned
// copy of the block.
func compressStrip(c compress.Compressor, raw []byte) ([]byte, compress.CompressionStats, error) {
	buf := pool.GetStripBuffer()
	defer pool.PutStripBuffer(buf)

	stats, err := compress.Measure(c, raw, buf)
	if err != nil {
		return nil, stats, err
	}

	return buf.Clone(), stats, nil
}

// dedup points every strip whose raw bytes equal an earlier strip at that
// strip.
func dedup(infos []Info, raws [][]byte, source []int) *collision.Tracker {
	tracker := collision.NewTracker(len(raws))
	for i, raw := range raws {
		infos[i].Digest, source[i] = tracker.Track(raw)
	}

	return tracker
}
