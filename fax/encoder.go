package fax

import (
	bitmap "github.com/boljen/go-bitmap"

	"github.com/arloliu/faxstrip/internal/options"
	"github.com/arloliu/faxstrip/pixel"
)

// rtcLength is the number of EOLs in a T.4 return-to-control sequence.
const rtcLength = 6

// Encoder codes scanlines of Color samples into a CCITT bit stream.
//
// The previous line is kept as the reference for two-dimensional coding.
// An Encoder is single-use: after Finish it must be discarded.
type Encoder struct {
	cfg   config
	w     *bitWriter
	cur   bitmap.Bitmap
	ref   bitmap.Bitmap
	size  int // capacity of cur and ref in pixels
	width int // width of the reference line
	lines int
}

// NewEncoder creates an Encoder. The default scheme is SchemeT4 with pure
// one-dimensional coding, no fill bits and no RTC.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{}
	if err := options.Apply(&e.cfg, opts...); err != nil {
		return nil, err
	}
	e.w = newBitWriter()

	return e, nil
}

// Scheme returns the configured coding scheme.
func (e *Encoder) Scheme() Scheme {
	return e.cfg.scheme
}

// Lines returns the number of lines encoded so far.
func (e *Encoder) Lines() int {
	return e.lines
}

// EncodeLine codes one scanline of width pixels. Samples beyond len(pels)
// are white; samples beyond width are ignored.
//
// It panics if called after Finish.
func (e *Encoder) EncodeLine(pels []pixel.Color, width int) {
	if e.w == nil {
		panic("fax: EncodeLine called after Finish")
	}
	width = max(width, 0)
	e.load(pels, width)

	cur := bitmapLine{bits: e.cur, width: width}
	ref := bitmapLine{bits: e.ref, width: e.width}

	switch e.cfg.scheme {
	case SchemeHuffman:
		encode1D(e.w, cur, width)
		e.w.alignToByte()
	case SchemeT6:
		encode2D(e.w, cur, ref, width)
	default:
		twoD := e.cfg.k > 1 && e.lines%e.cfg.k != 0
		e.writeEOL()
		if e.cfg.k > 1 {
			e.writeTag(twoD)
		}
		if twoD {
			encode2D(e.w, cur, ref, width)
		} else {
			encode1D(e.w, cur, width)
		}
	}

	e.cur, e.ref = e.ref, e.cur
	e.width = width
	e.lines++
}

// Finish terminates the stream, pads it to a byte boundary and returns the
// coded bytes. SchemeT6 streams end with an EOFB; SchemeT4 streams end with
// an RTC when enabled.
//
// The returned slice is owned by the caller. A second call returns nil.
func (e *Encoder) Finish() []byte {
	if e.w == nil {
		return nil
	}

	switch e.cfg.scheme {
	case SchemeT6:
		e.w.writeCode(eolCode)
		e.w.writeCode(eolCode)
	case SchemeT4:
		if e.cfg.rtc {
			for range rtcLength {
				e.writeEOL()
				if e.cfg.k > 1 {
					e.writeTag(false)
				}
			}
		}
	}

	out := e.w.finish()
	e.w = nil

	return out
}

func (e *Encoder) writeEOL() {
	if e.cfg.fillBits {
		e.w.alignForEOL()
	}
	e.w.writeCode(eolCode)
}

// writeTag writes the bit following a T.4 EOL: 1 when the next line is
// coded one-dimensionally, 0 when two-dimensionally.
func (e *Encoder) writeTag(twoD bool) {
	if twoD {
		e.w.writeBits(0, 1)
	} else {
		e.w.writeBits(1, 1)
	}
}

// load stores the first width samples of pels in the coding line, growing
// both line buffers when the line is wider than any seen so far.
func (e *Encoder) load(pels []pixel.Color, width int) {
	if width > e.size {
		ref := bitmap.New(width)
		for i := range e.width {
			ref.Set(i, e.ref.Get(i))
		}
		e.ref = ref
		e.cur = bitmap.New(width)
		e.size = width
	}

	for i := range width {
		e.cur.Set(i, i < len(pels) && pels[i] == pixel.Black)
	}
}
