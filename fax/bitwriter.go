package fax

import "github.com/arloliu/faxstrip/internal/pool"

// bitWriter accumulates codes most significant bit first in a 64-bit buffer
// and spills whole words into a pooled byte buffer.
type bitWriter struct {
	bitBuf   uint64 // pending bits, right-aligned
	bitCount int    // number of valid bits in bitBuf
	written  int    // total bits written, used for alignment
	buf      *pool.ByteBuffer
}

func newBitWriter() *bitWriter {
	return &bitWriter{buf: pool.GetCodeBuffer()}
}

// writeBits writes the low numBits bits of value (0 <= numBits <= 64).
func (w *bitWriter) writeBits(value uint64, numBits int) {
	if numBits == 0 {
		return
	}
	if numBits < 64 {
		value &= (1 << numBits) - 1
	}
	w.written += numBits

	available := 64 - w.bitCount
	if numBits <= available {
		w.bitBuf = (w.bitBuf << numBits) | value
		w.bitCount += numBits
		if w.bitCount == 64 {
			w.flushBits()
		}

		return
	}

	// Split across the word boundary: high bits first.
	highBits := numBits - available
	w.bitBuf = (w.bitBuf << available) | (value >> highBits)
	w.bitCount = 64
	w.flushBits()

	w.bitBuf = value & ((1 << highBits) - 1)
	w.bitCount = highBits
}

func (w *bitWriter) writeCode(c code) {
	w.writeBits(uint64(c.value), c.length)
}

// writeRun writes a run of n pixels of the given color as zero or more
// make-up codes followed by exactly one terminating code.
func (w *bitWriter) writeRun(black bool, n int) {
	terminating, makeup := &whiteTerminating, &whiteMakeup
	if black {
		terminating, makeup = &blackTerminating, &blackMakeup
	}

	for n >= maxMakeupRun+64 {
		w.writeCode(makeup[maxMakeupRun/64])
		n -= maxMakeupRun
	}
	if n >= 64 {
		w.writeCode(makeup[n/64])
		n %= 64
	}
	w.writeCode(terminating[n])
}

// alignToByte pads with zero bits up to the next byte boundary.
func (w *bitWriter) alignToByte() {
	if r := w.written % 8; r != 0 {
		w.writeBits(0, 8-r)
	}
}

// alignForEOL pads with zero fill bits so that a following EOL ends on a
// byte boundary.
func (w *bitWriter) alignForEOL() {
	w.writeBits(0, (8-(w.written+eolCode.length)%8)%8)
}

// flushBits moves the pending bits into the byte buffer, left-aligned.
func (w *bitWriter) flushBits() {
	if w.bitCount == 0 {
		return
	}

	numBytes := (w.bitCount + 7) / 8
	aligned := w.bitBuf << (64 - w.bitCount)

	w.buf.Grow(numBytes)
	for i := range numBytes {
		w.buf.B = append(w.buf.B, byte(aligned>>(56-8*i)))
	}

	w.bitBuf = 0
	w.bitCount = 0
}

// finish pads to a byte boundary and returns an owned copy of the output.
// The writer is unusable afterwards.
func (w *bitWriter) finish() []byte {
	w.alignToByte()
	w.flushBits()

	out := w.buf.Clone()
	pool.PutCodeBuffer(w.buf)
	w.buf = nil

	return out
}
