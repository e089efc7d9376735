package pool

import (
	"io"
	"sync"
)

// Default sizes for the shared pools.
//
// Code buffers hold the bit output of a single fax encoder; a strip of a
// letter-size page at 200 dpi rarely codes to more than a few KiB. Strip
// buffers stage a whole encoded strip before it is written to the sink.
const (
	CodeBufferDefaultSize      = 1024 * 4        // 4KiB
	CodeBufferMaxThreshold     = 1024 * 256      // 256KiB
	StripBufferDefaultSize     = 1024 * 64       // 64KiB
	StripBufferMaxThreshold    = 1024 * 1024 * 4 // 4MiB
	growSmallBufferIncrement   = CodeBufferDefaultSize
	growLargeBufferCapacityMin = 4 * CodeBufferDefaultSize
)

// ByteBuffer is an append-only byte slice that can be recycled through a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Clone returns an owned copy of the buffer contents.
//
// Callers use it before handing a pooled buffer back, since the pooled memory
// is reused by the next Get.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, bb.Len())
	copy(out, bb.B)

	return out
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by a fixed increment to limit reallocations, larger ones
// by 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := bb.Cap() - bb.Len()
	if available >= requiredBytes {
		return
	}

	growBy := growSmallBufferIncrement
	if bb.Cap() > growLargeBufferCapacityMin {
		growBy = bb.Cap() / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte to the buffer. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers backed by sync.Pool.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put instead of
// being retained, so one oversized strip does not pin memory forever.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && bb.Cap() > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	codeDefaultPool  = NewByteBufferPool(CodeBufferDefaultSize, CodeBufferMaxThreshold)
	stripDefaultPool = NewByteBufferPool(StripBufferDefaultSize, StripBufferMaxThreshold)
)

// GetCodeBuffer retrieves a ByteBuffer sized for fax bit output.
func GetCodeBuffer() *ByteBuffer {
	return codeDefaultPool.Get()
}

// PutCodeBuffer returns a ByteBuffer to the code buffer pool.
func PutCodeBuffer(bb *ByteBuffer) {
	codeDefaultPool.Put(bb)
}

// GetStripBuffer retrieves a ByteBuffer sized for a whole encoded strip.
func GetStripBuffer() *ByteBuffer {
	return stripDefaultPool.Get()
}

// PutStripBuffer returns a ByteBuffer to the strip buffer pool.
func PutStripBuffer(bb *ByteBuffer) {
	stripDefaultPool.Put(bb)
}
