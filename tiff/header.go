package tiff

import (
	"errors"
	"fmt"

	"github.com/arloliu/faxstrip/endian"
)

var (
	// ErrInvalidHeader is returned when data does not start with a TIFF header.
	ErrInvalidHeader = errors.New("tiff: invalid header")
	// ErrInvalidIFD is returned for truncated or malformed directories.
	ErrInvalidIFD = errors.New("tiff: invalid IFD")
)

// Header is the 8-byte image file header.
type Header struct {
	// Engine is the byte order of every multi-byte value in the file.
	Engine endian.EndianEngine // byte offset 0-1, "II" or "MM"
	// IFDOffset is the offset of the first image file directory.
	IFDOffset uint32 // byte offset 4-7
}

// Bytes encodes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, 0, HeaderSize)
	b = append(b, endian.Marker(h.Engine)...)
	b = h.Engine.AppendUint16(b, magic)
	b = h.Engine.AppendUint32(b, h.IFDOffset)

	return b
}

// ParseHeader decodes the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrInvalidHeader, len(data))
	}

	engine, err := endian.FromMarker(data[0:2])
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if v := engine.Uint16(data[2:4]); v != magic {
		return Header{}, fmt.Errorf("%w: magic %d", ErrInvalidHeader, v)
	}

	return Header{Engine: engine, IFDOffset: engine.Uint32(data[4:8])}, nil
}
