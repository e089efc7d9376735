// Package endian provides the byte order engines used to write TIFF files.
//
// A TIFF file declares its byte order in the first two bytes of the header:
// "II" (Intel) for little-endian and "MM" (Motorola) for big-endian. Every
// multi-byte value that follows, including the magic number 42, uses that
// order.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	hdr := engine.AppendUint16(endian.Marker(engine), 42)
//
// EndianEngine includes AppendByteOrder, so header and IFD bytes are built
// by appending into one buffer without temporary slices.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// ErrInvalidByteOrder is returned for unknown byte order markers and names.
var ErrInvalidByteOrder = errors.New("invalid byte order")

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeLittleEndian() {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine.Uint16([]byte{0x01, 0x00}) == 0x0100
}

// Marker returns the TIFF byte order marker for engine: "II" or "MM".
func Marker(engine EndianEngine) []byte {
	if IsBigEndian(engine) {
		return []byte{'M', 'M'}
	}

	return []byte{'I', 'I'}
}

// FromMarker returns the engine declared by a TIFF byte order marker.
func FromMarker(marker []byte) (EndianEngine, error) {
	switch string(marker) {
	case "II":
		return GetLittleEndianEngine(), nil
	case "MM":
		return GetBigEndianEngine(), nil
	default:
		return nil, fmt.Errorf("%w: marker %q", ErrInvalidByteOrder, marker)
	}
}

// Parse maps "little", "big" or "native" (case-insensitive) to an engine.
func Parse(name string) (EndianEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "little", "le", "ii":
		return GetLittleEndianEngine(), nil
	case "big", "be", "mm":
		return GetBigEndianEngine(), nil
	case "native":
		return GetNativeEngine(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidByteOrder, name)
	}
}
