package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckEndianness()

	// Verify the result matches the actual system endianness
	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result, "CheckEndianness() should return BigEndian")
	case 0x02:
		require.Equal(binary.LittleEndian, result, "CheckEndianness() should return LittleEndian")
	default:
		require.Failf("Unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestGetNativeEngine(t *testing.T) {
	native := GetNativeEngine()
	require.Equal(t, IsNativeLittleEndian(), !IsBigEndian(native))
	require.Equal(t, CheckEndianness(), native.(binary.ByteOrder))
}

func TestEngines_Append(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	require.Equal(t, []byte{0x2A, 0x00}, le.AppendUint16(nil, 42))
	require.Equal(t, []byte{0x00, 0x2A}, be.AppendUint16(nil, 42))
	require.Equal(t, []byte{0x08, 0, 0, 0}, le.AppendUint32(nil, 8))
	require.Equal(t, []byte{0, 0, 0, 0x08}, be.AppendUint32(nil, 8))
}

func TestIsBigEndian(t *testing.T) {
	require.False(t, IsBigEndian(GetLittleEndianEngine()))
	require.True(t, IsBigEndian(GetBigEndianEngine()))
}

func TestMarker(t *testing.T) {
	require.Equal(t, []byte("II"), Marker(GetLittleEndianEngine()))
	require.Equal(t, []byte("MM"), Marker(GetBigEndianEngine()))

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		got, err := FromMarker(Marker(engine))
		require.NoError(t, err)
		require.Equal(t, engine, got)
	}

	_, err := FromMarker([]byte("IM"))
	require.ErrorIs(t, err, ErrInvalidByteOrder)

	_, err = FromMarker(nil)
	require.ErrorIs(t, err, ErrInvalidByteOrder)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want EndianEngine
	}{
		{"little", GetLittleEndianEngine()},
		{"LE", GetLittleEndianEngine()},
		{"ii", GetLittleEndianEngine()},
		{"big", GetBigEndianEngine()},
		{" Big ", GetBigEndianEngine()},
		{"MM", GetBigEndianEngine()},
		{"native", GetNativeEngine()},
	}

	for _, tt := range tests {
		got, err := Parse(tt.name)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.want, got, tt.name)
	}

	_, err := Parse("middle")
	require.ErrorIs(t, err, ErrInvalidByteOrder)
}
