package compress

import (
	"bytes"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff/lzw"
)

func decodeLZW(t *testing.T, coded []byte) []byte {
	t.Helper()

	r := lzw.NewReader(bytes.NewReader(coded), lzw.MSB, 8)
	defer r.Close()

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return out
}

func TestLZW_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	random := make([]byte, 12*1024)
	for i := range random {
		random[i] = byte(rng.UintN(256))
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"single byte", []byte{0x42}},
		{"repeated", bytes.Repeat([]byte{0xAB}, 5000)},
		{"bi-level strip", testStrip(1728, 40)},
		{"random", random},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coded := compressBytes(t, LZW{}.ForWidth(0), tt.data)
			require.Equal(t, tt.data, decodeLZW(t, coded))
		})
	}
}

func TestLZW_StartsWithClearCode(t *testing.T) {
	coded := compressBytes(t, LZW{}.ForWidth(0), []byte{0x00})
	// The 9-bit clear code 256 is 1000 0000 0.
	require.Equal(t, byte(0x80), coded[0])
}

func TestLZW_Compresses(t *testing.T) {
	data := make([]byte, 8192)
	coded := compressBytes(t, LZW{}.ForWidth(0), data)
	require.Less(t, len(coded), len(data)/10)
}
