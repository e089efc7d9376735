package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionMethod_String(t *testing.T) {
	tests := []struct {
		name     string
		method   CompressionMethod
		expected string
	}{
		{"none", CompressionNone, "None"},
		{"huffman", CompressionHuffman, "Huffman"},
		{"fax3", CompressionFax3, "Fax3"},
		{"fax4", CompressionFax4, "Fax4"},
		{"lzw", CompressionLZW, "LZW"},
		{"deflate", CompressionDeflate, "Deflate"},
		{"packbits", CompressionPackBits, "PackBits"},
		{"zstd", CompressionZstd, "Zstd"},
		{"unknown", CompressionMethod(7), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.method.String())
		})
	}
}

func TestCompressionMethod_TagValues(t *testing.T) {
	// Values are fixed by the TIFF registry and must never change.
	require.EqualValues(t, 1, CompressionNone)
	require.EqualValues(t, 2, CompressionHuffman)
	require.EqualValues(t, 3, CompressionFax3)
	require.EqualValues(t, 4, CompressionFax4)
	require.EqualValues(t, 5, CompressionLZW)
	require.EqualValues(t, 8, CompressionDeflate)
	require.EqualValues(t, 32773, CompressionPackBits)
	require.EqualValues(t, 50000, CompressionZstd)
}

func TestCompressionMethod_IsValid(t *testing.T) {
	for _, m := range Methods {
		require.True(t, m.IsValid(), m.String())
	}
	require.False(t, CompressionMethod(0).IsValid())
	require.False(t, CompressionMethod(6).IsValid())
}

func TestCompressionMethod_IsBilevelOnly(t *testing.T) {
	bilevel := map[CompressionMethod]bool{
		CompressionHuffman: true,
		CompressionFax3:    true,
		CompressionFax4:    true,
	}
	for _, m := range Methods {
		require.Equal(t, bilevel[m], m.IsBilevelOnly(), m.String())
	}
}

func TestParseCompressionMethod(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		cases := map[string]CompressionMethod{
			"none":      CompressionNone,
			"RLE":       CompressionHuffman,
			"g3":        CompressionFax3,
			" Fax4 ":    CompressionFax4,
			"lzw":       CompressionLZW,
			"zip":       CompressionDeflate,
			"PackBits":  CompressionPackBits,
			"zstd":      CompressionZstd,
			"deflate":   CompressionDeflate,
			"g4":        CompressionFax4,
			"huffman":   CompressionHuffman,
			"raw":       CompressionNone,
			"fax3":      CompressionFax3,
			"ZSTD":      CompressionZstd,
			"packbits ": CompressionPackBits,
		}
		for name, want := range cases {
			got, err := ParseCompressionMethod(name)
			require.NoError(t, err, name)
			require.Equal(t, want, got, name)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseCompressionMethod("jbig2")
		require.ErrorIs(t, err, ErrUnknownMethod)
		require.Contains(t, err.Error(), "jbig2")
	})
}
