package format

import (
	"errors"
	"fmt"
	"strings"
)

// CompressionMethod is the value stored in the TIFF Compression tag (259).
//
// Each concrete algorithm in the compress package reports exactly one method.
type CompressionMethod uint16

const (
	CompressionNone     CompressionMethod = 1     // CompressionNone represents uncompressed strips.
	CompressionHuffman  CompressionMethod = 2     // CompressionHuffman represents CCITT modified Huffman RLE.
	CompressionFax3     CompressionMethod = 3     // CompressionFax3 represents CCITT T.4 (Group 3) coding.
	CompressionFax4     CompressionMethod = 4     // CompressionFax4 represents CCITT T.6 (Group 4) coding.
	CompressionLZW      CompressionMethod = 5     // CompressionLZW represents TIFF LZW.
	CompressionDeflate  CompressionMethod = 8     // CompressionDeflate represents zlib (Adobe Deflate).
	CompressionPackBits CompressionMethod = 32773 // CompressionPackBits represents Macintosh PackBits.
	CompressionZstd     CompressionMethod = 50000 // CompressionZstd represents Zstandard.
)

// ErrUnknownMethod is returned when a compression method name cannot be parsed.
var ErrUnknownMethod = errors.New("unknown compression method")

// Methods lists every supported compression method in tag order.
var Methods = []CompressionMethod{
	CompressionNone,
	CompressionHuffman,
	CompressionFax3,
	CompressionFax4,
	CompressionLZW,
	CompressionDeflate,
	CompressionPackBits,
	CompressionZstd,
}

func (c CompressionMethod) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionHuffman:
		return "Huffman"
	case CompressionFax3:
		return "Fax3"
	case CompressionFax4:
		return "Fax4"
	case CompressionLZW:
		return "LZW"
	case CompressionDeflate:
		return "Deflate"
	case CompressionPackBits:
		return "PackBits"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is one of the supported methods.
func (c CompressionMethod) IsValid() bool {
	return c.String() != "Unknown"
}

// IsBilevelOnly reports whether the method only applies to 1-bit samples.
func (c CompressionMethod) IsBilevelOnly() bool {
	return c == CompressionHuffman || c == CompressionFax3 || c == CompressionFax4
}

var methodNames = map[string]CompressionMethod{
	"none":     CompressionNone,
	"raw":      CompressionNone,
	"huffman":  CompressionHuffman,
	"rle":      CompressionHuffman,
	"fax3":     CompressionFax3,
	"g3":       CompressionFax3,
	"fax4":     CompressionFax4,
	"g4":       CompressionFax4,
	"lzw":      CompressionLZW,
	"deflate":  CompressionDeflate,
	"zip":      CompressionDeflate,
	"packbits": CompressionPackBits,
	"zstd":     CompressionZstd,
}

// ParseCompressionMethod maps a case-insensitive method name to its tag value.
func ParseCompressionMethod(name string) (CompressionMethod, error) {
	if m, ok := methodNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}
