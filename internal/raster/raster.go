// Package raster loads images into packed bi-level rasters.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	// Formats accepted by Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

var (
	// ErrUnsupportedFormat is returned when the input is not a known image format.
	ErrUnsupportedFormat = errors.New("raster: unsupported image format")
	// ErrInvalidSize is returned when an image declares a non-positive size.
	ErrInvalidSize = errors.New("raster: invalid image size")
	// ErrTooLarge is returned when an image declares more than MaxPixels pixels.
	ErrTooLarge = errors.New("raster: image too large")
)

const (
	// threshold is the luminance below which a pixel becomes black.
	threshold = 128
	// MaxPixels bounds the declared width*height accepted by Decode.
	MaxPixels = 1 << 28
)

// Bilevel is a 1-bit image. Rows are packed most significant bit first,
// padded to a byte boundary, and a 1 bit is black.
type Bilevel struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// New returns an all-white raster of the given size.
func New(width, height int) *Bilevel {
	stride := (width + 7) / 8

	return &Bilevel{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, stride*height),
	}
}

// Row returns the packed bytes of row y.
func (b *Bilevel) Row(y int) []byte {
	return b.Pix[y*b.Stride : (y+1)*b.Stride]
}

// At reports whether pixel (x, y) is black. Out-of-range pixels are white.
func (b *Bilevel) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}

	return b.Pix[y*b.Stride+x/8]&(0x80>>(x%8)) != 0
}

// Set colors pixel (x, y) black or white. Out-of-range pixels are ignored.
func (b *Bilevel) Set(x, y int, black bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}

	i := y*b.Stride + x/8
	mask := byte(0x80 >> (x % 8))
	if black {
		b.Pix[i] |= mask
	} else {
		b.Pix[i] &^= mask
	}
}

// Rows returns the first n rows starting at y as one contiguous slice.
func (b *Bilevel) Rows(y, n int) []byte {
	return b.Pix[y*b.Stride : (y+n)*b.Stride]
}

// Decode reads a PBM, or any other format registered with the image
// package, and converts it to a Bilevel raster. The declared size is checked
// before any pixel data is decoded.
func Decode(r io.Reader) (*Bilevel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("raster: read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, wrapDecodeErr(err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, wrapDecodeErr(err)
	}

	return FromImage(img), nil
}

func wrapDecodeErr(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	return fmt.Errorf("raster: decode image: %w", err)
}

// FromImage thresholds img into a Bilevel raster. Pixels darker than
// mid-gray become black; mostly transparent pixels become white.
func FromImage(img image.Image) *Bilevel {
	bounds := img.Bounds()
	out := New(bounds.Dx(), bounds.Dy())

	for y := range out.Height {
		for x := range out.Width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			if _, _, _, a := c.RGBA(); a < 0x8000 {
				continue
			}
			if gray, _ := color.GrayModel.Convert(c).(color.Gray); gray.Y < threshold {
				out.Set(x, y, true)
			}
		}
	}

	return out
}
