package raster

import (
	"fmt"
	"io"
)

// EncodePBM writes img as a raw (P4) portable bitmap. Bilevel rows already
// use the P4 layout, so the pixel buffer is written as is.
func EncodePBM(w io.Writer, img *Bilevel) error {
	if _, err := fmt.Fprintf(w, "P4\n%d %d\n", img.Width, img.Height); err != nil {
		return err
	}
	_, err := w.Write(img.Pix[:img.Stride*img.Height])

	return err
}
