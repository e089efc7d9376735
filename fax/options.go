package fax

import (
	"errors"
	"fmt"

	"github.com/arloliu/faxstrip/internal/options"
)

// Scheme selects the coding rules applied by an Encoder.
type Scheme uint8

const (
	// SchemeT4 is ITU-T T.4 coding: every line is preceded by an EOL and is
	// coded one-dimensionally, or two-dimensionally when K > 1.
	SchemeT4 Scheme = iota
	// SchemeHuffman is modified Huffman run-length coding as used by TIFF
	// compression 2: one-dimensional lines, byte aligned, no EOL codes.
	SchemeHuffman
	// SchemeT6 is ITU-T T.6 coding: every line is coded two-dimensionally
	// and the stream ends with an EOFB.
	SchemeT6
)

func (s Scheme) String() string {
	switch s {
	case SchemeT4:
		return "T4"
	case SchemeHuffman:
		return "Huffman"
	case SchemeT6:
		return "T6"
	default:
		return "Unknown"
	}
}

// ErrInvalidScheme is returned when an unknown Scheme is configured.
var ErrInvalidScheme = errors.New("fax: invalid coding scheme")

type config struct {
	scheme   Scheme
	k        int
	fillBits bool
	rtc      bool
}

// Option configures an Encoder.
type Option = options.Option[*config]

// WithScheme selects the coding scheme. The default is SchemeT4.
func WithScheme(s Scheme) Option {
	return options.New(func(c *config) error {
		if s > SchemeT6 {
			return fmt.Errorf("%w: %d", ErrInvalidScheme, s)
		}
		c.scheme = s

		return nil
	})
}

// WithK sets the T.4 K parameter: a one-dimensional line is followed by at
// most k-1 two-dimensional lines. Values of 1 or less select pure
// one-dimensional coding, which is the default. Ignored by other schemes.
func WithK(k int) Option {
	return options.NoError(func(c *config) {
		c.k = k
	})
}

// WithFillBits pads with zero bits before each EOL so that the EOL ends on
// a byte boundary. Ignored by schemes other than SchemeT4.
func WithFillBits(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.fillBits = enabled
	})
}

// WithRTC appends the T.4 return-to-control sequence (six EOLs) on Finish.
// TIFF strips do not carry RTC, so it is off by default. Ignored by schemes
// other than SchemeT4.
func WithRTC(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.rtc = enabled
	})
}
