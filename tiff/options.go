package tiff

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arloliu/faxstrip/compress"
	"github.com/arloliu/faxstrip/endian"
	"github.com/arloliu/faxstrip/internal/options"
)

// Default field values.
const (
	DefaultResolution = 200
	DefaultSoftware   = "faxstrip"
)

// ErrInvalidResolution is returned for a non-positive resolution.
var ErrInvalidResolution = errors.New("tiff: invalid resolution")

type config struct {
	engine       endian.EndianEngine
	alg          compress.Algorithm
	rowsPerStrip int
	dpi          uint32
	uniqueID     uuid.UUID
	software     string
	dedup        bool
	concurrency  int
}

func defaultConfig() config {
	return config{
		engine:   endian.GetLittleEndianEngine(),
		alg:      compress.Uncompressed{},
		dpi:      DefaultResolution,
		software: DefaultSoftware,
	}
}

// Option configures Encode.
type Option = options.Option[*config]

// WithByteOrder sets the byte order of the file. The default is little-endian.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.NoError(func(c *config) {
		if engine != nil {
			c.engine = engine
		}
	})
}

// WithCompression sets the strip compression. The default is
// compress.Uncompressed.
func WithCompression(alg compress.Algorithm) Option {
	return options.NoError(func(c *config) {
		if alg != nil {
			c.alg = alg
		}
	})
}

// WithRowsPerStrip sets the number of rows per strip. Zero keeps the default
// of about 8 KiB of raw pixels per strip.
func WithRowsPerStrip(n int) Option {
	return options.NoError(func(c *config) {
		c.rowsPerStrip = n
	})
}

// WithResolution sets both horizontal and vertical resolution in dots per
// inch.
func WithResolution(dpi int) Option {
	return options.New(func(c *config) error {
		if dpi <= 0 {
			return fmt.Errorf("%w: %d dpi", ErrInvalidResolution, dpi)
		}
		c.dpi = uint32(dpi)

		return nil
	})
}

// WithUniqueID sets the ImageUniqueID field. By default a random UUID is
// generated for every file.
func WithUniqueID(id uuid.UUID) Option {
	return options.NoError(func(c *config) {
		c.uniqueID = id
	})
}

// WithSoftware sets the Software field. An empty name omits the field.
func WithSoftware(name string) Option {
	return options.NoError(func(c *config) {
		c.software = name
	})
}

// WithDedup makes identical strips share one block of strip data.
func WithDedup(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.dedup = enabled
	})
}

// WithConcurrency bounds the number of strips compressed in parallel.
func WithConcurrency(n int) Option {
	return options.NoError(func(c *config) {
		c.concurrency = n
	})
}
