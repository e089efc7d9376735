package strip

import (
	"fmt"

	"github.com/arloliu/faxstrip/compress"
	"github.com/arloliu/faxstrip/internal/options"
)

// DefaultStripSize is the target raw size of one strip, as recommended for
// baseline TIFF readers.
const DefaultStripSize = 8 * 1024

type config struct {
	rowsPerStrip int
	alg          compress.Algorithm
	concurrency  int
	dedup        bool
}

// Option configures an Encoder.
type Option = options.Option[*config]

// WithRowsPerStrip sets the number of rows in each strip. The last strip
// may hold fewer. The default fits about DefaultStripSize raw bytes.
func WithRowsPerStrip(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: rows per strip %d", ErrInvalidGeometry, n)
		}
		c.rowsPerStrip = n

		return nil
	})
}

// WithCompression sets the algorithm applied to every strip. The default is
// compress.Uncompressed.
func WithCompression(alg compress.Algorithm) Option {
	return options.NoError(func(c *config) {
		c.alg = alg
	})
}

// WithConcurrency bounds the number of strips compressed in parallel.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return options.NoError(func(c *config) {
		c.concurrency = n
	})
}

// WithDedup makes identical raw strips share one encoded block.
func WithDedup(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.dedup = enabled
	})
}
