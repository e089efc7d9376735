package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/faxstrip/compress"
	"github.com/arloliu/faxstrip/format"
	"github.com/arloliu/faxstrip/internal/raster"
)

// codecFlags holds the per-algorithm tuning flags shared by encode and stats.
type codecFlags struct {
	k            int
	fillBits     bool
	deflateLevel string
	zstdLevel    int
}

func addCodecFlags(cmd *cobra.Command, f *codecFlags) {
	fs := cmd.Flags()
	fs.IntVar(&f.k, "k", 1, "Fax3: every k-th row is coded 1D, the rest 2D (1 = pure 1D)")
	fs.BoolVar(&f.fillBits, "fill-bits", false, "Fax3: byte-align every EOL")
	fs.StringVar(&f.deflateLevel, "deflate-level", "balanced", "Deflate level (fast|balanced|best)")
	fs.IntVar(&f.zstdLevel, "zstd-level", 0, "Zstd level (1-22, 0 = default)")
}

// algorithm returns the algorithm for method tuned by the flags.
func (f codecFlags) algorithm(method format.CompressionMethod) (compress.Algorithm, error) {
	switch method {
	case format.CompressionFax3:
		return compress.Fax3{K: f.k, FillBits: f.fillBits}, nil
	case format.CompressionDeflate:
		level, err := parseDeflateLevel(f.deflateLevel)
		if err != nil {
			return nil, err
		}

		return compress.Deflate{Level: level}, nil
	case format.CompressionZstd:
		return compress.Zstd{Level: f.zstdLevel}, nil
	default:
		return compress.Lookup(method)
	}
}

func parseDeflateLevel(name string) (compress.DeflateLevel, error) {
	for _, l := range []compress.DeflateLevel{compress.DeflateFast, compress.DeflateBalanced, compress.DeflateBest} {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}

	return 0, fmt.Errorf("unknown deflate level %q", name)
}

// readImage loads the raster at path; "-" reads stdin.
func readImage(cmd *cobra.Command, path string) (*raster.Bilevel, error) {
	var in io.Reader
	switch path {
	case "":
		return nil, fmt.Errorf("input path is required. Use --input flag or provide as argument")
	case "-":
		in = cmd.InOrStdin()
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	img, err := raster.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return img, nil
}

// inputPath returns --input, falling back to the first argument.
func inputPath(cmd *cobra.Command, args []string) string {
	path, _ := cmd.Flags().GetString("input")
	if path == "" && len(args) > 0 {
		path = args[0]
	}

	return path
}
