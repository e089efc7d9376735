package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arloliu/faxstrip/endian"
	"github.com/arloliu/faxstrip/format"
	"github.com/arloliu/faxstrip/internal/logging"
	"github.com/arloliu/faxstrip/tiff"
)

// NewEncodeCmd writes an image as a strip-compressed TIFF.
func NewEncodeCmd(ctx context.Context) *cobra.Command {
	var codec codecFlags
	cmd := &cobra.Command{
		Use:   "encode [input]",
		Short: "encode an image as bi-level TIFF",
		Long:  "Reads a PBM, PNG, GIF, JPEG, BMP or TIFF image, thresholds it to black and white and writes a single-page TIFF.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, method, err := encodeOptions(cmd, codec)
			if err != nil {
				return err
			}

			inPath := inputPath(cmd, args)
			outPath, _ := cmd.Flags().GetString("output")
			ctx := logging.AppendCtx(ctx,
				slog.String("input", inPath),
				slog.String("compression", method.String()),
			)

			return runEncode(ctx, cmd, inPath, outPath, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringP("input", "i", "", "Input image path (- for stdin)")
	fs.StringP("output", "o", "-", "Output TIFF path (- for stdout)")
	fs.StringP("compression", "c", "fax4", "Strip compression (none|huffman|fax3|fax4|lzw|deflate|packbits|zstd)")
	fs.Int("rows-per-strip", 0, "Rows per strip (0 = about 8 KiB per strip)")
	fs.String("byte-order", "little", "Byte order (little|big|native)")
	fs.Int("dpi", tiff.DefaultResolution, "Resolution in dots per inch")
	fs.Bool("dedup", false, "Share one block between identical strips")
	fs.Int("concurrency", 0, "Strips compressed in parallel (0 = GOMAXPROCS)")
	fs.String("software", tiff.DefaultSoftware, "Software tag value")
	fs.String("unique-id", "", "ImageUniqueID as a UUID (default random)")
	addCodecFlags(cmd, &codec)

	return cmd
}

func encodeOptions(cmd *cobra.Command, codec codecFlags) ([]tiff.Option, format.CompressionMethod, error) {
	fs := cmd.Flags()
	name, _ := fs.GetString("compression")
	method, err := format.ParseCompressionMethod(name)
	if err != nil {
		return nil, 0, err
	}
	alg, err := codec.algorithm(method)
	if err != nil {
		return nil, 0, err
	}

	order, _ := fs.GetString("byte-order")
	engine, err := endian.Parse(order)
	if err != nil {
		return nil, 0, err
	}

	rows, _ := fs.GetInt("rows-per-strip")
	dpi, _ := fs.GetInt("dpi")
	dedup, _ := fs.GetBool("dedup")
	concurrency, _ := fs.GetInt("concurrency")
	software, _ := fs.GetString("software")

	opts := []tiff.Option{
		tiff.WithCompression(alg),
		tiff.WithByteOrder(engine),
		tiff.WithRowsPerStrip(rows),
		tiff.WithResolution(dpi),
		tiff.WithDedup(dedup),
		tiff.WithConcurrency(concurrency),
		tiff.WithSoftware(software),
	}

	if s, _ := fs.GetString("unique-id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid unique id: %w", err)
		}
		opts = append(opts, tiff.WithUniqueID(id))
	}

	return opts, method, nil
}

func runEncode(ctx context.Context, cmd *cobra.Command, inPath, outPath string, opts []tiff.Option) error {
	img, err := readImage(cmd, inPath)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "decoded input", "width", img.Width, "height", img.Height)

	var out io.Writer
	var file *os.File
	if outPath == "-" || outPath == "" {
		out = cmd.OutOrStdout()
	} else {
		file, err = os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	bw := bufio.NewWriter(out)
	n, err := tiff.EncodeContext(ctx, bw, img, opts...)
	if err != nil {
		return fmt.Errorf("encode %s: %w", inPath, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if file != nil {
		if err := file.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}

	raw := int64(img.Stride * img.Height)
	slog.InfoContext(ctx, "encoded image",
		"output", outPath,
		"width", img.Width,
		"height", img.Height,
		"raw_bytes", raw,
		"file_bytes", n,
	)

	return nil
}
