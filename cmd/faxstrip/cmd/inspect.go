package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/faxstrip/endian"
	"github.com/arloliu/faxstrip/tiff"
)

// maxInlineValues bounds the values printed per field.
const maxInlineValues = 8

// NewInspectCmd lists the fields of a TIFF file's first directory.
func NewInspectCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "list the fields of a TIFF file",
		Long:  "Prints the byte order and every field of the first image file directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputPath(cmd, args)
			if path == "" {
				return fmt.Errorf("input path is required. Use --input flag or provide as argument")
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			dir, err := tiff.ReadDirectory(data)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			printDirectory(cmd.OutOrStdout(), dir)

			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "TIFF file path")

	return cmd
}

func printDirectory(w io.Writer, dir *tiff.Directory) {
	engine := dir.Header.Engine
	fmt.Fprintf(w, "ByteOrder: %s\n", endian.Marker(engine))
	fmt.Fprintf(w, "Fields: %d\n", len(dir.Entries))

	for _, e := range dir.Entries {
		fmt.Fprintf(w, "%5d type=%d count=%d ", e.Tag, e.Type, e.Count)
		switch e.Type {
		case tiff.TypeASCII:
			fmt.Fprintf(w, "%q\n", e.Text())
		case tiff.TypeShort, tiff.TypeLong:
			values := e.Uints(engine)
			if len(values) > maxInlineValues {
				fmt.Fprintf(w, "%v ...\n", values[:maxInlineValues])
			} else {
				fmt.Fprintf(w, "%v\n", values)
			}
		case tiff.TypeRational:
			if len(e.Data) < 8 {
				fmt.Fprintln(w, "?")
				continue
			}
			fmt.Fprintf(w, "%d/%d\n", engine.Uint32(e.Data[0:4]), engine.Uint32(e.Data[4:8]))
		default:
			fmt.Fprintf(w, "% x\n", e.Data)
		}
	}
}
