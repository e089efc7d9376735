// Package cmd implements the faxstrip command tree.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/faxstrip/internal/logging"
)

// Rotation limits for --log-file.
const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
)

// NewRoot returns the faxstrip root command.
func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "faxstrip",
		Short:        "encode bi-level images as strip-compressed TIFF",
		Long:         "faxstrip converts bi-level images to TIFF with CCITT fax, LZW, Deflate, PackBits or Zstd strip compression.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(ctx, cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewEncodeCmd(ctx),
		NewStatsCmd(ctx),
		NewInspectCmd(ctx),
	)

	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-format", "text", "Log format (text|json)")
	pf.String("log-file", "", "Write logs to a size-rotated file instead of stderr")

	return cmd
}

func setupLogging(ctx context.Context, cmd *cobra.Command) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	var json bool
	switch strings.ToLower(logFormat) {
	case "text":
	case "json":
		json = true
	default:
		return fmt.Errorf("unknown log format %q", logFormat)
	}

	w := cmd.ErrOrStderr()
	if logFile != "" {
		w = logging.FileWriter(logFile, logFileMaxSizeMB, logFileMaxBackups)
	}

	level, ok := logging.ParseLevel(logLevel)
	slog.SetDefault(logging.Logger(w, json, level))
	if !ok {
		slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel)
	}

	return nil
}

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(w, subCmd, indent+1)
	}
}

// NewVersionCmd prints the build's git sha.
func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}

	return cmd
}
