package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arloliu/faxstrip/cmd/faxstrip/cmd"
	"github.com/arloliu/faxstrip/internal/logging"
)

var GitSHA = "NA"

func main() {
	// register sigterm for graceful shutdown
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()
	go func() {
		defer cnc() // removes the signal so a second ctrl-c kills the process
		<-ctx.Done()
	}()

	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx,
		slog.Group("faxstrip",
			slog.String("git", GitSHA),
		))

	if err := cmd.NewRoot(ctx, GitSHA).Execute(); err != nil {
		os.Exit(1)
	}
}
