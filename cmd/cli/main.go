package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/dagjobs/internal/app"
	"github.com/vk/dagjobs/internal/cli"
	"github.com/vk/dagjobs/internal/workexec"
)

// main is the entrypoint for the dagjobs application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, mode, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}

	switch mode {
	case cli.ModeExit:
		return nil
	case cli.ModeGenerate:
		return workexec.Generate(outW, nil)
	}

	dagApp, err := app.NewApp(outW, errW, appConfig)
	if err != nil {
		return err
	}
	return dagApp.Run(ctx)
}
