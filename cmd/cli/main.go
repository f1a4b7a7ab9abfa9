package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/recordrt/internal/app"
	"github.com/vk/recordrt/internal/cli"
	"github.com/vk/recordrt/internal/hcl"
)

// main is the entrypoint for the recordrt application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Programmer errors surface as panics; report them as a failed run.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recordrt panicked: %v", r)
		}
	}()

	recordApp := app.NewApp(outW, logW, appConfig, hcl.NewLoader())
	return recordApp.Run(context.Background(), appConfig)
}
