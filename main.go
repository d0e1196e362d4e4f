// Package main implements the main entry point for a CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/frontend/headless"
	"github.com/retroenv/chip8vm/internal/frontend/terminal"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// frontend is a runner frontend that holds resources.
type frontend interface {
	runner.Frontend
	io.Closer
}

type frontendConstructor func(logger *log.Logger) (frontend, error)

// frontends contains all frontends available in this build, optional
// frontends register themselves in build tag guarded files.
var frontends = map[string]frontendConstructor{
	"headless": func(*log.Logger) (frontend, error) {
		return headless.New(), nil
	},
	"terminal": func(*log.Logger) (frontend, error) {
		return terminal.New(os.Stdout)
	},
}

func main() {
	ctx := app.Context()
	names := slices.Sorted(maps.Keys(frontends))

	opts, err := cli.ParseFlags(os.Args[0], os.Args[1:], names)
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			config.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	config.PrintBanner(logger, opts, version, commit, date)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running program failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	p := pipeline.New(logger)
	if opts.Disasm {
		if err := p.Execute(ctx, opts, nil, os.Stdout); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}
		return nil
	}

	fe, err := frontends[opts.Frontend](logger)
	if err != nil {
		return fmt.Errorf("creating frontend %s: %w", opts.Frontend, err)
	}
	defer func() {
		if err := fe.Close(); err != nil {
			logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	if err := p.Execute(ctx, opts, fe, os.Stdout); err != nil {
		return fmt.Errorf("executing: %w", err)
	}
	return nil
}
