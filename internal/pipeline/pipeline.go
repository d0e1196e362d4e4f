// Package pipeline orchestrates the workflow stages of running a program.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates loading a program and running or listing it.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute loads the program file and either writes a disassembly listing of
// it to the writer or runs it using the frontend.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, frontend runner.Frontend, writer io.Writer) error {
	system := p.detector.Detect(opts.Input)
	if !detector.Supported(system) {
		return fmt.Errorf("unsupported system '%s'", system)
	}

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if opts.Disasm {
		if err := disasm.List(writer, program); err != nil {
			return fmt.Errorf("listing program: %w", err)
		}
		return nil
	}

	return p.ExecuteProgram(ctx, program, opts, frontend)
}

// ExecuteProgram runs an already loaded program.
// This is useful for testing and programmatic usage where the program is
// already in memory.
func (p *Pipeline) ExecuteProgram(ctx context.Context, program []byte, opts options.Program, frontend runner.Frontend) error {
	var vmOpts []vm.Option
	if opts.Seed != 0 {
		vmOpts = append(vmOpts, vm.WithRandom(rand.New(rand.NewPCG(opts.Seed, opts.Seed))))
	}

	machine, err := vm.New(program, vmOpts...)
	if err != nil {
		return fmt.Errorf("creating virtual machine: %w", err)
	}

	p.printInfo(opts, len(program))

	r := runner.New(p.logger, machine, frontend, runner.Config{
		Speed:           opts.Speed,
		MaxInstructions: opts.MaxInstructions,
		Trace:           opts.Trace,
	})
	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	p.logger.Debug("Program finished", log.Int("instructions", int(r.Executed())))
	return nil
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("frontend", opts.Frontend),
		log.Int("speed", int(opts.Speed)),
	)
}
