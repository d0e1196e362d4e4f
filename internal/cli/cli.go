// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses the command line arguments, excluding the program name,
// and returns the program options. The frontends parameter lists the
// frontend names that are available in this build.
func ParseFlags(programName string, args []string, frontends []string) (options.Program, error) {
	flags := flag.NewFlagSet(programName, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts, frontends)

	err := flags.Parse(args)
	remaining := flags.Args()
	if err != nil || len(remaining) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(remaining); err != nil {
		return opts, err
	}
	opts.Input = remaining[0]

	if err := normalizeOptions(&opts, frontends); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid usage"
	}
	return e.msg
}

// ShowUsage prints the usage information and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: chip8vm [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(nil)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	if len(args) > 1 {
		if args[1] != "" && args[1][0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", args[1]),
			}
		}
		return &UsageError{msg: "only a single program file can be run"}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program, frontends []string) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !opts.Disasm && !slices.Contains(frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontends, ", "))
	}

	if opts.Speed == 0 {
		return errors.New("speed must be greater than 0")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, frontends []string) {
	flags.StringVar(&opts.Frontend, "frontend", options.DefaultFrontend,
		fmt.Sprintf("frontend for display, input and sound (%s)", strings.Join(frontends, "/")))
	flags.UintVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions executed per second")
	flags.Uint64Var(&opts.MaxInstructions, "max", 0, "stop after executing this many instructions, 0 for no limit")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 for a time based seed")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the program instead of running it")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, enables debug logging")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
