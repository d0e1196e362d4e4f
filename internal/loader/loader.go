// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyProgram is returned for program files without content.
var ErrEmptyProgram = errors.New("empty program")

// Loader handles loading program files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new program loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the raw program file at the given path. Files that are larger
// than the program space of the machine are rejected with an error wrapping
// vm.ErrProgramTooLarge without reading the whole file.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadReader(file)
}

// LoadReader reads a raw program from the given reader.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized programs
	data, err := io.ReadAll(io.LimitReader(reader, vm.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyProgram
	case len(data) > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: maximum size is %d bytes", vm.ErrProgramTooLarge, vm.MaxProgramSize)
	}

	l.logger.Debug("Program loaded", log.Int("size", len(data)))
	return data, nil
}
