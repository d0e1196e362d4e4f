// Package terminal provides a frontend that renders the display as text
// using ANSI escape sequences. It does not support keypad input.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	bell        = "\a"

	pixelOn  = "█"
	pixelOff = " "
)

// Frontend renders to a text terminal.
type Frontend struct {
	writer io.Writer

	previous    vm.Display
	initialized bool // whether previous holds a rendered frame
	beeping     bool
}

// New returns a terminal frontend writing to the given writer and clears
// the terminal.
func New(writer io.Writer) (*Frontend, error) {
	if _, err := io.WriteString(writer, clearScreen+hideCursor); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	return &Frontend{
		writer: writer,
	}, nil
}

// Render draws the display, frames identical to the previous one are
// skipped.
func (f *Frontend) Render(display vm.Display) error {
	if f.initialized && display == f.previous {
		return nil
	}

	var sb strings.Builder
	sb.Grow(len(cursorHome) + vm.DisplayHeight*(vm.DisplayWidth*len(pixelOn)+1))
	sb.WriteString(cursorHome)
	for _, row := range display {
		for _, pixel := range row {
			if pixel {
				sb.WriteString(pixelOn)
			} else {
				sb.WriteString(pixelOff)
			}
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(f.writer, sb.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	f.previous = display
	f.initialized = true
	return nil
}

// Poll returns no pressed keys, the terminal frontend has no keypad input.
func (f *Frontend) Poll() (vm.Keys, bool) {
	return vm.Keys{}, false
}

// SetBeep rings the terminal bell when the tone starts.
func (f *Frontend) SetBeep(on bool) {
	if on && !f.beeping {
		_, _ = io.WriteString(f.writer, bell)
	}
	f.beeping = on
}

// Close restores the cursor.
func (f *Frontend) Close() error {
	if _, err := io.WriteString(f.writer, showCursor); err != nil {
		return fmt.Errorf("restoring cursor: %w", err)
	}
	return nil
}
