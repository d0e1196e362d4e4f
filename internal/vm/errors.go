package vm

import "errors"

var (
	// ErrProgramTooLarge is returned when a program does not fit into the
	// memory area starting at ProgramStart.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrStackUnderflow is returned when a subroutine return is executed
	// with an empty call stack.
	ErrStackUnderflow = errors.New("return with empty call stack")

	// ErrInvalidInstruction is returned for instruction words that are not
	// part of the instruction set.
	ErrInvalidInstruction = errors.New("invalid instruction")

	// ErrInvalidFontDigit is returned when the font address of a register
	// value without a glyph is requested.
	ErrInvalidFontDigit = errors.New("invalid font digit")
)
