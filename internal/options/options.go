// Package options contains the program options.
package options

// Default option values.
const (
	DefaultSpeed    = 720
	DefaultFrontend = "terminal"
)

// Program options of the emulator.
type Program struct {
	Input    string // program file to run
	Frontend string // name of the frontend used for display, input and sound

	Speed           uint   // instructions executed per second
	MaxInstructions uint64 // stop after this many instructions, 0 for no limit
	Seed            uint64 // random number seed, 0 for a time based seed

	Disasm bool // print a program listing instead of running it
	Trace  bool // log every executed instruction
	Debug  bool
	Quiet  bool
}
