// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine Overview
//
// The machine has 4KB of byte addressable memory, 16 general purpose 8-bit
// registers (V0-VF), a 16-bit index register (I), a program counter, a call
// stack, a delay and a sound timer and a 64x32 monochrome display.
//
// # Memory Layout
//
//   - 0x000-0x1FF: Interpreter area, holds the built-in font at FontStart
//   - ProgramStart-MaxAddress: Program and data area
//
// # Execution Model
//
// The caller owns the VM instance and drives it through three operations:
//
//	machine, err := vm.New(program)
//	updated, err := machine.Step(keys) // execute one instruction
//	machine.TickTimers()               // call at 60Hz
//
// Step never blocks. The key wait instruction (FX0A) rewinds the program
// counter when no key is pressed, so the caller's loop re-executes it while
// keeping timers, input and rendering running.
//
// Runtime failures are returned as errors wrapping one of ErrStackUnderflow,
// ErrInvalidInstruction or ErrInvalidFontDigit. A failing instruction leaves
// the machine state unchanged.
package vm
