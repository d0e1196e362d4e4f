package vm

import (
	"fmt"
	"math/rand/v2"
)

// Memory layout and machine dimension constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, the font is stored at 0x050-0x09F
//	0x200-0xFFF: Program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// MaxAddress is the highest valid memory address, all memory accesses
	// through the program counter or index register wrap at 12 bits.
	MaxAddress = 0xFFF

	// ProgramStart is the memory address where programs are loaded and
	// execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that can be loaded.
	MaxProgramSize = MemorySize - ProgramStart

	// FontStart is the memory address of the first font glyph.
	FontStart = 0x050

	// DisplayWidth is the number of pixel columns of the display.
	DisplayWidth = 64

	// DisplayHeight is the number of pixel rows of the display.
	DisplayHeight = 32

	// KeyCount is the number of keys of the keypad.
	KeyCount = 16

	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16
)

const (
	flagRegister    = 0xF
	instructionSize = 2
)

// Display is the monochrome framebuffer, indexed as [y][x].
type Display [DisplayHeight][DisplayWidth]bool

// Keys is a snapshot of the keypad, true for every pressed key.
type Keys [KeyCount]bool

// Option configures a VM.
type Option func(*VM)

// WithRandom sets the random number source used by the RND instruction.
func WithRandom(rnd *rand.Rand) Option {
	return func(v *VM) {
		v.rnd = rnd
	}
}

// VM holds the complete state of a CHIP-8 machine.
// A VM is not safe for concurrent use, instances share no state.
type VM struct {
	memory    [MemorySize]byte
	display   Display
	registers [RegisterCount]byte
	index     uint16
	pc        uint16
	stack     []uint16

	delayTimer byte
	soundTimer byte

	rnd *rand.Rand
}

// New returns a VM with the given program loaded at ProgramStart.
func New(program []byte, opts ...Option) (*VM, error) {
	v := &VM{}
	for _, opt := range opts {
		opt(v)
	}
	if v.rnd == nil {
		v.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if err := v.Load(program); err != nil {
		return nil, err
	}
	return v, nil
}

// Load resets the machine and loads the given program at ProgramStart.
// If the program is too large the machine state is left unchanged.
func (v *VM) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceeds the maximum of %d bytes",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	v.memory = [MemorySize]byte{}
	copy(v.memory[FontStart:], font[:])
	copy(v.memory[ProgramStart:], program)

	v.display = Display{}
	v.registers = [RegisterCount]byte{}
	v.index = 0
	v.pc = ProgramStart
	v.stack = v.stack[:0]
	v.delayTimer = 0
	v.soundTimer = 0
	return nil
}

// Step fetches, decodes and executes a single instruction using the given
// keypad snapshot. It returns whether the display was modified.
// On error the machine state is unchanged.
func (v *VM) Step(keys Keys) (bool, error) {
	address := v.pc
	ins := decode(v.Opcode())

	execute, ok := handlers[ins.key()]
	if !ok {
		return false, fmt.Errorf("%w: $%04X at address $%03X", ErrInvalidInstruction, ins.opcode, address&MaxAddress)
	}

	v.pc += instructionSize
	updated, err := execute(v, ins, keys)
	if err != nil {
		v.pc = address
		return false, fmt.Errorf("%w: instruction $%04X at address $%03X", err, ins.opcode, address&MaxAddress)
	}
	return updated, nil
}

// TickTimers decrements the delay and sound timers if they are not zero.
// It has to be called at a rate of 60Hz.
func (v *VM) TickTimers() {
	if v.delayTimer > 0 {
		v.delayTimer--
	}
	if v.soundTimer > 0 {
		v.soundTimer--
	}
}

// Display returns a copy of the current framebuffer.
func (v *VM) Display() Display {
	return v.display
}

// SoundActive returns whether the sound timer is nonzero.
func (v *VM) SoundActive() bool {
	return v.soundTimer > 0
}

// Opcode returns the instruction word at the program counter without
// executing it.
func (v *VM) Opcode() uint16 {
	hi := v.memory[v.pc&MaxAddress]
	lo := v.memory[(v.pc+1)&MaxAddress]
	return uint16(hi)<<8 | uint16(lo)
}

// PC returns the program counter.
func (v *VM) PC() uint16 {
	return v.pc
}

// Index returns the index register.
func (v *VM) Index() uint16 {
	return v.index
}

// Registers returns a copy of the general purpose registers.
func (v *VM) Registers() [RegisterCount]byte {
	return v.registers
}

// DelayTimer returns the current delay timer value.
func (v *VM) DelayTimer() byte {
	return v.delayTimer
}

// SoundTimer returns the current sound timer value.
func (v *VM) SoundTimer() byte {
	return v.soundTimer
}

// StackDepth returns the number of return addresses on the call stack.
func (v *VM) StackDepth() int {
	return len(v.stack)
}

// ReadMemory returns the byte at the given address, wrapped to 12 bits.
func (v *VM) ReadMemory(address uint16) byte {
	return v.memory[address&MaxAddress]
}
