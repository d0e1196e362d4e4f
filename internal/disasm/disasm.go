// Package disasm provides CHIP-8 instruction identification and formatting.
// It is used for execution traces and program listings.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is an identified CHIP-8 instruction word.
type Instruction struct {
	opcode uint16
	ins    *chip8.Instruction
}

// Decode identifies the instruction of the given instruction word.
// It returns false if the word is not a known instruction.
func Decode(opcode uint16) (Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return Instruction{opcode: opcode, ins: op.Instruction}, true
		}
	}
	return Instruction{opcode: opcode}, false
}

// Opcode returns the instruction word.
func (i Instruction) Opcode() uint16 {
	return i.opcode
}

// Name returns the instruction name, or an empty string for unknown words.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// String returns the instruction in assembly notation. Unknown instruction
// words are returned as a data word directive.
func (i Instruction) String() string {
	if i.ins == nil {
		return fmt.Sprintf(".word $%04X", i.opcode)
	}
	if params := formatParams(i.ins.Name, i.opcode); params != "" {
		return fmt.Sprintf("%s %s", i.ins.Name, params)
	}
	return i.ins.Name
}

// IsJump returns true if the instruction is an absolute jump.
func (i Instruction) IsJump() bool {
	return i.ins == chip8.Jp && i.opcode&0xF000 == 0x1000
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.ins == chip8.Call
}

// IsReturn returns true if the instruction is a subroutine return.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8.Ret
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.ins.Name)
}

// IsDataReference returns true if the instruction loads an address into
// the index register.
func (i Instruction) IsDataReference() bool {
	return i.ins == chip8.Ld && i.opcode&0xF000 == 0xA000
}

// Target returns the 12-bit address operand of jumps, calls and index
// register loads.
func (i Instruction) Target() (uint16, bool) {
	if i.IsJump() || i.IsCall() || i.IsDataReference() {
		return i.opcode & 0x0FFF, true
	}
	return 0, false
}

// formatParams formats the parameters of an instruction.
func formatParams(name string, opcode uint16) string {
	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return ""
	case chip8.Jp.Name:
		return formatJump(opcode)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.Se.Name, chip8.Sne.Name:
		return formatCompare(opcode)
	case chip8.Ld.Name:
		return formatLoad(opcode)
	case chip8.Add.Name:
		return formatAdd(opcode)
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8.Shr.Name, chip8.Shl.Name, chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0, addr).
func formatJump(opcode uint16) string {
	if opcode&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return fmt.Sprintf("$%03X", opcode&0x0FFF)
}

// formatCompare formats SE and SNE with a byte or register operand.
func formatCompare(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	default:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
}

// formatLoad formats all LD variants.
func formatLoad(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		return formatLoadMisc(x, opcode&0x00FF)
	}
	return ""
}

// formatLoadMisc formats the FX load variants for timers, keys, font,
// decimal conversion and register blocks.
func formatLoadMisc(x uint16, operation uint16) string {
	switch operation {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte / Vx, Vy / I, Vx).
func formatAdd(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
