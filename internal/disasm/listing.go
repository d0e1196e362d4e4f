package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "_func_%03x"
	labelNaming = "_label_%03x"
	dataNaming  = "_data_%03x"
)

// List writes a linear listing of the program to w, assuming that it is
// loaded at vm.ProgramStart. Each line contains the address, the instruction
// word and its assembly notation. Addresses that are referenced by jumps,
// calls or index register loads are preceded by a label line. Jumps and
// returns that end a code block are followed by an empty line.
func List(w io.Writer, program []byte) error {
	labels := collectLabels(program)
	var previousSkip bool

	for offset := 0; offset < len(program); offset += 2 {
		address := uint16(vm.ProgramStart + offset)
		if label, ok := labels[address]; ok {
			if _, err := fmt.Fprintf(w, "%s:\n", label); err != nil {
				return fmt.Errorf("writing label %s: %w", label, err)
			}
		}

		if offset+1 >= len(program) {
			value := program[offset]
			if _, err := fmt.Fprintf(w, "  $%03X  %02X    .byte $%02X\n", address, value, value); err != nil {
				return fmt.Errorf("writing data at address $%03X: %w", address, err)
			}
			break
		}

		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		ins, _ := Decode(opcode)
		if _, err := fmt.Fprintf(w, "  $%03X  %04X  %s\n", address, opcode, ins); err != nil {
			return fmt.Errorf("writing instruction at address $%03X: %w", address, err)
		}

		// a skip can step over the jump or return, the block continues
		if (ins.IsJump() || ins.IsReturn()) && !previousSkip {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing separator at address $%03X: %w", address, err)
			}
		}
		previousSkip = ins.IsSkip()
	}
	return nil
}

// collectLabels returns label names for all addresses that are referenced
// by instructions of the program. Call destinations take precedence over
// jump destinations, which take precedence over data references.
func collectLabels(program []byte) map[uint16]string {
	calls := set.New[uint16]()
	jumps := set.New[uint16]()
	data := set.New[uint16]()

	for offset := 0; offset+1 < len(program); offset += 2 {
		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		ins, ok := Decode(opcode)
		if !ok {
			continue
		}
		target, ok := ins.Target()
		if !ok {
			continue
		}

		switch {
		case ins.IsCall():
			calls.Add(target)
		case ins.IsJump():
			jumps.Add(target)
		default:
			data.Add(target)
		}
	}

	labels := make(map[uint16]string, len(calls)+len(jumps)+len(data))
	for address := range data {
		labels[address] = fmt.Sprintf(dataNaming, address)
	}
	for address := range jumps {
		labels[address] = fmt.Sprintf(labelNaming, address)
	}
	for address := range calls {
		labels[address] = fmt.Sprintf(funcNaming, address)
	}
	return labels
}
