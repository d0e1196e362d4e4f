package disasm

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected *chip8.Instruction
	}{
		{0x00E0, chip8.Cls},
		{0x00EE, chip8.Ret},
		{0x1234, chip8.Jp},
		{0x2345, chip8.Call},
		{0x3142, chip8.Se},
		{0x4142, chip8.Sne},
		{0x6142, chip8.Ld},
		{0x7142, chip8.Add},
		{0x8121, chip8.Or},
		{0x8122, chip8.And},
		{0x8123, chip8.Xor},
		{0x8125, chip8.Sub},
		{0x8126, chip8.Shr},
		{0x8127, chip8.Subn},
		{0x812E, chip8.Shl},
		{0xA123, chip8.Ld},
		{0xC1FF, chip8.Rnd},
		{0xD125, chip8.Drw},
		{0xE19E, chip8.Skp},
		{0xE1A1, chip8.Sknp},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.opcode), func(t *testing.T) {
			ins, ok := Decode(tt.opcode)
			assert.True(t, ok)
			assert.Equal(t, tt.expected.Name, ins.Name())
			assert.Equal(t, tt.opcode, ins.Opcode())
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	ins, ok := Decode(0xF1FF)
	assert.False(t, ok)
	assert.Equal(t, "", ins.Name())
	assert.Equal(t, ".word $F1FF", ins.String())
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		opcode   uint16
		name     string
		expected string
	}{
		{0x00E0, chip8.Cls.Name, ""},
		{0x1234, chip8.Jp.Name, "$234"},
		{0xB234, chip8.Jp.Name, "V0, $234"},
		{0x2345, chip8.Call.Name, "$345"},
		{0x3A42, chip8.Se.Name, "VA, $42"},
		{0x5AB0, chip8.Se.Name, "VA, VB"},
		{0x6102, chip8.Ld.Name, "V1, $02"},
		{0x8120, chip8.Ld.Name, "V1, V2"},
		{0xA123, chip8.Ld.Name, "I, $123"},
		{0xF307, chip8.Ld.Name, "V3, DT"},
		{0xF30A, chip8.Ld.Name, "V3, K"},
		{0xF315, chip8.Ld.Name, "DT, V3"},
		{0xF318, chip8.Ld.Name, "ST, V3"},
		{0xF329, chip8.Ld.Name, "F, V3"},
		{0xF333, chip8.Ld.Name, "B, V3"},
		{0xF355, chip8.Ld.Name, "[I], V3"},
		{0xF365, chip8.Ld.Name, "V3, [I]"},
		{0x7105, chip8.Add.Name, "V1, $05"},
		{0x8124, chip8.Add.Name, "V1, V2"},
		{0xF31E, chip8.Add.Name, "I, V3"},
		{0x812E, chip8.Shl.Name, "V1"},
		{0xC10F, chip8.Rnd.Name, "V1, $0F"},
		{0xD125, chip8.Drw.Name, "V1, V2, $5"},
		{0xE49E, chip8.Skp.Name, "V4"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.opcode), func(t *testing.T) {
			ins, ok := Decode(tt.opcode)
			assert.True(t, ok)

			expected := tt.name
			if tt.expected != "" {
				expected += " " + tt.expected
			}
			assert.Equal(t, expected, ins.String())
		})
	}
}

func TestInstructionTarget(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		target   uint16
		hasValue bool
	}{
		{"jump", 0x1234, 0x234, true},
		{"call", 0x2345, 0x345, true},
		{"load index", 0xA456, 0x456, true},
		{"jump with offset", 0xB234, 0, false},
		{"load register", 0x6123, 0, false},
		{"return", 0x00EE, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, _ := Decode(tt.opcode)
			target, ok := ins.Target()
			assert.Equal(t, tt.hasValue, ok)
			assert.Equal(t, tt.target, target)
		})
	}
}

func TestInstructionPredicates(t *testing.T) {
	jump, _ := Decode(0x1200)
	assert.True(t, jump.IsJump())
	assert.False(t, jump.IsCall())

	call, _ := Decode(0x2200)
	assert.True(t, call.IsCall())

	ret, _ := Decode(0x00EE)
	assert.True(t, ret.IsReturn())

	skip, _ := Decode(0x3100)
	assert.True(t, skip.IsSkip())

	load, _ := Decode(0xA200)
	assert.True(t, load.IsDataReference())
	assert.False(t, load.IsSkip())

	var unknown Instruction
	assert.False(t, unknown.IsSkip())
}

func TestList(t *testing.T) {
	program := []byte{
		0x22, 0x06, // call $206
		0xA2, 0x08, // ld I, $208
		0x12, 0x04, // jp $204
		0x00, 0xEE, // ret
		0xF0, 0x90, // sprite data
		0xFF, // trailing byte
	}

	var buf bytes.Buffer
	assert.NoError(t, List(&buf, program))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	expected := []string{
		"  $200  2206  " + chip8.Call.Name + " $206",
		"  $202  A208  " + chip8.Ld.Name + " I, $208",
		"_label_204:",
		"  $204  1204  " + chip8.Jp.Name + " $204",
		"",
		"_func_206:",
		"  $206  00EE  " + chip8.Ret.Name,
		"",
		"_data_208:",
		"  $208  F090  .word $F090",
		"  $20A  FF    .byte $FF",
	}
	assert.Equal(t, expected, lines)
}

func TestListSkippedReturnContinuesBlock(t *testing.T) {
	program := []byte{
		0x30, 0x01, // se V0, $01
		0x00, 0xEE, // ret
		0x12, 0x00, // jp $200
	}

	var buf bytes.Buffer
	assert.NoError(t, List(&buf, program))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	expected := []string{
		"_label_200:",
		"  $200  3001  " + chip8.Se.Name + " V0, $01",
		"  $202  00EE  " + chip8.Ret.Name,
		"  $204  1200  " + chip8.Jp.Name + " $200",
		"",
	}
	assert.Equal(t, expected, lines)
}
