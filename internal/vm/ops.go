package vm

// 00E0 - clear the display.
func opCls(v *VM, _ instruction, _ Keys) (bool, error) {
	v.display = Display{}
	return true, nil
}

// 00EE - return from subroutine.
func opRet(v *VM, _ instruction, _ Keys) (bool, error) {
	if len(v.stack) == 0 {
		return false, ErrStackUnderflow
	}
	last := len(v.stack) - 1
	v.pc = v.stack[last]
	v.stack = v.stack[:last]
	return false, nil
}

// 1NNN - jump to address NNN.
func opJp(v *VM, ins instruction, _ Keys) (bool, error) {
	v.pc = ins.nnn
	return false, nil
}

// 2NNN - call subroutine at NNN.
func opCall(v *VM, ins instruction, _ Keys) (bool, error) {
	v.stack = append(v.stack, v.pc)
	v.pc = ins.nnn
	return false, nil
}

// 3XNN - skip next instruction if VX equals NN.
func opSeByte(v *VM, ins instruction, _ Keys) (bool, error) {
	v.skipIf(v.registers[ins.x] == ins.nn)
	return false, nil
}

// 4XNN - skip next instruction if VX does not equal NN.
func opSneByte(v *VM, ins instruction, _ Keys) (bool, error) {
	v.skipIf(v.registers[ins.x] != ins.nn)
	return false, nil
}

// 5XY0 - skip next instruction if VX equals VY.
func opSeRegister(v *VM, ins instruction, _ Keys) (bool, error) {
	v.skipIf(v.registers[ins.x] == v.registers[ins.y])
	return false, nil
}

// 9XY0 - skip next instruction if VX does not equal VY.
func opSneRegister(v *VM, ins instruction, _ Keys) (bool, error) {
	v.skipIf(v.registers[ins.x] != v.registers[ins.y])
	return false, nil
}

// 6XNN - set VX to NN.
func opLdByte(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] = ins.nn
	return false, nil
}

// 7XNN - add NN to VX, the carry flag is not changed.
func opAddByte(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] += ins.nn
	return false, nil
}

// 8XY0 - set VX to VY.
func opLdRegister(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] = v.registers[ins.y]
	return false, nil
}

// 8XY1 - set VX to VX OR VY.
func opOr(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] |= v.registers[ins.y]
	return false, nil
}

// 8XY2 - set VX to VX AND VY.
func opAnd(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] &= v.registers[ins.y]
	return false, nil
}

// 8XY3 - set VX to VX XOR VY.
func opXor(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] ^= v.registers[ins.y]
	return false, nil
}

// 8XY4 - add VY to VX, VF is set to the carry.
func opAddRegister(v *VM, ins instruction, _ Keys) (bool, error) {
	sum := uint16(v.registers[ins.x]) + uint16(v.registers[ins.y])
	v.registers[ins.x] = byte(sum)
	v.registers[flagRegister] = byte(sum >> 8)
	return false, nil
}

// 8XY5 - subtract VY from VX, VF is not modified.
func opSub(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] -= v.registers[ins.y]
	return false, nil
}

// 8XY7 - set VX to VY minus VX, VF is not modified.
func opSubn(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] = v.registers[ins.y] - v.registers[ins.x]
	return false, nil
}

// 8XY6 - shift VX right by one, VF is set to the shifted out bit.
func opShr(v *VM, ins instruction, _ Keys) (bool, error) {
	vx := v.registers[ins.x]
	v.registers[ins.x] = vx >> 1
	v.registers[flagRegister] = vx & 0x01
	return false, nil
}

// 8XYE - shift VX left by one, VF is set to the shifted out bit.
func opShl(v *VM, ins instruction, _ Keys) (bool, error) {
	vx := v.registers[ins.x]
	v.registers[ins.x] = vx << 1
	v.registers[flagRegister] = (vx & 0x80) >> 7
	return false, nil
}

// ANNN - set I to NNN.
func opLdIndex(v *VM, ins instruction, _ Keys) (bool, error) {
	v.index = ins.nnn
	return false, nil
}

// BNNN - jump to address NNN plus V0.
func opJpV0(v *VM, ins instruction, _ Keys) (bool, error) {
	v.pc = ins.nnn + uint16(v.registers[0])
	return false, nil
}

// CXNN - set VX to a random byte AND NN.
func opRnd(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] = byte(v.rnd.Uint32()) & ins.nn
	return false, nil
}

// DXYN - draw an 8 pixel wide and N rows tall sprite from memory at I at
// position VX, VY. Pixels are XORed onto the display and clipped at the
// display edges, VF is set to 1 if any pixel was turned off.
func opDrw(v *VM, ins instruction, _ Keys) (bool, error) {
	startX := int(v.registers[ins.x]) % DisplayWidth
	startY := int(v.registers[ins.y]) % DisplayHeight
	var collision byte

	for row := range int(ins.n) {
		y := startY + row
		if y >= DisplayHeight {
			break
		}

		sprite := v.memory[(int(v.index)+row)&MaxAddress]
		for bit := range 8 {
			x := startX + bit
			if x >= DisplayWidth {
				break
			}
			if sprite&(0x80>>bit) == 0 {
				continue
			}

			if v.display[y][x] {
				collision = 1
			}
			v.display[y][x] = !v.display[y][x]
		}
	}

	v.registers[flagRegister] = collision
	return true, nil
}

// EX9E - skip next instruction if the key VX is pressed.
func opSkp(v *VM, ins instruction, keys Keys) (bool, error) {
	v.skipIf(keyPressed(keys, v.registers[ins.x]))
	return false, nil
}

// EXA1 - skip next instruction if the key VX is not pressed.
func opSknp(v *VM, ins instruction, keys Keys) (bool, error) {
	v.skipIf(!keyPressed(keys, v.registers[ins.x]))
	return false, nil
}

// FX07 - set VX to the delay timer.
func opLdFromDelay(v *VM, ins instruction, _ Keys) (bool, error) {
	v.registers[ins.x] = v.delayTimer
	return false, nil
}

// FX0A - wait for a key press and store the key in VX. Without a pressed
// key the program counter is rewound so that the instruction repeats.
func opLdKey(v *VM, ins instruction, keys Keys) (bool, error) {
	for key, pressed := range keys {
		if pressed {
			v.registers[ins.x] = byte(key)
			return false, nil
		}
	}
	v.pc -= instructionSize
	return false, nil
}

// FX15 - set the delay timer to VX.
func opLdDelay(v *VM, ins instruction, _ Keys) (bool, error) {
	v.delayTimer = v.registers[ins.x]
	return false, nil
}

// FX18 - set the sound timer to VX.
func opLdSound(v *VM, ins instruction, _ Keys) (bool, error) {
	v.soundTimer = v.registers[ins.x]
	return false, nil
}

// FX1E - add VX to I, VF is set to 1 if the 16-bit addition overflowed.
func opAddIndex(v *VM, ins instruction, _ Keys) (bool, error) {
	sum := uint32(v.index) + uint32(v.registers[ins.x])
	v.index = uint16(sum)
	v.registers[flagRegister] = boolToByte(sum > 0xFFFF)
	return false, nil
}

// FX29 - set I to the font glyph address of the digit in VX.
func opLdFont(v *VM, ins instruction, _ Keys) (bool, error) {
	digit := v.registers[ins.x]
	if digit > 0xF {
		return false, ErrInvalidFontDigit
	}
	v.index = FontStart + uint16(digit)*fontGlyphSize
	return false, nil
}

// FX33 - store the decimal digits of VX at I, I+1 and I+2.
func opLdBCD(v *VM, ins instruction, _ Keys) (bool, error) {
	vx := v.registers[ins.x]
	v.writeMemory(v.index, vx/100)
	v.writeMemory(v.index+1, vx/10%10)
	v.writeMemory(v.index+2, vx%10)
	return false, nil
}

// FX55 - store V0 to VX in memory starting at I.
func opStoreRegisters(v *VM, ins instruction, _ Keys) (bool, error) {
	for i := range uint16(ins.x) + 1 {
		v.writeMemory(v.index+i, v.registers[i])
	}
	return false, nil
}

// FX65 - load V0 to VX from memory starting at I.
func opLoadRegisters(v *VM, ins instruction, _ Keys) (bool, error) {
	for i := range uint16(ins.x) + 1 {
		v.registers[i] = v.ReadMemory(v.index + i)
	}
	return false, nil
}

func (v *VM) skipIf(condition bool) {
	if condition {
		v.pc += instructionSize
	}
}

func (v *VM) writeMemory(address uint16, value byte) {
	v.memory[address&MaxAddress] = value
}

// keyPressed returns whether the key is pressed, values outside of the
// keypad range are never pressed.
func keyPressed(keys Keys, key byte) bool {
	return int(key) < KeyCount && keys[key]
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
