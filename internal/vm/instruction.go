package vm

// instruction is a decoded instruction word.
type instruction struct {
	opcode uint16
	family uint8  // leading nibble
	x      uint8  // second nibble, register index
	y      uint8  // third nibble, register index
	n      uint8  // fourth nibble
	nn     uint8  // low byte
	nnn    uint16 // low 12 bits
}

func decode(opcode uint16) instruction {
	return instruction{
		opcode: opcode,
		family: uint8(opcode >> 12),
		x:      uint8(opcode>>8) & 0x0F,
		y:      uint8(opcode>>4) & 0x0F,
		n:      uint8(opcode) & 0x0F,
		nn:     uint8(opcode),
		nnn:    opcode & 0x0FFF,
	}
}

// handlerKey identifies a handler by the instruction family and the part of
// the instruction that selects the operation within the family.
type handlerKey struct {
	family   uint8
	selector uint16
}

func (i instruction) key() handlerKey {
	var selector uint16
	switch i.family {
	case 0x0:
		selector = i.nnn
	case 0x5, 0x8, 0x9:
		selector = uint16(i.n)
	case 0xE, 0xF:
		selector = uint16(i.nn)
	}
	return handlerKey{family: i.family, selector: selector}
}

// handler executes a decoded instruction after the program counter was
// advanced. It returns whether the display was modified. A handler must not
// modify any state before all its error checks passed.
type handler func(v *VM, ins instruction, keys Keys) (bool, error)

var handlers = map[handlerKey]handler{
	{0x0, 0x0E0}: opCls,
	{0x0, 0x0EE}: opRet,
	{0x1, 0}:     opJp,
	{0x2, 0}:     opCall,
	{0x3, 0}:     opSeByte,
	{0x4, 0}:     opSneByte,
	{0x5, 0x0}:   opSeRegister,
	{0x6, 0}:     opLdByte,
	{0x7, 0}:     opAddByte,
	{0x8, 0x0}:   opLdRegister,
	{0x8, 0x1}:   opOr,
	{0x8, 0x2}:   opAnd,
	{0x8, 0x3}:   opXor,
	{0x8, 0x4}:   opAddRegister,
	{0x8, 0x5}:   opSub,
	{0x8, 0x6}:   opShr,
	{0x8, 0x7}:   opSubn,
	{0x8, 0xE}:   opShl,
	{0x9, 0x0}:   opSneRegister,
	{0xA, 0}:     opLdIndex,
	{0xB, 0}:     opJpV0,
	{0xC, 0}:     opRnd,
	{0xD, 0}:     opDrw,
	{0xE, 0x9E}:  opSkp,
	{0xE, 0xA1}:  opSknp,
	{0xF, 0x07}:  opLdFromDelay,
	{0xF, 0x0A}:  opLdKey,
	{0xF, 0x15}:  opLdDelay,
	{0xF, 0x18}:  opLdSound,
	{0xF, 0x1E}:  opAddIndex,
	{0xF, 0x29}:  opLdFont,
	{0xF, 0x33}:  opLdBCD,
	{0xF, 0x55}:  opStoreRegisters,
	{0xF, 0x65}:  opLoadRegisters,
}
