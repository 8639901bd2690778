package cpu

// rotateLeft rotates value left, copying bit 7 into the carry.
//
//	Z - Set if result is 0.
//	N, H - Reset.
//	C - Contains old bit 7.
func (c *CPU) rotateLeft(value uint8) uint8 {
	result := value<<1 | value>>7
	c.setFlags(result == 0, false, false, value&0x80 != 0)
	return result
}

// rotateRight rotates value right, copying bit 0 into the carry.
//
//	Z - Set if result is 0.
//	N, H - Reset.
//	C - Contains old bit 0.
func (c *CPU) rotateRight(value uint8) uint8 {
	result := value>>1 | value<<7
	c.setFlags(result == 0, false, false, value&0x01 != 0)
	return result
}

// rotateLeftThroughCarry rotates value left through the carry.
//
//	Z - Set if result is 0.
//	N, H - Reset.
//	C - Contains old bit 7.
func (c *CPU) rotateLeftThroughCarry(value uint8) uint8 {
	result := value<<1 | c.carry()
	c.setFlags(result == 0, false, false, value&0x80 != 0)
	return result
}

// rotateRightThroughCarry rotates value right through the carry.
//
//	Z - Set if result is 0.
//	N, H - Reset.
//	C - Contains old bit 0.
func (c *CPU) rotateRightThroughCarry(value uint8) uint8 {
	result := value>>1 | c.carry()<<7
	c.setFlags(result == 0, false, false, value&0x01 != 0)
	return result
}

// shiftLeftArithmetic shifts value left into the carry.
//
//	Z - Set if result is 0.
//	N, H - Reset.
//	C - Contains old bit 7.
func (c *CPU) shiftLeftArithmetic(value uint8) uint8 {
	result := value << 1
	c.setFlags(result == 0, false, false, value&0x80 != 0)
	return result
}

// shiftRightArithmetic shifts value right into the carry, keeping
// bit 7.
//
//	Z - Set if result is 0.
//	N, H - Reset.
//	C - Contains old bit 0.
func (c *CPU) shiftRightArithmetic(value uint8) uint8 {
	result := value>>1 | value&0x80
	c.setFlags(result == 0, false, false, value&0x01 != 0)
	return result
}

// shiftRightLogical shifts value right into the carry, clearing
// bit 7.
//
//	Z - Set if result is 0.
//	N, H - Reset.
//	C - Contains old bit 0.
func (c *CPU) shiftRightLogical(value uint8) uint8 {
	result := value >> 1
	c.setFlags(result == 0, false, false, value&0x01 != 0)
	return result
}

// swap exchanges the upper and lower nibbles of value.
//
//	Z - Set if result is 0.
//	N, H, C - Reset.
func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit tests bit index of value.
//
//	Z - Set if the bit is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value, index uint8) {
	c.setFlagTo(FlagZero, value&(1<<index) == 0)
	c.clearFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}

// rotateAccumulator applies one of the rotates to A. Unlike the
// CB prefixed forms, Z is always reset.
func (c *CPU) rotateAccumulator(rotate func(*CPU, uint8) uint8) {
	c.AF.SetHigh(rotate(c, c.AF.High()))
	c.clearFlag(FlagZero)
}

// shiftOperations are the 8 operations encoded in bits 3-5 of the
// CB prefixed opcodes 0x00 - 0x3F.
var shiftOperations = [8]struct {
	name string
	fn   func(*CPU, uint8) uint8
}{
	{"RLC", (*CPU).rotateLeft},
	{"RRC", (*CPU).rotateRight},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}
