package cpu

import (
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// increment returns value + 1.
//
//	Z - Set if result is 0.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	result := value + 1
	c.setFlagTo(FlagZero, result == 0)
	c.clearFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, value&0x0F == 0x0F)
	return result
}

// decrement returns value - 1.
//
//	Z - Set if result is 0.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	result := value - 1
	c.setFlagTo(FlagZero, result == 0)
	c.setFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, value&0x0F == 0)
	return result
}

// add adds value, and the carry flag when useCarry is set, to A.
//
//	Z - Set if result is 0.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(value uint8, useCarry bool) {
	var carry uint8
	if useCarry {
		carry = c.carry()
	}
	a := c.AF.High()
	c.AF.SetHigh(a + value + carry)
	c.setFlags(
		a+value+carry == 0,
		false,
		bits.HalfCarryAdd(uint16(a), uint16(value), uint16(carry), 0x0F),
		bits.CarryAdd(uint16(a), uint16(value), uint16(carry), 0xFF),
	)
}

// sub subtracts value, and the carry flag when useCarry is set,
// from A, storing the result only when store is set. CP is a
// sub that discards the result.
//
//	Z - Set if result is 0.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set if no borrow.
func (c *CPU) sub(value uint8, useCarry, store bool) {
	var carry uint8
	if useCarry {
		carry = c.carry()
	}
	a := c.AF.High()
	result := a - value - carry
	if store {
		c.AF.SetHigh(result)
	}
	c.setFlags(
		result == 0,
		true,
		bits.HalfBorrow(a, value, carry),
		bits.Borrow(a, value, carry),
	)
}

// and performs a bitwise AND on A and value.
//
//	Z - Set if result is 0.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(value uint8) {
	c.AF.SetHigh(c.AF.High() & value)
	c.setFlags(c.AF.High() == 0, false, true, false)
}

// or performs a bitwise OR on A and value.
//
//	Z - Set if result is 0.
//	N, H, C - Reset.
func (c *CPU) or(value uint8) {
	c.AF.SetHigh(c.AF.High() | value)
	c.setFlags(c.AF.High() == 0, false, false, false)
}

// xor performs a bitwise XOR on A and value.
//
//	Z - Set if result is 0.
//	N, H, C - Reset.
func (c *CPU) xor(value uint8) {
	c.AF.SetHigh(c.AF.High() ^ value)
	c.setFlags(c.AF.High() == 0, false, false, false)
}

// aluOperations are the 8 operations on A encoded in bits 3-5 of
// opcodes 0x80 - 0xBF and 0xC6 - 0xFE.
var aluOperations = [8]struct {
	name string
	fn   func(*CPU, uint8)
}{
	{"ADD A,", func(c *CPU, v uint8) { c.add(v, false) }},
	{"ADC A,", func(c *CPU, v uint8) { c.add(v, true) }},
	{"SUB", func(c *CPU, v uint8) { c.sub(v, false, true) }},
	{"SBC A,", func(c *CPU, v uint8) { c.sub(v, true, true) }},
	{"AND", (*CPU).and},
	{"XOR", (*CPU).xor},
	{"OR", (*CPU).or},
	{"CP", func(c *CPU, v uint8) { c.sub(v, false, false) }},
}

// addHL adds value to HL.
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(value uint16) {
	hl := c.HL.Uint16()
	c.HL.SetUint16(hl + value)
	c.clearFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, bits.HalfCarryAdd(hl, value, 0, 0x0FFF))
	c.setFlagTo(FlagCarry, bits.CarryAdd(hl, value, 0, 0xFFFF))
}

// addSPSigned returns SP plus the signed operand. The flags are
// computed on the low byte of SP and the unsigned operand.
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	value := c.readOperand()
	sp := c.SP.Uint16()
	c.setFlags(
		false,
		false,
		bits.HalfCarryAdd(sp&0xFF, uint16(value), 0, 0x0F),
		bits.CarryAdd(sp&0xFF, uint16(value), 0, 0xFF),
	)
	return sp + uint16(int8(value))
}

// decimalAdjust adjusts A to a binary coded decimal after an add
// or subtract.
//
//	Z - Set if result is 0.
//	N - Not affected.
//	H - Reset.
//	C - Set if the adjustment carried, otherwise not affected.
func (c *CPU) decimalAdjust() {
	a := uint16(c.AF.High())
	if !c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagHalfCarry) || a&0x0F > 0x09 {
			a += 0x06
		}
		if c.isFlagSet(FlagCarry) || a > 0x9F {
			a += 0x60
		}
	} else {
		if c.isFlagSet(FlagHalfCarry) {
			a = (a - 0x06) & 0xFF
		}
		if c.isFlagSet(FlagCarry) {
			a -= 0x60
		}
	}

	if a&0x100 != 0 {
		c.setFlag(FlagCarry)
	}
	c.AF.SetHigh(uint8(a))
	c.setFlagTo(FlagZero, uint8(a) == 0)
	c.clearFlag(FlagHalfCarry)
}
