package cpu

import "github.com/thelolagemann/dmgcore/pkg/bits"

type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return bits.Test(c.AF.Low(), flag)
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.AF.SetLow(bits.Set(c.AF.Low(), flag))
}

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.AF.SetLow(bits.Reset(c.AF.Low(), flag))
}

// setFlagTo sets or clears a flag depending on v.
func (c *CPU) setFlagTo(flag Flag, v bool) {
	c.AF.SetLow(bits.SetTo(c.AF.Low(), flag, v))
}

// setFlags replaces all 4 flags. The low nibble of F is always 0.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	f = bits.SetTo(f, FlagZero, zero)
	f = bits.SetTo(f, FlagSubtract, subtract)
	f = bits.SetTo(f, FlagHalfCarry, halfCarry)
	f = bits.SetTo(f, FlagCarry, carry)
	c.AF.SetLow(f)
}

// carry returns the carry flag as an operand.
func (c *CPU) carry() uint8 {
	return bits.Val(c.AF.Low(), FlagCarry)
}

// condition evaluates the condition encoded in bits 3-4 of a
// conditional branch: NZ, Z, NC and C.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}
