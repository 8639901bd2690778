package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// Extra cycles spent when a conditional branch is taken.
const (
	jumpRelativeTaken = 4
	jumpAbsoluteTaken = 4
	callTaken         = 12
	returnTaken       = 12
)

// jumpRelative adds the signed operand to PC when condition holds.
func (c *CPU) jumpRelative(condition bool) bool {
	offset := int8(c.readOperand())
	if condition {
		c.PC += types.RegisterPair(offset)
	}
	return condition
}

// jumpAbsolute jumps to the operand when condition holds.
func (c *CPU) jumpAbsolute(condition bool) bool {
	address := c.readOperand16()
	if condition {
		c.PC.SetUint16(address)
	}
	return condition
}

// call pushes PC and jumps to the operand when condition holds.
func (c *CPU) call(condition bool) bool {
	address := c.readOperand16()
	if condition {
		c.Call(address)
	}
	return condition
}

// ret pops PC from the stack when condition holds.
func (c *CPU) ret(condition bool) bool {
	if condition {
		c.PC.SetUint16(c.pop())
	}
	return condition
}
