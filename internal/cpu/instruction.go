package cpu

import (
	"fmt"
)

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	name   string     // name of the instruction
	cycles uint8      // base cost in T-cycles
	fn     func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the cost of the instruction in T-cycles. Taken
// conditional branches cost more.
func (i Instruction) Cycles() uint8 {
	return i.cycles
}

// InstructionSet holds the first 256 instructions.
var InstructionSet [256]Instruction

// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
var InstructionSetCB [256]Instruction

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name:   name,
		cycles: cycles,
		fn:     fn,
	}
}

// DefineInstructionCB defines the instruction in the
// InstructionSetCB, with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name:   name,
		cycles: cycles,
		fn:     fn,
	}
}

// illegalOpcodes lock up the CPU when executed.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// illegalOpcode rewinds PC to the opcode and records the fault.
func illegalOpcode(opcode uint8) func(*CPU) {
	return func(c *CPU) {
		c.PC--
		err := &IllegalInstructionError{Opcode: opcode, PC: c.PC.Uint16()}
		c.fault = err
		c.Log.Errorf("%v", err)
	}
}

func init() {
	DefineInstruction(0x00, "NOP", 4, func(c *CPU) {})
	DefineInstruction(0x10, "STOP", 4, func(c *CPU) {
		c.readOperand()
		c.stopped = true
	})
	DefineInstruction(0x76, "HALT", 4, func(c *CPU) {
		if !c.irq.IME && c.irq.HasInterrupts() {
			c.haltBug = true
			return
		}
		c.halted = true
	})
	DefineInstruction(0xF3, "DI", 4, func(c *CPU) {
		c.irq.Disable()
	})
	DefineInstruction(0xFB, "EI", 4, func(c *CPU) {
		c.irq.ScheduleEnable()
	})

	DefineInstruction(0x27, "DAA", 4, (*CPU).decimalAdjust)
	DefineInstruction(0x2F, "CPL", 4, func(c *CPU) {
		c.AF.SetHigh(^c.AF.High())
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", 4, func(c *CPU) {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x3F, "CCF", 4, func(c *CPU) {
		c.setFlagTo(FlagCarry, !c.isFlagSet(FlagCarry))
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})

	DefineInstruction(0x07, "RLCA", 4, func(c *CPU) { c.rotateAccumulator((*CPU).rotateLeft) })
	DefineInstruction(0x0F, "RRCA", 4, func(c *CPU) { c.rotateAccumulator((*CPU).rotateRight) })
	DefineInstruction(0x17, "RLA", 4, func(c *CPU) { c.rotateAccumulator((*CPU).rotateLeftThroughCarry) })
	DefineInstruction(0x1F, "RRA", 4, func(c *CPU) { c.rotateAccumulator((*CPU).rotateRightThroughCarry) })

	for _, opcode := range illegalOpcodes {
		DefineInstruction(opcode, fmt.Sprintf("illegal opcode %02X", opcode), 4, illegalOpcode(opcode))
	}

	generateLoadInstructions()
	generateArithmeticInstructions()
	generateJumpInstructions()
	generateCBInstructions()
}
