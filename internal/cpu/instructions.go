package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

var pairNames = [4]string{"BC", "DE", "HL", "SP"}
var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}

// registerCycles returns cycles, plus extra when the register index
// refers to (HL).
func registerCycles(index uint8, cycles, extra uint8) uint8 {
	if index == types.RegHL {
		return cycles + extra
	}
	return cycles
}

func generateLoadInstructions() {
	// 0x40 - 0x7F - LD r, r' (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst<<3 + src
			if opcode == 0x76 {
				continue
			}
			dst, src := dst, src
			cycles := uint8(4)
			if dst == types.RegHL || src == types.RegHL {
				cycles = 8
			}
			DefineInstruction(opcode, fmt.Sprintf("LD %s, %s", types.RegisterNames[dst], types.RegisterNames[src]), cycles, func(c *CPU) {
				c.setRegister(dst, c.getRegister(src))
			})
		}
	}

	// 0x06, 0x0E ... 0x3E - LD r, d8
	for r := uint8(0); r < 8; r++ {
		r := r
		DefineInstruction(0x06+r<<3, fmt.Sprintf("LD %s, d8", types.RegisterNames[r]), registerCycles(r, 8, 4), func(c *CPU) {
			c.setRegister(r, c.readOperand())
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
		DefineInstruction(0x01+i<<4, fmt.Sprintf("LD %s, d16", pairNames[i]), 12, func(c *CPU) {
			c.registerPair(i).SetUint16(c.readOperand16())
		})
		// 0xC1, 0xD1, 0xE1, 0xF1 - POP rr
		DefineInstruction(0xC1+i<<4, fmt.Sprintf("POP %s", stackPairNames[i]), 12, func(c *CPU) {
			value := c.pop()
			if i == 3 {
				value &= 0xFFF0
			}
			c.stackPair(i).SetUint16(value)
		})
		// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH rr
		DefineInstruction(0xC5+i<<4, fmt.Sprintf("PUSH %s", stackPairNames[i]), 16, func(c *CPU) {
			c.push(c.stackPair(i).Uint16())
		})
	}

	// indirect loads through BC, DE and HL with post increment/decrement
	DefineInstruction(0x02, "LD (BC), A", 8, func(c *CPU) {
		c.b.WriteByte(c.BC.Uint16(), c.AF.High())
	})
	DefineInstruction(0x12, "LD (DE), A", 8, func(c *CPU) {
		c.b.WriteByte(c.DE.Uint16(), c.AF.High())
	})
	DefineInstruction(0x22, "LD (HL+), A", 8, func(c *CPU) {
		c.b.WriteByte(c.HL.Uint16(), c.AF.High())
		c.HL++
	})
	DefineInstruction(0x32, "LD (HL-), A", 8, func(c *CPU) {
		c.b.WriteByte(c.HL.Uint16(), c.AF.High())
		c.HL--
	})
	DefineInstruction(0x0A, "LD A, (BC)", 8, func(c *CPU) {
		c.AF.SetHigh(c.b.ReadByte(c.BC.Uint16()))
	})
	DefineInstruction(0x1A, "LD A, (DE)", 8, func(c *CPU) {
		c.AF.SetHigh(c.b.ReadByte(c.DE.Uint16()))
	})
	DefineInstruction(0x2A, "LD A, (HL+)", 8, func(c *CPU) {
		c.AF.SetHigh(c.b.ReadByte(c.HL.Uint16()))
		c.HL++
	})
	DefineInstruction(0x3A, "LD A, (HL-)", 8, func(c *CPU) {
		c.AF.SetHigh(c.b.ReadByte(c.HL.Uint16()))
		c.HL--
	})

	// high page loads
	DefineInstruction(0xE0, "LDH (a8), A", 12, func(c *CPU) {
		c.b.WriteByte(0xFF00+uint16(c.readOperand()), c.AF.High())
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 12, func(c *CPU) {
		c.AF.SetHigh(c.b.ReadByte(0xFF00 + uint16(c.readOperand())))
	})
	DefineInstruction(0xE2, "LD (C), A", 8, func(c *CPU) {
		c.b.WriteByte(0xFF00+uint16(c.BC.Low()), c.AF.High())
	})
	DefineInstruction(0xF2, "LD A, (C)", 8, func(c *CPU) {
		c.AF.SetHigh(c.b.ReadByte(0xFF00 + uint16(c.BC.Low())))
	})
	DefineInstruction(0xEA, "LD (a16), A", 16, func(c *CPU) {
		c.b.WriteByte(c.readOperand16(), c.AF.High())
	})
	DefineInstruction(0xFA, "LD A, (a16)", 16, func(c *CPU) {
		c.AF.SetHigh(c.b.ReadByte(c.readOperand16()))
	})

	// stack pointer loads
	DefineInstruction(0x08, "LD (a16), SP", 20, func(c *CPU) {
		c.b.WriteWord(c.readOperand16(), c.SP.Uint16())
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", 12, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
	})
	DefineInstruction(0xF9, "LD SP, HL", 8, func(c *CPU) {
		c.SP = c.HL
	})
}

func generateArithmeticInstructions() {
	for r := uint8(0); r < 8; r++ {
		r := r
		// 0x04, 0x0C ... 0x3C - INC r
		DefineInstruction(0x04+r<<3, fmt.Sprintf("INC %s", types.RegisterNames[r]), registerCycles(r, 4, 8), func(c *CPU) {
			c.setRegister(r, c.increment(c.getRegister(r)))
		})
		// 0x05, 0x0D ... 0x3D - DEC r
		DefineInstruction(0x05+r<<3, fmt.Sprintf("DEC %s", types.RegisterNames[r]), registerCycles(r, 4, 8), func(c *CPU) {
			c.setRegister(r, c.decrement(c.getRegister(r)))
		})
	}

	for op := uint8(0); op < 8; op++ {
		operation := aluOperations[op]
		// 0x80 - 0xBF - ALU A, r
		for r := uint8(0); r < 8; r++ {
			r := r
			DefineInstruction(0x80+op<<3+r, fmt.Sprintf("%s %s", operation.name, types.RegisterNames[r]), registerCycles(r, 4, 4), func(c *CPU) {
				operation.fn(c, c.getRegister(r))
			})
		}
		// 0xC6, 0xCE ... 0xFE - ALU A, d8
		DefineInstruction(0xC6+op<<3, fmt.Sprintf("%s d8", operation.name), 8, func(c *CPU) {
			operation.fn(c, c.readOperand())
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		// 0x03, 0x13, 0x23, 0x33 - INC rr
		DefineInstruction(0x03+i<<4, fmt.Sprintf("INC %s", pairNames[i]), 8, func(c *CPU) {
			*c.registerPair(i)++
		})
		// 0x0B, 0x1B, 0x2B, 0x3B - DEC rr
		DefineInstruction(0x0B+i<<4, fmt.Sprintf("DEC %s", pairNames[i]), 8, func(c *CPU) {
			*c.registerPair(i)--
		})
		// 0x09, 0x19, 0x29, 0x39 - ADD HL, rr
		DefineInstruction(0x09+i<<4, fmt.Sprintf("ADD HL, %s", pairNames[i]), 8, func(c *CPU) {
			c.addHL(c.registerPair(i).Uint16())
		})
	}

	DefineInstruction(0xE8, "ADD SP, r8", 16, func(c *CPU) {
		c.SP.SetUint16(c.addSPSigned())
	})
}

func generateJumpInstructions() {
	DefineInstruction(0x18, "JR r8", 12, func(c *CPU) { c.jumpRelative(true) })
	DefineInstruction(0xC3, "JP a16", 16, func(c *CPU) { c.jumpAbsolute(true) })
	DefineInstruction(0xE9, "JP (HL)", 4, func(c *CPU) { c.PC = c.HL })
	DefineInstruction(0xCD, "CALL a16", 24, func(c *CPU) { c.call(true) })
	DefineInstruction(0xC9, "RET", 16, func(c *CPU) { c.ret(true) })
	DefineInstruction(0xD9, "RETI", 16, func(c *CPU) {
		c.ret(true)
		c.irq.EnableNow()
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		name := conditionNames[cc]
		// 0x20, 0x28, 0x30, 0x38 - JR cc, r8
		DefineInstruction(0x20+cc<<3, fmt.Sprintf("JR %s, r8", name), 8, func(c *CPU) {
			if c.jumpRelative(c.condition(cc)) {
				c.Cycles += jumpRelativeTaken
			}
		})
		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, a16
		DefineInstruction(0xC2+cc<<3, fmt.Sprintf("JP %s, a16", name), 12, func(c *CPU) {
			if c.jumpAbsolute(c.condition(cc)) {
				c.Cycles += jumpAbsoluteTaken
			}
		})
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, a16
		DefineInstruction(0xC4+cc<<3, fmt.Sprintf("CALL %s, a16", name), 12, func(c *CPU) {
			if c.call(c.condition(cc)) {
				c.Cycles += callTaken
			}
		})
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		DefineInstruction(0xC0+cc<<3, fmt.Sprintf("RET %s", name), 8, func(c *CPU) {
			if c.ret(c.condition(cc)) {
				c.Cycles += returnTaken
			}
		})
	}

	// 0xC7, 0xCF ... 0xFF - RST n
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) << 3
		DefineInstruction(0xC7+n<<3, fmt.Sprintf("RST %02XH", vector), 16, func(c *CPU) {
			c.Call(vector)
		})
	}
}

func generateCBInstructions() {
	for r := uint8(0); r < 8; r++ {
		r := r
		reg := types.RegisterNames[r]

		// 0x00 - 0x3F - rotates, shifts and swap
		for op := uint8(0); op < 8; op++ {
			operation := shiftOperations[op]
			DefineInstructionCB(op<<3+r, fmt.Sprintf("%s %s", operation.name, reg), registerCycles(r, 8, 8), func(c *CPU) {
				c.setRegister(r, operation.fn(c, c.getRegister(r)))
			})
		}

		for b := uint8(0); b < 8; b++ {
			b := b
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40+b<<3+r, fmt.Sprintf("BIT %d, %s", b, reg), registerCycles(r, 8, 4), func(c *CPU) {
				c.testBit(c.getRegister(r), b)
			})
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80+b<<3+r, fmt.Sprintf("RES %d, %s", b, reg), registerCycles(r, 8, 8), func(c *CPU) {
				c.setRegister(r, c.getRegister(r)&^(1<<b))
			})
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0+b<<3+r, fmt.Sprintf("SET %d, %s", b, reg), registerCycles(r, 8, 8), func(c *CPU) {
				c.setRegister(r, c.getRegister(r)|1<<b)
			})
		}
	}
}
