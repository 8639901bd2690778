// Package cpu implements the Sharp LR35902 instruction set. The
// CPU fetches, decodes and executes one instruction per Step and
// accounts for the cost of each in T-cycles, leaving it to the
// caller to advance the rest of the machine by the same amount.
package cpu

import (
	"errors"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Bus is the memory as seen by the CPU.
type Bus interface {
	ReadByte(address uint16) uint8
	WriteByte(address uint16, value uint8)
	ReadWord(address uint16) uint16
	WriteWord(address uint16, value uint16)
}

// idleCycles is the cost of a Step while the CPU is not executing
// instructions.
const idleCycles = 4

// CPU represents the Game Boy CPU. It is responsible for executing
// instructions.
type CPU struct {
	// Registers contains the register pairs, including SP and PC.
	types.Registers

	// Cycles is the number of T-cycles spent since reset.
	Cycles uint64
	// InstructionsRan is the number of instructions executed
	// since reset.
	InstructionsRan uint64

	halted  bool
	haltBug bool
	stopped bool

	// fault is set when an illegal opcode is fetched, after which
	// the CPU no longer executes instructions.
	fault error

	b   Bus
	irq *interrupts.Service
	Log log.Logger
}

// NewCPU creates a new CPU instance with the given bus. The bus
// is used to read and write to the memory.
func NewCPU(b Bus, irq *interrupts.Service, l log.Logger) *CPU {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &CPU{
		b:   b,
		irq: irq,
		Log: l,
	}
}

// Reset clears the CPU. Without a boot ROM, the registers are
// set to the values the boot ROM leaves behind, with PC at the
// cartridge entry point.
func (c *CPU) Reset(bootROM bool) {
	c.Registers = types.Registers{}
	c.Cycles = 0
	c.InstructionsRan = 0
	c.halted = false
	c.haltBug = false
	c.stopped = false
	c.fault = nil

	if bootROM {
		return
	}
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP.SetUint16(0xFFFE)
	c.PC.SetUint16(0x0100)
}

// Step executes a single instruction. A halted, stopped or faulted
// CPU idles for 4 cycles instead.
func (c *CPU) Step() {
	if c.fault != nil || c.halted || c.stopped {
		c.Cycles += idleCycles
		return
	}

	opcode := c.readOperand()
	if c.haltBug {
		// the byte after HALT is read twice
		c.PC--
		c.haltBug = false
	}

	var instruction Instruction
	if opcode == 0xCB {
		instruction = InstructionSetCB[c.readOperand()]
	} else {
		instruction = InstructionSet[opcode]
	}

	instruction.fn(c)
	c.Cycles += uint64(instruction.cycles)
	if c.fault != nil {
		return
	}
	c.InstructionsRan++
	c.irq.Tick()
}

// Halted reports whether the CPU is waiting in HALT.
func (c *CPU) Halted() bool {
	return c.halted
}

// Wake leaves the HALT state.
func (c *CPU) Wake() {
	c.halted = false
}

// Stopped reports whether the CPU is waiting in STOP.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// Resume leaves the STOP state.
func (c *CPU) Resume() {
	c.stopped = false
}

// Locked reports whether the CPU is stopped or faulted. Interrupts
// are not dispatched to a locked CPU.
func (c *CPU) Locked() bool {
	return c.stopped || c.fault != nil
}

// Call pushes PC onto the stack and jumps to address.
func (c *CPU) Call(address uint16) {
	c.push(c.PC.Uint16())
	c.PC.SetUint16(address)
}

// Tick charges cycles to the CPU.
func (c *CPU) Tick(cycles uint) {
	c.Cycles += uint64(cycles)
}

// Err returns the fault that locked the CPU, or nil.
func (c *CPU) Err() error {
	return c.fault
}

var _ interrupts.Processor = (*CPU)(nil)

// readOperand reads the byte at PC and increments PC.
func (c *CPU) readOperand() uint8 {
	value := c.b.ReadByte(c.PC.Uint16())
	c.PC++
	return value
}

// readOperand16 reads the little endian word at PC.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// push writes value to the stack, high byte first.
func (c *CPU) push(value uint16) {
	c.SP--
	c.b.WriteByte(c.SP.Uint16(), uint8(value>>8))
	c.SP--
	c.b.WriteByte(c.SP.Uint16(), uint8(value))
}

// pop reads a value from the stack, low byte first.
func (c *CPU) pop() uint16 {
	low := c.b.ReadByte(c.SP.Uint16())
	c.SP++
	high := c.b.ReadByte(c.SP.Uint16())
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// getRegister returns the 8-bit register for the given index,
// where index 6 is the byte addressed by HL.
func (c *CPU) getRegister(index uint8) uint8 {
	switch index {
	case types.RegB:
		return c.BC.High()
	case types.RegC:
		return c.BC.Low()
	case types.RegD:
		return c.DE.High()
	case types.RegE:
		return c.DE.Low()
	case types.RegH:
		return c.HL.High()
	case types.RegL:
		return c.HL.Low()
	case types.RegHL:
		return c.b.ReadByte(c.HL.Uint16())
	default:
		return c.AF.High()
	}
}

// setRegister sets the 8-bit register for the given index, where
// index 6 is the byte addressed by HL.
func (c *CPU) setRegister(index uint8, value uint8) {
	switch index {
	case types.RegB:
		c.BC.SetHigh(value)
	case types.RegC:
		c.BC.SetLow(value)
	case types.RegD:
		c.DE.SetHigh(value)
	case types.RegE:
		c.DE.SetLow(value)
	case types.RegH:
		c.HL.SetHigh(value)
	case types.RegL:
		c.HL.SetLow(value)
	case types.RegHL:
		c.b.WriteByte(c.HL.Uint16(), value)
	default:
		c.AF.SetHigh(value)
	}
}

// registerPair returns the pair encoded in bits 4-5 of an opcode
// operating on BC, DE, HL or SP.
func (c *CPU) registerPair(index uint8) *types.RegisterPair {
	switch index {
	case 0:
		return &c.BC
	case 1:
		return &c.DE
	case 2:
		return &c.HL
	default:
		return &c.SP
	}
}

// stackPair is the same as registerPair, except that index 3
// is AF, as used by PUSH and POP.
func (c *CPU) stackPair(index uint8) *types.RegisterPair {
	if index == 3 {
		return &c.AF
	}
	return c.registerPair(index)
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - AF, BC, DE, HL, SP, PC (uint16)
//   - Cycles (uint64)
//   - InstructionsRan (uint64)
//   - halted (bool)
//   - haltBug (bool)
//   - stopped (bool)
//   - faulted (bool)
//   - fault opcode (uint8)
//   - fault PC (uint16)
func (c *CPU) Load(s *types.State) {
	c.AF.SetUint16(s.Read16() & 0xFFF0)
	c.BC.SetUint16(s.Read16())
	c.DE.SetUint16(s.Read16())
	c.HL.SetUint16(s.Read16())
	c.SP.SetUint16(s.Read16())
	c.PC.SetUint16(s.Read16())
	c.Cycles = s.Read64()
	c.InstructionsRan = s.Read64()
	c.halted = s.ReadBool()
	c.haltBug = s.ReadBool()
	c.stopped = s.ReadBool()

	faulted := s.ReadBool()
	opcode, pc := s.Read8(), s.Read16()
	c.fault = nil
	if faulted {
		c.fault = &IllegalInstructionError{Opcode: opcode, PC: pc}
	}
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	s.Write16(c.AF.Uint16())
	s.Write16(c.BC.Uint16())
	s.Write16(c.DE.Uint16())
	s.Write16(c.HL.Uint16())
	s.Write16(c.SP.Uint16())
	s.Write16(c.PC.Uint16())
	s.Write64(c.Cycles)
	s.Write64(c.InstructionsRan)
	s.WriteBool(c.halted)
	s.WriteBool(c.haltBug)
	s.WriteBool(c.stopped)

	var illegal *IllegalInstructionError
	faulted := errors.As(c.fault, &illegal)
	s.WriteBool(faulted)
	if faulted {
		s.Write8(illegal.Opcode)
		s.Write16(illegal.PC)
	} else {
		s.Write8(0)
		s.Write16(0)
	}
}
