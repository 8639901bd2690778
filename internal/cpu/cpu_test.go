package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// testBus is a flat 64kB memory without any mapping.
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) ReadByte(address uint16) uint8         { return b.mem[address] }
func (b *testBus) WriteByte(address uint16, value uint8) { b.mem[address] = value }
func (b *testBus) Get(address uint16) uint8              { return b.mem[address] }
func (b *testBus) Set(address uint16, value uint8)       { b.mem[address] = value }

func (b *testBus) ReadWord(address uint16) uint16 {
	return uint16(b.mem[address]) | uint16(b.mem[address+1])<<8
}

func (b *testBus) WriteWord(address uint16, value uint16) {
	b.mem[address] = uint8(value)
	b.mem[address+1] = uint8(value >> 8)
}

// newTestCPU returns a CPU in the post boot state, with program
// loaded at the entry point.
func newTestCPU(program ...uint8) (*CPU, *testBus) {
	b := &testBus{}
	copy(b.mem[0x0100:], program)
	c := NewCPU(b, interrupts.NewService(b), nil)
	c.Reset(false)
	return c, b
}

// step executes a single instruction and returns its cost.
func step(c *CPU) uint64 {
	before := c.Cycles
	c.Step()
	return c.Cycles - before
}

func expectFlags(t *testing.T, c *CPU, z, n, h, cy bool) {
	t.Helper()
	if c.isFlagSet(FlagZero) != z || c.isFlagSet(FlagSubtract) != n ||
		c.isFlagSet(FlagHalfCarry) != h || c.isFlagSet(FlagCarry) != cy {
		t.Errorf("expected flags Z=%t N=%t H=%t C=%t, got F=%08b", z, n, h, cy, c.AF.Low())
	}
}

func TestCPU_Reset(t *testing.T) {
	c, _ := newTestCPU()
	expected := map[string][2]uint16{
		"AF": {c.AF.Uint16(), 0x01B0},
		"BC": {c.BC.Uint16(), 0x0013},
		"DE": {c.DE.Uint16(), 0x00D8},
		"HL": {c.HL.Uint16(), 0x014D},
		"SP": {c.SP.Uint16(), 0xFFFE},
		"PC": {c.PC.Uint16(), 0x0100},
	}
	for name, v := range expected {
		if v[0] != v[1] {
			t.Errorf("expected %s to be 0x%04X, got 0x%04X", name, v[1], v[0])
		}
	}

	c.Reset(true)
	if c.PC != 0 || c.AF != 0 || c.SP != 0 {
		t.Errorf("expected all registers to be 0 with a boot ROM")
	}
}

func TestCPU_Step(t *testing.T) {
	// LD A, 0x42; LD (HL+), A; NOP
	c, b := newTestCPU(0x3E, 0x42, 0x22, 0x00)
	c.HL.SetUint16(0xC000)

	if cycles := step(c); cycles != 8 || c.AF.High() != 0x42 {
		t.Errorf("expected LD A, d8 to load 0x42 in 8 cycles, got 0x%02X in %d", c.AF.High(), cycles)
	}
	if cycles := step(c); cycles != 8 || b.mem[0xC000] != 0x42 || c.HL != 0xC001 {
		t.Errorf("expected LD (HL+), A to store and increment in 8 cycles, got %d", cycles)
	}
	step(c)
	if c.PC != 0x0104 {
		t.Errorf("expected PC to be 0x0104, got 0x%04X", c.PC)
	}
	if c.InstructionsRan != 3 {
		t.Errorf("expected 3 instructions ran, got %d", c.InstructionsRan)
	}
}

func TestCPU_Stack(t *testing.T) {
	t.Run("push", func(t *testing.T) {
		c, b := newTestCPU(0xC5) // PUSH BC
		c.BC.SetUint16(0x1234)
		if cycles := step(c); cycles != 16 {
			t.Errorf("expected 16 cycles, got %d", cycles)
		}
		if c.SP != 0xFFFC {
			t.Errorf("expected SP to be 0xFFFC, got 0x%04X", c.SP)
		}
		if b.mem[0xFFFD] != 0x12 || b.mem[0xFFFC] != 0x34 {
			t.Errorf("expected high byte at 0xFFFD and low byte at 0xFFFC, got 0x%02X 0x%02X", b.mem[0xFFFD], b.mem[0xFFFC])
		}
	})
	t.Run("pop af", func(t *testing.T) {
		c, b := newTestCPU(0xF1) // POP AF
		c.SP.SetUint16(0xC000)
		b.mem[0xC000] = 0xFF
		b.mem[0xC001] = 0x12
		if cycles := step(c); cycles != 12 {
			t.Errorf("expected 12 cycles, got %d", cycles)
		}
		if c.AF != 0x12F0 {
			t.Errorf("expected AF to be 0x12F0, got 0x%04X", c.AF)
		}
		if c.SP != 0xC002 {
			t.Errorf("expected SP to be 0xC002, got 0x%04X", c.SP)
		}
	})
	t.Run("round trip", func(t *testing.T) {
		c, _ := newTestCPU(0xD5, 0xE1) // PUSH DE; POP HL
		c.DE.SetUint16(0xBEEF)
		step(c)
		step(c)
		if c.HL != 0xBEEF || c.SP != 0xFFFE {
			t.Errorf("expected HL to be 0xBEEF, got 0x%04X", c.HL)
		}
	})
}

func TestCPU_Halt(t *testing.T) {
	t.Run("halt", func(t *testing.T) {
		c, _ := newTestCPU(0x76)
		step(c)
		if !c.Halted() {
			t.Fatalf("expected CPU to be halted")
		}
		if cycles := step(c); cycles != 4 || c.PC != 0x0101 {
			t.Errorf("expected a halted CPU to idle for 4 cycles, got %d", cycles)
		}
	})
	t.Run("halt bug", func(t *testing.T) {
		// HALT; INC A
		c, b := newTestCPU(0x76, 0x3C)
		b.mem[types.IE] = interrupts.TimerFlag
		b.mem[types.IF] = interrupts.TimerFlag
		c.AF.SetHigh(0)

		step(c)
		if c.Halted() {
			t.Fatalf("expected HALT not to halt with a pending interrupt and IME clear")
		}
		step(c)
		step(c)
		if c.AF.High() != 2 {
			t.Errorf("expected INC A to execute twice, got A=%d", c.AF.High())
		}
		if c.PC != 0x0102 {
			t.Errorf("expected PC to be 0x0102, got 0x%04X", c.PC)
		}
	})
}

func TestCPU_Interrupts(t *testing.T) {
	t.Run("enable delay", func(t *testing.T) {
		// EI; NOP; NOP
		c, _ := newTestCPU(0xFB, 0x00, 0x00)
		step(c)
		if c.irq.IME {
			t.Errorf("expected IME to be clear after EI")
		}
		step(c)
		if !c.irq.IME {
			t.Errorf("expected IME to be set after the instruction following EI")
		}
	})
	t.Run("disable cancels", func(t *testing.T) {
		// EI; DI; NOP
		c, _ := newTestCPU(0xFB, 0xF3, 0x00)
		step(c)
		step(c)
		step(c)
		if c.irq.IME {
			t.Errorf("expected DI to cancel a pending EI")
		}
	})
	t.Run("reti", func(t *testing.T) {
		c, b := newTestCPU(0xD9)
		c.SP.SetUint16(0xC000)
		b.mem[0xC000] = 0x34
		b.mem[0xC001] = 0x12
		if cycles := step(c); cycles != 16 {
			t.Errorf("expected 16 cycles, got %d", cycles)
		}
		if !c.irq.IME || c.PC != 0x1234 {
			t.Errorf("expected RETI to return to 0x1234 with IME set, got 0x%04X", c.PC)
		}
	})
	t.Run("dispatch", func(t *testing.T) {
		c, b := newTestCPU(0x00)
		c.irq.IME = true
		b.mem[types.IE] = interrupts.VBlankFlag | interrupts.TimerFlag
		b.mem[types.IF] = interrupts.VBlankFlag | interrupts.TimerFlag

		before := c.Cycles
		c.irq.Service(c)
		if c.PC != 0x0040 {
			t.Errorf("expected PC to be 0x0040, got 0x%04X", c.PC)
		}
		if c.Cycles-before != interrupts.DispatchCycles {
			t.Errorf("expected %d cycles, got %d", interrupts.DispatchCycles, c.Cycles-before)
		}
		if b.mem[0xFFFD] != 0x01 || b.mem[0xFFFC] != 0x00 {
			t.Errorf("expected return address 0x0100 on the stack")
		}
		if b.mem[types.IF]&interrupts.TimerFlag == 0 || b.mem[types.IF]&interrupts.VBlankFlag != 0 {
			t.Errorf("expected only VBlank to be acknowledged, got IF=%08b", b.mem[types.IF])
		}
	})
	t.Run("wake", func(t *testing.T) {
		c, b := newTestCPU(0x76)
		step(c)
		b.mem[types.IE] = interrupts.JoypadFlag
		b.mem[types.IF] = interrupts.JoypadFlag

		before := c.Cycles
		c.irq.Service(c)
		if c.Halted() {
			t.Errorf("expected a pending interrupt to wake the CPU")
		}
		if c.Cycles != before || c.PC != 0x0101 {
			t.Errorf("expected no dispatch while IME is clear")
		}

		c.halted = true
		c.irq.IME = true
		c.irq.Service(c)
		if c.PC != 0x0060 || c.Cycles-before != interrupts.HaltedDispatchCycles {
			t.Errorf("expected dispatch to 0x0060 in %d cycles, got 0x%04X in %d", interrupts.HaltedDispatchCycles, c.PC, c.Cycles-before)
		}
	})
}

func TestCPU_Stop(t *testing.T) {
	// STOP 0x00; INC A
	c, _ := newTestCPU(0x10, 0x00, 0x3C)
	step(c)
	if !c.Stopped() {
		t.Fatalf("expected CPU to be stopped")
	}
	if c.PC != 0x0102 {
		t.Errorf("expected STOP to skip its padding byte, got PC 0x%04X", c.PC)
	}
	if cycles := step(c); cycles != 4 || c.PC != 0x0102 {
		t.Errorf("expected a stopped CPU to idle")
	}
	c.Resume()
	a := c.AF.High()
	step(c)
	if c.AF.High() != a+1 {
		t.Errorf("expected execution to resume")
	}
}

func TestCPU_IllegalInstruction(t *testing.T) {
	c, _ := newTestCPU(0x00, 0xDD, 0x00)
	step(c)
	step(c)

	err := c.Err()
	if !errors.Is(err, ErrIllegalInstruction) {
		t.Fatalf("expected ErrIllegalInstruction, got %v", err)
	}
	var illegal *IllegalInstructionError
	if !errors.As(err, &illegal) || illegal.Opcode != 0xDD || illegal.PC != 0x0101 {
		t.Errorf("expected opcode 0xDD at 0x0101, got %v", err)
	}
	if c.PC != 0x0101 {
		t.Errorf("expected PC to be left at the opcode, got 0x%04X", c.PC)
	}

	if cycles := step(c); cycles != 4 || c.PC != 0x0101 {
		t.Errorf("expected a faulted CPU to idle")
	}
	if c.InstructionsRan != 1 {
		t.Errorf("expected 1 instruction ran, got %d", c.InstructionsRan)
	}

	c.Reset(false)
	if c.Err() != nil {
		t.Errorf("expected reset to clear the fault")
	}
}

func TestCPU_State(t *testing.T) {
	c, b := newTestCPU(0x76)
	c.BC.SetUint16(0x1234)
	c.HL.SetUint16(0xABCD)
	step(c)

	s := types.NewState()
	c.Save(s)

	r := NewCPU(b, interrupts.NewService(b), nil)
	r.Load(types.StateFromBytes(s.Bytes()))
	if r.Registers != c.Registers {
		t.Errorf("expected registers %+v, got %+v", c.Registers, r.Registers)
	}
	if r.Cycles != c.Cycles || !r.Halted() {
		t.Errorf("expected cycles and halt state to be restored")
	}
}
