// Package interrupts implements the interrupt controller. The
// requested (IF) and enabled (IE) registers live in the address
// space, while the master enable (IME) and the delayed effect of
// EI are held by the Service.
package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when an input line goes from
	// released to pressed.
	JoypadFlag = types.Bit4
)

const (
	// DispatchCycles is the cost of servicing an interrupt.
	DispatchCycles = 20
	// HaltedDispatchCycles is the cost of servicing an interrupt
	// that woke the CPU from HALT.
	HaltedDispatchCycles = 24
)

// Processor is the side of the CPU an interrupt is dispatched to.
type Processor interface {
	// Halted reports whether the processor is waiting in HALT.
	Halted() bool
	// Locked reports whether the processor is stopped or faulted.
	// A locked processor is never dispatched to.
	Locked() bool
	// Wake leaves the HALT state.
	Wake()
	// Call pushes PC onto the stack and jumps to address.
	Call(address uint16)
	// Tick charges cycles to the processor.
	Tick(cycles uint)
}

// Service is the interrupt controller.
//
// When an interrupt is requested, the corresponding bit in IF is
// set. When an interrupt is both requested and enabled, and the
// IME is set, the CPU will jump to the interrupt vector and the
// corresponding bit in IF will be cleared.
//
// The IME is set by the EI and RETI instructions and cleared by
// the DI instruction, or when an interrupt is serviced.
type Service struct {
	// IME is the interrupt master enable.
	IME bool

	// pending is set by EI, and IME is raised once enableCount
	// has counted 2 dispatched instructions.
	pending     bool
	enableCount uint8

	b types.Bus
}

// NewService returns a new Service using b to access IF and IE.
func NewService(b types.Bus) *Service {
	return &Service{b: b}
}

// Requested returns the requested interrupts (IF).
func (s *Service) Requested() uint8 {
	return s.b.Get(types.IF) & 0x1F
}

// Enabled returns the enabled interrupts (IE).
func (s *Service) Enabled() uint8 {
	return s.b.Get(types.IE)
}

// Request requests the specified interrupt, by setting
// the corresponding bit in IF.
func (s *Service) Request(flag uint8) {
	s.b.Set(types.IF, s.b.Get(types.IF)|flag|0xE0)
}

// Clear clears the request bit of the specified interrupt.
func (s *Service) Clear(flag uint8) {
	s.b.Set(types.IF, (s.b.Get(types.IF)&^flag)|0xE0)
}

// HasInterrupts returns true if there are any interrupts
// that are both requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Requested()&s.Enabled() != 0
}

// Pending returns the flag of the highest priority interrupt
// that is both requested and enabled. The lowest bit wins.
func (s *Service) Pending() (uint8, bool) {
	pending := s.Requested() & s.Enabled()
	for i := uint8(0); i < 5; i++ {
		if flag := uint8(1 << i); pending&flag != 0 {
			return flag, true
		}
	}
	return 0, false
}

// Vector returns the service address of the given flag.
func Vector(flag uint8) uint16 {
	for i := uint16(0); i < 5; i++ {
		if flag == 1<<i {
			return 0x0040 + i*8
		}
	}
	return 0
}

// Service dispatches at most one interrupt to p. A pending
// interrupt always wakes p from HALT, but it is only serviced
// while the IME is set. Requests made while p is locked stay
// pending in IF.
func (s *Service) Service(p Processor) {
	if p.Locked() {
		return
	}
	flag, ok := s.Pending()
	if !ok {
		return
	}

	wasHalted := p.Halted()
	p.Wake()

	if !s.IME {
		return
	}

	s.Clear(flag)
	s.IME = false
	p.Call(Vector(flag))

	if wasHalted {
		p.Tick(HaltedDispatchCycles)
	} else {
		p.Tick(DispatchCycles)
	}
}

// ScheduleEnable implements EI. The IME is raised after the
// instruction following EI has completed.
func (s *Service) ScheduleEnable() {
	s.pending = true
	s.enableCount = 0
}

// EnableNow implements the IME side of RETI.
func (s *Service) EnableNow() {
	s.IME = true
	s.pending = false
	s.enableCount = 0
}

// Disable implements DI. It also cancels an EI that has not
// yet taken effect.
func (s *Service) Disable() {
	s.IME = false
	s.pending = false
	s.enableCount = 0
}

// EnablePending reports whether an EI is waiting to take effect.
func (s *Service) EnablePending() bool {
	return s.pending
}

// Tick is called once after every dispatched instruction to
// advance the delayed effect of EI.
func (s *Service) Tick() {
	if !s.pending {
		return
	}
	s.enableCount++
	if s.enableCount >= 2 {
		s.IME = true
		s.pending = false
		s.enableCount = 0
	}
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - IME (bool)
//   - pending (bool)
//   - enableCount (uint8)
func (s *Service) Load(st *types.State) {
	s.IME = st.ReadBool()
	s.pending = st.ReadBool()
	s.enableCount = st.Read8()
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.WriteBool(s.IME)
	st.WriteBool(s.pending)
	st.Write8(s.enableCount)
}
