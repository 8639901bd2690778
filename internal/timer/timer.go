// Package timer provides an implementation of the Game Boy
// divider and timer. DIV is incremented every 256 cycles, while
// TIMA is incremented at the frequency selected by TAC and
// requests an interrupt when it overflows.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// DividerPeriod is the number of cycles between increments
	// of DIV.
	DividerPeriod = 256
)

// periods maps the clock select bits of TAC to the number of
// cycles between increments of TIMA.
var periods = [4]uint{1024, 16, 64, 256}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	divCounter   uint
	timerCounter uint

	b   types.Bus
	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(b types.Bus, irq *interrupts.Service) *Controller {
	return &Controller{
		b:   b,
		irq: irq,
	}
}

// Enabled reports whether TIMA is counting.
func (c *Controller) Enabled() bool {
	return c.b.Get(types.TAC)&types.Bit2 != 0
}

// Period returns the number of cycles per increment of TIMA.
func (c *Controller) Period() uint {
	return periods[c.b.Get(types.TAC)&0x3]
}

// Step advances the divider and timer by the given number of
// cycles.
func (c *Controller) Step(cycles uint) {
	c.divCounter += cycles
	for c.divCounter >= DividerPeriod {
		c.divCounter -= DividerPeriod
		c.b.Set(types.DIV, c.b.Get(types.DIV)+1)
	}

	if !c.Enabled() {
		return
	}

	period := c.Period()
	c.timerCounter += cycles
	for c.timerCounter >= period {
		c.timerCounter -= period
		c.tick()
	}
}

// tick increments TIMA, reloading it from TMA on overflow.
func (c *Controller) tick() {
	tima := c.b.Get(types.TIMA)
	if tima == 0xFF {
		c.b.Set(types.TIMA, c.b.Get(types.TMA))
		c.irq.Request(interrupts.TimerFlag)
		return
	}
	c.b.Set(types.TIMA, tima+1)
}

// Reset clears the internal counters.
func (c *Controller) Reset() {
	c.divCounter = 0
	c.timerCounter = 0
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - divCounter (uint32)
//   - timerCounter (uint32)
func (c *Controller) Load(s *types.State) {
	c.divCounter = uint(s.Read32())
	c.timerCounter = uint(s.Read32())
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write32(uint32(c.divCounter))
	s.Write32(uint32(c.timerCounter))
}
