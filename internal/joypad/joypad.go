// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// opposite maps each direction to the direction that cannot be
// held at the same time.
var opposite = map[Button]Button{
	ButtonRight: ButtonLeft,
	ButtonLeft:  ButtonRight,
	ButtonUp:    ButtonDown,
	ButtonDown:  ButtonUp,
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State is the input latch. The lower 4 bits hold the
	// action buttons and the upper 4 bits hold the directions.
	// A 1 in a bit indicates that the button is pressed.
	State uint8
	irq   *interrupts.Service
}

// New returns a new joypad state.
func New(irq *interrupts.Service) *State {
	return &State{irq: irq}
}

// Press presses a button. The joypad interrupt is requested
// when the button was previously released.
func (s *State) Press(button Button) {
	if other, ok := opposite[button]; ok {
		s.Release(other)
	}

	wasPressed := bits.Test(s.State, button)
	s.State = bits.Set(s.State, button)
	if !wasPressed {
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State = bits.Reset(s.State, button)
}

// IsPressed reports whether button is held.
func (s *State) IsPressed(button Button) bool {
	return bits.Test(s.State, button)
}

// Read returns the value of P1 for the given selection bits.
func (s *State) Read(p1 uint8) uint8 {
	d := uint8(0xC0) | p1&0x30
	if p1&types.Bit4 == 0 {
		d |= s.State >> 4 & 0xF
	}
	if p1&types.Bit5 == 0 {
		d |= s.State & 0xF
	}

	d ^= 0xF
	return d
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.State)
}
