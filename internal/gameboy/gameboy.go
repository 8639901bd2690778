// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// A GameBoy owns every component of the machine and advances them
// in lock step, one CPU instruction at a time. Hosts drive it a
// frame at a time with Frame and read back the picture, memory and
// registers through the getters.
package gameboy

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// FrameRate is the number of frames emulated per second.
	FrameRate = 60
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ClockSpeed / FrameRate
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller

	log.Logger

	// cycles spent towards the current frame
	frameCycles uint64

	bootROM []byte
	state   []byte
}

// New returns a new GameBoy with an empty cartridge slot.
func New(opts ...Opt) *GameBoy {
	g := newGameBoy(opts)
	if err := g.restore(); err != nil {
		g.Errorf("restoring state: %v", err)
	}
	return g
}

// NewGameBoy returns a new GameBoy with rom inserted. A cartridge
// without a bank controller implementation is still inserted, the
// error is only logged.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := newGameBoy(opts)
	if err := g.LoadCartridge(rom); err != nil && !errors.Is(err, cartridge.ErrUnsupportedController) {
		return nil, err
	}
	if err := g.restore(); err != nil {
		return nil, err
	}
	return g, nil
}

func newGameBoy(opts []Opt) *GameBoy {
	l := log.NewNullLogger()
	memBus := mmu.New(l)
	irq := interrupts.NewService(memBus)
	pad := joypad.New(irq)
	memBus.AttachInput(pad)

	g := &GameBoy{
		CPU:        cpu.NewCPU(memBus, irq, l),
		MMU:        memBus,
		PPU:        ppu.New(memBus, irq),
		Joypad:     pad,
		Interrupts: irq,
		Timer:      timer.NewController(memBus, irq),
		Logger:     l,
	}

	for _, opt := range opts {
		opt(g)
	}
	g.reset()

	return g
}

// restore loads the state given by WithState, if any.
func (g *GameBoy) restore() error {
	if g.state == nil {
		return nil
	}
	return g.Load(types.StateFromBytes(g.state))
}

// reset returns every component to its power on state, leaving
// the inserted cartridge mapped.
func (g *GameBoy) reset() {
	g.MMU.Reset()
	g.Interrupts.Disable()
	g.Timer.Reset()
	g.PPU.Reset()
	g.Joypad.State = 0
	g.CPU.Reset(len(g.bootROM) > 0)
	g.frameCycles = 0
}

// LoadCartridge inserts rom and resets the machine. The image is
// parsed before anything is changed, so a malformed image leaves
// the machine untouched. An image with an unsupported bank
// controller is inserted, but the returned error wraps
// cartridge.ErrUnsupportedController.
func (g *GameBoy) LoadCartridge(rom []byte) error {
	cart, err := cartridge.New(rom)
	if cart == nil {
		return fmt.Errorf("gameboy: loading cartridge: %w", err)
	}
	if err != nil {
		g.Warnf("%v", err)
	}
	if verr := cart.Validate(rom); verr != nil {
		g.Warnf("cartridge header: %v", verr)
	}

	g.MMU.LoadCartridge(cart)
	g.reset()
	g.Infof("loaded %s", cart.Header)

	return err
}

// Reset returns the machine to its power on state. The cartridge
// is reinserted, keeping the contents of its RAM.
func (g *GameBoy) Reset() {
	old := g.MMU.Cart
	if old.ROM() != nil {
		cart, _ := cartridge.New(old.ROM())
		copy(cart.RAM(), old.RAM())
		g.MMU.LoadCartridge(cart)
	}
	g.reset()
}

// Step executes a single instruction, and advances the timer and
// PPU by the cycles it took.
func (g *GameBoy) Step() {
	before := g.CPU.Cycles
	g.Interrupts.Service(g.CPU)
	g.CPU.Step()
	delta := g.CPU.Cycles - before

	g.Timer.Step(uint(delta))
	g.PPU.Step(uint(delta))

	g.frameCycles += delta
}

// Frame steps the emulation for one frame's worth of cycles and
// returns the last frame completed by the PPU.
func (g *GameBoy) Frame() *ppu.Frame {
	for g.frameCycles < CyclesPerFrame {
		g.Step()
	}
	g.frameCycles -= CyclesPerFrame

	return &g.PPU.PreparedFrame
}

// Press presses the given button. Pressing any button also ends
// STOP.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
	g.CPU.Resume()
}

// Release releases the given button.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}

// Err returns the fault that locked the CPU, or nil.
func (g *GameBoy) Err() error {
	return g.CPU.Err()
}

// FrameHash returns the hash of the last completed frame.
func (g *GameBoy) FrameHash() uint64 {
	return xxhash.Sum64(ppu.Flatten(&g.PPU.PreparedFrame))
}

// Memory returns the address space as seen by the CPU.
func (g *GameBoy) Memory() []byte {
	mem := make([]byte, 0x10000)
	for i := range mem {
		mem[i] = g.MMU.ReadByte(uint16(i))
	}
	return mem
}

// ExternalRAM returns the cartridge RAM. The slice is shared with
// the cartridge.
func (g *GameBoy) ExternalRAM() []byte {
	return g.MMU.Cart.RAM()
}

// HasBattery reports whether the cartridge RAM is battery backed.
func (g *GameBoy) HasBattery() bool {
	return g.MMU.Cart.HasBattery()
}

// LoadExternalRAM restores the cartridge RAM from data, as saved
// from ExternalRAM.
func (g *GameBoy) LoadExternalRAM(data []byte) error {
	ram := g.MMU.Cart.RAM()
	if len(data) != len(ram) {
		return fmt.Errorf("gameboy: external RAM is %d bytes, got %d", len(ram), len(data))
	}
	copy(ram, data)
	return nil
}

// Status is a snapshot of the registers of the machine.
type Status struct {
	AF, BC, DE, HL, SP, PC uint16
	Zero, Subtract         bool
	HalfCarry, Carry       bool

	IME, Halted, Stopped bool
	IE, IF               uint8

	LCDC, STAT, LY, LYC uint8
	SCX, SCY, WX, WY    uint8
	Mode                lcd.Mode

	DIV, TIMA, TMA, TAC uint8

	Cycles          uint64
	InstructionsRan uint64
	Frames          uint64
}

// Status returns the current Status.
func (g *GameBoy) Status() Status {
	c := g.CPU
	f := c.AF.Low()
	return Status{
		AF:        c.AF.Uint16(),
		BC:        c.BC.Uint16(),
		DE:        c.DE.Uint16(),
		HL:        c.HL.Uint16(),
		SP:        c.SP.Uint16(),
		PC:        c.PC.Uint16(),
		Zero:      f&types.Bit7 != 0,
		Subtract:  f&types.Bit6 != 0,
		HalfCarry: f&types.Bit5 != 0,
		Carry:     f&types.Bit4 != 0,

		IME:     g.Interrupts.IME,
		Halted:  c.Halted(),
		Stopped: c.Stopped(),
		IE:      g.MMU.ReadByte(types.IE),
		IF:      g.MMU.ReadByte(types.IF),

		LCDC: g.MMU.ReadByte(types.LCDC),
		STAT: g.MMU.ReadByte(types.STAT),
		LY:   g.MMU.ReadByte(types.LY),
		LYC:  g.MMU.ReadByte(types.LYC),
		SCX:  g.MMU.ReadByte(types.SCX),
		SCY:  g.MMU.ReadByte(types.SCY),
		WX:   g.MMU.ReadByte(types.WX),
		WY:   g.MMU.ReadByte(types.WY),
		Mode: g.PPU.Mode(),

		DIV:  g.MMU.ReadByte(types.DIV),
		TIMA: g.MMU.ReadByte(types.TIMA),
		TMA:  g.MMU.ReadByte(types.TMA),
		TAC:  g.MMU.ReadByte(types.TAC),

		Cycles:          c.Cycles,
		InstructionsRan: c.InstructionsRan,
		Frames:          g.PPU.FrameCount,
	}
}

// components returns every component in the order they are saved.
func (g *GameBoy) components() []types.Stater {
	return []types.Stater{
		g.CPU,
		g.Interrupts,
		g.MMU,
		g.MMU.Cart,
		g.Timer,
		g.PPU,
		g.Joypad,
	}
}

// Save returns a snapshot of the machine.
func (g *GameBoy) Save() *types.State {
	s := types.NewState()
	for _, c := range g.components() {
		c.Save(s)
	}
	s.Write64(g.frameCycles)
	return s
}

// Load restores a snapshot taken with Save, for the same
// cartridge. If the snapshot cannot be read the machine is left
// as it was.
func (g *GameBoy) Load(s *types.State) error {
	previous := g.Save()

	for _, c := range g.components() {
		c.Load(s)
	}
	g.frameCycles = s.Read64()

	if err := s.Err(); err != nil {
		previous.ResetPosition()
		for _, c := range g.components() {
			c.Load(previous)
		}
		g.frameCycles = previous.Read64()
		return fmt.Errorf("gameboy: loading state: %w", err)
	}
	return nil
}
