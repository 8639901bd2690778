package gameboy

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and its
// components.
func WithLogger(l log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = l
		gb.MMU.Log = l
		gb.CPU.Log = l
	}
}

// WithBootROM sets the boot ROM for the emulator. Execution starts
// at 0x0000 with the registers cleared, instead of at 0x0100 with
// the registers set to the values upon completion of the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
		gb.MMU.SetBootROM(rom)
	}
}

// WithPalette sets the colours used to draw the 4 shades.
func WithPalette(p palette.Palette) Opt {
	return func(gb *GameBoy) {
		gb.PPU.Palette = p
	}
}

// WithSerialOutput writes every byte sent over the serial port to w.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.MMU.AttachSerial(w)
	}
}

// WithFrameHandler calls fn with every frame completed by the PPU.
func WithFrameHandler(fn ppu.FrameHandler) Opt {
	return func(gb *GameBoy) {
		gb.PPU.SetFrameHandler(fn)
	}
}

// WithState restores a snapshot taken with GameBoy.Save once the
// cartridge has been inserted.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}
