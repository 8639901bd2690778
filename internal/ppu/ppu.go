// Package ppu implements the pixel pipeline. Each scanline is
// drawn in one go when the line completes, rather than pixel by
// pixel, and the LCD mode is derived from the position within
// the current line.
package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144

	// DotsPerLine is the number of cycles spent on each line.
	DotsPerLine = 456
	// LinesPerFrame is the number of lines in a frame, including
	// the 10 lines of VBlank.
	LinesPerFrame = 154

	// oamStartDot is the first dot of ModeOAM on a visible line.
	oamStartDot = 376
	// vramStartDot is the first dot of ModeVRAM on a visible line.
	vramStartDot = 204
)

// Frame is a complete picture, stored as rows of RGB pixels.
type Frame = [ScreenHeight][ScreenWidth][3]uint8

// FrameHandler receives every completed frame. The frame is only
// valid for the duration of the call.
type FrameHandler func(frame *Frame)

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
//
// LY, STAT and the other LCD registers live in the address space
// and are accessed through the raw bus.
type PPU struct {
	// Palette holds the RGB values of the 4 shades.
	Palette palette.Palette
	// PreparedFrame is the last completed frame.
	PreparedFrame Frame
	// FrameCount is the number of frames completed.
	FrameCount uint64

	dot  uint     // Current dot within line (0-455)
	mode lcd.Mode // Mode last reported to STAT

	screen   Frame              // frame being drawn
	bgShades [ScreenWidth]uint8 // background shades of the current line

	onFrame FrameHandler

	b   types.Bus
	irq *interrupts.Service
}

// New returns a new PPU.
func New(b types.Bus, irq *interrupts.Service) *PPU {
	return &PPU{
		Palette: palette.Green,
		b:       b,
		irq:     irq,
	}
}

// SetFrameHandler sets the function called with every completed
// frame.
func (p *PPU) SetFrameHandler(fn FrameHandler) {
	p.onFrame = fn
}

// Mode returns the current LCD mode.
func (p *PPU) Mode() lcd.Mode {
	return p.mode
}

// Dot returns the position within the current line.
func (p *PPU) Dot() uint {
	return p.dot
}

// ModeAt returns the mode of the LCD at the given line and dot.
func ModeAt(ly uint8, dot uint) lcd.Mode {
	switch {
	case ly >= ScreenHeight:
		return lcd.VBlank
	case dot >= oamStartDot:
		return lcd.OAM
	case dot >= vramStartDot:
		return lcd.VRAM
	default:
		return lcd.HBlank
	}
}

// Step advances the PPU by the given number of cycles.
func (p *PPU) Step(cycles uint) {
	lcdc := lcd.Decode(p.b.Get(types.LCDC))
	if !lcdc.Enabled {
		p.b.Set(types.LY, 0)
		p.b.Set(types.STAT, p.b.Get(types.STAT)&0xF8|0x80)
		p.dot = 0
		p.mode = lcd.HBlank
		return
	}

	p.dot += cycles
	for p.dot >= DotsPerLine {
		p.dot -= DotsPerLine
		p.endLine(lcdc)
	}

	p.updateMode()
}

// endLine draws the line that has just completed and moves on to
// the next.
func (p *PPU) endLine(lcdc lcd.Controller) {
	ly := p.b.Get(types.LY)
	if ly < ScreenHeight {
		p.renderLine(ly, lcdc)
	}

	ly++
	if ly == ScreenHeight {
		p.presentFrame()
		p.irq.Request(interrupts.VBlankFlag)
	}
	if ly >= LinesPerFrame {
		ly = 0
	}
	p.b.Set(types.LY, ly)

	p.compareLY(ly)
}

// compareLY updates the coincidence flag, requesting the LCD
// interrupt on a match when enabled by STAT bit 6.
func (p *PPU) compareLY(ly uint8) {
	stat := p.b.Get(types.STAT)
	if ly == p.b.Get(types.LYC) {
		stat |= types.Bit2
		if stat&types.Bit6 != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	} else {
		stat &^= types.Bit2
	}
	p.b.Set(types.STAT, stat|0x80)
}

// updateMode reports the current mode in STAT, requesting the
// LCD interrupt when the mode has changed and its source is
// enabled.
func (p *PPU) updateMode() {
	mode := ModeAt(p.b.Get(types.LY), p.dot)
	stat := p.b.Get(types.STAT)
	if mode != p.mode {
		p.mode = mode
		if stat&lcd.InterruptBit(mode) != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	}
	p.b.Set(types.STAT, stat&^0x3|mode|0x80)
}

// presentFrame copies the drawn frame out and hands it to the
// frame handler.
func (p *PPU) presentFrame() {
	p.PreparedFrame = p.screen
	p.FrameCount++
	if p.onFrame != nil {
		p.onFrame(&p.PreparedFrame)
	}
}

// Reset clears the internal state of the PPU.
func (p *PPU) Reset() {
	p.dot = 0
	p.mode = lcd.HBlank
	p.FrameCount = 0
	p.screen = Frame{}
	p.PreparedFrame = Frame{}
}

var _ types.Stater = (*PPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - dot (uint16)
//   - mode (uint8)
//   - FrameCount (uint64)
//   - screen ([]byte)
//   - PreparedFrame ([]byte)
func (p *PPU) Load(s *types.State) {
	p.dot = uint(s.Read16())
	p.mode = s.Read8()
	p.FrameCount = s.Read64()

	buf := make([]byte, ScreenHeight*ScreenWidth*3)
	s.ReadData(buf)
	unflatten(&p.screen, buf)
	s.ReadData(buf)
	unflatten(&p.PreparedFrame, buf)
}

// Save implements the types.Stater interface.
func (p *PPU) Save(s *types.State) {
	s.Write16(uint16(p.dot))
	s.Write8(p.mode)
	s.Write64(p.FrameCount)
	s.WriteData(Flatten(&p.screen))
	s.WriteData(Flatten(&p.PreparedFrame))
}

// Flatten returns the frame as a contiguous RGB byte slice.
func Flatten(f *Frame) []byte {
	buf := make([]byte, 0, ScreenHeight*ScreenWidth*3)
	for y := range f {
		for x := range f[y] {
			buf = append(buf, f[y][x][:]...)
		}
	}
	return buf
}

func unflatten(f *Frame, buf []byte) {
	i := 0
	for y := range f {
		for x := range f[y] {
			copy(f[y][x][:], buf[i:i+3])
			i += 3
		}
	}
}
