package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// renderLine draws the background, window and sprites of a
// visible line into the screen buffer.
func (p *PPU) renderLine(ly uint8, lcdc lcd.Controller) {
	p.renderBackground(ly, lcdc)
	if lcdc.SpriteEnabled {
		p.renderSprites(ly, lcdc)
	}
}

// renderBackground draws the background and window. While the
// background is disabled the line is blank (shade 0).
func (p *PPU) renderBackground(ly uint8, lcdc lcd.Controller) {
	if !lcdc.BackgroundEnabled {
		for x := 0; x < ScreenWidth; x++ {
			p.bgShades[x] = 0
			p.screen[ly][x] = p.Palette.GetColour(0)
		}
		return
	}

	bgp := p.b.Get(types.BGP)
	scy, scx := p.b.Get(types.SCY), p.b.Get(types.SCX)
	wy := p.b.Get(types.WY)
	winX := int(p.b.Get(types.WX)) - 7
	window := lcdc.WindowEnabled && ly >= wy

	for x := 0; x < ScreenWidth; x++ {
		tileMap := lcdc.BackgroundTileMapAddress
		px, py := uint8(x)+scx, ly+scy
		if window && x >= winX {
			tileMap = lcdc.WindowTileMapAddress
			px, py = uint8(x-winX), ly-wy
		}

		index := p.b.Get(tileMap + uint16(py/8)*32 + uint16(px/8))
		address := lcdc.TileAddress(index) + uint16(py%8)*2
		colour := colourNumber(p.b.Get(address), p.b.Get(address+1), 7-px%8)

		shade := palette.Shade(bgp, colour)
		p.bgShades[x] = shade
		p.screen[ly][x] = p.Palette.GetColour(shade)
	}
}

// colourNumber combines the two bit planes of a tile row into
// the colour number of the pixel at bit.
func colourNumber(low, high, bit uint8) uint8 {
	return bits.Val(high, bit)<<1 | bits.Val(low, bit)
}
