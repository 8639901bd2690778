package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Sprite attribute flags, stored in the 4th byte of each OAM
// entry.
const (
	// SpritePriority hides the sprite behind any background pixel
	// that is not shade 0.
	SpritePriority = types.Bit7
	// SpriteFlipY flips the sprite vertically.
	SpriteFlipY = types.Bit6
	// SpriteFlipX flips the sprite horizontally.
	SpriteFlipX = types.Bit5
	// SpritePalette selects OBP1 instead of OBP0.
	SpritePalette = types.Bit4
)

// renderSprites draws the sprites on the line. Entries are drawn
// from the end of OAM to the start, so that when sprites overlap
// the one with the lower index ends up on top.
func (p *PPU) renderSprites(ly uint8, lcdc lcd.Controller) {
	height := int(lcdc.SpriteHeight)

	for i := 39; i >= 0; i-- {
		entry := types.OAMStart + uint16(i*4)
		y := int(p.b.Get(entry)) - 16
		x := int(p.b.Get(entry+1)) - 8
		tile := p.b.Get(entry + 2)
		attributes := p.b.Get(entry + 3)

		// an entry at the origin is treated as unused
		if x == 0 && y == 0 {
			continue
		}

		line := int(ly) - y
		if line < 0 || line >= height {
			continue
		}
		if height == 16 {
			tile &^= 1
		}
		if attributes&SpriteFlipY != 0 {
			line = height - 1 - line
		}

		address := 0x8000 + uint16(tile)*16 + uint16(line)*2
		low, high := p.b.Get(address), p.b.Get(address+1)

		obp := p.b.Get(types.OBP0)
		if attributes&SpritePalette != 0 {
			obp = p.b.Get(types.OBP1)
		}

		for px := 0; px < 8; px++ {
			sx := x + px
			if sx < 0 || sx >= ScreenWidth {
				continue
			}

			bit := uint8(7 - px)
			if attributes&SpriteFlipX != 0 {
				bit = uint8(px)
			}
			colour := colourNumber(low, high, bit)
			if colour == 0 {
				continue
			}
			if attributes&SpritePriority != 0 && p.bgShades[sx] != 0 {
				continue
			}

			p.screen[ly][sx] = p.Palette.GetColour(palette.Shade(obp, colour))
		}
	}
}
