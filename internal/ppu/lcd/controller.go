// Package lcd decodes the LCD control register and describes
// the modes reported by the LCD status register.
package lcd

import "github.com/thelolagemann/dmgcore/pkg/bits"

// Controller is the decoded value of the LCD Control Register
// (0xFF40):
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display              (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit.
	Enabled bool
	// WindowTileMapAddress is the start of the window tile map.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// UnsignedTileData is set when tiles are addressed from
	// 0x8000 with unsigned indexes, rather than from 0x8800 with
	// signed indexes.
	UnsignedTileData bool
	// BackgroundTileMapAddress is the start of the background
	// tile map.
	BackgroundTileMapAddress uint16
	// SpriteHeight is 8 or 16.
	SpriteHeight uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display bit.
	BackgroundEnabled bool
}

// Decode returns the Controller described by value.
func Decode(value uint8) Controller {
	c := Controller{
		Enabled:                  bits.Test(value, 7),
		WindowTileMapAddress:     0x9800,
		WindowEnabled:            bits.Test(value, 5),
		UnsignedTileData:         bits.Test(value, 4),
		BackgroundTileMapAddress: 0x9800,
		SpriteHeight:             8,
		SpriteEnabled:            bits.Test(value, 1),
		BackgroundEnabled:        bits.Test(value, 0),
	}
	if bits.Test(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	}
	if bits.Test(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	}
	if bits.Test(value, 2) {
		c.SpriteHeight = 16
	}
	return c
}

// TileAddress returns the address of the first byte of the given
// tile, using the addressing mode selected by bit 4.
func (c Controller) TileAddress(index uint8) uint16 {
	if c.UnsignedTileData {
		return 0x8000 + uint16(index)*16
	}
	return 0x8800 + uint16(int16(int8(index))+128)*16
}
