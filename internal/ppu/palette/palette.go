// Package palette provides the RGB shades the four DMG grey
// levels are drawn with.
package palette

import (
	"fmt"
	"sort"
	"strings"
)

// Palette represents a palette. A palette is an array of 4 RGB values,
// from the lightest shade (0) to the darkest (3).
type Palette struct {
	Colors [4][3]uint8
}

var (
	// Greyscale is a neutral grey palette.
	Greyscale = Palette{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC},
			{0x77, 0x77, 0x77},
			{0x00, 0x00, 0x00},
		},
	}
	// Green attempts to emulate the colours of the original
	// DMG screen, and is the default palette.
	Green = Palette{
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	}
	// Pocket mimics the slightly blue greys of the pocket model.
	Pocket = Palette{
		Colors: [4][3]uint8{
			{0xC4, 0xCF, 0xA1},
			{0x8B, 0x95, 0x6D},
			{0x4D, 0x53, 0x3C},
			{0x1F, 0x1F, 0x1F},
		},
	}
)

var byName = map[string]Palette{
	"greyscale": Greyscale,
	"green":     Green,
	"pocket":    Pocket,
}

// ByName returns the palette registered under name.
func ByName(name string) (Palette, error) {
	p, ok := byName[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("palette: unknown palette %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the names of the available palettes.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetColour returns the RGB value of the given shade.
func (p Palette) GetColour(shade uint8) [3]uint8 {
	return p.Colors[shade&0x3]
}

// Shade maps a 2-bit colour number through a palette register
// (BGP, OBP0 or OBP1) to one of the 4 shades.
func Shade(register, colour uint8) uint8 {
	return (register >> (colour * 2)) & 0x3
}
