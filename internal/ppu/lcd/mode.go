package lcd

// Mode represents a mode of the LCD, as reported in bits 0-1
// of STAT.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM mode. The CPU can access OAM but not the display RAM.
	OAM
	// VRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	VRAM
)

// interruptBits maps a mode to the STAT bit that enables the LCD
// interrupt when entering it. VRAM has no interrupt source.
var interruptBits = [4]uint8{
	HBlank: 1 << 3,
	VBlank: 1 << 4,
	OAM:    1 << 5,
}

// InterruptBit returns the STAT enable bit for the mode, or 0.
func InterruptBit(m Mode) uint8 {
	return interruptBits[m&0x3]
}
