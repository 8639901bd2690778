package types

// HardwareAddress is the address of a memory mapped hardware
// register. The DMG maps its registers to 0xFF00 - 0xFF7F and
// to 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects which half of the input matrix (directions or
	// actions) is visible in its low nibble.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted out of (and into) the
	// serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port. Writing 0x81 starts a transfer
	// on the internal clock.
	SC HardwareAddress = 0xFF02
	// DIV is incremented every 256 cycles. Writing any value to
	// it resets it to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC. When it
	// overflows it is reloaded from TMA and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is loaded into TIMA when TIMA overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2:   Timer Enable
	//  Bit 1-0: Input Clock Select
	//           00: 1024 cycles
	//           01: 16 cycles
	//           10: 64 cycles
	//           11: 256 cycles
	TAC HardwareAddress = 0xFF07
	// IF requests interrupts. The upper 3 bits always read as 1.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h)
	//  Bit 2: Timer Interrupt Request (INT 50h)
	//  Bit 3: Serial Interrupt Request (INT 58h)
	//  Bit 4: Joypad Interrupt Request (INT 60h)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26

	// LCDC controls the LCD.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT reports the LCD mode and selects the sources of the
	// LCD STAT interrupt. Bit 7 always reads as 1.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable)
	//  Bit 5: Mode 2 OAM Interrupt         (1=Enable)
	//  Bit 4: Mode 1 V-Blank Interrupt     (1=Enable)
	//  Bit 3: Mode 0 H-Blank Interrupt     (1=Enable)
	//  Bit 2: Coincidence Flag             (Read Only)
	//  Bit 1-0: Mode Flag                  (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll position of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll position of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the scanline currently being processed, 0-153.
	// Writes from the CPU are ignored.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY. On a match the coincidence
	// flag in STAT is set.
	LYC HardwareAddress = 0xFF45
	// DMA copies 160 bytes from (value << 8) into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP maps background colour numbers to shades.
	//
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 maps sprite colour numbers to shades for sprites
	// with attribute bit 4 clear. Colour 0 is transparent.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is OBP0 for sprites with attribute bit 4 set.
	OBP1 HardwareAddress = 0xFF49
	// WY is the top edge of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the left edge of the window, plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS unmaps the boot ROM when a non-zero value is written.
	BDIS HardwareAddress = 0xFF50
	// IE enables interrupts, using the same layout as IF.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the DMG address space.
const (
	ROMBank0Start  uint16 = 0x0000
	ROMBankNStart  uint16 = 0x4000
	VRAMStart      uint16 = 0x8000
	ExternalRAM    uint16 = 0xA000
	WRAMStart      uint16 = 0xC000
	EchoStart      uint16 = 0xE000
	OAMStart       uint16 = 0xFE00
	ProtectedStart uint16 = 0xFEA0
	IOStart        uint16 = 0xFF00
	UnmappedStart  uint16 = 0xFF4C
	HRAMStart      uint16 = 0xFF80
)
