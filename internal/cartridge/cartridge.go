// Package cartridge provides the game cartridge: the ROM image,
// its header, the bank controller selected by the header and
// any external RAM.
package cartridge

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Cartridge is a loaded ROM image.
type Cartridge struct {
	Header
	BankController

	rom []byte
	ram []byte
}

// New parses rom and returns the cartridge it describes. Images
// that are too short to hold a header, or that declare an unknown
// ROM size, return ErrMalformedImage. A cartridge type without a
// bank controller implementation still returns a usable cartridge,
// along with an error wrapping ErrUnsupportedController.
func New(rom []byte) (*Cartridge, error) {
	h, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	controller, err := NewBankController(h)

	c := &Cartridge{
		Header:         h,
		BankController: controller,
		rom:            rom,
		ram:            make([]byte, h.RAMSize),
	}
	return c, err
}

// NewEmpty returns a cartridge with no image, as seen when the
// slot is empty. Every read returns 0xFF.
func NewEmpty() *Cartridge {
	return &Cartridge{
		Header:         Header{ROMBanks: 2},
		BankController: &romController{},
	}
}

// ROM returns the raw ROM image.
func (c *Cartridge) ROM() []byte {
	return c.rom
}

// RAM returns the external RAM. The slice is shared with the
// cartridge, so it may be used to persist and restore battery
// backed saves.
func (c *Cartridge) RAM() []byte {
	return c.ram
}

// Read returns the byte at address in 0x0000 - 0x7FFF. The
// switchable window reads the controller's bank, masked to the
// number of banks declared by the header.
func (c *Cartridge) Read(address uint16) uint8 {
	index := int(address)
	if address >= 0x4000 {
		bank := c.ROMBank() & (c.ROMBanks - 1)
		index = int(bank)*0x4000 + int(address-0x4000)
	}
	if index >= len(c.rom) {
		return 0xFF
	}
	return c.rom[index]
}

// ramIndex returns the index into the external RAM for an
// address in 0xA000 - 0xBFFF. Banked RAM is only selected in
// mode 1.
func (c *Cartridge) ramIndex(address uint16) int {
	bank := 0
	if c.Mode() == 1 {
		bank = int(c.RAMBank())
	}
	return bank*0x2000 + int(address-0xA000)
}

// ReadRAM returns the byte at address in 0xA000 - 0xBFFF.
func (c *Cartridge) ReadRAM(address uint16) uint8 {
	if i := c.ramIndex(address); i < len(c.ram) {
		return c.ram[i]
	}
	return 0xFF
}

// WriteRAM writes the byte at address in 0xA000 - 0xBFFF.
func (c *Cartridge) WriteRAM(address uint16, value uint8) {
	if i := c.ramIndex(address); i < len(c.ram) {
		c.ram[i] = value
	}
}

// Unsupported reports whether the cartridge type has no bank
// controller implementation.
func (c *Cartridge) Unsupported() bool {
	return c.Kind() == KindUnsupported
}

// HasBattery reports whether the external RAM is battery backed.
func (c *Cartridge) HasBattery() bool {
	return c.CartridgeType.HasBattery()
}

var _ types.Stater = (*Cartridge)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - BankController (types.Stater)
//   - RAM ([]byte)
func (c *Cartridge) Load(s *types.State) {
	c.BankController.Load(s)
	s.ReadData(c.ram)
}

// Save implements the types.Stater interface.
func (c *Cartridge) Save(s *types.State) {
	c.BankController.Save(s)
	s.WriteData(c.ram)
}
