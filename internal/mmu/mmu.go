// Package mmu provides the memory map of the Game Boy. The MMU owns
// the 64kB address space, decodes every CPU access into the region
// it targets and applies the side effects of writing to the hardware
// registers.
package mmu

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Input is the joypad as seen by the MMU.
type Input interface {
	// Read returns the value of P1 for the given selection bits.
	Read(p1 uint8) uint8
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	// 64kB address space. Regions backed by the cartridge are not
	// read from here, apart from bank 0 which is copied in on load.
	mem [0x10000]uint8

	// 0x0000 - 0x00FF - BOOT ROM (256B), until BDIS is written
	bootROM       []byte
	bootROMMapped bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart       *cartridge.Cartridge
	ramEnabled bool

	// 0xFF00 - P1
	input Input

	// SC transfers are written here
	serial io.Writer

	Log log.Logger
}

// New returns a new MMU with an empty cartridge slot.
func New(l log.Logger) *MMU {
	if l == nil {
		l = log.NewNullLogger()
	}
	m := &MMU{
		Cart: cartridge.NewEmpty(),
		Log:  l,
	}
	m.Reset()
	return m
}

// AttachInput connects the joypad to P1.
func (m *MMU) AttachInput(in Input) {
	m.input = in
}

// AttachSerial sets the writer that bytes sent over the serial port
// are written to.
func (m *MMU) AttachSerial(w io.Writer) {
	m.serial = w
}

// SetBootROM maps rom over 0x0000 - 0x00FF. Memory is reset to the
// state the boot ROM expects.
func (m *MMU) SetBootROM(rom []byte) {
	m.bootROM = rom
	m.Reset()
}

// BootROMMapped reports whether the boot ROM is mapped.
func (m *MMU) BootROMMapped() bool {
	return m.bootROMMapped
}

// LoadCartridge inserts c and resets memory.
func (m *MMU) LoadCartridge(c *cartridge.Cartridge) {
	m.Cart = c
	m.Reset()
}

// Reset restores the address space to its power on state. Without a
// boot ROM the hardware registers hold the values the boot ROM leaves
// behind.
func (m *MMU) Reset() {
	m.mem = [0x10000]uint8{}
	m.ramEnabled = false
	m.bootROMMapped = len(m.bootROM) > 0

	for i := uint16(0); i < types.ROMBankNStart; i++ {
		m.mem[i] = m.Cart.Read(i)
	}

	if m.bootROMMapped {
		m.mem[types.P1] = 0xCF
		m.mem[types.IF] = 0xE0
		return
	}
	for address, value := range postBootRegisters {
		m.mem[address] = value
	}
}

// postBootRegisters are the hardware registers as left by the boot
// ROM.
var postBootRegisters = map[uint16]uint8{
	types.P1:   0xCF,
	types.SC:   0x7E,
	types.DIV:  0xAB,
	types.TAC:  0xF8,
	types.IF:   0xE1,
	types.NR10: 0x80,
	types.NR11: 0xBF,
	types.NR12: 0xF3,
	types.NR14: 0xBF,
	types.NR21: 0x3F,
	types.NR24: 0xBF,
	types.NR30: 0x7F,
	types.NR31: 0xFF,
	types.NR32: 0x9F,
	types.NR34: 0xBF,
	types.NR41: 0xFF,
	types.NR44: 0xBF,
	types.NR50: 0x77,
	types.NR51: 0xF3,
	types.NR52: 0xF1,
	types.LCDC: 0x91,
	types.STAT: 0x85,
	types.DMA:  0xFF,
	types.BGP:  0xFC,
	types.OBP0: 0xFF,
	types.OBP1: 0xFF,
}

// ReadByte returns the value at the given address.
func (m *MMU) ReadByte(address uint16) uint8 {
	switch {
	case address < 0x0100 && m.bootROMMapped:
		if int(address) < len(m.bootROM) {
			return m.bootROM[address]
		}
		return 0xFF
	case address < types.ROMBankNStart:
		return m.mem[address]
	case address < types.VRAMStart:
		return m.Cart.Read(address)
	case address < types.ExternalRAM:
		return m.mem[address]
	case address < types.WRAMStart:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.Cart.ReadRAM(address)
	case address < types.ProtectedStart:
		return m.mem[address]
	case address < types.IOStart:
		return 0xFF
	case address < types.HRAMStart:
		return m.readIO(address)
	default:
		return m.mem[address]
	}
}

func (m *MMU) readIO(address uint16) uint8 {
	switch {
	case address == types.P1:
		if m.input == nil {
			return 0xFF
		}
		return m.input.Read(m.mem[types.P1])
	case address == types.IF:
		return m.mem[address] | 0xE0
	case address >= types.NR10 && address <= types.NR52:
		// sound is not emulated
		return 0xFF
	case address == types.STAT:
		return m.mem[address] | 0x80
	case address >= types.UnmappedStart:
		return 0xFF
	default:
		return m.mem[address]
	}
}

// WriteByte writes the value to the given address.
func (m *MMU) WriteByte(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < types.VRAMStart:
		m.Cart.Write(address, value)
	case address < types.ExternalRAM:
		m.mem[address] = value
	case address < types.WRAMStart:
		if m.ramEnabled {
			m.Cart.WriteRAM(address, value)
		}
	case address < 0xDE00:
		m.mem[address] = value
		m.mem[address+0x2000] = value
	case address < types.EchoStart:
		m.mem[address] = value
	case address < types.OAMStart:
		m.mem[address] = value
		m.mem[address-0x2000] = value
	case address < types.ProtectedStart:
		m.mem[address] = value
	case address < types.IOStart:
		// protected
	case address < types.HRAMStart:
		m.writeIO(address, value)
	default:
		m.mem[address] = value
	}
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch address {
	case types.P1:
		m.mem[address] = 0xC0 | value&0x30
	case types.SC:
		m.mem[address] = value
		if value == 0x81 {
			m.transfer()
		}
	case types.DIV:
		m.mem[address] = 0
	case types.LY:
		// read only
	case types.STAT:
		m.mem[address] = 0x80 | value&0x78 | m.mem[address]&0x07
	case types.IF:
		m.mem[address] = value | 0xE0
	case types.DMA:
		m.mem[address] = value
		m.dma(value)
	case types.BDIS:
		if value != 0 && m.bootROMMapped {
			m.bootROMMapped = false
			m.Log.Debugf("boot ROM unmapped")
		}
	default:
		if address >= types.UnmappedStart {
			return
		}
		m.mem[address] = value
	}
}

// dma copies 160 bytes from (value << 8) into OAM.
func (m *MMU) dma(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.mem[types.OAMStart+i] = m.ReadByte(source + i)
	}
}

// transfer completes a serial transfer started on the internal clock.
// With nothing connected, the byte shifted in is 0xFF.
func (m *MMU) transfer() {
	if m.serial != nil {
		if _, err := m.serial.Write([]byte{m.mem[types.SB]}); err != nil {
			m.Log.Errorf("serial: %v", err)
		}
	}
	m.mem[types.SB] = 0xFF
	m.mem[types.SC] &^= types.Bit7
	m.mem[types.IF] |= interrupts.SerialFlag | 0xE0
}

// ReadWord returns the little endian 16-bit value at address.
func (m *MMU) ReadWord(address uint16) uint16 {
	return uint16(m.ReadByte(address)) | uint16(m.ReadByte(address+1))<<8
}

// WriteWord writes value to address in little endian order.
func (m *MMU) WriteWord(address uint16, value uint16) {
	m.WriteByte(address, uint8(value))
	m.WriteByte(address+1, uint8(value>>8))
}

// Get returns the value stored at address, bypassing any decoding.
func (m *MMU) Get(address uint16) uint8 {
	return m.mem[address]
}

// Set stores value at address, bypassing any decoding.
func (m *MMU) Set(address uint16, value uint8) {
	m.mem[address] = value
}

// Memory returns a copy of the flat address space.
func (m *MMU) Memory() []byte {
	b := make([]byte, len(m.mem))
	copy(b, m.mem[:])
	return b
}

// RAMEnabled reports whether the external RAM is enabled.
func (m *MMU) RAMEnabled() bool {
	return m.ramEnabled
}

var _ types.Stater = (*MMU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - mem ([]byte)
//   - ramEnabled (bool)
//   - bootROMMapped (bool)
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.mem[:])
	m.ramEnabled = s.ReadBool()
	m.bootROMMapped = s.ReadBool() && len(m.bootROM) > 0
}

// Save implements the types.Stater interface.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.mem[:])
	s.WriteBool(m.ramEnabled)
	s.WriteBool(m.bootROMMapped)
}
