package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// mbc1 is the MBC1 bank controller. It supports up to 128 ROM
// banks and 4 RAM banks.
//
//	0x2000-0x3FFF - lower 5 bits of the ROM bank
//	0x4000-0x5FFF - upper 2 bits of the ROM bank, or RAM bank
//	0x6000-0x7FFF - banking mode
type mbc1 struct {
	romBank uint16
	ramBank uint8
	mode    uint8

	romMask  uint16
	ramBanks uint8
}

func newMBC1(romBanks uint16, ramBanks uint8) *mbc1 {
	return &mbc1{
		romBank:  1,
		romMask:  romBanks - 1,
		ramBanks: ramBanks,
	}
}

func (m *mbc1) Kind() Kind { return KindMBC1 }

func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		// RAM enable is handled by the memory map
	case address < 0x4000:
		m.romBank = (m.romBank & 0x60) | uint16(value&0x1F)
		m.fixBank()
	case address < 0x6000:
		if m.mode == 0 {
			m.romBank = (m.romBank & 0x1F) | (uint16(value&0x03)<<5)&m.romMask
			m.fixBank()
		} else if m.ramBanks > 1 {
			m.ramBank = value & 0x03
		}
	case address < 0x8000:
		m.mode = value & 0x01
	}
}

// fixBank maps the unselectable banks 0x00, 0x20, 0x40 and 0x60
// to the bank after them.
func (m *mbc1) fixBank() {
	switch m.romBank {
	case 0x00, 0x20, 0x40, 0x60:
		m.romBank++
	}
}

func (m *mbc1) ROMBank() uint16 { return m.romBank }
func (m *mbc1) RAMBank() uint8  { return m.ramBank }
func (m *mbc1) Mode() uint8     { return m.mode }

func (m *mbc1) Load(s *types.State) {
	m.romBank = s.Read16()
	m.ramBank = s.Read8()
	m.mode = s.Read8()
}

func (m *mbc1) Save(s *types.State) {
	s.Write16(m.romBank)
	s.Write8(m.ramBank)
	s.Write8(m.mode)
}
