package mmu

import (
	"bytes"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// testCartridge returns an MBC1+RAM cartridge of 4 ROM banks, where the
// first byte of every bank holds the bank number.
func testCartridge(t *testing.T) *cartridge.Cartridge {
	rom := make([]byte, 4*0x4000)
	for i := 0; i < 4; i++ {
		rom[i*0x4000] = uint8(i)
	}
	rom[0x147] = uint8(cartridge.MBC1RAM)
	rom[0x148] = 0x01
	rom[0x149] = 0x02
	c, err := cartridge.New(rom)
	if err != nil {
		t.Fatalf("failed to create cartridge: %v", err)
	}
	return c
}

func newTestMMU(t *testing.T) *MMU {
	m := New(nil)
	m.LoadCartridge(testCartridge(t))
	return m
}

func TestMMU_Regions(t *testing.T) {
	m := newTestMMU(t)

	t.Run("bank 0", func(t *testing.T) {
		if m.ReadByte(0x0000) != 0 || m.ReadByte(0x0147) != uint8(cartridge.MBC1RAM) {
			t.Errorf("expected bank 0 to be mapped at 0x0000")
		}
	})
	t.Run("bank switch", func(t *testing.T) {
		if b := m.ReadByte(0x4000); b != 1 {
			t.Errorf("expected bank 1 to be mapped by default, got %d", b)
		}
		m.WriteByte(0x2000, 0x03)
		if b := m.ReadByte(0x4000); b != 3 {
			t.Errorf("expected bank 3 to be mapped, got %d", b)
		}
		m.WriteByte(0x2000, 0x00)
		if b := m.ReadByte(0x4000); b != 1 {
			t.Errorf("expected writing 0 to map bank 1, got %d", b)
		}
	})
	t.Run("rom is read only", func(t *testing.T) {
		m.WriteByte(0x0000, 0x42)
		if m.ReadByte(0x0000) != 0 {
			t.Errorf("expected ROM to be unchanged")
		}
	})
	t.Run("echo", func(t *testing.T) {
		m.WriteByte(0xC123, 0x42)
		if v := m.ReadByte(0xE123); v != 0x42 {
			t.Errorf("expected echo RAM to mirror work RAM, got 0x%02X", v)
		}
		m.WriteByte(0xF000, 0x24)
		if v := m.ReadByte(0xD000); v != 0x24 {
			t.Errorf("expected work RAM to mirror echo RAM, got 0x%02X", v)
		}
	})
	t.Run("protected", func(t *testing.T) {
		m.WriteByte(0xFEA0, 0x42)
		if v := m.ReadByte(0xFEA0); v != 0xFF {
			t.Errorf("expected 0xFF from the protected region, got 0x%02X", v)
		}
		if m.Get(0xFEA0) != 0 {
			t.Errorf("expected the write to be dropped")
		}
	})
	t.Run("unmapped", func(t *testing.T) {
		m.WriteByte(0xFF60, 0x42)
		if v := m.ReadByte(0xFF60); v != 0xFF {
			t.Errorf("expected 0xFF from unmapped I/O, got 0x%02X", v)
		}
	})
	t.Run("sound", func(t *testing.T) {
		if v := m.ReadByte(types.NR52); v != 0xFF {
			t.Errorf("expected sound registers to read 0xFF, got 0x%02X", v)
		}
	})
	t.Run("high ram", func(t *testing.T) {
		m.WriteWord(0xFF80, 0xBEEF)
		if v := m.ReadWord(0xFF80); v != 0xBEEF {
			t.Errorf("expected 0xBEEF, got 0x%04X", v)
		}
		if m.ReadByte(0xFF80) != 0xEF {
			t.Errorf("expected little endian storage")
		}
	})
}

func TestMMU_ExternalRAM(t *testing.T) {
	m := newTestMMU(t)

	m.WriteByte(0xA000, 0x42)
	if v := m.ReadByte(0xA000); v != 0xFF {
		t.Errorf("expected 0xFF while RAM is disabled, got 0x%02X", v)
	}

	m.WriteByte(0x0000, 0x0A)
	if v := m.ReadByte(0xA000); v != 0x00 {
		t.Errorf("expected the disabled write to be dropped, got 0x%02X", v)
	}
	m.WriteByte(0xA000, 0x42)
	if v := m.ReadByte(0xA000); v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02X", v)
	}
	if m.Cart.RAM()[0] != 0x42 {
		t.Errorf("expected the write to reach the cartridge RAM")
	}

	m.WriteByte(0x1FFF, 0x1B)
	if m.RAMEnabled() {
		t.Errorf("expected only a low nibble of 0xA to enable RAM")
	}
}

func TestMMU_Registers(t *testing.T) {
	t.Run("DIV", func(t *testing.T) {
		m := newTestMMU(t)
		if m.ReadByte(types.DIV) != 0xAB {
			t.Fatalf("expected DIV to start at 0xAB")
		}
		m.WriteByte(types.DIV, 0x42)
		if v := m.ReadByte(types.DIV); v != 0 {
			t.Errorf("expected writing DIV to reset it, got 0x%02X", v)
		}
	})
	t.Run("LY", func(t *testing.T) {
		m := newTestMMU(t)
		m.Set(types.LY, 0x10)
		m.WriteByte(types.LY, 0x42)
		if v := m.ReadByte(types.LY); v != 0x10 {
			t.Errorf("expected writes to LY to be ignored, got 0x%02X", v)
		}
	})
	t.Run("STAT", func(t *testing.T) {
		m := newTestMMU(t)
		m.Set(types.STAT, 0x06)
		m.WriteByte(types.STAT, 0xFF)
		if v := m.ReadByte(types.STAT); v != 0xFE {
			t.Errorf("expected the status bits to be read only, got 0x%02X", v)
		}
	})
	t.Run("IF", func(t *testing.T) {
		m := newTestMMU(t)
		m.WriteByte(types.IF, 0x01)
		if v := m.ReadByte(types.IF); v != 0xE1 {
			t.Errorf("expected the upper bits of IF to be set, got 0x%02X", v)
		}
	})
	t.Run("DMA", func(t *testing.T) {
		m := newTestMMU(t)
		for i := uint16(0); i < 0xA0; i++ {
			m.WriteByte(0xC100+i, uint8(i))
		}
		m.WriteByte(types.DMA, 0xC1)
		for i := uint16(0); i < 0xA0; i++ {
			if v := m.ReadByte(0xFE00 + i); v != uint8(i) {
				t.Fatalf("expected 0x%02X at 0x%04X, got 0x%02X", i, 0xFE00+i, v)
			}
		}
	})
}

type testInput uint8

func (i testInput) Read(p1 uint8) uint8 { return p1 | uint8(i) }

func TestMMU_Input(t *testing.T) {
	m := newTestMMU(t)
	m.AttachInput(testInput(0x0F))
	m.WriteByte(types.P1, 0x10)
	if v := m.ReadByte(types.P1); v != 0xDF {
		t.Errorf("expected the selection bits to reach the joypad, got 0x%02X", v)
	}
}

func TestMMU_Serial(t *testing.T) {
	m := newTestMMU(t)
	var out bytes.Buffer
	m.AttachSerial(&out)

	for _, c := range []byte("ok") {
		m.WriteByte(types.SB, c)
		m.WriteByte(types.SC, 0x81)
	}
	if out.String() != "ok" {
		t.Errorf("expected serial output \"ok\", got %q", out.String())
	}
	if m.ReadByte(types.SC)&types.Bit7 != 0 {
		t.Errorf("expected the transfer to complete")
	}
	if m.ReadByte(types.IF)&interrupts.SerialFlag == 0 {
		t.Errorf("expected the serial interrupt to be requested")
	}
}

func TestMMU_BootROM(t *testing.T) {
	m := newTestMMU(t)
	boot := bytes.Repeat([]byte{0x31}, 0x100)
	m.SetBootROM(boot)

	if v := m.ReadByte(0x0000); v != 0x31 {
		t.Errorf("expected the boot ROM to be mapped, got 0x%02X", v)
	}
	if v := m.ReadByte(0x0147); v != uint8(cartridge.MBC1RAM) {
		t.Errorf("expected the cartridge past 0x0100, got 0x%02X", v)
	}
	m.WriteByte(types.BDIS, 0x01)
	if m.BootROMMapped() || m.ReadByte(0x0000) != 0x00 {
		t.Errorf("expected the boot ROM to be unmapped")
	}
}

func TestMMU_State(t *testing.T) {
	m := newTestMMU(t)
	m.WriteByte(0x0000, 0x0A)
	m.WriteByte(0xC000, 0x42)

	st := types.NewState()
	m.Save(st)

	r := New(nil)
	r.LoadCartridge(m.Cart)
	r.Load(types.StateFromBytes(st.Bytes()))
	if r.ReadByte(0xC000) != 0x42 || !r.RAMEnabled() {
		t.Errorf("expected the restored MMU to match")
	}
	if !bytes.Equal(r.Memory(), m.Memory()) {
		t.Errorf("expected identical memory")
	}
}
