package bits

import "testing"

func TestBits(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		if v := Set(0x00, 3); v != 0x08 {
			t.Errorf("expected 0x08, got 0x%02X", v)
		}
	})
	t.Run("reset", func(t *testing.T) {
		if v := Reset(0xFF, 7); v != 0x7F {
			t.Errorf("expected 0x7F, got 0x%02X", v)
		}
	})
	t.Run("test", func(t *testing.T) {
		if !Test(0x10, 4) || Test(0x10, 3) {
			t.Errorf("expected only bit 4 to be set in 0x10")
		}
	})
	t.Run("val", func(t *testing.T) {
		if Val(0x80, 7) != 1 || Val(0x80, 6) != 0 {
			t.Errorf("expected bit 7 of 0x80 to be 1 and bit 6 to be 0")
		}
	})
	t.Run("set to", func(t *testing.T) {
		if v := SetTo(0x00, 1, true); v != 0x02 {
			t.Errorf("expected 0x02, got 0x%02X", v)
		}
		if v := SetTo(0x02, 1, false); v != 0x00 {
			t.Errorf("expected 0x00, got 0x%02X", v)
		}
	})
}

func TestCarry(t *testing.T) {
	tests := []struct {
		name             string
		a, b, c          uint16
		mask             uint16
		max              uint32
		halfCarry, carry bool
	}{
		{"no carry", 0x01, 0x01, 0, 0x0F, 0xFF, false, false},
		{"half carry", 0x0F, 0x01, 0, 0x0F, 0xFF, true, false},
		{"full carry", 0xF0, 0x10, 0, 0x0F, 0xFF, false, true},
		{"both via carry in", 0xFF, 0x00, 1, 0x0F, 0xFF, true, true},
		{"sp low byte", 0xFF, 0x01, 0, 0x0F, 0xFF, true, true},
		{"bit 11", 0x0FFF, 0x0001, 0, 0x0FFF, 0xFFFF, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if h := HalfCarryAdd(tt.a, tt.b, tt.c, tt.mask); h != tt.halfCarry {
				t.Errorf("expected half carry %v, got %v", tt.halfCarry, h)
			}
			if c := CarryAdd(tt.a, tt.b, tt.c, tt.max); c != tt.carry {
				t.Errorf("expected carry %v, got %v", tt.carry, c)
			}
		})
	}

	if !HalfBorrow(0x10, 0x01, 0) {
		t.Errorf("expected half borrow for 0x10 - 0x01")
	}
	if HalfBorrow(0x1F, 0x0F, 0) {
		t.Errorf("expected no half borrow for 0x1F - 0x0F")
	}
	if !Borrow(0x00, 0x00, 1) {
		t.Errorf("expected borrow for 0x00 - 0x00 - 1")
	}
}
