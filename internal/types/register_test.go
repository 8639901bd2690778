package types

import "testing"

func TestRegisterPair(t *testing.T) {
	var r RegisterPair
	r.SetUint16(0x1234)
	if r.High() != 0x12 || r.Low() != 0x34 {
		t.Errorf("expected 0x12/0x34, got 0x%02X/0x%02X", r.High(), r.Low())
	}

	t.Run("set high", func(t *testing.T) {
		r.SetHigh(0xAB)
		if r.Uint16() != 0xAB34 {
			t.Errorf("expected 0xAB34, got 0x%04X", r.Uint16())
		}
	})
	t.Run("set low", func(t *testing.T) {
		r.SetLow(0xCD)
		if r.Uint16() != 0xABCD {
			t.Errorf("expected 0xABCD, got 0x%04X", r.Uint16())
		}
	})
	t.Run("copies are independent", func(t *testing.T) {
		c := r
		c.SetLow(0x00)
		if r.Low() != 0xCD {
			t.Errorf("expected original low byte to remain 0xCD, got 0x%02X", r.Low())
		}
	})
}
