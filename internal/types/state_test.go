package types

import (
	"errors"
	"testing"
)

func TestState(t *testing.T) {
	s := NewState()
	s.Write8(0x12)
	s.Write16(0x3456)
	s.Write32(0x789ABCDE)
	s.Write64(0x0102030405060708)
	s.WriteBool(true)
	s.WriteData([]byte{1, 2, 3})

	r := StateFromBytes(s.Bytes())
	if v := r.Read8(); v != 0x12 {
		t.Errorf("expected 0x12, got 0x%02X", v)
	}
	if v := r.Read16(); v != 0x3456 {
		t.Errorf("expected 0x3456, got 0x%04X", v)
	}
	if v := r.Read32(); v != 0x789ABCDE {
		t.Errorf("expected 0x789ABCDE, got 0x%08X", v)
	}
	if v := r.Read64(); v != 0x0102030405060708 {
		t.Errorf("expected 0x0102030405060708, got 0x%016X", v)
	}
	if !r.ReadBool() {
		t.Errorf("expected true, got false")
	}
	data := make([]byte, 3)
	r.ReadData(data)
	if data[0] != 1 || data[1] != 2 || data[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", data)
	}
	if r.Err() != nil {
		t.Errorf("expected no error, got %v", r.Err())
	}

	t.Run("short read", func(t *testing.T) {
		r.Read8()
		if !errors.Is(r.Err(), ErrShortState) {
			t.Errorf("expected ErrShortState, got %v", r.Err())
		}
	})
	t.Run("length mismatch", func(t *testing.T) {
		r.ResetPosition()
		r.Read8()
		r.Read16()
		r.Read32()
		r.Read64()
		r.ReadBool()
		r.ReadData(make([]byte, 2))
		if !errors.Is(r.Err(), ErrStateMismatch) {
			t.Errorf("expected ErrStateMismatch, got %v", r.Err())
		}
	})
}
