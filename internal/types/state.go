package types

import (
	"errors"
	"fmt"
	"os"
)

// ErrShortState is returned by State.Err when a read ran past
// the end of the serialized data.
var ErrShortState = errors.New("state: unexpected end of data")

// ErrStateMismatch is returned by State.Err when a stored buffer
// does not have the length of the buffer it is loaded into.
var ErrStateMismatch = errors.New("state: buffer length mismatch")

// Stater is implemented by every component that is part of a
// machine snapshot.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// State is a flat, ordered snapshot buffer. Components append
// their fields with the Write methods and read them back in
// the same order with the Read methods.
type State struct {
	raw          []byte
	readPosition int
	err          error
}

// NewState creates an empty state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x12000),
	}
}

// StateFromBytes creates a state that reads from raw.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// LoadStateFromFile reads a state previously written with
// SaveToFile.
func LoadStateFromFile(filename string) (*State, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return StateFromBytes(raw), nil
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

// WriteData appends data prefixed with its length, so that
// buffers whose size depends on the cartridge can be restored.
func (s *State) WriteData(data []byte) {
	s.Write32(uint32(len(data)))
	s.raw = append(s.raw, data...)
}

// take returns the next n bytes, or nil once the data has run
// out. The first short read is remembered in Err.
func (s *State) take(n int) []byte {
	if s.err != nil || s.readPosition+n > len(s.raw) {
		s.err = ErrShortState
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) Read32() uint32 {
	b := s.take(4)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (s *State) Read64() uint64 {
	lo := s.Read32()
	return uint64(lo) | uint64(s.Read32())<<32
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

// ReadData reads a length prefixed buffer into p. If the stored
// length differs from len(p) the state is considered corrupt.
func (s *State) ReadData(p []byte) {
	n := int(s.Read32())
	if s.err != nil {
		return
	}
	if n != len(p) {
		s.err = fmt.Errorf("%w: stored %d bytes, expected %d", ErrStateMismatch, n, len(p))
		return
	}
	if b := s.take(n); b != nil {
		copy(p, b)
	}
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

// ResetPosition rewinds the read position so the state can be
// loaded again.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.err = nil
}

// Bytes returns the serialized state.
func (s *State) Bytes() []byte {
	return s.raw
}

// SaveToFile writes the serialized state to filename.
func (s *State) SaveToFile(filename string) error {
	return os.WriteFile(filename, s.raw, 0644)
}
