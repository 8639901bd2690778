package types

// RegisterPair is a 16-bit register that may also be accessed
// as two 8-bit halves. The CPU has 4 general purpose pairs (AF,
// BC, DE and HL) along with SP and PC, which are only ever used
// as a whole.
type RegisterPair uint16

// Uint16 returns the value of the pair.
func (r RegisterPair) Uint16() uint16 {
	return uint16(r)
}

// SetUint16 sets the value of the pair.
func (r *RegisterPair) SetUint16(value uint16) {
	*r = RegisterPair(value)
}

// High returns the upper 8 bits of the pair.
func (r RegisterPair) High() uint8 {
	return uint8(r >> 8)
}

// Low returns the lower 8 bits of the pair.
func (r RegisterPair) Low() uint8 {
	return uint8(r)
}

// SetHigh sets the upper 8 bits of the pair.
func (r *RegisterPair) SetHigh(value uint8) {
	*r = RegisterPair(uint16(value)<<8 | uint16(*r)&0x00FF)
}

// SetLow sets the lower 8 bits of the pair.
func (r *RegisterPair) SetLow(value uint8) {
	*r = RegisterPair(uint16(*r)&0xFF00 | uint16(value))
}

// Registers is the register file of the CPU.
type Registers struct {
	AF RegisterPair
	BC RegisterPair
	DE RegisterPair
	HL RegisterPair
	SP RegisterPair
	PC RegisterPair
}

// Register indexes, in the order they are encoded in opcodes.
// Index 6 refers to the byte addressed by HL.
const (
	RegB uint8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHL
	RegA
)

// RegisterNames maps a register index to its mnemonic.
var RegisterNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
