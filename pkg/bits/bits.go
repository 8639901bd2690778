// Package bits provides the bit manipulation helpers shared by
// the CPU and the peripherals.
package bits

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// SetTo sets or resets the bit at the given index depending on v.
func SetTo(b, i uint8, v bool) uint8 {
	if v {
		return Set(b, i)
	}
	return Reset(b, i)
}

// HalfCarryAdd reports whether adding a, b and carry overflows
// the bits covered by mask, e.g. 0x0F for the low nibble of an
// 8-bit add or 0x0FFF for bit 11 of a 16-bit add.
func HalfCarryAdd(a, b, carry, mask uint16) bool {
	return (a&mask)+(b&mask)+carry > mask
}

// CarryAdd reports whether adding a, b and carry exceeds max.
func CarryAdd(a, b, carry uint16, max uint32) bool {
	return uint32(a)+uint32(b)+uint32(carry) > max
}

// HalfBorrow reports whether subtracting b and carry from a
// borrows from bit 4.
func HalfBorrow(a, b, carry uint8) bool {
	return int(a&0x0F)-int(b&0x0F)-int(carry) < 0
}

// Borrow reports whether subtracting b and carry from a borrows.
func Borrow(a, b, carry uint8) bool {
	return int(a)-int(b)-int(carry) < 0
}
