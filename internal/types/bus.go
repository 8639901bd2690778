package types

// Bus is the raw view of the address space used by the
// peripherals to update their own registers. Get and Set
// bypass the side effects applied to CPU accesses, such as
// DIV resetting on write or LY ignoring writes.
type Bus interface {
	Get(address uint16) uint8
	Set(address uint16, value uint8)
}
