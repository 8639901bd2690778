package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalInstruction is wrapped by every IllegalInstructionError.
var ErrIllegalInstruction = errors.New("cpu: illegal instruction")

// IllegalInstructionError is the fault recorded when the CPU fetches
// one of the opcodes that lock up the hardware.
type IllegalInstructionError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("cpu: illegal instruction 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *IllegalInstructionError) Unwrap() error {
	return ErrIllegalInstruction
}
