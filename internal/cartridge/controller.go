package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

var (
	// ErrMalformedImage is returned when a ROM image cannot be
	// loaded at all.
	ErrMalformedImage = errors.New("malformed cartridge image")
	// ErrUnsupportedController is returned alongside the
	// unsupported controller for cartridge types that have no
	// bank controller implementation.
	ErrUnsupportedController = errors.New("unsupported bank controller")
)

// Kind identifies a BankController implementation.
type Kind uint8

const (
	// KindROM is a cartridge without a bank controller.
	KindROM Kind = iota
	// KindMBC1 is the MBC1 bank controller.
	KindMBC1
	// KindUnsupported is any cartridge type whose bank controller
	// is not implemented. It behaves as KindROM.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindROM:
		return "ROM"
	case KindMBC1:
		return "MBC1"
	default:
		return "unsupported"
	}
}

// BankController selects which ROM and RAM banks are visible
// in the switchable windows of the address space.
type BankController interface {
	// Kind returns which implementation this is.
	Kind() Kind
	// Write handles a write to 0x2000 - 0x7FFF.
	Write(address uint16, value uint8)
	// ROMBank returns the bank mapped at 0x4000 - 0x7FFF.
	ROMBank() uint16
	// RAMBank returns the bank mapped at 0xA000 - 0xBFFF.
	RAMBank() uint8
	// Mode returns the banking mode.
	Mode() uint8

	types.Stater
}

// NewBankController returns the controller for the given
// header. Unimplemented types return the unsupported
// controller together with an ErrUnsupportedController.
func NewBankController(h Header) (BankController, error) {
	switch h.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return &romController{}, nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return newMBC1(h.ROMBanks, h.RAMBanks), nil
	}

	return &unsupportedController{t: h.CartridgeType},
		fmt.Errorf("%w: %s", ErrUnsupportedController, h.CartridgeType)
}

// romController maps the second bank of the image and ignores
// every write.
type romController struct{}

func (r *romController) Kind() Kind          { return KindROM }
func (r *romController) Write(uint16, uint8) {}
func (r *romController) ROMBank() uint16     { return 1 }
func (r *romController) RAMBank() uint8      { return 0 }
func (r *romController) Mode() uint8         { return 0 }
func (r *romController) Load(*types.State)   {}
func (r *romController) Save(*types.State)   {}

// unsupportedController stands in for bank controllers that
// have not been implemented.
type unsupportedController struct {
	romController
	t Type
}

func (u *unsupportedController) Kind() Kind { return KindUnsupported }
