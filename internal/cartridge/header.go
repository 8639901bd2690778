package cartridge

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Type is the cartridge type byte at 0x0147, which describes the
// bank controller and any additional hardware.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	MBC7              Type = 0x22
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:               "ROM",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	MBC2:              "MBC2",
	MBC2BATT:          "MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "MMM01",
	MMM01RAM:          "MMM01+RAM",
	MMM01RAMBATT:      "MMM01+RAM+BATTERY",
	MBC3TIMERBATT:     "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT:  "MBC3+TIMER+RAM+BATTERY",
	MBC3:              "MBC3",
	MBC3RAM:           "MBC3+RAM",
	MBC3RAMBATT:       "MBC3+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	POCKETCAMERA:      "POCKET CAMERA",
	MBC7:              "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	BANDAITAMA5:       "BANDAI TAMA5",
	HUDSONHUC3:        "HuC3",
	HUDSONHUC1:        "HuC1+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// HasBattery reports whether the cartridge keeps its external
// RAM powered, so that it should be persisted between runs.
func (t Type) HasBattery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT, MMM01RAMBATT,
		MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3RAMBATT, MBC5RAMBATT,
		MBC5RUMBLERAMBATT, MBC7, HUDSONHUC1:
		return true
	}
	return false
}

// ramSizes maps the RAM size code at 0x0149 to the size of the
// external RAM and the number of 8KiB banks it spans.
var ramSizes = map[uint8]struct {
	size  uint
	banks uint8
}{
	0x00: {0, 0},
	0x01: {2 * 1024, 1},
	0x02: {8 * 1024, 1},
	0x03: {32 * 1024, 4},
	0x04: {128 * 1024, 16},
	0x05: {64 * 1024, 8},
}

const (
	// HeaderEnd is the first address after the cartridge header.
	// Images shorter than this cannot be loaded.
	HeaderEnd = 0x0150
	// MaxROMSizeCode is the largest supported ROM size code,
	// describing 512 banks of 16KiB.
	MaxROMSizeCode = 0x08
)

// Header is the cartridge header found at 0x0100 - 0x014F.
type Header struct {
	// 0x0134-0x0143 - Title of the game, padded with zeroes.
	Title string
	// 0x0147 - CartridgeType selects the bank controller.
	CartridgeType Type
	// 0x0148 - ROMSizeCode, the ROM spans 2 << code banks.
	ROMSizeCode uint8
	// 0x0149 - RAMSizeCode, see ramSizes.
	RAMSizeCode uint8
	// 0x014D - HeaderChecksum over 0x0134 - 0x014C.
	HeaderChecksum uint8

	ROMBanks uint16 // number of 16KiB ROM banks
	RAMBanks uint8  // number of 8KiB RAM banks
	RAMSize  uint   // size of the external RAM in bytes
}

// parseHeader parses the header of the given ROM image.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < HeaderEnd {
		return Header{}, fmt.Errorf("%w: image is %d bytes, header ends at 0x%04X", ErrMalformedImage, len(rom), HeaderEnd)
	}

	h := Header{
		Title:          strings.TrimRight(string(rom[0x134:0x144]), "\x00"),
		CartridgeType:  Type(rom[0x147]),
		ROMSizeCode:    rom[0x148],
		RAMSizeCode:    rom[0x149],
		HeaderChecksum: rom[0x14D],
	}

	if h.ROMSizeCode > MaxROMSizeCode {
		return Header{}, fmt.Errorf("%w: unknown ROM size code 0x%02X", ErrMalformedImage, h.ROMSizeCode)
	}
	h.ROMBanks = 2 << h.ROMSizeCode

	if ram, ok := ramSizes[h.RAMSizeCode]; ok {
		h.RAMSize = ram.size
		h.RAMBanks = ram.banks
	}

	return h, nil
}

// headerChecksum computes the checksum the boot ROM verifies.
func headerChecksum(rom []byte) uint8 {
	var x uint8
	for _, b := range rom[0x134:0x14D] {
		x = x - b - 1
	}
	return x
}

// Validate checks the header against the image it was parsed
// from. The problems it reports do not prevent the cartridge
// from running, and are returned together as a
// *multierror.Error, or nil if there are none.
func (h Header) Validate(rom []byte) error {
	var result *multierror.Error

	if sum := headerChecksum(rom); sum != h.HeaderChecksum {
		result = multierror.Append(result, fmt.Errorf("header checksum mismatch: expected 0x%02X, computed 0x%02X", h.HeaderChecksum, sum))
	}
	if declared := int(h.ROMBanks) * 0x4000; len(rom) < declared {
		result = multierror.Append(result, fmt.Errorf("image is %d bytes, header declares %d", len(rom), declared))
	}
	if _, ok := ramSizes[h.RAMSizeCode]; !ok {
		result = multierror.Append(result, fmt.Errorf("unknown RAM size code 0x%02X", h.RAMSizeCode))
	}

	return result.ErrorOrNil()
}

func (h Header) String() string {
	return fmt.Sprintf("%s | %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, int(h.ROMBanks)*16, h.RAMSize/1024)
}
