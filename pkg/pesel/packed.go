package pesel

import (
	"fmt"
	"time"
)

// Packed stores a validated PESEL inside a single uint64 with one bit slot
// per field and five unused padding bits between slots, so every accessor
// is a constant shift and mask with no division. Each slot is sized to its
// field's true range; in particular the ordinal slot is 14 bits wide since
// 0-9999 does not fit in fewer.
//
// Layout, least significant bit first (slots hold the raw sections, bands
// included, so packing and unpacking never touch the calendar):
//
//	bits  0-3   control section (4 bits, 0-9)
//	bits  9-22  ordinal section (14 bits, 0-9999)
//	bits 28-34  day section     (7 bits, 1-31)
//	bits 40-46  month section   (7 bits, 1-92)
//	bits 52-58  year section    (7 bits, 0-99)
const (
	slotPadding = 5

	controlBits  = 4
	controlShift = 0

	ordinalBits  = 14
	ordinalShift = controlShift + controlBits + slotPadding

	dayBits  = 7
	dayShift = ordinalShift + ordinalBits + slotPadding

	monthBits  = 7
	monthShift = dayShift + dayBits + slotPadding

	yearBits  = 7
	yearShift = monthShift + monthBits + slotPadding

	controlMask = (1 << controlBits) - 1
	ordinalMask = (1 << ordinalBits) - 1
	dayMask     = (1 << dayBits) - 1
	monthMask   = (1 << monthBits) - 1
	yearMask    = (1 << yearBits) - 1
)

// Packed's accessors carry the same lifetime guarantee as Linear's: the
// slots were filled from an already-validated value, so no accessor
// revalidates.
type Packed struct {
	fields uint64
}

var _ Number = Packed{}

// pack writes each raw section of an already-validated canonical value
// into its bit slot.
func pack(value uint64) Packed {
	return Packed{fields: uint64(YearSection(value))<<yearShift |
		uint64(MonthSection(value))<<monthShift |
		uint64(DaySection(value))<<dayShift |
		uint64(OrdinalSection(value))<<ordinalShift |
		uint64(ControlSection(value))<<controlShift}
}

// ParsePackedUint64 validates a canonical plain-integer value and returns
// the bit-field representation. Error conditions mirror ParseUint64
// exactly; the two constructors share all validation logic.
func ParsePackedUint64(value uint64) (Packed, error) {
	if err := validate(value); err != nil {
		return Packed{}, err
	}
	return pack(value), nil
}

// ParsePackedString validates an 11-character decimal string into the
// bit-field representation.
func ParsePackedString(s string) (Packed, error) {
	value, err := parseDigits(s)
	if err != nil {
		return Packed{}, err
	}
	return ParsePackedUint64(value)
}

// PackedFromParts assembles a PESEL from decoded fields, computing the
// control digit, and stores it bit-packed.
func PackedFromParts(year uint16, month, day uint8, ordinal uint16) (Packed, error) {
	value, err := fromParts(year, month, day, ordinal)
	if err != nil {
		return Packed{}, err
	}
	return pack(value), nil
}

func (p Packed) YearSection() uint8 { return uint8(p.fields >> yearShift & yearMask) }
func (p Packed) MonthSection() uint8 { return uint8(p.fields >> monthShift & monthMask) }
func (p Packed) DaySection() uint8 { return uint8(p.fields >> dayShift & dayMask) }
func (p Packed) OrdinalSection() uint16 { return uint16(p.fields >> ordinalShift & ordinalMask) }
func (p Packed) ControlSection() uint8 { return uint8(p.fields >> controlShift & controlMask) }

func (p Packed) Month() uint8 {
	month, _ := MonthFromSection(p.MonthSection())
	return month
}

func (p Packed) Year() uint16 {
	return YearFromSections(p.MonthSection(), p.YearSection())
}

func (p Packed) Day() uint8 { return p.DaySection() }

func (p Packed) DateOfBirth() time.Time {
	return time.Date(int(p.Year()), time.Month(p.Month()), int(p.Day()), 0, 0, 0, 0, time.UTC)
}

func (p Packed) Gender() Gender { return GenderOf(p.OrdinalSection()) }
func (p Packed) Ordinal() uint16 { return p.OrdinalSection() }
func (p Packed) ControlDigit() uint8 { return p.ControlSection() }

// Uint64 reassembles the canonical plain integer from the bit slots. It is
// the exact inverse of pack for every valid value.
func (p Packed) Uint64() uint64 {
	return assemble(p.YearSection(), p.MonthSection(), p.DaySection(), p.OrdinalSection(), p.ControlSection())
}

func (p Packed) String() string { return fmt.Sprintf("%011d", p.Uint64()) }

// Linear converts back to the plain-integer representation, loss-free.
func (p Packed) Linear() Linear {
	return Linear{value: p.Uint64()}
}
