package pesel

import (
	"fmt"
	"time"
)

// Linear stores a validated PESEL as the untouched canonical integer.
// Every accessor re-derives its field with division and modulo, trading a
// little arithmetic per call for the most compact possible storage.
type Linear struct {
	value uint64
}

var _ Number = Linear{}

// ParseUint64 validates a canonical plain-integer value. Integers with
// fewer than eleven digits are read with implied leading zeros.
func ParseUint64(value uint64) (Linear, error) {
	if err := validate(value); err != nil {
		return Linear{}, err
	}
	return Linear{value: value}, nil
}

// ParseString validates an 11-character decimal string, preserving leading
// zeros in the YY field.
func ParseString(s string) (Linear, error) {
	value, err := parseDigits(s)
	if err != nil {
		return Linear{}, err
	}
	return ParseUint64(value)
}

// FromParts assembles a PESEL from decoded fields. The control digit is
// always computed, never accepted, so the result is unconditionally valid.
func FromParts(year uint16, month, day uint8, ordinal uint16) (Linear, error) {
	value, err := fromParts(year, month, day, ordinal)
	if err != nil {
		return Linear{}, err
	}
	return Linear{value: value}, nil
}

func (l Linear) YearSection() uint8 { return YearSection(l.value) }
func (l Linear) MonthSection() uint8 { return MonthSection(l.value) }
func (l Linear) DaySection() uint8 { return DaySection(l.value) }
func (l Linear) OrdinalSection() uint16 { return OrdinalSection(l.value) }
func (l Linear) ControlSection() uint8 { return ControlSection(l.value) }

// Month resolves the band-encoded month section to the calendar month.
func (l Linear) Month() uint8 {
	month, _ := MonthFromSection(l.MonthSection())
	return month
}

// Year combines the month band's century with the YY section.
func (l Linear) Year() uint16 {
	return YearFromSections(l.MonthSection(), l.YearSection())
}

func (l Linear) Day() uint8 { return l.DaySection() }

// DateOfBirth returns the decoded birth date at midnight UTC.
func (l Linear) DateOfBirth() time.Time {
	return time.Date(int(l.Year()), time.Month(l.Month()), int(l.Day()), 0, 0, 0, 0, time.UTC)
}

func (l Linear) Gender() Gender { return GenderOf(l.OrdinalSection()) }
func (l Linear) Ordinal() uint16 { return l.OrdinalSection() }
func (l Linear) ControlDigit() uint8 { return l.ControlSection() }

// Uint64 is the identity: Linear already holds the canonical form.
func (l Linear) Uint64() uint64 { return l.value }

func (l Linear) String() string { return fmt.Sprintf("%011d", l.value) }

// Packed converts to the bit-field representation. The value is already
// validated, so the conversion cannot fail.
func (l Linear) Packed() Packed {
	return pack(l.value)
}
