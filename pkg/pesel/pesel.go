package pesel

import (
	"time"
)

// Gender is derived from the parity of the ordinal section. It is never
// stored; both representations compute it on demand.
type Gender uint8

const (
	Female Gender = iota
	Male
)

func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// GenderOf derives the gender encoded by an ordinal: even means female,
// odd means male.
func GenderOf(ordinal uint16) Gender {
	if ordinal%2 == 0 {
		return Female
	}
	return Male
}

// Number is the capability contract shared by both representations.
// Implementations are immutable, valid for their lifetime and freely
// shareable across goroutines. Generic code written against Number works
// over either storage layout.
type Number interface {
	// Raw section accessors, as stored in the eleven digits.
	YearSection() uint8
	MonthSection() uint8
	DaySection() uint8
	OrdinalSection() uint16
	ControlSection() uint8

	// Decoded fields.
	Year() uint16
	Month() uint8
	Day() uint8
	DateOfBirth() time.Time
	Gender() Gender
	Ordinal() uint16
	ControlDigit() uint8

	// Uint64 returns the canonical plain-integer form, the lossless
	// interchange form between representations.
	Uint64() uint64
	// String renders all eleven digits, leading zeros included.
	String() string
}

// isCalendarDate reports whether year/month/day name a real date. time.Date
// normalizes out-of-range components (April 31 becomes May 1), so a
// round-trip comparison detects them.
func isCalendarDate(year uint16, month, day uint8) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
	return t.Year() == int(year) && t.Month() == time.Month(month) && t.Day() == int(day)
}

// validate runs the full construction checks against a canonical value:
// structural range, month band, calendar date, checksum — in that order,
// so callers can rely on the specific reason reported.
func validate(value uint64) error {
	if value > Max {
		return newError(ReasonInvalidFormat, "value %d has more than 11 digits", value)
	}
	monthSection := MonthSection(value)
	month, ok := MonthFromSection(monthSection)
	if !ok {
		return newError(ReasonInvalidDate, "month section %02d maps to no century band", monthSection)
	}
	year := YearFromSections(monthSection, YearSection(value))
	day := DaySection(value)
	if !isCalendarDate(year, month, day) {
		return newError(ReasonInvalidDate, "%04d-%02d-%02d is not a calendar date", year, month, day)
	}
	if !VerifyChecksum(value) {
		return newError(ReasonChecksumMismatch, "control digit %d, expected %d", ControlSection(value), ComputeChecksum(value))
	}
	return nil
}

// parseDigits converts an 11-character decimal string to its canonical
// value, preserving leading zeros.
func parseDigits(s string) (uint64, error) {
	if len(s) != 11 {
		return 0, newError(ReasonInvalidFormat, "expected 11 digits, got %d characters", len(s))
	}
	var value uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, newError(ReasonInvalidFormat, "non-digit character at position %d", i)
		}
		value = value*10 + uint64(c-'0')
	}
	return value, nil
}

// assemble recomposes a canonical value from raw sections with place-value
// arithmetic. It is the exact inverse of the section accessors.
func assemble(yearSection, monthSection, daySection uint8, ordinal uint16, control uint8) uint64 {
	return uint64(yearSection)*1_000_000_000 +
		uint64(monthSection)*10_000_000 +
		uint64(daySection)*100_000 +
		uint64(ordinal)*10 +
		uint64(control)
}

// fromParts builds a canonical value from decoded fields, computing the
// control digit. Callers cannot supply their own digit; the result is
// always checksum-correct.
func fromParts(year uint16, month, day uint8, ordinal uint16) (uint64, error) {
	if ordinal > 9999 {
		return 0, newError(ReasonInvalidFormat, "ordinal %d exceeds four digits", ordinal)
	}
	monthSection, ok := MonthToSection(month, year)
	if !ok {
		return 0, newError(ReasonInvalidDate, "month %d in year %d is outside the 1800-2299 bands", month, year)
	}
	if !isCalendarDate(year, month, day) {
		return 0, newError(ReasonInvalidDate, "%04d-%02d-%02d is not a calendar date", year, month, day)
	}
	base := assemble(uint8(year%100), monthSection, day, ordinal, 0)
	return base + uint64(ComputeChecksum(base)), nil
}
