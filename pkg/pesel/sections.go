package pesel

// Max is the largest canonical plain-integer value (eleven nines).
const Max uint64 = 99_999_999_999

// Section accessors extract a single raw field from a plain-integer value
// with place-value arithmetic. They perform no validation: values with more
// than eleven digits produce garbage fields, never a panic. Values with
// fewer digits are read as if padded with leading zeros.

// YearSection returns the raw YY field: `YY`MMDDOOOOC.
func YearSection(value uint64) uint8 {
	return uint8((value % 100_000_000_000) / 1_000_000_000)
}

// MonthSection returns the raw MM field: YY`MM`DDOOOOC.
func MonthSection(value uint64) uint8 {
	return uint8((value % 1_000_000_000) / 10_000_000)
}

// DaySection returns the raw DD field: YYMM`DD`OOOOC.
func DaySection(value uint64) uint8 {
	return uint8((value % 10_000_000) / 100_000)
}

// OrdinalSection returns the raw OOOO field: YYMMDD`OOOO`C.
func OrdinalSection(value uint64) uint16 {
	return uint16((value % 100_000) / 10)
}

// ControlSection returns the raw C field: YYMMDDOOOO`C`.
func ControlSection(value uint64) uint8 {
	return uint8(value % 10)
}

// MonthFromSection resolves a raw month section to the actual calendar
// month. The section encodes both month and century in five bands:
//
//	1-12 → 1900s, 21-32 → 2000s, 41-52 → 2100s, 61-72 → 2200s, 81-92 → 1800s
//
// ok is false when the section lies outside 1-92. Sections inside 1-92 but
// between bands (13-20, 33-40, ...) resolve to a month outside 1-12, which
// the calendar check downstream rejects.
func MonthFromSection(section uint8) (month uint8, ok bool) {
	if section < 1 || section > 92 {
		return 0, false
	}
	return section - (section/10/2)*20, true
}

// MonthToSection encodes an actual month and year into the raw month
// section. ok is false when month is outside 1-12 or year is outside the
// 1800-2299 range the bands can express.
func MonthToSection(month uint8, year uint16) (section uint8, ok bool) {
	if month < 1 || month > 12 {
		return 0, false
	}
	var shift uint8
	switch year / 100 {
	case 18:
		shift = 80
	case 19:
		shift = 0
	case 20:
		shift = 20
	case 21:
		shift = 40
	case 22:
		shift = 60
	default:
		return 0, false
	}
	return month + shift, true
}

// YearFromSections combines the raw month and year sections into the full
// birth year, using the month band to pick the century.
func YearFromSections(monthSection, yearSection uint8) uint16 {
	shift := uint16(monthSection/10/2) * 2
	if shift == 8 {
		return 1800 + uint16(yearSection)
	}
	return 1900 + shift*50 + uint16(yearSection)
}

// IsValid reports whether value satisfies the full validity contract:
// eleven digits at most, a resolvable month band, a real calendar date and
// a matching control digit. It is the only free function making that
// promise; the section accessors assume well-formed input.
func IsValid(value uint64) bool {
	return validate(value) == nil
}
