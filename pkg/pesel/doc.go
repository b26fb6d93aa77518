// Package pesel validates and decodes the Polish national identification
// number (PESEL) into its semantic fields: birth date, a gender-encoding
// ordinal and a control digit.
//
// A PESEL is an 11-decimal-digit value partitioned left to right as
//
//	YY MM DD OOOO C
//
// where YY are the last two digits of the birth year, MM encodes both the
// birth month and the century (see MonthFromSection), DD is the birth day,
// OOOO is a sequence number whose parity encodes gender, and C is a
// weighted checksum over the first ten digits.
//
// Two interchangeable representations implement the shared Number
// interface:
//
//   - Linear keeps the canonical plain integer and extracts fields with
//     place-value arithmetic on every call.
//   - Packed stores each field in its own bit slot so accessors are a
//     single shift and mask.
//
// Both are validated atomically at construction (structural shape, calendar
// plausibility, checksum) and are immutable and valid for their lifetime.
// Construction always recomputes the control digit; a value whose stored
// digit differs is rejected, so no representation can hold an invalid
// number.
//
// The free functions operating on a raw uint64 (DaySection, MonthSection,
// and friends) skip validation entirely. They return garbage, not panics,
// on malformed input; IsValid is the only one honoring the full validity
// contract.
package pesel
