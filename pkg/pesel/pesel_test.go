package pesel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validFixtures cover every century band. 50431012349 and 03723199998 were
// assembled with FromParts for the 2100s and 2200s bands; the rest come
// from well-known examples.
var validFixtures = []struct {
	value   uint64
	year    uint16
	month   uint8
	day     uint8
	ordinal uint16
	control uint8
	gender  Gender
}{
	{2290486168, 2002, 9, 4, 8616, 8, Female},
	{1302534699, 2001, 10, 25, 3469, 9, Male},
	{10128545, 1900, 1, 1, 2854, 5, Female},
	{98250993285, 2098, 5, 9, 9328, 5, Female},
	{60032417874, 1960, 3, 24, 1787, 4, Male},
	{50431012349, 2150, 3, 10, 1234, 9, Female},
	{3723199998, 2203, 12, 31, 9999, 8, Male},
	{78920213442, 1878, 12, 2, 1344, 2, Female},
}

func TestParseUint64_DecodesEveryBand(t *testing.T) {
	for _, tt := range validFixtures {
		lin, err := ParseUint64(tt.value)
		require.NoError(t, err, "value %011d", tt.value)

		assert.Equal(t, tt.year, lin.Year())
		assert.Equal(t, tt.month, lin.Month())
		assert.Equal(t, tt.day, lin.Day())
		assert.Equal(t, tt.ordinal, lin.Ordinal())
		assert.Equal(t, tt.control, lin.ControlDigit())
		assert.Equal(t, tt.gender, lin.Gender())

		dob := lin.DateOfBirth()
		assert.Equal(t, time.Date(int(tt.year), time.Month(tt.month), int(tt.day), 0, 0, 0, 0, time.UTC), dob)
	}
}

func TestRoundTrip_BothRepresentations(t *testing.T) {
	for _, tt := range validFixtures {
		lin, err := ParseUint64(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.value, lin.Uint64())

		packed, err := ParsePackedUint64(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.value, packed.Uint64())

		// Converting between representations reproduces the identical
		// canonical value.
		assert.Equal(t, tt.value, lin.Packed().Uint64())
		assert.Equal(t, tt.value, packed.Linear().Uint64())
		assert.Equal(t, lin, packed.Linear())
		assert.Equal(t, packed, lin.Packed())
	}
}

func TestCrossRepresentationEquivalence(t *testing.T) {
	for _, tt := range validFixtures {
		lin, err := ParseUint64(tt.value)
		require.NoError(t, err)
		packed, err := ParsePackedUint64(tt.value)
		require.NoError(t, err)

		for _, n := range []Number{lin, packed} {
			assert.Equal(t, lin.DateOfBirth(), n.DateOfBirth())
			assert.Equal(t, lin.Gender(), n.Gender())
			assert.Equal(t, lin.Ordinal(), n.Ordinal())
			assert.Equal(t, lin.ControlDigit(), n.ControlDigit())
			assert.Equal(t, lin.YearSection(), n.YearSection())
			assert.Equal(t, lin.MonthSection(), n.MonthSection())
			assert.Equal(t, lin.DaySection(), n.DaySection())
			assert.Equal(t, lin.String(), n.String())
		}
	}
}

func TestParseString_PreservesLeadingZeros(t *testing.T) {
	lin, err := ParseString("00010128545")
	require.NoError(t, err)
	assert.Equal(t, uint64(10128545), lin.Uint64())
	assert.Equal(t, uint16(1900), lin.Year())
	assert.Equal(t, "00010128545", lin.String())

	fromInt, err := ParseUint64(10128545)
	require.NoError(t, err)
	assert.Equal(t, fromInt, lin)
}

func TestParseString_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason Reason
	}{
		{"too short", "4355", ReasonInvalidFormat},
		{"too long", "435585930294485", ReasonInvalidFormat},
		{"empty", "", ReasonInvalidFormat},
		{"non-digit", "0229048616x", ReasonInvalidFormat},
		{"embedded space", "02290 86168", ReasonInvalidFormat},
		{"unicode digit lookalike", "0229048616٨", ReasonInvalidFormat},
		{"impossible month band", "99990486167", ReasonInvalidDate},
		{"wrong control digit", "02290486167", ReasonChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.True(t, IsReason(err, tt.reason), "got %v", err)

			_, err = ParsePackedString(tt.input)
			require.Error(t, err)
			assert.True(t, IsReason(err, tt.reason), "got %v", err)
		})
	}
}

func TestParseUint64_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		value  uint64
		reason Reason
	}{
		{"zero", 0, ReasonInvalidDate},
		{"all nines", Max, ReasonInvalidDate},
		{"twelve digits", Max + 1, ReasonInvalidFormat},
		{"day 31 in april", 2043112340, ReasonInvalidDate},
		{"february 30", 2023012343, ReasonInvalidDate},
		{"between-band month section", 2153112345, ReasonInvalidDate},
		{"wrong control digit", 2290486167, ReasonChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUint64(tt.value)
			require.Error(t, err)
			assert.True(t, IsReason(err, tt.reason), "got %v", err)

			_, err = ParsePackedUint64(tt.value)
			require.Error(t, err)
			assert.True(t, IsReason(err, tt.reason), "got %v", err)
		})
	}
}

func TestParse_ChecksumMutationsRejected(t *testing.T) {
	for _, tt := range validFixtures {
		base := tt.value - tt.value%10
		for delta := uint64(1); delta <= 9; delta++ {
			mutated := base + (tt.value%10+delta)%10
			_, err := ParseUint64(mutated)
			require.Error(t, err, "mutation of %011d accepted", tt.value)
			assert.True(t, IsReason(err, ReasonChecksumMismatch))
		}
	}
}

func TestFromParts(t *testing.T) {
	t.Run("computes the control digit", func(t *testing.T) {
		lin, err := FromParts(2002, 9, 4, 8616)
		require.NoError(t, err)
		assert.Equal(t, uint64(2290486168), lin.Uint64())

		packed, err := PackedFromParts(2002, 9, 4, 8616)
		require.NoError(t, err)
		assert.Equal(t, lin.Packed(), packed)
	})

	t.Run("round-trips every fixture", func(t *testing.T) {
		for _, tt := range validFixtures {
			lin, err := FromParts(tt.year, tt.month, tt.day, tt.ordinal)
			require.NoError(t, err)
			assert.Equal(t, tt.value, lin.Uint64())
		}
	})

	t.Run("rejects impossible inputs", func(t *testing.T) {
		_, err := FromParts(1799, 6, 1, 0)
		assert.True(t, IsReason(err, ReasonInvalidDate))

		_, err = FromParts(2300, 6, 1, 0)
		assert.True(t, IsReason(err, ReasonInvalidDate))

		_, err = FromParts(1990, 4, 31, 0)
		assert.True(t, IsReason(err, ReasonInvalidDate))

		_, err = FromParts(1990, 2, 29, 0) // 1990 is not a leap year
		assert.True(t, IsReason(err, ReasonInvalidDate))

		_, err = FromParts(1990, 6, 1, 10000)
		assert.True(t, IsReason(err, ReasonInvalidFormat))
	})

	t.Run("leap years inside each century", func(t *testing.T) {
		for _, year := range []uint16{1896, 1960, 2000, 2096, 2196, 2296} {
			lin, err := FromParts(year, 2, 29, 7)
			require.NoError(t, err, "year %d", year)
			assert.Equal(t, year, lin.Year())
			assert.Equal(t, uint8(29), lin.Day())
		}
	})
}

func TestGenderParity(t *testing.T) {
	for ordinal := uint16(0); ordinal < 10; ordinal++ {
		want := Female
		if ordinal%2 == 1 {
			want = Male
		}
		assert.Equal(t, want, GenderOf(ordinal))

		lin, err := FromParts(1985, 6, 15, ordinal)
		require.NoError(t, err)
		assert.Equal(t, want, lin.Gender())
		assert.Equal(t, want, lin.Packed().Gender())
	}
}

// TestOldestInSet exercises the shared contract the way generic callers
// would: an algorithm written once against Number works over either
// representation.
func TestOldestInSet(t *testing.T) {
	oldest := func(numbers []Number) Number {
		best := numbers[0]
		for _, n := range numbers[1:] {
			if n.DateOfBirth().Before(best.DateOfBirth()) {
				best = n
			}
		}
		return best
	}

	var linears, packeds []Number
	for _, tt := range validFixtures {
		lin, err := ParseUint64(tt.value)
		require.NoError(t, err)
		linears = append(linears, lin)
		packeds = append(packeds, lin.Packed())
	}

	// 78920213442 is the 1878 birth, the oldest fixture.
	assert.Equal(t, uint64(78920213442), oldest(linears).Uint64())
	assert.Equal(t, uint64(78920213442), oldest(packeds).Uint64())
}
