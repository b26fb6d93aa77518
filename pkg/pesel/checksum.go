package pesel

// checksumWeights are the fixed per-position multipliers applied to the
// first ten digits, leftmost first.
var checksumWeights = [10]uint64{1, 3, 7, 9, 1, 3, 7, 9, 1, 3}

// ComputeChecksum derives the control digit from the first ten digits of
// value. The stored 11th digit, if any, is ignored.
func ComputeChecksum(value uint64) uint8 {
	var sum uint64
	div := uint64(10_000_000_000)
	for i := 0; i < len(checksumWeights); i++ {
		sum += ((value / div) % 10) * checksumWeights[i]
		div /= 10
	}
	return uint8((10 - sum%10) % 10)
}

// VerifyChecksum reports whether the control digit stored in value matches
// the digit recomputed from its first ten digits.
func VerifyChecksum(value uint64) bool {
	return ComputeChecksum(value) == uint8(value%10)
}
