package bloom

import "math"

// CheckHashCount validates k against MaxHashCount.
func CheckHashCount(k uint32) error {
	if k == 0 || k > MaxHashCount {
		return ErrBadHashCount
	}
	return nil
}

// BitLength returns m = round(population * k / ln 2).
//
// This is the m that minimizes the false positive rate for the given k once
// population keys have been inserted. It is not a capacity: inserting more
// keys only raises the false positive rate.
func BitLength(population uint32, k uint32) (uint32, error) {
	if err := CheckHashCount(k); err != nil {
		return 0, err
	}
	m := math.Round(float64(population) * float64(k) / math.Ln2)
	if m > math.MaxUint32 {
		return 0, ErrBitLengthOverflow
	}
	if m == 0 {
		return 0, ErrBadBitLength
	}
	return uint32(m), nil
}

// ByteLength returns ceil(mBits/32)*4.
func ByteLength(mBits uint32) uint32 {
	// uint64 so that mBits near MaxUint32 does not wrap.
	words := (uint64(mBits) + wordBits - 1) / wordBits
	return uint32(words * WordBytes)
}

// FalsePositiveRate returns (1 - e^(-k*n/m))^k, the expected probability that
// a key never inserted tests positive after n distinct insertions.
func FalsePositiveRate(mBits uint32, k uint32, n uint32) float64 {
	if mBits == 0 {
		return 1
	}
	kf := float64(k)
	return math.Pow(1-math.Exp(-kf*float64(n)/float64(mBits)), kf)
}
