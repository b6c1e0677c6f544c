package bloom

import "errors"

const (
	// MaxHashCount is the number of hash slots in a HashFamily and the upper
	// bound on k.
	MaxHashCount = 4

	// DefaultHashCount is k when WithHashCount is not supplied.
	DefaultHashCount = 2

	// WordBytes is the storage alignment unit. Bit storage is always a whole
	// number of 32 bit words.
	WordBytes = 4
	wordBits  = WordBytes * 8
)

var (
	ErrBadHashCount      = errors.New("bloom: hash count must be in [1, 4]")
	ErrBadBitLength      = errors.New("bloom: bit length is zero")
	ErrBitLengthOverflow = errors.New("bloom: bit length overflows supported range")
	ErrNilHash           = errors.New("bloom: hash family has a nil slot in use")
	ErrBadRegionSize     = errors.New("bloom: region buffer too small")
	ErrKeyNotFixedWidth  = errors.New("bloom: key type has no fixed binary size")
)

// BitStorage is the bit array a Filter reads and writes. Bit i lives at byte
// i/8, bit i%8 (LSB0) of the serialized form for every implementation.
//
// Implementations treat an index outside [0, Len()) as a programming error
// and panic.
type BitStorage interface {
	SetTrue(i uint32)
	Get(i uint32) bool
}

// HashFunc maps a byte span to a 32 bit value. It must be deterministic.
type HashFunc func(data []byte) uint32

// HashFamily is the positional table of hash functions. Slot i is used for
// the i'th probe of every key.
type HashFamily [MaxHashCount]HashFunc
