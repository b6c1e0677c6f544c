package bloom

import (
	"math/bits"
	"sync/atomic"
)

// AtomicBits is owned storage whose SetTrue is an atomic OR on a 32 bit word,
// so concurrent Put calls against one AtomicBits need no lock. Words are
// little endian in Bytes, which gives the same LSB0 byte layout as OwnedBits
// and BorrowedBits.
//
// Get is a plain atomic load per word. A Get racing a Put for the same key may
// observe only some of that key's bits.
type AtomicBits struct {
	mBits uint32
	words []atomic.Uint32
}

func NewAtomicBits(mBits uint32) *AtomicBits {
	return &AtomicBits{
		mBits: mBits,
		words: make([]atomic.Uint32, ByteLength(mBits)/WordBytes),
	}
}

// LoadAtomicBits copies a serialized LSB0 byte layout into new AtomicBits.
func LoadAtomicBits(buf []byte, mBits uint32) (*AtomicBits, error) {
	if mBits == 0 {
		return nil, ErrBadBitLength
	}
	if uint64(len(buf)) < uint64(ByteLength(mBits)) {
		return nil, ErrBadRegionSize
	}
	b := NewAtomicBits(mBits)
	for w := range b.words {
		b.words[w].Store(readU32LE(buf[w*WordBytes:]))
	}
	return b, nil
}

func (b *AtomicBits) SetTrue(i uint32) {
	checkIndex(i, b.mBits)
	b.words[i/wordBits].Or(1 << (i % wordBits))
}

func (b *AtomicBits) Get(i uint32) bool {
	checkIndex(i, b.mBits)
	return b.words[i/wordBits].Load()&(1<<(i%wordBits)) != 0
}

func (b *AtomicBits) Len() uint32 { return b.mBits }

// Bytes returns a snapshot of the bits. Unlike the other backends the result
// is a copy.
func (b *AtomicBits) Bytes() []byte {
	out := make([]byte, len(b.words)*WordBytes)
	for w := range b.words {
		writeU32LE(out[w*WordBytes:], b.words[w].Load())
	}
	return out
}

func (b *AtomicBits) Reset() {
	for w := range b.words {
		b.words[w].Store(0)
	}
}

func (b *AtomicBits) Count() uint32 {
	var n uint32
	for w := range b.words {
		n += uint32(bits.OnesCount32(b.words[w].Load()))
	}
	return n
}
