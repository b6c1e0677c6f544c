package bloom

import (
	"fmt"
	"math/bits"

	"github.com/jrick/bitset"
)

// OwnedBits is storage that allocates and owns its bytes.
type OwnedBits struct {
	mBits uint32
	set   bitset.Bytes
}

// NewOwnedBits allocates ByteLength(mBits) zeroed bytes.
func NewOwnedBits(mBits uint32) *OwnedBits {
	return &OwnedBits{
		mBits: mBits,
		set:   bitset.NewBytes(int(ByteLength(mBits)) * 8),
	}
}

func (b *OwnedBits) SetTrue(i uint32) {
	checkIndex(i, b.mBits)
	b.set.Set(int(i))
}

func (b *OwnedBits) Get(i uint32) bool {
	checkIndex(i, b.mBits)
	return b.set.Get(int(i))
}

// Len returns the number of addressable bits.
func (b *OwnedBits) Len() uint32 { return b.mBits }

// Bytes returns the backing bytes. The slice aliases the storage.
func (b *OwnedBits) Bytes() []byte { return b.set }

// Reset clears every bit.
func (b *OwnedBits) Reset() { clear(b.set) }

// Count returns the number of set bits.
func (b *OwnedBits) Count() uint32 { return popcount(b.set) }

// BorrowedBits is storage over a caller owned byte span, for example a
// region inside a larger preallocated page. It never allocates and never
// retains more than ByteLength(mBits) bytes of the span.
type BorrowedBits struct {
	mBits  uint32
	region []byte
}

// NewBorrowedBits wraps buf. The bits are whatever buf already holds; a fresh
// filter needs a zero filled buf.
func NewBorrowedBits(buf []byte, mBits uint32) (*BorrowedBits, error) {
	if mBits == 0 {
		return nil, ErrBadBitLength
	}
	need := ByteLength(mBits)
	if uint64(len(buf)) < uint64(need) {
		return nil, ErrBadRegionSize
	}
	return &BorrowedBits{mBits: mBits, region: buf[:need:need]}, nil
}

func (b *BorrowedBits) SetTrue(i uint32) {
	checkIndex(i, b.mBits)
	b.region[i>>3] |= 1 << (i & 7)
}

func (b *BorrowedBits) Get(i uint32) bool {
	checkIndex(i, b.mBits)
	return b.region[i>>3]&(1<<(i&7)) != 0
}

func (b *BorrowedBits) Len() uint32 { return b.mBits }

// Bytes returns the borrowed span, truncated to ByteLength(mBits).
func (b *BorrowedBits) Bytes() []byte { return b.region }

func (b *BorrowedBits) Reset() { clear(b.region) }

func (b *BorrowedBits) Count() uint32 { return popcount(b.region) }

func checkIndex(i, mBits uint32) {
	if i >= mBits {
		panic(fmt.Sprintf("bloom: bit index %d out of range [0, %d)", i, mBits))
	}
}

func popcount(b []byte) uint32 {
	var n int
	for _, v := range b {
		n += bits.OnesCount8(v)
	}
	return uint32(n)
}
