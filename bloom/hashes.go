package bloom

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/spaolacci/murmur3"
)

// Fixed SipHash keys. Changing them changes every filter's bit layout.
const (
	sipK0 = 0x736f6d6570736575
	sipK1 = 0x646f72616e646f6d
)

// DefaultHashes returns the default positional hash family:
//
//	0: xxHash64, folded to 32 bits
//	1: MurmurHash3 x86_32
//	2: SipHash-2-4 (fixed keys), folded to 32 bits
//	3: FNV-1a 32
func DefaultHashes() HashFamily {
	return HashFamily{XXHash, MurmurHash, SipHash, FNVHash}
}

func XXHash(data []byte) uint32 {
	return fold64(xxhash.Sum64(data))
}

func MurmurHash(data []byte) uint32 {
	return murmur3.Sum32(data)
}

func SipHash(data []byte) uint32 {
	return fold64(siphash.Hash(sipK0, sipK1, data))
}

func FNVHash(data []byte) uint32 {
	h := fnv.New32a()
	// Write on a hash.Hash never returns an error.
	_, _ = h.Write(data)
	return h.Sum32()
}

func fold64(v uint64) uint32 {
	return uint32(v) ^ uint32(v>>32)
}
