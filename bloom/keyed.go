package bloom

import (
	"encoding/binary"
	"fmt"
)

// Keyed applies a Filter to fixed width keys of type K.
//
// Keys are hashed over their encoding/binary little endian form, not their
// in-memory representation, so struct padding and host byte order never
// reach the hash functions. K must have a fixed binary size: sized integers,
// floats, bools, arrays and structs of those. int, uint, strings and slices
// are rejected by NewKeyed; variable length keys should be reduced to a fixed
// width digest (for example a [32]byte) by the caller.
type Keyed[K any] struct {
	filter *Filter
	size   int
}

func NewKeyed[K any](f *Filter) (*Keyed[K], error) {
	var zero K
	size := binary.Size(zero)
	if size <= 0 {
		return nil, fmt.Errorf("%w: %T", ErrKeyNotFixedWidth, zero)
	}
	return &Keyed[K]{filter: f, size: size}, nil
}

func (kf *Keyed[K]) Filter() *Filter { return kf.filter }

func (kf *Keyed[K]) Put(key K, bits BitStorage) {
	kf.filter.Put(kf.encode(key), bits)
}

func (kf *Keyed[K]) Get(key K, bits BitStorage) bool {
	return kf.filter.Get(kf.encode(key), bits)
}

func (kf *Keyed[K]) encode(key K) []byte {
	buf, err := binary.Append(make([]byte, 0, kf.size), binary.LittleEndian, key)
	if err != nil {
		// NewKeyed proved K encodes.
		panic(fmt.Sprintf("bloom: encoding %T: %v", key, err))
	}
	return buf
}
