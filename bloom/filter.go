package bloom

// Filter is the sizing and indexing engine. It holds no bits: every Put and
// Get is made against a BitStorage supplied by the caller, which must be the
// same storage instance for all calls that are meant to see each other.
//
// A Filter is immutable after New and is safe for concurrent use.
type Filter struct {
	k      uint32
	mBits  uint32
	hashes HashFamily
}

type filterOptions struct {
	k      uint32
	hashes HashFamily
}

type Option func(*filterOptions)

// WithHashCount sets k, the number of probes per key. Values outside
// [1, MaxHashCount] make New fail; they are never clamped.
func WithHashCount(k uint32) Option {
	return func(o *filterOptions) {
		o.k = k
	}
}

// WithHashes replaces the default hash family. Only the first k slots are
// used, and those must be non nil.
func WithHashes(hashes HashFamily) Option {
	return func(o *filterOptions) {
		o.hashes = hashes
	}
}

// New sizes a filter for an estimated population of distinct keys.
//
// Errors are configuration errors and are only ever returned here:
// ErrBadHashCount, ErrBadBitLength (population 0), ErrBitLengthOverflow and
// ErrNilHash.
func New(population uint32, opts ...Option) (*Filter, error) {
	o := filterOptions{
		k:      DefaultHashCount,
		hashes: DefaultHashes(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	mBits, err := BitLength(population, o.k)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < o.k; i++ {
		if o.hashes[i] == nil {
			return nil, ErrNilHash
		}
	}

	return &Filter{k: o.k, mBits: mBits, hashes: o.hashes}, nil
}

// HashCount returns k.
func (f *Filter) HashCount() uint32 { return f.k }

// BitLength returns m, the number of addressable bits.
func (f *Filter) BitLength() uint32 { return f.mBits }

// RequiredByteLength returns the minimum storage size in bytes. Callers
// providing their own buffer must allocate at least this much.
func (f *Filter) RequiredByteLength() uint32 { return ByteLength(f.mBits) }

// FalsePositiveRate returns the expected false positive rate after inserted
// distinct keys.
func (f *Filter) FalsePositiveRate(inserted uint32) float64 {
	return FalsePositiveRate(f.mBits, f.k, inserted)
}

// Put sets the k bits derived from key. Repeating a Put is a no-op.
func (f *Filter) Put(key []byte, bits BitStorage) {
	for i := uint32(0); i < f.k; i++ {
		bits.SetTrue(f.index(i, key))
	}
}

// Get returns false if key is definitely absent and true if it may be
// present. It stops at the first unset bit.
func (f *Filter) Get(key []byte, bits BitStorage) bool {
	for i := uint32(0); i < f.k; i++ {
		if !bits.Get(f.index(i, key)) {
			return false
		}
	}
	return true
}

// NewOwned allocates zeroed storage sized for f.
func (f *Filter) NewOwned() *OwnedBits {
	return NewOwnedBits(f.mBits)
}

// Borrow wraps buf as storage for f. buf must hold at least
// RequiredByteLength bytes and stays owned by the caller.
func (f *Filter) Borrow(buf []byte) (*BorrowedBits, error) {
	return NewBorrowedBits(buf, f.mBits)
}

// NewAtomic allocates zeroed storage sized for f that supports concurrent
// Put.
func (f *Filter) NewAtomic() *AtomicBits {
	return NewAtomicBits(f.mBits)
}

func (f *Filter) index(slot uint32, key []byte) uint32 {
	return f.hashes[slot](key) % f.mBits
}
