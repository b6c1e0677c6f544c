package bloom

/*

# Bloom filters with caller chosen bit storage

This package sizes and drives a classic k-hash Bloom filter. The Filter itself
holds only two numbers (k and m) and a hash family; the bits live in a
BitStorage that the caller picks and keeps.

	f, err := bloom.New(1000)              // k=2, m=2885, 364 bytes
	bits := f.NewOwned()
	f.Put(key, bits)
	maybe := f.Get(key, bits)

## What Bloom filters are (and are not)

- If the filter says "definitely not present", then the key was never Put.
- If the filter says "maybe present", the key may or may not have been Put.

Filters are insert only. There is no delete, no resize and no persisted
header; the raw bytes are the whole state.

## Sizing

For an estimated population n and k probes per key:

	m     = round(n * k / ln 2)
	bytes = ceil(m / 32) * 4

m is the false positive minimizing size for that k after n inserts. It is
not a capacity. The expected false positive rate after n distinct inserts is

	(1 - e^(-k*n/m))^k

No warning is raised for a k far from ln 2 * m/n.

## Hash slots

Probe i of every key uses hash slot i of the filter's HashFamily, fixed at
New. The default family is xxHash, MurmurHash3, SipHash and FNV-1a in that
order. Tests inject deterministic stubs with WithHashes.

## Storage backends and bit numbering

Bit i is bit i%8 (LSB0) of byte i/8 in every backend, and storage is always
a whole number of 32 bit words:

- OwnedBits allocates its own zeroed bytes.
- BorrowedBits wraps a caller owned span, for embedding the bits in a larger
  preallocated region such as a page or a record header.
- AtomicBits sets bits with an atomic word OR and is the only backend that
  supports concurrent Put without external locking.

For the same filter and the same sequence of calls all three produce
identical bytes.

An out of range bit index is a programming error and panics.

*/
