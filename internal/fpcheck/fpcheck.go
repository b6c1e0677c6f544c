// Package fpcheck measures the false positive rate of a bloom.Filter
// empirically.
package fpcheck

import (
	"context"
	"encoding/binary"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/forestrie/go-bloomfilter/bloom"
	"github.com/forestrie/go-bloomfilter/internal/config"
	"github.com/forestrie/go-bloomfilter/internal/logger"
)

const probeBit = uint64(1) << 63

type Options struct {
	Inserted uint32
	Queries  uint32
	Backend  string
	Workers  int
	Seed     uint64
}

type Result struct {
	HashCount      uint32  `json:"hash_count"`
	BitLength      uint32  `json:"bit_length"`
	ByteLength     uint32  `json:"byte_length"`
	Inserted       uint32  `json:"inserted"`
	Queries        uint32  `json:"queries"`
	FalsePositives uint32  `json:"false_positives"`
	Empirical      float64 `json:"empirical_rate"`
	Theoretical    float64 `json:"theoretical_rate"`
	SetBits        uint32  `json:"set_bits"`
	FillRatio      float64 `json:"fill_ratio"`
}

type counted interface {
	bloom.BitStorage
	Count() uint32
}

// Measure inserts opts.Inserted distinct keys, then queries opts.Queries keys
// that are disjoint from the inserted set. Every inserted key is re-checked;
// a miss is reported as an error because it would be a false negative.
func Measure(ctx context.Context, log logger.Logger, f *bloom.Filter, opts Options) (Result, error) {
	bits, err := newStorage(f, opts.Backend)
	if err != nil {
		return Result{}, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > 1 && opts.Backend != config.BackendAtomic {
		return Result{}, config.ErrBadWorkers
	}

	log.Debug("inserting", "keys", opts.Inserted, "backend", opts.Backend, "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var key [8]byte
			for n, i := 0, uint64(w); i < uint64(opts.Inserted); n, i = n+1, i+uint64(workers) {
				if n%4096 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				f.Put(keyBytes(key[:], opts.Seed, i), bits)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var key [8]byte
	for i := uint64(0); i < uint64(opts.Inserted); i++ {
		if !f.Get(keyBytes(key[:], opts.Seed, i), bits) {
			return Result{}, fmt.Errorf("false negative for inserted key %d", i)
		}
	}

	var positives uint32
	for i := uint64(0); i < uint64(opts.Queries); i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if f.Get(keyBytes(key[:], opts.Seed, probeBit|i), bits) {
			positives++
		}
	}

	res := Result{
		HashCount:      f.HashCount(),
		BitLength:      f.BitLength(),
		ByteLength:     f.RequiredByteLength(),
		Inserted:       opts.Inserted,
		Queries:        opts.Queries,
		FalsePositives: positives,
		Theoretical:    f.FalsePositiveRate(opts.Inserted),
		SetBits:        bits.Count(),
	}
	if opts.Queries > 0 {
		res.Empirical = float64(positives) / float64(opts.Queries)
	}
	res.FillRatio = float64(res.SetBits) / float64(res.BitLength)

	log.Debug("measured", "false_positives", positives, "set_bits", res.SetBits)
	return res, nil
}

func newStorage(f *bloom.Filter, backend string) (counted, error) {
	switch backend {
	case config.BackendOwned, "":
		return f.NewOwned(), nil
	case config.BackendBorrowed:
		return f.Borrow(make([]byte, f.RequiredByteLength()))
	case config.BackendAtomic:
		return f.NewAtomic(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrBadBackend, backend)
	}
}

// keyBytes writes the i'th key of the stream for seed into dst. The mapping
// is a bijection on uint64, so distinct i give distinct keys and the inserted
// (top bit clear) and probe (top bit set) streams never overlap.
func keyBytes(dst []byte, seed uint64, i uint64) []byte {
	binary.LittleEndian.PutUint64(dst, mix64(i^seed))
	return dst
}

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
