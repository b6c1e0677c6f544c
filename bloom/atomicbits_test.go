package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicBitsConcurrentPut(t *testing.T) {
	const n = 4000
	const workers = 8

	f, err := New(n, WithHashCount(3))
	require.NoError(t, err)
	shared := f.NewAtomic()

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := w; i < n; i += workers {
				f.Put(u64Key(uint64(i)), shared)
			}
		}(w)
	}
	for w := 0; w < workers; w++ {
		<-done
	}

	sequential := f.NewOwned()
	for i := 0; i < n; i++ {
		f.Put(u64Key(uint64(i)), sequential)
	}
	require.Equal(t, sequential.Bytes(), shared.Bytes())
	for i := 0; i < n; i++ {
		require.True(t, f.Get(u64Key(uint64(i)), shared))
	}
}
