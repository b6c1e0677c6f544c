package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-bloomfilter/bloom"
	"github.com/forestrie/go-bloomfilter/internal/config"
	"github.com/forestrie/go-bloomfilter/internal/fpcheck"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSizeCommand(t *testing.T) {
	out, err := run(t, "size", "-n", "1000", "-k", "2")
	require.NoError(t, err)
	require.Contains(t, out, "population=1000 k=2 m=2885 bytes=364")
}

func TestSizeCommandJSON(t *testing.T) {
	out, err := run(t, "size", "--population", "3", "--json")
	require.NoError(t, err)

	var report sizeReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, sizeReport{
		Population:  3,
		HashCount:   2,
		BitLength:   9,
		ByteLength:  4,
		Theoretical: bloom.FalsePositiveRate(9, 2, 3),
	}, report)
}

func TestSizeCommandRejectsTooManyHashes(t *testing.T) {
	_, err := run(t, "size", "-k", "5")
	require.ErrorIs(t, err, bloom.ErrBadHashCount)
}

func TestMeasureCommand(t *testing.T) {
	out, err := run(t, "measure", "-n", "2000", "--queries", "2000",
		"--backend", "atomic", "--workers", "3", "--json", "--log-level", "error")
	require.NoError(t, err)

	var res fpcheck.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, uint32(2000), res.Inserted)
	require.Equal(t, uint32(2000), res.Queries)
	require.Greater(t, res.Empirical, 0.1)
	require.Less(t, res.Empirical, 0.4)
}

func TestMeasureCommandRejectsWorkersWithoutAtomic(t *testing.T) {
	_, err := run(t, "measure", "--workers", "2")
	require.ErrorIs(t, err, config.ErrBadWorkers)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloomcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter:\n  population: 1000\n  hash_count: 4\n"), 0o600))

	out, err := run(t, "size", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "k=4 m=5771 bytes=724")

	out, err = run(t, "size", "--config", path, "-k", "2")
	require.NoError(t, err)
	require.Contains(t, out, "k=2 m=2885 bytes=364")
}
