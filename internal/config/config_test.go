package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-bloomfilter/bloom"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bloomcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
filter:
  population: 5000
  hash_count: 4
measure:
  backend: atomic
  workers: 4
logging:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(5000), cfg.Filter.Population)
	require.Equal(t, uint32(4), cfg.Filter.HashCount)
	require.Equal(t, BackendAtomic, cfg.Measure.Backend)
	require.Equal(t, 4, cfg.Measure.Workers)
	require.Equal(t, uint32(DefaultQueries), cfg.Measure.Queries)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "filter:\n  population: 5000\n")
	t.Setenv("BLOOMCALC_POPULATION", "42")
	t.Setenv("BLOOMCALC_HASH_COUNT", "3")
	t.Setenv("BLOOMCALC_BACKEND", BackendBorrowed)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(42), cfg.Filter.Population)
	require.Equal(t, uint32(3), cfg.Filter.HashCount)
	require.Equal(t, BackendBorrowed, cfg.Measure.Backend)

	t.Setenv("BLOOMCALC_HASH_COUNT", "three")
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "filter: [1, 2"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Filter.HashCount = 5
	require.ErrorIs(t, cfg.Validate(), bloom.ErrBadHashCount)

	cfg = Default()
	cfg.Filter.Population = 0
	require.ErrorIs(t, cfg.Validate(), bloom.ErrBadBitLength)

	cfg = Default()
	cfg.Measure.Backend = "mmap"
	require.ErrorIs(t, cfg.Validate(), ErrBadBackend)

	cfg = Default()
	cfg.Measure.Workers = 2
	require.ErrorIs(t, cfg.Validate(), ErrBadWorkers)
	cfg.Measure.Backend = BackendAtomic
	require.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Measure.Queries = 0
	require.ErrorIs(t, cfg.Validate(), ErrBadQueries)
}
