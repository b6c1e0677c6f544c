package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/forestrie/go-bloomfilter/bloom"
)

const (
	BackendOwned    = "owned"
	BackendBorrowed = "borrowed"
	BackendAtomic   = "atomic"

	DefaultPopulation = 1000
	DefaultQueries    = 100000
)

var (
	ErrBadBackend = errors.New("config: backend must be owned, borrowed or atomic")
	ErrBadWorkers = errors.New("config: workers > 1 requires the atomic backend")
	ErrBadQueries = errors.New("config: queries must be positive")
)

type Config struct {
	Filter  FilterConfig  `yaml:"filter"`
	Measure MeasureConfig `yaml:"measure"`
	Logging LoggingConfig `yaml:"logging"`
}

type FilterConfig struct {
	Population uint32 `yaml:"population"`
	HashCount  uint32 `yaml:"hash_count"`
}

type MeasureConfig struct {
	Queries uint32 `yaml:"queries"`
	Backend string `yaml:"backend"`
	Workers int    `yaml:"workers"`
	Seed    uint64 `yaml:"seed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Filter: FilterConfig{
			Population: DefaultPopulation,
			HashCount:  bloom.DefaultHashCount,
		},
		Measure: MeasureConfig{
			Queries: DefaultQueries,
			Backend: BackendOwned,
			Workers: 1,
			Seed:    1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults. The
// environment overrides are applied after the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("BLOOMCALC_POPULATION"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("BLOOMCALC_POPULATION: %w", err)
		}
		cfg.Filter.Population = uint32(n)
	}
	if v := os.Getenv("BLOOMCALC_HASH_COUNT"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("BLOOMCALC_HASH_COUNT: %w", err)
		}
		cfg.Filter.HashCount = uint32(n)
	}
	if v := os.Getenv("BLOOMCALC_BACKEND"); v != "" {
		cfg.Measure.Backend = v
	}
	if v := os.Getenv("BLOOMCALC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// Validate checks the settings that bloom.New does not.
func (c *Config) Validate() error {
	if _, err := bloom.BitLength(c.Filter.Population, c.Filter.HashCount); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	switch c.Measure.Backend {
	case BackendOwned, BackendBorrowed, BackendAtomic:
	default:
		return fmt.Errorf("%w: %q", ErrBadBackend, c.Measure.Backend)
	}
	if c.Measure.Workers > 1 && c.Measure.Backend != BackendAtomic {
		return ErrBadWorkers
	}
	if c.Measure.Queries == 0 {
		return ErrBadQueries
	}
	return nil
}
