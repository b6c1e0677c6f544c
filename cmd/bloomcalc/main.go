// Command bloomcalc sizes Bloom filters and measures their false positive
// rate.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/forestrie/go-bloomfilter/bloom"
	"github.com/forestrie/go-bloomfilter/internal/config"
	"github.com/forestrie/go-bloomfilter/internal/fpcheck"
	"github.com/forestrie/go-bloomfilter/internal/logger"
)

type sizeReport struct {
	Population  uint32  `json:"population"`
	HashCount   uint32  `json:"hash_count"`
	BitLength   uint32  `json:"bit_length"`
	ByteLength  uint32  `json:"byte_length"`
	Theoretical float64 `json:"theoretical_rate"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile   string
		asJSON    bool
		cfg       *config.Config
		log       logger.Logger
		filter    *bloom.Filter
		overrides = config.Default()
	)

	rootCmd := &cobra.Command{
		Use:          "bloomcalc",
		Short:        "Size Bloom filters and measure their false positive rate",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			applyFlags(cmd, cfg, overrides)
			if err := cfg.Validate(); err != nil {
				return err
			}

			log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

			filter, err = bloom.New(cfg.Filter.Population, bloom.WithHashCount(cfg.Filter.HashCount))
			if err != nil {
				return fmt.Errorf("failed to construct filter: %w", err)
			}
			log.Debug("filter constructed",
				"population", cfg.Filter.Population,
				"hash_count", filter.HashCount(),
				"bit_length", filter.BitLength())
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.Uint32VarP(&overrides.Filter.Population, "population", "n", overrides.Filter.Population, "estimated number of distinct keys")
	pf.Uint32VarP(&overrides.Filter.HashCount, "hashes", "k", overrides.Filter.HashCount, "hash functions per key (1-4)")
	pf.StringVar(&overrides.Logging.Level, "log-level", overrides.Logging.Level, "log level")
	pf.StringVar(&overrides.Logging.Format, "log-format", overrides.Logging.Format, "log format (text|json)")
	pf.BoolVar(&asJSON, "json", false, "print the report as JSON")

	sizeCmd := &cobra.Command{
		Use:   "size",
		Short: "Print the bit and byte length for a population",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := sizeReport{
				Population:  cfg.Filter.Population,
				HashCount:   filter.HashCount(),
				BitLength:   filter.BitLength(),
				ByteLength:  filter.RequiredByteLength(),
				Theoretical: filter.FalsePositiveRate(cfg.Filter.Population),
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"population=%d k=%d m=%d bytes=%d fp_rate=%.6f\n",
				report.Population, report.HashCount, report.BitLength,
				report.ByteLength, report.Theoretical)
			return nil
		},
	}

	measureCmd := &cobra.Command{
		Use:   "measure",
		Short: "Insert the population and measure the false positive rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := fpcheck.Measure(cmd.Context(), log, filter, fpcheck.Options{
				Inserted: cfg.Filter.Population,
				Queries:  cfg.Measure.Queries,
				Backend:  cfg.Measure.Backend,
				Workers:  cfg.Measure.Workers,
				Seed:     cfg.Measure.Seed,
			})
			if err != nil {
				log.Error("measure failed", "error", err.Error())
				return err
			}
			log.Info("measured",
				"backend", cfg.Measure.Backend,
				"empirical", res.Empirical,
				"theoretical", res.Theoretical)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"k=%d m=%d inserted=%d queries=%d false_positives=%d empirical=%.6f theoretical=%.6f fill=%.4f\n",
				res.HashCount, res.BitLength, res.Inserted, res.Queries,
				res.FalsePositives, res.Empirical, res.Theoretical, res.FillRatio)
			return nil
		},
	}
	mf := measureCmd.Flags()
	mf.Uint32Var(&overrides.Measure.Queries, "queries", overrides.Measure.Queries, "number of never inserted keys to query")
	mf.StringVar(&overrides.Measure.Backend, "backend", overrides.Measure.Backend, "bit storage (owned|borrowed|atomic)")
	mf.IntVar(&overrides.Measure.Workers, "workers", overrides.Measure.Workers, "concurrent inserters (atomic backend only)")
	mf.Uint64Var(&overrides.Measure.Seed, "seed", overrides.Measure.Seed, "key stream seed")

	rootCmd.AddCommand(sizeCmd, measureCmd)
	return rootCmd
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg, flags *config.Config) {
	set := cmd.Flags().Changed
	if set("population") {
		cfg.Filter.Population = flags.Filter.Population
	}
	if set("hashes") {
		cfg.Filter.HashCount = flags.Filter.HashCount
	}
	if set("log-level") {
		cfg.Logging.Level = flags.Logging.Level
	}
	if set("log-format") {
		cfg.Logging.Format = flags.Logging.Format
	}
	if set("queries") {
		cfg.Measure.Queries = flags.Measure.Queries
	}
	if set("backend") {
		cfg.Measure.Backend = flags.Measure.Backend
	}
	if set("workers") {
		cfg.Measure.Workers = flags.Measure.Workers
	}
	if set("seed") {
		cfg.Measure.Seed = flags.Measure.Seed
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
