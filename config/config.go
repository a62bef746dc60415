// Package config resolves the gendata CLI's flags, per spec.md §6's
// generation surface. Flags are declared with pflag and bound through
// viper so every value can also come from environment variables, with
// flags taking precedence. No config file is read.
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds one resolved gendata run's parameters.
type Config struct {
	BiddingSamples  int
	GameplaySamples int
	BiddingOutput   string
	GameplayOutput  string
	PIMC            int
	TTLog2          int
	BatchSize       int
	Threads         int
	Debug           bool
	ManifestPath    string
	Seed            uint64
}

// Load parses args (typically os.Args[1:]) into a Config. Values may also
// come from GENDATA_-prefixed environment variables; explicit flags win.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("gendata", pflag.ContinueOnError)
	fs.Int("bidding-samples", 0, "number of bidding corpus rows to generate")
	fs.Int("gameplay-samples", 0, "number of gameplay corpus rows to generate")
	fs.String("bidding-output", "bidding.csv", "path to the bidding corpus output file")
	fs.String("gameplay-output", "gameplay.csv", "path to the gameplay corpus output file")
	fs.Int("pimc", 1, "PIMC resamplings per bidding hand (1 = oracle mode)")
	fs.Int("tt-log2", 0, "log2 of the transposition table entry count per worker; 0 sizes automatically off a fraction of system memory")
	fs.Int("batch-size", 256, "batch size; must be positive (validated, not read by the generators)")
	fs.Int("threads", 0, "worker count; 0 resolves to all cores")
	fs.Bool("debug", false, "enable debug-level logging")
	fs.String("manifest-path", "manifest.yaml", "path to write the run manifest")
	fs.Uint64("seed", 0xBE107E5EED5EED01, "Zobrist and RNG seed")

	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("gendata")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	c.BiddingSamples = v.GetInt("bidding-samples")
	c.GameplaySamples = v.GetInt("gameplay-samples")
	c.BiddingOutput = v.GetString("bidding-output")
	c.GameplayOutput = v.GetString("gameplay-output")
	c.PIMC = v.GetInt("pimc")
	c.TTLog2 = v.GetInt("tt-log2")
	c.BatchSize = v.GetInt("batch-size")
	c.Threads = v.GetInt("threads")
	c.Debug = v.GetBool("debug")
	c.ManifestPath = v.GetString("manifest-path")
	c.Seed = v.GetUint64("seed")

	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
	}
	return c.Validate()
}

// Validate rejects configurations the generator cannot act on, per
// spec.md §7's exit-code-2 "invalid configuration" contract.
func (c *Config) Validate() error {
	if c.BiddingSamples < 0 || c.GameplaySamples < 0 {
		return fmt.Errorf("config: sample counts must be non-negative")
	}
	if c.BiddingSamples == 0 && c.GameplaySamples == 0 {
		return fmt.Errorf("config: at least one of --bidding-samples or --gameplay-samples must be positive")
	}
	if c.PIMC < 1 {
		return fmt.Errorf("config: --pimc must be at least 1")
	}
	if c.TTLog2 != 0 && (c.TTLog2 < 1 || c.TTLog2 > 27) {
		return fmt.Errorf("config: --tt-log2 must be 0 (auto) or in [1, 27]")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("config: --batch-size must be positive")
	}
	return nil
}
