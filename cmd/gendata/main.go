// Command gendata drives the bidding and gameplay corpus generators
// (spec.md §4.4, §6) from a single CLI invocation: it resolves config,
// seeds the shared Zobrist tables, and streams labeled rows to CSV.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/belotecore/dds/config"
	"github.com/belotecore/dds/dataset"
	"github.com/belotecore/dds/rules"
	"github.com/belotecore/dds/zobrist"
)

// maxIOAttempts bounds createWithRetry's exponential backoff when creating
// an output file before the driver exits. Errors while writing rows to an
// already-open partition are not retried.
const maxIOAttempts = 5

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gendata: invalid configuration:", err)
		os.Exit(2)
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().
		Int("bidding_samples", cfg.BiddingSamples).
		Int("gameplay_samples", cfg.GameplaySamples).
		Int("threads", cfg.Threads).
		Msg("gendata starting")

	z := zobrist.New(cfg.Seed)
	opts := rules.Options{}
	ctx := context.Background()

	if cfg.BiddingSamples > 0 {
		if err := runSharded(ctx, cfg.Threads, cfg.Seed, cfg.BiddingSamples, cfg.BiddingOutput,
			func(ctx context.Context, rng *frand.RNG, n int, f *os.File) error {
				w, err := dataset.NewBiddingWriter(f)
				if err != nil {
					return err
				}
				if err := dataset.GenerateBidding(ctx, z, rng, n, cfg.PIMC, cfg.TTLog2, opts, w); err != nil {
					return err
				}
				return w.Close()
			}); err != nil {
			log.Error().Err(err).Msg("bidding generation failed")
			os.Exit(1)
		}
	}
	if cfg.GameplaySamples > 0 {
		if err := runSharded(ctx, cfg.Threads, cfg.Seed, cfg.GameplaySamples, cfg.GameplayOutput,
			func(ctx context.Context, rng *frand.RNG, n int, f *os.File) error {
				w, err := dataset.NewGameplayWriter(f)
				if err != nil {
					return err
				}
				if err := dataset.GenerateGameplay(ctx, z, rng, n, cfg.TTLog2, opts, w); err != nil {
					return err
				}
				return w.Close()
			}); err != nil {
			log.Error().Err(err).Msg("gameplay generation failed")
			os.Exit(1)
		}
	}

	if err := writeManifestWithRetry(cfg); err != nil {
		log.Error().Err(err).Msg("manifest write failed")
		os.Exit(1)
	}
	log.Info().Msg("gendata finished")
}

// generateFn runs one worker's share of a corpus against its own writer.
type generateFn func(ctx context.Context, rng *frand.RNG, n int, f *os.File) error

// runSharded splits total rows evenly across workers worker goroutines,
// each writing its own partition file (spec.md §4.4: "writes are
// append-only per worker; workers never share a file") and seeded off
// baseSeed with an xxhash-derived per-worker offset so runs are
// reproducible for a fixed (seed, worker count) pair.
func runSharded(ctx context.Context, workers int, baseSeed uint64, total int, outputPath string, gen generateFn) error {
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	g, gctx := errgroup.WithContext(ctx)
	base, rem := total/workers, total%workers
	for w := 0; w < workers; w++ {
		n := base
		if w < rem {
			n++
		}
		if n == 0 {
			continue
		}
		worker := w
		g.Go(func() error {
			path := partitionPath(outputPath, worker, workers)
			f, err := createWithRetry(path)
			if err != nil {
				return err
			}
			defer f.Close()

			var seedBytes [9]byte
			for i := 0; i < 8; i++ {
				seedBytes[i] = byte(baseSeed >> (8 * i))
			}
			seedBytes[8] = byte(worker)
			workerSeed := xxhash.Sum64(seedBytes[:])
			rngSeed := zobrist.ExpandSeed(workerSeed)
			rng := frand.NewCustom(rngSeed[:], 1024, 20)

			return gen(gctx, rng, n, f)
		})
	}
	return g.Wait()
}

// partitionPath inserts a worker suffix before the file extension. With a
// single worker the path is left untouched.
func partitionPath(path string, worker, workers int) string {
	if workers <= 1 {
		return path
	}
	ext := ""
	if i := strings.LastIndex(path, "."); i >= 0 {
		ext = path[i:]
		path = path[:i]
	}
	return fmt.Sprintf("%s.%d%s", path, worker, ext)
}

func writeManifestWithRetry(cfg *config.Config) error {
	f, err := createWithRetry(cfg.ManifestPath)
	if err != nil {
		return err
	}
	defer f.Close()

	m := dataset.Manifest{
		BiddingSamples:  cfg.BiddingSamples,
		GameplaySamples: cfg.GameplaySamples,
		PIMCN:           cfg.PIMC,
		TTLog2:          cfg.TTLog2,
		Workers:         cfg.Threads,
		Seed:            cfg.Seed,
		BiasModeMix:     "40/20/20/20",
	}
	return dataset.WriteManifest(f, m)
}

// createWithRetry opens path for writing, retrying transient failures with
// exponential backoff up to maxIOAttempts before giving up (spec.md §7).
func createWithRetry(path string) (*os.File, error) {
	var lastErr error
	backoff := 100 * time.Millisecond
	for attempt := 0; attempt < maxIOAttempts; attempt++ {
		f, err := os.Create(path)
		if err == nil {
			return f, nil
		}
		lastErr = err
		log.Warn().Err(err).Str("path", path).Int("attempt", attempt+1).Msg("retrying output file create")
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, fmt.Errorf("gendata: giving up creating %s after %d attempts: %w", path, maxIOAttempts, lastErr)
}
