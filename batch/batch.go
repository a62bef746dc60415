// Package batch implements spec.md §5's batch-level parallelism: many
// independent (hands, trump) problems solved across a fixed worker pool,
// each worker owning its own Solver and transposition table, with results
// written back indexed by input position rather than completion order.
package batch

import (
	"context"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/belotecore/dds/card"
	"github.com/belotecore/dds/endgame/negamax"
	"github.com/belotecore/dds/rules"
	"github.com/belotecore/dds/zobrist"
)

// Problem is one unit of batch work: a fully dealt set of hands, a trump
// suit, and the declaring seat. The trick is always assumed empty at the
// batch entry point, per spec.md §6's solve_batch signature.
type Problem struct {
	Hands    [4]card.Hand
	Trump    card.Suit
	Declarer rules.Seat
}

// Result holds one problem's solved score, or the error validating or
// solving it returned.
type Result struct {
	Value int32
	Err   error
}

// Options configures a batch run. Workers defaults to runtime.NumCPU() when
// zero or negative, matching spec.md §6's `--threads 0 = all cores`.
type Options struct {
	Workers  int
	TTLog2   int
	MoveOpts rules.Options
}

// Solve distributes problems round-robin across Options.Workers workers,
// each with its own Solver/TranspositionTable pair borrowing the shared
// read-only Zobrist tables (spec.md §5, §9). Results are indexed by input
// position: slot i always holds problems[i]'s outcome, regardless of which
// worker computed it or when. A worker that fails to solve its problem
// returns that error instead of only recording it in Result, so it becomes
// the group's first error; errgroup.WithContext then cancels gctx, which
// unblocks and stops every other worker (and the job producer) at their
// next select, giving spec.md §7's "propagate the first worker failure...
// cancel siblings on a best-effort basis" without a separate cancellation
// mechanism.
func Solve(ctx context.Context, z *zobrist.Tables, problems []Problem, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(problems) && len(problems) > 0 {
		workers = len(problems)
	}

	results := make([]Result, len(problems))
	jobs := make(chan int, workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range problems {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			solver := negamax.NewSolver(z, opts.TTLog2, opts.MoveOpts)
			for idx := range jobs {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				p := problems[idx]
				v, err := solver.Solve(p.Hands, p.Trump, p.Declarer, rules.Trick{}, rules.Seat(0), 0, 0)
				results[idx] = Result{Value: v, Err: err}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Err(err).Msg("batch-solve-worker-failed")
		return results, err
	}
	return results, nil
}

// SolveAllSuits runs Solve once per trump suit for every problem, matching
// spec.md §6's `solve_batch` output shape (N, 4): row i holds problems[i]'s
// score for Hearts, Diamonds, Clubs, Spades in that column order.
func SolveAllSuits(ctx context.Context, z *zobrist.Tables, problems []Problem, opts Options) ([][card.NumSuits]Result, error) {
	out := make([][card.NumSuits]Result, len(problems))
	for suit := card.Hearts; suit <= card.Spades; suit++ {
		perSuit := make([]Problem, len(problems))
		for i, p := range problems {
			perSuit[i] = Problem{Hands: p.Hands, Trump: suit, Declarer: p.Declarer}
		}
		res, err := Solve(ctx, z, perSuit, opts)
		if err != nil {
			return out, err
		}
		for i, r := range res {
			out[i][suit] = r
		}
	}
	return out, nil
}
