package dataset

import (
	"context"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/belotecore/dds/card"
	"github.com/belotecore/dds/endgame/negamax"
	"github.com/belotecore/dds/rules"
	"github.com/belotecore/dds/state"
	"github.com/belotecore/dds/zobrist"
)

// EmptyTrickCard marks an unused trick_cards slot in the wire schema.
const EmptyTrickCard uint8 = 255

// GameplayRow is one row of the gameplay corpus, spec.md §6's schema.
type GameplayRow struct {
	Hands           [4]card.Hand
	Trump           card.Suit
	Declarer        rules.Seat
	Starter         rules.Seat
	TrickCards      [4]uint8
	NSPoints        int16
	EWPoints        int16
	BestCard        uint8
	BestValue       int32
	SecondBestValue int32
	Perturbed       bool
}

// stateBucket is the tricks-played range spec.md §4.4's state distribution
// names, with its selection weight out of 100.
type stateBucket struct {
	minTricks, maxTricks int
	weight               int
}

var buckets = []stateBucket{
	{0, 2, 20}, // opening
	{3, 5, 30}, // mid
	{6, 7, 50}, // endgame
}

func pickBucket(rng *frand.RNG) stateBucket {
	n := rng.Intn(100)
	acc := 0
	for _, b := range buckets {
		acc += b.weight
		if n < acc {
			return b
		}
	}
	return buckets[len(buckets)-1]
}

// GenerateGameplay writes n accepted gameplay rows to w, per spec.md §4.4.
// Samples whose best and second-best child values tie are dropped (the
// critical-position filter) and do not count against n.
func GenerateGameplay(ctx context.Context, z *zobrist.Tables, rng *frand.RNG, n, ttLog2 int, opts rules.Options, w *GameplayWriter) error {
	solver := negamax.NewSolver(z, ttLog2, opts)
	written := 0

	for written < n {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, declarer := synthesizeStartingPoint(rng, z, opts)

		perturbed := false
		if rng.Intn(10) < 2 {
			if ok := forceSubOptimalMove(solver, d, z, declarer, opts); ok {
				perturbed = true
			}
		}

		row, ok, err := labelState(solver, d, z, declarer, perturbed, opts)
		if err != nil {
			return err
		}
		if !ok {
			continue // critical-position filter: no discriminative signal
		}
		if err := w.Write(row); err != nil {
			return err
		}
		written++
	}
	return nil
}

// synthesizeStartingPoint deals a full random deal, picks a random
// declarer and trump, then plays legal moves until a bucket-sampled number
// of tricks has been completed, using a 50/50 mix of a random legal policy and the solver's own optimal
// policy (spec.md §4.4: "using either the solver itself or a random legal
// policy").
func synthesizeStartingPoint(rng *frand.RNG, z *zobrist.Tables, opts rules.Options) (*state.Deal, rules.Seat) {
	hands := FullRandomDeal(rng)
	declarer := rules.Seat(rng.Intn(4))
	trump := card.Suit(rng.Intn(card.NumSuits))
	d := state.New(hands, trump, declarer, rules.Trick{}, rules.Seat(0), 0, 0, z)

	bucket := pickBucket(rng)
	target := bucket.minTricks + rng.Intn(bucket.maxTricks-bucket.minTricks+1)
	useSolver := rng.Intn(2) == 0
	var solver *negamax.Solver
	if useSolver {
		solver = negamax.NewSolver(z, 12, opts)
	}

	for d.CompletedTricks < target && !d.Terminal() {
		mover := d.ToMove()
		legal := rules.LegalMoves(d.Hands[mover], d.Trick, d.Trump, opts).Cards()
		if len(legal) == 0 {
			break
		}
		var choice card.Card
		if useSolver {
			choice = bestMove(solver, d, z, declarer, legal)
		} else {
			choice = legal[rng.Intn(len(legal))]
		}
		d.Play(z, mover, choice)
	}
	return d, declarer
}

// bestMove solves every candidate's resulting child state and returns the
// one most favorable to the mover's team.
func bestMove(solver *negamax.Solver, d *state.Deal, z *zobrist.Tables, declarer rules.Seat, candidates []card.Card) card.Card {
	mover := d.ToMove()
	maximizing := mover.Team() == declarer.Team()
	best := candidates[0]
	var bestValue int32
	first := true
	for _, c := range candidates {
		undo := d.Play(z, mover, c)
		// d.NSPoints/d.EWPoints reflect this simulated deal's own history
		// from the full 32-card start (synthesizeStartingPoint plays from a
		// FullRandomDeal), so Solve's capot check against them is accurate;
		// labeling a root fabricated from a partial hand instead would risk
		// a false capot the way a bare points-only signature always can.
		v, err := solver.Solve(d.Hands, d.Trump, declarer, d.Trick, d.Starter, d.NSPoints, d.EWPoints)
		d.Unplay(undo)
		if err != nil {
			continue
		}
		if first || (maximizing && v > bestValue) || (!maximizing && v < bestValue) {
			best, bestValue, first = c, v, false
		}
	}
	return best
}

// forceSubOptimalMove implements spec.md §4.4's DAgger perturbation: play
// any legal move other than the best one, advancing d by one ply in
// place. Returns false if there is no alternative to the best move.
func forceSubOptimalMove(solver *negamax.Solver, d *state.Deal, z *zobrist.Tables, declarer rules.Seat, opts rules.Options) bool {
	mover := d.ToMove()
	legal := rules.LegalMoves(d.Hands[mover], d.Trick, d.Trump, opts).Cards()
	if len(legal) < 2 {
		return false
	}
	best := bestMove(solver, d, z, declarer, legal)
	for _, c := range legal {
		if c != best {
			d.Play(z, mover, c)
			return true
		}
	}
	return false
}

// labelState enumerates legal moves at d, solves every resulting child,
// and reports the best move/value pair plus the runner-up value needed by
// the critical-position filter.
func labelState(solver *negamax.Solver, d *state.Deal, z *zobrist.Tables, declarer rules.Seat, perturbed bool, opts rules.Options) (GameplayRow, bool, error) {
	if d.Terminal() {
		return GameplayRow{}, false, nil
	}
	mover := d.ToMove()
	legal := rules.LegalMoves(d.Hands[mover], d.Trick, d.Trump, opts).Cards()
	if len(legal) < 2 {
		return GameplayRow{}, false, nil
	}
	maximizing := mover.Team() == declarer.Team()

	type scored struct {
		c card.Card
		v int32
	}
	results := make([]scored, 0, len(legal))
	for _, c := range legal {
		undo := d.Play(z, mover, c)
		// Same capot-accuracy argument as bestMove's call above: d here
		// always descends from synthesizeStartingPoint's FullRandomDeal, so
		// d.NSPoints/d.EWPoints are genuine full-deal history, not a
		// fabricated mid-deal points pair that could mislabel capot.
		v, err := solver.Solve(d.Hands, d.Trump, declarer, d.Trick, d.Starter, d.NSPoints, d.EWPoints)
		d.Unplay(undo)
		if err != nil {
			return GameplayRow{}, false, err
		}
		results = append(results, scored{c, v})
	}

	var best scored
	if maximizing {
		best = lo.MaxBy(results, func(a, b scored) bool { return a.v > b.v })
	} else {
		best = lo.MinBy(results, func(a, b scored) bool { return a.v < b.v })
	}
	runnersUp := lo.Filter(results, func(r scored, _ int) bool { return r.c != best.c })
	second := best
	if len(runnersUp) > 0 {
		if maximizing {
			second = lo.MaxBy(runnersUp, func(a, b scored) bool { return a.v > b.v })
		} else {
			second = lo.MinBy(runnersUp, func(a, b scored) bool { return a.v < b.v })
		}
	}
	if best.v == second.v {
		return GameplayRow{}, false, nil // critical-position filter
	}

	row := GameplayRow{
		Hands:           d.Hands,
		Trump:           d.Trump,
		Declarer:        declarer,
		Starter:         d.Starter,
		TrickCards:      encodeTrick(d.Trick),
		NSPoints:        int16(d.NSPoints),
		EWPoints:        int16(d.EWPoints),
		BestCard:        uint8(best.c),
		BestValue:       best.v,
		SecondBestValue: second.v,
		Perturbed:       perturbed,
	}
	return row, true, nil
}

func encodeTrick(t rules.Trick) [4]uint8 {
	var out [4]uint8
	for i := range out {
		out[i] = EmptyTrickCard
	}
	for i := uint8(0); i < t.Len; i++ {
		out[i] = uint8(t.Plays[i].Card)
	}
	return out
}
