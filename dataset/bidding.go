package dataset

import (
	"context"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
	"lukechampine.com/frand"

	"github.com/belotecore/dds/card"
	"github.com/belotecore/dds/endgame/negamax"
	"github.com/belotecore/dds/rules"
	"github.com/belotecore/dds/zobrist"
)

// BiddingRow is one row of the bidding corpus, spec.md §6's schema.
type BiddingRow struct {
	Hand          uint32
	ScoreHearts   int32
	ScoreDiamonds int32
	ScoreClubs    int32
	ScoreSpades   int32
	PIMCN         int32
	BiasMode      uint8
}

// GenerateBidding writes n bidding rows to w. pimcN selects oracle mode
// (1) or PIMC averaging over pimcN resamplings of the other three hands
// (spec.md §4.4). Player 0 is always the declarer whose hand is sampled
// and scored.
func GenerateBidding(ctx context.Context, z *zobrist.Tables, rng *frand.RNG, n, pimcN, ttLog2 int, opts rules.Options, w *BiddingWriter) error {
	if pimcN < 1 {
		pimcN = 1
	}
	solver := negamax.NewSolver(z, ttLog2, opts)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		mode := PickBiasMode(rng)
		hand := BiasedHand(rng, mode)

		var samples [card.NumSuits][]float64
		for suit := range samples {
			samples[suit] = make([]float64, 0, pimcN)
		}
		for trial := 0; trial < pimcN; trial++ {
			hands := DealRemaining(rng, hand)
			for suit := card.Hearts; suit <= card.Spades; suit++ {
				v, err := solver.Solve(hands, suit, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0)
				if err != nil {
					return err
				}
				samples[suit] = append(samples[suit], float64(v))
			}
		}

		means := [card.NumSuits]int32{}
		for suit, s := range samples {
			mean, stddev := stat.MeanStdDev(s, nil)
			means[suit] = int32(mean)
			if pimcN > 1 {
				log.Debug().Int("suit", suit).Float64("mean", mean).Float64("stddev", stddev).Msg("pimc-bidding-sample")
			}
		}

		row := BiddingRow{
			Hand:          uint32(hand),
			ScoreHearts:   means[card.Hearts],
			ScoreDiamonds: means[card.Diamonds],
			ScoreClubs:    means[card.Clubs],
			ScoreSpades:   means[card.Spades],
			PIMCN:         int32(pimcN),
			BiasMode:      uint8(mode),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
