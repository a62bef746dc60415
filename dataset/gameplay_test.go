package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belotecore/dds/card"
	"github.com/belotecore/dds/endgame/negamax"
	"github.com/belotecore/dds/rules"
	"github.com/belotecore/dds/state"
	"github.com/belotecore/dds/zobrist"
)

// TestLabelStateCriticalFilterDropsSuitSymmetricChoice reproduces spec.md
// §8 scenario 6: a state with two legal moves that both lead, after
// perfect play, to the same declarer score.
//
// Player 0 holds 7♦ and 7♣ with two tricks left; every other diamond/club
// still in play is held as a same-rank pair (9♦+9♣, both with player 2),
// and the other two hands hold only hearts (trump) and spades. Relabeling
// ♦↔♣ is then an automorphism of the remaining position — neither suit is
// trump, and point/strength tables depend only on rank — so leading 7♦ or
// 7♣ must solve to the identical value.
func TestLabelStateCriticalFilterDropsSuitSymmetricChoice(t *testing.T) {
	z := zobrist.New(zobrist.DefaultSeed)
	hands := [4]card.Hand{
		card.Hand(0).Add(card.New(card.Diamonds, card.Seven)).Add(card.New(card.Clubs, card.Seven)),
		card.Hand(0).Add(card.New(card.Hearts, card.Eight)).Add(card.New(card.Spades, card.Eight)),
		card.Hand(0).Add(card.New(card.Diamonds, card.Nine)).Add(card.New(card.Clubs, card.Nine)),
		card.Hand(0).Add(card.New(card.Hearts, card.Nine)).Add(card.New(card.Spades, card.Nine)),
	}
	d := state.New(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0, z)
	require.NoError(t, d.Validate())

	solver := negamax.NewSolver(z, 10, rules.Options{})
	row, ok, err := labelState(solver, d, z, rules.Seat(0), false, rules.Options{})
	require.NoError(t, err)
	assert.False(t, ok, "suit-symmetric choice must be dropped by the critical filter")
	assert.Equal(t, GameplayRow{}, row)
}

// TestLabelStateAcceptsDiscriminativeState checks the ordinary case: a
// state with legal moves whose solved values differ is accepted and
// labeled with the better one.
func TestLabelStateAcceptsDiscriminativeState(t *testing.T) {
	z := zobrist.New(zobrist.DefaultSeed)
	// Two tricks remaining, player 0 on lead holding A♠ and 7♦. Leading A♠
	// first wins 11, then 7♦ is trumped and EW take the last trick (NS 11).
	// Leading 7♦ first concedes the 14-point trump trick, and A♠ then wins
	// the last trick with dix de der (NS 11 + 10 = 21), so 7♦ is best.
	hands := [4]card.Hand{
		card.Hand(0).Add(card.New(card.Spades, card.Ace)).Add(card.New(card.Diamonds, card.Seven)),
		card.Hand(0).Add(card.New(card.Spades, card.Seven)).Add(card.New(card.Hearts, card.Seven)),
		card.Hand(0).Add(card.New(card.Spades, card.Eight)).Add(card.New(card.Hearts, card.Eight)),
		card.Hand(0).Add(card.New(card.Spades, card.Nine)).Add(card.New(card.Hearts, card.Nine)),
	}
	d := state.New(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0, z)
	require.NoError(t, d.Validate())

	solver := negamax.NewSolver(z, 10, rules.Options{})
	row, ok, err := labelState(solver, d, z, rules.Seat(0), false, rules.Options{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint8(card.New(card.Diamonds, card.Seven)), row.BestCard)
	assert.Greater(t, row.BestValue, row.SecondBestValue)
}

func TestEncodeTrickPadsEmptySlots(t *testing.T) {
	trick := rules.Trick{}.Append(rules.Seat(0), card.New(card.Hearts, card.Ace))
	out := encodeTrick(trick)
	assert.Equal(t, uint8(card.New(card.Hearts, card.Ace)), out[0])
	assert.Equal(t, EmptyTrickCard, out[1])
	assert.Equal(t, EmptyTrickCard, out[2])
	assert.Equal(t, EmptyTrickCard, out[3])
}

func TestPickBucketAlwaysReturnsAKnownBucket(t *testing.T) {
	rng := testRNG(11)
	for i := 0; i < 100; i++ {
		b := pickBucket(rng)
		found := false
		for _, known := range buckets {
			if b == known {
				found = true
			}
		}
		assert.True(t, found)
	}
}
