package negamax

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/belotecore/dds/card"
	"github.com/belotecore/dds/rules"
	"github.com/belotecore/dds/state"
	"github.com/belotecore/dds/zobrist"
)

func newTestSolver() *Solver {
	return NewSolver(zobrist.New(zobrist.DefaultSeed), 12, rules.Options{})
}

// TestGodHandCapot reproduces spec.md §8 scenario 1: player 0 holds every
// heart, trump is Hearts, declarer is 0. Expect 162 card points + 90 capot
// + 20 belote (player 0 holds both K♥ and Q♥) = 272.
func TestGodHandCapot(t *testing.T) {
	s := newTestSolver()
	var hands [4]card.Hand
	for r := 0; r < card.NumRanks; r++ {
		hands[0] = hands[0].Add(card.New(card.Hearts, card.Rank(r)))
	}
	for i := card.NumRanks; i < card.NumCards; i++ {
		hands[1+(i-card.NumRanks)/8] = hands[1+(i-card.NumRanks)/8].Add(card.Card(i))
	}
	v, err := s.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0)
	assert.NoError(t, err)
	assert.EqualValues(t, 272, v)
}

// TestSplitBelote reproduces spec.md §8 scenario 2: NS controls every
// trump and the side aces but King and Queen of trump are split between
// the two NS hands, so no belote bonus applies; expect 252 (162 + 90,
// no +20).
func TestSplitBelote(t *testing.T) {
	s := newTestSolver()
	var hands [4]card.Hand
	add := func(seat int, cards ...card.Card) {
		for _, c := range cards {
			hands[seat] = hands[seat].Add(c)
		}
	}
	h := func(r card.Rank) card.Card { return card.New(card.Hearts, r) }
	add(0, h(card.Seven), h(card.Eight), h(card.Nine), h(card.Ten), h(card.Jack), h(card.Queen), h(card.Ace), card.New(card.Spades, card.Ace))
	add(2, h(card.King), card.New(card.Clubs, card.Ace), card.New(card.Diamonds, card.Ace),
		card.New(card.Clubs, card.Eight), card.New(card.Clubs, card.Nine), card.New(card.Clubs, card.Ten),
		card.New(card.Clubs, card.Jack), card.New(card.Clubs, card.Queen))
	add(1, card.New(card.Diamonds, card.Seven), card.New(card.Diamonds, card.Eight), card.New(card.Diamonds, card.Nine),
		card.New(card.Diamonds, card.Ten), card.New(card.Diamonds, card.Jack), card.New(card.Diamonds, card.Queen),
		card.New(card.Diamonds, card.King), card.New(card.Clubs, card.Seven))
	add(3, card.New(card.Clubs, card.King), card.New(card.Spades, card.Seven), card.New(card.Spades, card.Eight),
		card.New(card.Spades, card.Nine), card.New(card.Spades, card.Ten), card.New(card.Spades, card.Jack),
		card.New(card.Spades, card.Queen), card.New(card.Spades, card.King))

	v, err := s.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0)
	assert.NoError(t, err)
	assert.EqualValues(t, 252, v)
}

// TestLoneTrickEndgame reproduces spec.md §8 scenario 3 via the full Solve
// entry point: one trick left, ns=0 and ew=152 with this trick still to
// play, so solve must equal 0 + 11 (A♠) + 10 (dix de der) = 21.
func TestLoneTrickEndgame(t *testing.T) {
	s := newTestSolver()
	var hands [4]card.Hand
	hands[0] = hands[0].Add(card.New(card.Spades, card.Ace))
	hands[1] = hands[1].Add(card.New(card.Spades, card.Seven))
	hands[2] = hands[2].Add(card.New(card.Spades, card.Eight))
	hands[3] = hands[3].Add(card.New(card.Spades, card.Nine))

	v, err := s.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 152)
	assert.NoError(t, err)
	assert.EqualValues(t, 21, v)
}

// TestTerminalValueCapotRequiresTricksNotJustZeroPoints guards against a
// regression where capot was granted whenever the defending team's
// accumulated *points* were zero. A trick can be worth zero card points
// (four non-trump 7/8/9s) and still be won: EW winning such a trick must
// block capot even though EW's point total stays at zero.
func TestTerminalValueCapotRequiresTricksNotJustZeroPoints(t *testing.T) {
	s := newTestSolver()
	s.declarerTeam = 0
	s.beloteTeam = -1

	d := state.New([4]card.Hand{}, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0, s.z)
	d.TricksWon[1] = 1 // EW won one (zero-point) trick during this call

	assert.EqualValues(t, 0, s.terminalValue(d))
}

// TestTerminalValueCapotStillAwardedWhenOtherTeamNeverWonATrick is the
// positive counterpart: no tricks and no points for the defending team
// still yields the capot bonus.
func TestTerminalValueCapotStillAwardedWhenOtherTeamNeverWonATrick(t *testing.T) {
	s := newTestSolver()
	s.declarerTeam = 0
	s.beloteTeam = -1

	d := state.New([4]card.Hand{}, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 12, 0, s.z)
	assert.EqualValues(t, 12+90, s.terminalValue(d))
}

// TestTranspositionReuseAcrossCallsWithDifferentPointSplits guards against
// a regression where a Solver's persistent transposition table (shared
// across Solve calls, spec.md §9: "one TT per worker, lifetime = worker
// lifetime") stored a node's absolute value under a key that excludes
// accumulated points (spec.md §4.2), letting one call's banked-point
// history silently answer a different call's probe of the identical
// remaining-hand state. All three calls below share one Solver/TT and
// reach the exact same {hands, trick, turn, trump} key at every ply; only
// the banked history passed into Solve differs.
func TestTranspositionReuseAcrossCallsWithDifferentPointSplits(t *testing.T) {
	s := newTestSolver()
	var hands [4]card.Hand
	hands[0] = hands[0].Add(card.New(card.Spades, card.Ace))
	hands[1] = hands[1].Add(card.New(card.Spades, card.Seven))
	hands[2] = hands[2].Add(card.New(card.Spades, card.Eight))
	hands[3] = hands[3].Add(card.New(card.Spades, card.Nine))

	// EW already has points on the board: capot is dead, NS's own history
	// starts at 0. Final value is just NS's history plus this trick's 21.
	v1, err := s.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 152)
	assert.NoError(t, err)
	assert.EqualValues(t, 21, v1)

	// Same key path as v1, but NS's history is nonzero this time and EW's
	// is 100 (still not capot-eligible: EW's own initial points, not NS's,
	// are what capot checks). Under the pre-fix bug this call would
	// probe-hit v1's cached node values and ignore its own 50-point head
	// start entirely.
	v2, err := s.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 50, 100)
	assert.NoError(t, err)
	assert.EqualValues(t, 71, v2)

	// Same key path again, but now EW's initial points are genuinely zero:
	// capot is live, and NS winning this, its only trick, wins the whole
	// call's capot bonus on top of the trick's own points.
	v3, err := s.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0)
	assert.NoError(t, err)
	assert.EqualValues(t, 21+90, v3)
}

// TestTranspositionTransparency exercises spec.md §8's property that
// enabling the transposition table never changes the returned value.
func TestTranspositionTransparency(t *testing.T) {
	hands := [4]card.Hand{}
	for i := 0; i < card.NumCards; i++ {
		hands[i%4] = hands[i%4].Add(card.Card(i))
	}

	withTT := newTestSolver()
	v1, err := withTT.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0)
	assert.NoError(t, err)

	withoutTT := newTestSolver()
	withoutTT.SetTranspositionTableOptim(false)
	v2, err := withoutTT.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0)
	assert.NoError(t, err)

	assert.Equal(t, v1, v2)
}

func TestSolveAllSuitsCoversFourSuits(t *testing.T) {
	s := newTestSolver()
	var hands [4]card.Hand
	for i := 0; i < card.NumCards; i++ {
		hands[i%4] = hands[i%4].Add(card.Card(i))
	}
	out, err := s.SolveAllSuits(hands, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0)
	assert.NoError(t, err)
	assert.Len(t, out, card.NumSuits)
	for _, v := range out {
		assert.GreaterOrEqual(t, v, int32(0))
		assert.LessOrEqual(t, v, int32(272))
	}
}

func TestSolveRejectsInvalidDeal(t *testing.T) {
	s := newTestSolver()
	var hands [4]card.Hand
	hands[0] = hands[0].Add(card.New(card.Hearts, card.Seven))
	hands[1] = hands[1].Add(card.New(card.Hearts, card.Seven)) // duplicate card
	_, err := s.Solve(hands, card.Hearts, rules.Seat(0), rules.Trick{}, rules.Seat(0), 0, 0)
	assert.Error(t, err)
}
