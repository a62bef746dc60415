package state

import (
	"errors"
	"fmt"

	"github.com/belotecore/dds/card"
	"github.com/belotecore/dds/rules"
)

// Validation errors returned by Validate. Per spec.md §7, invalid input
// aborts the current call but never the process.
var (
	ErrOverlappingHands = errors.New("hands and trick cards overlap or do not partition the deck")
	ErrBadCardCount     = errors.New("remaining card count is not a multiple of four")
	ErrBadTurnAlignment = errors.New("starter_player + trick.length is not aligned with player_to_move")
	ErrBadSuit          = errors.New("trump suit out of range")
	ErrBadSeatIndex     = errors.New("declarer or starter seat out of range")
	ErrPointsOutOfRange = errors.New("ns_points + ew_points exceeds 152")
)

// Validate checks the invariants spec.md §3 lists. It is cheap enough to
// run once at the entry of Solve (spec.md §7: "the core validates inputs
// at the entry of solve").
func (d *Deal) Validate() error {
	if !d.Trump.Valid() {
		return ErrBadSuit
	}
	if int(d.Declarer) > 3 || int(d.Starter) > 3 {
		return ErrBadSeatIndex
	}

	union := card.Hand(0)
	total := 0
	for _, h := range d.Hands {
		if union&h != 0 {
			return ErrOverlappingHands
		}
		union |= h
		total += h.Count()
	}
	for i := uint8(0); i < d.Trick.Len; i++ {
		c := d.Trick.Plays[i].Card
		if union.Contains(c) {
			return ErrOverlappingHands
		}
		union = union.Add(c)
	}
	total += int(d.Trick.Len)
	if (card.NumCards-total)%4 != 0 {
		return ErrBadCardCount
	}

	// ToMove() derives player-to-move from Starter and Trick.Len by the same
	// formula spec.md §3 states as the invariant, so comparing the two
	// directly would be tautological. The actual enforcement is here: each
	// recorded trick seat must match the leader-plus-offset sequence that
	// Starter implies, which is the only way that formula can be violated
	// by caller-supplied data.
	for i := uint8(0); i < d.Trick.Len; i++ {
		expectedSeat := rules.Seat((int(d.Starter) + int(i)) % 4)
		if d.Trick.Plays[i].Seat != expectedSeat {
			return ErrBadTurnAlignment
		}
	}

	if d.NSPoints < 0 || d.EWPoints < 0 || d.NSPoints+d.EWPoints > card.TotalDeckPoints {
		return ErrPointsOutOfRange
	}
	return nil
}

// PointsConservationCheck verifies spec.md §8's point-conservation
// invariant: ns + ew + sum(unplayed card points) + pending trick points
// == 152. Exposed for tests, not called on the hot path.
func (d *Deal) PointsConservationCheck() error {
	unplayed := 0
	for _, h := range d.Hands {
		for _, c := range h.Cards() {
			unplayed += c.Points(d.Trump)
		}
	}
	pending := 0
	for i := uint8(0); i < d.Trick.Len; i++ {
		pending += d.Trick.Plays[i].Card.Points(d.Trump)
	}
	total := d.NSPoints + d.EWPoints + unplayed + pending
	if total != card.TotalDeckPoints {
		return fmt.Errorf("point conservation violated: got %d, want %d", total, card.TotalDeckPoints)
	}
	return nil
}
