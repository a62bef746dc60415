package rules

import "github.com/belotecore/dds/card"

// Options configures move-generation choices that are genuinely ambiguous
// in the source rules (see spec.md §9, Open Questions).
type Options struct {
	// EnforcePartnerOvercutExemption, when true, relaxes the must-overcut
	// obligation for a defender whose partner currently holds the trick.
	// Defaults to false: the reference solver enforces the obligation
	// unconditionally, and this core matches that behavior by default so
	// that its test outputs (spec.md §8, scenario 4) stay reproducible.
	EnforcePartnerOvercutExemption bool
}

// highestTrump returns the strongest trump played in t so far, if any.
func highestTrump(t Trick, trump card.Suit) (card.Card, bool) {
	var best card.Card
	found := false
	for i := uint8(0); i < t.Len; i++ {
		c := t.Plays[i].Card
		if c.Suit() != trump {
			continue
		}
		if !found || c.Strength(trump) > best.Strength(trump) {
			best = c
			found = true
		}
	}
	return best, found
}

// strongerTrumpsHeld returns the subset of hand that is trump and strictly
// stronger than best.
func strongerTrumpsHeld(hand card.Hand, trump card.Suit, best card.Card) card.Hand {
	out := card.Hand(0)
	for _, c := range hand.SuitMask(trump).Cards() {
		if c.Strength(trump) > best.Strength(trump) {
			out = out.Add(c)
		}
	}
	return out
}

// partnerHoldsTrick reports whether the seat currently winning the
// in-progress (possibly partial) trick is the partner of mover.
func partnerHoldsTrick(t Trick, trump card.Suit, mover Seat) bool {
	if t.Empty() {
		return false
	}
	winner := partialWinner(t, trump)
	return winner != mover && SameTeam(winner, mover)
}

// LegalMoves returns the subset of hand that is legal to play given the
// in-progress trick and the trump suit, per spec.md §4.1.
func LegalMoves(hand card.Hand, t Trick, trump card.Suit, opts Options) card.Hand {
	if t.Empty() {
		return hand
	}

	led := t.LedSuit()
	ledSuitHeld := hand.SuitMask(led)

	if !ledSuitHeld.Empty() {
		if led == trump {
			if opts.EnforcePartnerOvercutExemption && partnerHoldsTrick(t, trump, currentMover(t)) {
				return ledSuitHeld
			}
			if best, ok := highestTrump(t, trump); ok {
				if stronger := strongerTrumpsHeld(hand, trump, best); !stronger.Empty() {
					return stronger
				}
			}
			return ledSuitHeld
		}
		// Side suit led: must follow suit, no over-obligation.
		return ledSuitHeld
	}

	// Void in the led suit.
	trumpsHeld := hand.SuitMask(trump)
	if trumpsHeld.Empty() {
		return hand
	}
	if opts.EnforcePartnerOvercutExemption && partnerHoldsTrick(t, trump, currentMover(t)) {
		return hand
	}
	if best, ok := highestTrump(t, trump); ok {
		if stronger := strongerTrumpsHeld(hand, trump, best); !stronger.Empty() {
			return stronger
		}
		return trumpsHeld
	}
	return trumpsHeld
}

// currentMover derives the seat about to play from the trick's leader and
// its current length. Only called once t is known to be non-empty.
func currentMover(t Trick) Seat {
	return Seat((int(t.Plays[0].Seat) + int(t.Len)) % 4)
}
