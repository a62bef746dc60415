package rules

import "github.com/belotecore/dds/card"

// TrickWinner returns the seat that wins a complete trick: trump beats
// non-trump; within the winning suit, higher strength wins; a card not of
// the led suit and not trump can never win.
func TrickWinner(t Trick, trump card.Suit) Seat {
	return partialWinner(t, trump)
}

// partialWinner computes the current leader of a trick that may still be
// in progress, used both by TrickWinner (on a complete trick) and by the
// partner-overcut-exemption option (on a partial one).
func partialWinner(t Trick, trump card.Suit) Seat {
	led := t.LedSuit()
	best := t.Plays[0]
	bestIsTrump := best.Card.Suit() == trump

	for i := uint8(1); i < t.Len; i++ {
		p := t.Plays[i]
		isTrump := p.Card.Suit() == trump
		switch {
		case isTrump && !bestIsTrump:
			best, bestIsTrump = p, true
		case isTrump && bestIsTrump:
			if p.Card.Strength(trump) > best.Card.Strength(trump) {
				best = p
			}
		case !isTrump && bestIsTrump:
			// trump already in the trick always beats a non-trump play
		case p.Card.Suit() == led && best.Card.Suit() == led:
			if p.Card.Strength(trump) > best.Card.Strength(trump) {
				best = p
			}
			// a non-trump, non-led-suit card never contends for the trick
		}
	}
	return best.Seat
}
