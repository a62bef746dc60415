package rules

import "github.com/belotecore/dds/card"

// DixDeDer is the bonus awarded to the winner of the eighth and final trick.
const DixDeDer = 10

// BeloteBonus is the points awarded to a team when one of its players holds
// both the trump King and Queen at the start of the deal.
const BeloteBonus = 20

// CapotBonus is awarded to a team that wins every trick of the deal.
const CapotBonus = 90

// TrickPoints sums the point value of every card in a complete trick, plus
// the dix-de-der bonus if isLastTrick is set.
func TrickPoints(t Trick, trump card.Suit, isLastTrick bool) int {
	total := 0
	for i := uint8(0); i < t.Len; i++ {
		total += t.Plays[i].Card.Points(trump)
	}
	if isLastTrick {
		total += DixDeDer
	}
	return total
}

// BeloteHolder returns the seat holding both the trump King and Queen in
// the *root* hands of a deal, and whether any seat does. The caller must
// pass the starting hands (spec.md §9's third Open Question: a mid-deal
// state that has already lost one of King/Queen to trick history cannot
// retroactively recover this).
func BeloteHolder(rootHands [4]card.Hand, trump card.Suit) (Seat, bool) {
	king := card.New(trump, card.King)
	queen := card.New(trump, card.Queen)
	for seat, h := range rootHands {
		if h.Contains(king) && h.Contains(queen) {
			return Seat(seat), true
		}
	}
	return 0, false
}
