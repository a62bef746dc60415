package rules

import (
	"testing"

	"github.com/matryer/is"
	"github.com/belotecore/dds/card"
)

func TestTrickWinnerTrumpBeatsLedSuit(t *testing.T) {
	is := is.New(t)
	trick := Trick{}.
		Append(0, card.New(card.Clubs, card.Ace)).
		Append(1, card.New(card.Hearts, card.Seven)).
		Append(2, card.New(card.Clubs, card.King)).
		Append(3, card.New(card.Clubs, card.Ten))
	is.Equal(TrickWinner(trick, card.Hearts), Seat(1))
}

func TestTrickWinnerHighestOfLedSuitWhenNoTrump(t *testing.T) {
	is := is.New(t)
	trick := Trick{}.
		Append(0, card.New(card.Clubs, card.King)).
		Append(1, card.New(card.Diamonds, card.Ace)). // off-suit, can't win
		Append(2, card.New(card.Clubs, card.Ace)).
		Append(3, card.New(card.Clubs, card.Seven))
	is.Equal(TrickWinner(trick, card.Hearts), Seat(2))
}

func TestTrickWinnerHighestTrumpWins(t *testing.T) {
	is := is.New(t)
	trick := Trick{}.
		Append(0, card.New(card.Hearts, card.Queen)).
		Append(1, card.New(card.Hearts, card.Jack)).
		Append(2, card.New(card.Hearts, card.Nine)).
		Append(3, card.New(card.Hearts, card.Seven))
	is.Equal(TrickWinner(trick, card.Hearts), Seat(1))
}

func TestLoneTrickEndgameScenario(t *testing.T) {
	// Scenario 3 from spec.md §8: one trick remaining, player 0 on lead,
	// holds A♠; others hold 7♠, 8♠, 9♠ (non-trump); trump = Hearts.
	is := is.New(t)
	trick := Trick{}.
		Append(0, card.New(card.Spades, card.Ace)).
		Append(1, card.New(card.Spades, card.Seven)).
		Append(2, card.New(card.Spades, card.Eight)).
		Append(3, card.New(card.Spades, card.Nine))
	is.Equal(TrickWinner(trick, card.Hearts), Seat(0))
	is.Equal(TrickPoints(trick, card.Hearts, true), 11+10)
}
