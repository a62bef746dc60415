package rules

import "github.com/belotecore/dds/card"

// Play is a single (seat, card) entry within a trick.
type Play struct {
	Seat Seat
	Card card.Card
}

// Trick is an ordered sequence of up to four plays. The first entry is the
// leader. A trick is complete when it holds four entries.
type Trick struct {
	Plays [4]Play
	Len   uint8
}

// Len in Trick shadows the field name; keep a method too for readability
// in call sites that prefer t.Count() over t.Len.
func (t Trick) Count() int {
	return int(t.Len)
}

// Empty reports whether no card has been played to this trick yet.
func (t Trick) Empty() bool {
	return t.Len == 0
}

// Complete reports whether the trick holds four plays.
func (t Trick) Complete() bool {
	return t.Len == 4
}

// LedSuit returns the suit of the first card played, valid only when the
// trick is non-empty.
func (t Trick) LedSuit() card.Suit {
	return t.Plays[0].Card.Suit()
}

// Append returns a new trick with (seat, c) appended. The caller is
// responsible for ensuring the trick is not already complete.
func (t Trick) Append(seat Seat, c card.Card) Trick {
	t.Plays[t.Len] = Play{Seat: seat, Card: c}
	t.Len++
	return t
}

// Pop returns a new trick with its last play removed, undoing the most
// recent Append. Used by make/unmake in the search.
func (t Trick) Pop() Trick {
	t.Len--
	t.Plays[t.Len] = Play{}
	return t
}

// Cards returns the cards played so far, in play order.
func (t Trick) Cards() []card.Card {
	out := make([]card.Card, t.Len)
	for i := uint8(0); i < t.Len; i++ {
		out[i] = t.Plays[i].Card
	}
	return out
}
