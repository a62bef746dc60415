// Package state holds the mutable mid-deal game state the search recurses
// over: four hands, trump, declarer, the in-progress trick, and the
// running point totals (spec.md §3). It owns the make/unmake pair the
// search uses to mutate this state in place around each recursive call
// (spec.md §9's "Ownership of hands/tricks in recursion" design note).
package state

import (
	"github.com/belotecore/dds/card"
	"github.com/belotecore/dds/rules"
	"github.com/belotecore/dds/zobrist"
)

// Deal is the full argument to the search, plus the scratch fields the
// recursion needs (Key, CompletedTricks).
type Deal struct {
	Hands     [4]card.Hand
	RootHands [4]card.Hand // hands as given to Solve; used only by BeloteHolder
	Trump     card.Suit
	Declarer  rules.Seat
	Trick     rules.Trick
	Starter   rules.Seat
	NSPoints  int
	EWPoints  int

	// InitialNSPoints/InitialEWPoints snapshot NSPoints/EWPoints as given to
	// Solve, before any card in this call is played. A team's points prior
	// to this call are the only signal this Deal has of tricks the caller's
	// history already credited it (spec.md's solve signature carries no
	// trick-count argument, only accumulated points), so a nonzero initial
	// total for a team rules out capot for its opponent even though
	// TricksWon itself only counts tricks decided during this call.
	InitialNSPoints int
	InitialEWPoints int

	CompletedTricks int
	// TricksWon counts tricks won by team 0 (NS) and team 1 (EW) during this
	// call, i.e. since this Deal was built, not since the start of the
	// physical deal. Capot (spec.md's GLOSSARY: "winning every trick") is
	// defined over tricks actually won, not accumulated points: a trick can
	// be worth zero points and still be won, so points contributed during
	// this call alone cannot answer "did the other team ever win a trick
	// during this call".
	TricksWon [2]int
	Key       uint64
}

// New builds a Deal and computes its root Zobrist key. It does not
// validate; call Validate separately, per spec.md §7's "core validates
// inputs at the entry of solve" (the caller of New is that entry point).
func New(hands [4]card.Hand, trump card.Suit, declarer rules.Seat, trick rules.Trick, starter rules.Seat, nsPoints, ewPoints int, z *zobrist.Tables) *Deal {
	d := &Deal{
		Hands:           hands,
		RootHands:       hands,
		Trump:           trump,
		Declarer:        declarer,
		Trick:           trick,
		Starter:         starter,
		NSPoints:        nsPoints,
		EWPoints:        ewPoints,
		InitialNSPoints: nsPoints,
		InitialEWPoints: ewPoints,
	}
	playedInTrick := 0
	for i := 0; i < 4; i++ {
		playedInTrick += hands[i].Count()
	}
	d.CompletedTricks = (32 - playedInTrick - int(trick.Len)) / 4
	mover := rules.Seat((int(starter) + int(trick.Len)) % 4)
	d.Key = z.RootKey(hands, trump, mover)
	d.Key = z.AddTrickCards(d.Key, trick)
	return d
}

// ToMove returns the seat whose turn it is to play.
func (d *Deal) ToMove() rules.Seat {
	return rules.Seat((int(d.Starter) + int(d.Trick.Len)) % 4)
}

// Terminal reports whether the deal is finished: every hand is empty and
// the current trick holds no cards.
func (d *Deal) Terminal() bool {
	if !d.Trick.Empty() {
		return false
	}
	for _, h := range d.Hands {
		if !h.Empty() {
			return false
		}
	}
	return true
}

// Undo captures everything Play mutated, for Unplay to restore.
type Undo struct {
	seat           rules.Seat
	card           card.Card
	prevTrick      rules.Trick
	prevKey        uint64
	prevStarter    rules.Seat
	prevNSPoints   int
	prevEWPoints   int
	prevCompleted  int
	prevTricksWon  [2]int
	resolvedATrick bool
}

// Play removes c from seat's hand, appends it to the current trick, and
// incrementally updates the Zobrist key. If the trick fills to four cards
// it is resolved immediately: the winner is computed, its team's
// TricksWon count and trick points (including the dix-de-der bonus on the
// eighth trick) are credited, the trick is cleared, and Starter becomes
// the winner. Returns an Undo token for Unplay.
func (d *Deal) Play(z *zobrist.Tables, seat rules.Seat, c card.Card) Undo {
	u := Undo{
		seat:          seat,
		card:          c,
		prevTrick:     d.Trick,
		prevKey:       d.Key,
		prevStarter:   d.Starter,
		prevNSPoints:  d.NSPoints,
		prevEWPoints:  d.EWPoints,
		prevCompleted: d.CompletedTricks,
		prevTricksWon: d.TricksWon,
	}

	d.Hands[seat] = d.Hands[seat].Remove(c)
	next := seat.Next()
	d.Key = z.PlayCard(d.Key, seat, c, next)
	d.Trick = d.Trick.Append(seat, c)

	if d.Trick.Complete() {
		u.resolvedATrick = true
		winner := rules.TrickWinner(d.Trick, d.Trump)
		// CompletedTricks is derived once, in New, from the total card count
		// under the assumption that every valid Deal descends from a full
		// 32-card deal (Validate's (NumCards-total)%4==0 check enforces
		// exactly that): trick 7 (0-indexed) is then always the physical
		// deal's last trick, the one dix-de-der applies to, even when this
		// call itself starts mid-deal with only that trick's cards left.
		isLast := d.CompletedTricks == 7
		pts := rules.TrickPoints(d.Trick, d.Trump, isLast)
		d.TricksWon[winner.Team()]++
		if winner.Team() == 0 {
			d.NSPoints += pts
		} else {
			d.EWPoints += pts
		}
		d.Key = z.CompleteTrick(d.Key, d.Trick, next, winner)
		d.Trick = rules.Trick{}
		d.Starter = winner
		d.CompletedTricks++
	}

	return u
}

// Unplay reverses the most recent Play call. Restoring the saved key
// snapshot undoes both the PlayCard and (if the trick resolved) the
// CompleteTrick contributions in one step.
func (d *Deal) Unplay(u Undo) {
	if u.resolvedATrick {
		d.CompletedTricks = u.prevCompleted
		d.Starter = u.prevStarter
		d.NSPoints = u.prevNSPoints
		d.EWPoints = u.prevEWPoints
		d.TricksWon = u.prevTricksWon
	}
	d.Trick = u.prevTrick
	d.Key = u.prevKey
	d.Hands[u.seat] = d.Hands[u.seat].Add(u.card)
}
