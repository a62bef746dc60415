package dataset

import (
	"github.com/belotecore/dds/card"
	"lukechampine.com/frand"
)

// BiasMode selects the hand-shaping strategy spec.md §4.4's bidding corpus
// mixes 40/20/20/20 (uniform/capot/belote/shape).
type BiasMode uint8

const (
	BiasUniform BiasMode = iota
	BiasCapot
	BiasBelote
	BiasShape
)

// PickBiasMode samples a BiasMode from spec.md §4.4's fixed mixture
// weights.
func PickBiasMode(rng *frand.RNG) BiasMode {
	switch n := rng.Intn(100); {
	case n < 40:
		return BiasUniform
	case n < 60:
		return BiasCapot
	case n < 80:
		return BiasBelote
	default:
		return BiasShape
	}
}

// shapeVector is the suit-length vector named in spec.md §4.4's
// "distributional shaping" bullet.
var shapeVector = [card.NumSuits]int{6, 3, 2, 1}

// BiasedHand draws an 8-card hand for the target player under mode.
// Capot shape hands the target the five strongest trumps of a randomly
// chosen suit plus the three aces of the other suits; belote shape hands
// the target that suit's King and Queen plus six random fillers; shape
// deals the fixed 6-3-2-1 suit-length vector rotated onto a random suit
// ordering; uniform deals 8 cards uniformly at random.
func BiasedHand(rng *frand.RNG, mode BiasMode) card.Hand {
	switch mode {
	case BiasCapot:
		return capotHand(rng)
	case BiasBelote:
		return beloteHand(rng)
	case BiasShape:
		return shapeHand(rng)
	default:
		return uniformHand(rng, card.FullDeck, 8)
	}
}

// uniformHand draws n cards uniformly at random from the cards set in
// pool.
func uniformHand(rng *frand.RNG, pool card.Hand, n int) card.Hand {
	cards := pool.Cards()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	out := card.Hand(0)
	for i := 0; i < n && i < len(cards); i++ {
		out = out.Add(cards[i])
	}
	return out
}

// capotTrumpRanks are the five strongest trump ranks, per spec.md's trump
// strength ordering (Jack, 9, Ace, 10, King strictly beat Queen, 8, 7).
var capotTrumpRanks = [5]card.Rank{card.Jack, card.Nine, card.Ace, card.Ten, card.King}

func capotHand(rng *frand.RNG) card.Hand {
	trumpSuit := card.Suit(rng.Intn(card.NumSuits))
	out := card.Hand(0)
	for _, r := range capotTrumpRanks {
		out = out.Add(card.New(trumpSuit, r))
	}
	for s := card.Suit(0); s < card.NumSuits; s++ {
		if s == trumpSuit {
			continue
		}
		out = out.Add(card.New(s, card.Ace))
	}
	return out
}

func beloteHand(rng *frand.RNG) card.Hand {
	trumpSuit := card.Suit(rng.Intn(card.NumSuits))
	out := card.Hand(0).Add(card.New(trumpSuit, card.King)).Add(card.New(trumpSuit, card.Queen))
	rest := card.FullDeck.Remove(card.New(trumpSuit, card.King)).Remove(card.New(trumpSuit, card.Queen))
	return out | uniformHand(rng, rest, 6)
}

func shapeHand(rng *frand.RNG) card.Hand {
	rotation := rng.Intn(card.NumSuits)
	out := card.Hand(0)
	for i, count := range shapeVector {
		suit := card.Suit((i + rotation) % card.NumSuits)
		suitCards := card.FullDeck.SuitMask(suit)
		out |= uniformHand(rng, suitCards, count)
	}
	return out
}

// DealRemaining fills the other three seats with the 24 cards not in
// target, in an order determined by rng, and returns all four hands with
// target in seat 0.
func DealRemaining(rng *frand.RNG, target card.Hand) [4]card.Hand {
	remaining := card.FullDeck &^ target
	cards := remaining.Cards()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	var hands [4]card.Hand
	hands[0] = target
	for i, c := range cards {
		hands[1+i/8] = hands[1+i/8].Add(c)
	}
	return hands
}

// FullRandomDeal shuffles the full 32-card deck and splits it into four
// 8-card hands.
func FullRandomDeal(rng *frand.RNG) [4]card.Hand {
	cards := card.FullDeck.Cards()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	var perm [card.NumCards]card.Card
	copy(perm[:], cards)
	return card.Deal(perm)
}
