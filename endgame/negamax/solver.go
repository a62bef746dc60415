package negamax

import (
	"sort"

	"github.com/samber/lo"

	"github.com/belotecore/dds/card"
	"github.com/belotecore/dds/rules"
	"github.com/belotecore/dds/state"
	"github.com/belotecore/dds/zobrist"
)

// AlphaFloor and BetaCeiling bound the fail-hard search window search()
// itself runs. spec.md §4.3 literally fixes the top-level window to
// [-1, 163], sized for bare trick points alone, but that is inconsistent
// with its own terminal-value rule: a capot bonus can push the recursion's
// own return value (trick points plus capot, belote excluded — see
// terminalValue) up to 162 + 90 = 252. A window that cannot hold that value
// clamps every capot line to BetaCeiling before the bonus is ever added,
// contradicting spec.md §8's own seed scenarios (which expect the capot
// bonus visible in the final score). We resolve the inconsistency the same
// way spec.md's own window is shaped, widened by capot's contribution:
// strictly containing [0, 252]. Belote (±20) is applied once in Solve,
// after search returns, since it is a fixed root-determined offset for the
// whole call and never changes which move search finds best.
const (
	AlphaFloor  = int32(-1)
	BetaCeiling = int32(253)
)

// capotLiveSalt is folded into a node's transposition-table key, on top of
// its Zobrist hash, whenever capotLive(d) holds at that node. Two lines
// reaching identical {hands, trick, turn, trump} can disagree on whether
// the defending team has already banked a trick earlier in this call — the
// Zobrist key never encodes accumulated points or trick counts (spec.md
// §4.2) — and that disagreement is not just cosmetic: while capot is still
// live, the defender has a reason to spend a otherwise-equivalent move
// capturing a worthless trick purely to deny it, a choice that stops
// mattering the moment capot is already dead. The two situations can
// legitimately search to different values from the same hand state, so
// they must not share a transposition-table slot.
const capotLiveSalt = 0x9e3779b97f4a7c15

// Solver owns one transposition table and the Zobrist tables it hashes
// against. Per spec.md §5 and §9, a Solver is never shared across
// goroutines: the batch package constructs one per worker.
type Solver struct {
	tt   *TranspositionTable
	z    *zobrist.Tables
	opts rules.Options

	ttEnabled bool

	declarerTeam int
	beloteTeam   int // -1 if no player holds king+queen of trump

	nodes uint64
}

// DefaultMemoryFraction sizes a Solver's table off available system memory
// when the caller (config.Config's --tt-log2) leaves the table size unset.
const DefaultMemoryFraction = 0.25

// NewSolver builds a Solver with a table of 2^ttLog2 entries, borrowing z
// read-only (spec.md §9: "process-wide Zobrist table... borrowed read-only
// by all solver instances"). ttLog2 <= 0 sizes the table automatically off
// a fraction of total system memory instead (spec.md §5's "K=22 ≈ 64 MiB,
// K=24 ≈ 256 MiB" sizing guidance), the auto-sizing path a caller takes by
// leaving --tt-log2 at its zero-value default.
func NewSolver(z *zobrist.Tables, ttLog2 int, opts rules.Options) *Solver {
	var tt *TranspositionTable
	if ttLog2 <= 0 {
		tt = NewTranspositionTableForMemoryFraction(DefaultMemoryFraction)
	} else {
		tt = NewTranspositionTable(ttLog2)
	}
	return &Solver{
		tt:        tt,
		z:         z,
		opts:      opts,
		ttEnabled: true,
	}
}

// SetTranspositionTableOptim toggles the transposition table on or off.
// Exists so spec.md §8's transparency property ("solve with TT enabled
// equals solve with TT disabled") can be exercised directly in tests.
func (s *Solver) SetTranspositionTableOptim(enabled bool) {
	s.ttEnabled = enabled
}

// Nodes reports the number of interior search nodes visited by the most
// recent Solve call (diagnostic only, not part of the external contract).
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

// Solve implements spec.md §6's `solve(hands, trump, declarer, trick,
// starter, ns_points, ew_points) -> i32`.
func (s *Solver) Solve(hands [4]card.Hand, trump card.Suit, declarer rules.Seat, trick rules.Trick, starter rules.Seat, nsPoints, ewPoints int) (int32, error) {
	d := state.New(hands, trump, declarer, trick, starter, nsPoints, ewPoints, s.z)
	if err := d.Validate(); err != nil {
		return 0, err
	}

	s.declarerTeam = declarer.Team()
	if holder, ok := rules.BeloteHolder(d.RootHands, trump); ok {
		s.beloteTeam = holder.Team()
	} else {
		s.beloteTeam = -1
	}
	s.nodes = 0

	value := s.search(d, AlphaFloor, BetaCeiling)
	// Belote is fixed for the whole call (root-determined, never changes
	// with the line of play) so it is added exactly once here rather than
	// inside search/terminalValue: folding a call-wide constant into every
	// memoized node would buy nothing (it cannot change which move search
	// finds best) while making every stored value depend on which deal
	// produced it, defeating transposition reuse across different Solve
	// calls sharing one Solver's table (spec.md §9's "one TT per worker,
	// lifetime = worker lifetime").
	if s.beloteTeam != -1 {
		if s.beloteTeam == s.declarerTeam {
			value += rules.BeloteBonus
		} else {
			value -= rules.BeloteBonus
		}
	}
	return value, nil
}

// SolveAllSuits implements spec.md §6's `solve_all_suits`: the same deal
// solved once per candidate trump suit.
func (s *Solver) SolveAllSuits(hands [4]card.Hand, declarer rules.Seat, trick rules.Trick, starter rules.Seat, nsPoints, ewPoints int) (map[card.Suit]int32, error) {
	out := make(map[card.Suit]int32, card.NumSuits)
	for suit := card.Hearts; suit <= card.Spades; suit++ {
		v, err := s.Solve(hands, suit, declarer, trick, starter, nsPoints, ewPoints)
		if err != nil {
			return nil, err
		}
		out[suit] = v
	}
	return out, nil
}

// search is the fail-hard alpha-beta recursion of spec.md §4.3. Unlike the
// sign-flipping negamax the package is named after, the contract here is
// plain minimax: a node maximizes when its mover is on the declaring team
// and minimizes otherwise, and alpha/beta are threaded through unnegated.
func (s *Solver) search(d *state.Deal, alpha, beta int32) int32 {
	// entryPoints is this node's only history-dependent component of its
	// absolute value: the declaring team's points already banked before any
	// move at this node is tried. It is not part of the Zobrist key (spec.md
	// §4.2 excludes accumulated points), so it cannot be baked into a stored
	// value directly -- two lines reaching this same key with different
	// banked splits would then collide, one line's stored value silently
	// answering the other's probe. Banked points never affect which move is
	// locally best (they are a constant added to every candidate at this
	// node alike), so subtracting them before storing and re-adding them on
	// probe is safe: what gets cached is purely a function of the key (and
	// capotLive, see capotLiveSalt).
	entryPoints := s.declarerPoints(d)
	capotLive := s.capotLive(d)
	ttKey := d.Key
	if capotLive {
		ttKey ^= capotLiveSalt
	}
	if s.ttEnabled {
		if delta, ok := s.tt.probe(ttKey); ok {
			return delta + entryPoints
		}
	}

	alpha0, beta0 := alpha, beta

	var value int32
	if d.Terminal() {
		value = s.terminalValue(d)
	} else {
		s.nodes++
		mover := d.ToMove()
		legal := rules.LegalMoves(d.Hands[mover], d.Trick, d.Trump, s.opts)
		moves := orderedMoves(legal, d.Trump)
		maximizing := mover.Team() == s.declarerTeam

		if maximizing {
			value = AlphaFloor
			for _, c := range moves {
				undo := d.Play(s.z, mover, c)
				child := s.search(d, alpha, beta)
				d.Unplay(undo)

				if child > value {
					value = child
				}
				if value > alpha {
					alpha = value
				}
				if alpha >= beta {
					break
				}
			}
		} else {
			value = BetaCeiling
			for _, c := range moves {
				undo := d.Play(s.z, mover, c)
				child := s.search(d, alpha, beta)
				d.Unplay(undo)

				if child < value {
					value = child
				}
				if value < beta {
					beta = value
				}
				if alpha >= beta {
					break
				}
			}
		}
	}

	// A node that cuts off (or fails low/high without cutting off) only
	// proved a bound on the true value for the (alpha0, beta0) window it was
	// entered with: a fail-high maximizer stops as soon as it finds a move
	// good enough to cause a cutoff above, and a value at or beyond either
	// edge of the entry window is exactly that kind of bound, not the
	// position's context-free value. Only a value that lands strictly
	// inside the entry window is a true principal-variation score, safe to
	// return unchanged for any other window a later probe might use.
	// Storing anything else would let a later probe of the same key (points
	// are excluded from the key per §4.2, so the same key recurs across
	// different windows) return a bound where the disabled-TT path would
	// have kept searching for the exact value, violating spec.md §8's
	// transposition-transparency property.
	if s.ttEnabled && alpha0 < value && value < beta0 {
		s.tt.store(ttKey, value-entryPoints)
	}
	return value
}

// declarerPoints reads the declaring team's currently banked trick points
// off d: d.NSPoints if the declarer is North/South, d.EWPoints otherwise.
func (s *Solver) declarerPoints(d *state.Deal) int32 {
	if s.declarerTeam == 0 {
		return int32(d.NSPoints)
	}
	return int32(d.EWPoints)
}

// capotLive reports whether the defending team could still finish this deal
// having won zero tricks. Capot ("winning every trick", per the GLOSSARY)
// is a trick count, not a point total: a trick worth zero card points is
// still a trick won. TricksWon answers that correctly for play that happens
// during this call; it cannot see tricks the caller's own history already
// credited to the other team before this call started (solve's signature
// carries no trick-count argument, only ns_points/ew_points), so a nonzero
// initial point total for the defending team also rules capot out, the
// same way a nonzero point total ruled it out before this fix, just no
// longer standing in for tricks decided inside this call.
//
// This is monotone along any line from this call's root: once the
// defending team has won a trick, no further play makes capot live again.
// That makes it safe to fold into the transposition-table key (see
// capotLiveSalt) -- the boolean fully summarizes the history a node's
// value can otherwise depend on beyond its own key.
func (s *Solver) capotLive(d *state.Deal) bool {
	if s.declarerTeam == 0 {
		return d.InitialEWPoints == 0 && d.TricksWon[1] == 0
	}
	return d.InitialNSPoints == 0 && d.TricksWon[0] == 0
}

// terminalValue computes the declaring team's final score for this call:
// accumulated trick points, plus capot if the other team won no tricks at
// all (spec.md §4.3). Belote is applied once by Solve, not here.
func (s *Solver) terminalValue(d *state.Deal) int32 {
	value := s.declarerPoints(d)
	if s.capotLive(d) {
		value += rules.CapotBonus
	}
	return value
}

// scoredMove pairs a candidate with its trump-adjusted strength, so the
// sort key is computed once per card rather than on every comparison.
type scoredMove struct {
	card     card.Card
	strength int
}

// orderedMoves sorts legal into descending trump-adjusted strength, with a
// stable tie-break by card id (spec.md §4.3's move-ordering heuristic).
func orderedMoves(legal card.Hand, trump card.Suit) []card.Card {
	scored := lo.Map(legal.Cards(), func(c card.Card, _ int) scoredMove {
		return scoredMove{card: c, strength: c.Strength(trump)}
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].strength > scored[j].strength
	})
	return lo.Map(scored, func(sm scoredMove, _ int) card.Card {
		return sm.card
	})
}
