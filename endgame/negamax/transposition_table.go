// Package negamax implements the fail-hard alpha-beta search described in
// spec.md §4.3: a full-depth minimax from any mid-deal state to the end of
// the deal, backed by a direct-mapped, always-replace transposition table
// keyed on the incremental Zobrist hash.
package negamax

import (
	"math"

	"github.com/pbnjay/memory"
)

// entrySize is the per-slot byte cost spec.md §5 budgets against: an 8-byte
// key and a 4-byte value, padded to 16 bytes by the key's alignment.
const entrySize = 16

// TableEntry is a single transposition-table slot. key == 0 marks an empty
// slot, per spec.md §3.
type TableEntry struct {
	key   uint64
	value int32
}

// TranspositionTable is a direct-mapped, always-replace cache of solved
// positions. Sized as a power of two; the index is the low log2(size) bits
// of the key, per spec.md §3 and §5. One instance belongs to exactly one
// Solver and is never shared across goroutines (spec.md §5, §9).
type TranspositionTable struct {
	entries  []TableEntry
	log2Size int
	sizeMask uint64

	lookups uint64
	hits    uint64
}

// NewTranspositionTable allocates a table of 2^log2Size entries, per the
// tt_log2 configuration knob spec.md §5/§6 names. log2Size is clamped to at
// least 1.
func NewTranspositionTable(log2Size int) *TranspositionTable {
	if log2Size < 1 {
		log2Size = 1
	}
	n := 1 << log2Size
	return &TranspositionTable{
		entries:  make([]TableEntry, n),
		log2Size: log2Size,
		sizeMask: uint64(n - 1),
	}
}

// NewTranspositionTableForMemoryFraction sizes a table to the largest power
// of two fitting within fraction of total system memory, per spec.md §5's
// "K=22 ≈ 64 MiB, K=24 ≈ 256 MiB" sizing examples. Used when the driver is
// not given an explicit --tt-log2.
func NewTranspositionTableForMemoryFraction(fraction float64) *TranspositionTable {
	totalMem := memory.TotalMemory()
	desiredNElems := fraction * (float64(totalMem) / float64(entrySize))
	log2Size := int(math.Log2(desiredNElems))
	if log2Size < 18 {
		log2Size = 18
	}
	if log2Size > 27 {
		log2Size = 27
	}
	return NewTranspositionTable(log2Size)
}

// Log2Size reports the table's size exponent.
func (t *TranspositionTable) Log2Size() int {
	return t.log2Size
}

// probe returns the cached value for key, if present.
func (t *TranspositionTable) probe(key uint64) (int32, bool) {
	t.lookups++
	idx := key & t.sizeMask
	e := t.entries[idx]
	if e.key == key {
		t.hits++
		return e.value, true
	}
	return 0, false
}

// store writes (key, value) unconditionally, overwriting whatever
// previously occupied the slot (spec.md §3's always-replace policy).
func (t *TranspositionTable) store(key uint64, value int32) {
	idx := key & t.sizeMask
	t.entries[idx] = TableEntry{key: key, value: value}
}

// Reset clears every slot and zeroes the hit-rate counters. Solver never
// calls it: a new table starts empty, and entries persist across individual
// Solve calls (spec.md §9: "one TT per worker, lifetime = worker lifetime").
func (t *TranspositionTable) Reset() {
	clear(t.entries)
	t.lookups = 0
	t.hits = 0
}

// Stats reports lookup/hit counters for diagnostics.
func (t *TranspositionTable) Stats() (lookups, hits uint64) {
	return t.lookups, t.hits
}
