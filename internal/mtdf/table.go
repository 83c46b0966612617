// Package mtdf implements fail-soft alpha-beta search with a transposition
// table, the MTD(f) zero-window driver, and iterative deepening over even
// depth steps (a PUT+GIVE pair per step).
package mtdf

import (
	"fmt"
	"math"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Entry holds the proved bounds for one canonical position, the best move
// found, and the shallowest sub-resolution depth (+Inf once the position is
// resolved to terminal everywhere below).
type Entry struct {
	Lower    float64
	Upper    float64
	BestMove game.Move
	Depth    float64
	Valid    bool
}

func newEntry() *Entry {
	return &Entry{
		Lower:    math.Inf(-1),
		Upper:    math.Inf(1),
		BestMove: game.NoMove,
	}
}

// Resolved reports whether the entry is proved all the way to terminal
// positions, making it immune to deeper re-search.
func (e *Entry) Resolved() bool {
	return math.IsInf(e.Depth, 1)
}

func (e *Entry) String() string {
	return fmt.Sprintf("Entry{lower=%v upper=%v best=%s depth=%v valid=%t}",
		e.Lower, e.Upper, e.BestMove, e.Depth, e.Valid)
}

// Table is the transposition table, keyed by the printable canonical state
// form. It is an explicit context object threaded through the search, never
// a process-wide singleton; its lifetime spans one iterative-deepening
// call.
type Table struct {
	entries map[string]*Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*Entry)}
}

// Lookup fetches the entry for the state, inserting a blank one on first
// touch.
func (t *Table) Lookup(s game.State) *Entry {
	key := s.String()
	entry, ok := t.entries[key]
	if !ok {
		entry = newEntry()
		t.entries[key] = entry
	}
	return entry
}

// Len returns the number of stored entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Each visits every stored entry.
func (t *Table) Each(visit func(key string, e *Entry)) {
	for key, entry := range t.entries {
		visit(key, entry)
	}
}

// Filter drops every entry not resolved to terminal. Partial bounds are
// only valid for the depth they were proved at, so they cannot be carried
// into a deeper round. Returns entries before and after.
func (t *Table) Filter() (before, after int) {
	before = len(t.entries)
	for key, entry := range t.entries {
		if !entry.Resolved() {
			delete(t.entries, key)
		}
	}
	return before, len(t.entries)
}

// checkBounds asserts the stored-bound invariant; an inversion means the
// table is corrupt.
func (e *Entry) checkBounds() {
	if e.Lower > e.Upper {
		panic(fmt.Sprintf("transposition bounds inverted: %s", e))
	}
}
