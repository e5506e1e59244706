package qlearning

import (
	"maps"

	"kamisado/game"
)

// DefaultPruneThreshold is the magnitude at or below which entries are
// dropped before a table is persisted.
const DefaultPruneThreshold = 1e-6

// Transition identifies a table entry: the state a move was chosen in and
// the state the move produced.
type Transition struct {
	From game.StateKey
	To   game.StateKey
}

// Table maps transitions to their estimated long-term value for the second
// side. Missing entries read as zero.
type Table map[Transition]float64

// Prune removes entries whose absolute value is at or below threshold and
// returns how many were removed.
func (t Table) Prune(threshold float64) int {
	removed := 0
	for k, v := range t {
		if v <= threshold && v >= -threshold {
			delete(t, k)
			removed++
		}
	}
	return removed
}

// Snapshot is a consistent copy of everything a learning agent persists.
type Snapshot struct {
	Entries     Table
	Stats       Stats
	Exploration float64
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	s.Entries = maps.Clone(s.Entries)
	if s.Entries == nil {
		s.Entries = Table{}
	}
	return s
}
