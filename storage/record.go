package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kamisado/game"
	"kamisado/qlearning"
)

// RecordVersion is bumped whenever the record layout changes.
const RecordVersion = 1

// ErrMalformedRecord means a stored record exists but cannot be trusted.
var ErrMalformedRecord = errors.New("malformed record")

// Meta describes when and by which run a record was written.
type Meta struct {
	RunID   string
	SavedAt time.Time
}

type record struct {
	Version     int             `json:"version"`
	RunID       string          `json:"run_id"`
	SavedAt     time.Time       `json:"saved_at"`
	Exploration float64         `json:"exploration"`
	Stats       qlearning.Stats `json:"stats"`
	Count       int             `json:"count"`
	Entries     []entry         `json:"entries"`
}

type entry struct {
	From  stateKey `json:"from"`
	To    stateKey `json:"to"`
	Value float64  `json:"value"`
}

type stateKey struct {
	First  [game.Size]uint8 `json:"first"`
	Second [game.Size]uint8 `json:"second"`
	Turn   uint8            `json:"turn"`
	Forced int8             `json:"forced"`
}

// encodeRecord serializes a snapshot. The snapshot is not modified.
func encodeRecord(snapshot qlearning.Snapshot, meta Meta) ([]byte, error) {
	r := record{
		Version:     RecordVersion,
		RunID:       meta.RunID,
		SavedAt:     meta.SavedAt.UTC(),
		Exploration: snapshot.Exploration,
		Stats:       snapshot.Stats,
		Count:       len(snapshot.Entries),
		Entries:     make([]entry, 0, len(snapshot.Entries)),
	}
	for t, v := range snapshot.Entries {
		r.Entries = append(r.Entries, entry{
			From:  stateKey(t.From),
			To:    stateKey(t.To),
			Value: v,
		})
	}

	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return data, nil
}

// decodeRecord parses and validates a record. Every failure wraps
// ErrMalformedRecord.
func decodeRecord(data []byte) (qlearning.Snapshot, Meta, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return qlearning.Snapshot{}, Meta{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if r.Version != RecordVersion {
		return qlearning.Snapshot{}, Meta{}, fmt.Errorf("%w: unsupported version %d", ErrMalformedRecord, r.Version)
	}
	if r.Count != len(r.Entries) {
		return qlearning.Snapshot{}, Meta{}, fmt.Errorf("%w: %d entries, expected %d", ErrMalformedRecord, len(r.Entries), r.Count)
	}
	if r.Exploration < 0 || r.Exploration > 1 {
		return qlearning.Snapshot{}, Meta{}, fmt.Errorf("%w: exploration %v out of range", ErrMalformedRecord, r.Exploration)
	}
	if r.Stats.Wins < 0 || r.Stats.Losses < 0 || r.Stats.Draws < 0 {
		return qlearning.Snapshot{}, Meta{}, fmt.Errorf("%w: negative statistics", ErrMalformedRecord)
	}

	entries := make(qlearning.Table, len(r.Entries))
	for i, e := range r.Entries {
		t := qlearning.Transition{From: game.StateKey(e.From), To: game.StateKey(e.To)}
		if !t.From.Valid() || !t.To.Valid() {
			return qlearning.Snapshot{}, Meta{}, fmt.Errorf("%w: invalid key in entry %d", ErrMalformedRecord, i)
		}
		if _, ok := entries[t]; ok {
			return qlearning.Snapshot{}, Meta{}, fmt.Errorf("%w: duplicate entry %d", ErrMalformedRecord, i)
		}
		entries[t] = e.Value
	}

	snapshot := qlearning.Snapshot{
		Entries:     entries,
		Stats:       r.Stats,
		Exploration: r.Exploration,
	}
	return snapshot, Meta{RunID: r.RunID, SavedAt: r.SavedAt}, nil
}
