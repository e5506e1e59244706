// Package storage persists learning agent snapshots as single atomic
// records in badger, redis or postgres.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kamisado/qlearning"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultRecordName is the logical name training runs save under.
const DefaultRecordName = "kamisado-qtable"

// Store saves and loads snapshots by logical name. Load reports a missing
// record with found=false and a nil error.
type Store interface {
	Save(ctx context.Context, name string, snapshot qlearning.Snapshot) error
	Load(ctx context.Context, name string) (snapshot qlearning.Snapshot, found bool, err error)
	Close() error
}

// backend stores opaque records. put must replace a record in one step so
// that readers never see a partial write.
type backend interface {
	put(ctx context.Context, name string, data []byte) error
	get(ctx context.Context, name string) (data []byte, found bool, err error)
	close() error
	String() string
}

type Option func(s *recordStore)

// WithRunID tags saved records with a run ID instead of a fresh one.
func WithRunID(runID string) Option {
	return func(s *recordStore) {
		if runID != "" {
			s.runID = runID
		}
	}
}

func WithPruneThreshold(threshold float64) Option {
	return func(s *recordStore) {
		if threshold >= 0 {
			s.threshold = threshold
		}
	}
}

type recordStore struct {
	backend   backend
	runID     string
	threshold float64
	now       func() time.Time
}

func newRecordStore(b backend, options ...Option) *recordStore {
	s := &recordStore{ // Default values
		backend:   b,
		runID:     uuid.NewString(),
		threshold: qlearning.DefaultPruneThreshold,
		now:       time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Open selects a backend from dsn:
//
//	memory://             in-memory badger
//	badger:///path, path  badger database directory
//	redis://...           redis
//	postgres://...        postgres
func Open(ctx context.Context, dsn string, options ...Option) (Store, error) {
	var (
		b   backend
		err error
	)
	switch {
	case dsn == "memory://":
		b, err = openBadger("")
	case strings.HasPrefix(dsn, "badger://"):
		b, err = openBadger(strings.TrimPrefix(dsn, "badger://"))
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		b, err = openRedis(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		b, err = openPostgres(ctx, dsn)
	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("unsupported store %q", dsn)
	case dsn == "":
		return nil, fmt.Errorf("empty store location")
	default:
		b, err = openBadger(dsn)
	}
	if err != nil {
		return nil, err
	}
	return newRecordStore(b, options...), nil
}

// Save prunes near-zero entries from a copy of snapshot and writes it.
func (s *recordStore) Save(ctx context.Context, name string, snapshot qlearning.Snapshot) error {
	snapshot = snapshot.Clone()
	pruned := snapshot.Entries.Prune(s.threshold)

	data, err := encodeRecord(snapshot, Meta{RunID: s.runID, SavedAt: s.now()})
	if err != nil {
		return err
	}
	if err := s.backend.put(ctx, name, data); err != nil {
		return fmt.Errorf("failed to save %s to %s: %w", name, s.backend, err)
	}

	log.Info().
		Str("record", name).
		Str("run_id", s.runID).
		Int("entries", len(snapshot.Entries)).
		Int("pruned", pruned).
		Msgf("saved record to %s", s.backend)
	return nil
}

func (s *recordStore) Load(ctx context.Context, name string) (qlearning.Snapshot, bool, error) {
	data, found, err := s.backend.get(ctx, name)
	if err != nil {
		return qlearning.Snapshot{}, false, fmt.Errorf("failed to load %s from %s: %w", name, s.backend, err)
	}
	if !found {
		log.Info().Str("record", name).Msgf("no record in %s", s.backend)
		return qlearning.Snapshot{}, false, nil
	}

	snapshot, meta, err := decodeRecord(data)
	if err != nil {
		return qlearning.Snapshot{}, false, fmt.Errorf("failed to load %s: %w", name, err)
	}

	log.Info().
		Str("record", name).
		Str("run_id", meta.RunID).
		Time("saved_at", meta.SavedAt).
		Int("entries", len(snapshot.Entries)).
		Msgf("loaded record from %s", s.backend)
	return snapshot, true, nil
}

func (s *recordStore) Close() error {
	return s.backend.close()
}
