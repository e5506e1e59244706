package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"kamisado/qlearning"

	"github.com/rs/zerolog/log"
)

// Snapshotter returns a consistent copy of the state to persist.
type Snapshotter interface {
	Snapshot() qlearning.Snapshot
}

// Autosaver periodically saves snapshots in the background. It never
// mutates its source, and failed saves are logged and counted only.
type Autosaver struct {
	store    Store
	source   Snapshotter
	name     string
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	saves    atomic.Int64
	failures atomic.Int64
}

func NewAutosaver(store Store, source Snapshotter, name string, interval time.Duration) *Autosaver {
	return &Autosaver{
		store:    store,
		source:   source,
		name:     name,
		interval: interval,
	}
}

// Start launches the save loop. It is a no-op when already running or when
// the interval is not positive.
func (a *Autosaver) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil || a.interval <= 0 {
		return
	}

	ctx, a.cancel = context.WithCancel(ctx)
	a.done = make(chan struct{})
	go a.run(ctx, a.done)
	log.Debug().Msgf("autosave of %s every %s", a.name, a.interval)
}

func (a *Autosaver) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.save(ctx)
		}
	}
}

func (a *Autosaver) save(ctx context.Context) {
	snapshot := a.source.Snapshot()
	if err := a.store.Save(ctx, a.name, snapshot); err != nil {
		a.failures.Add(1)
		log.Error().Err(err).Str("record", a.name).Msg("autosave failed")
		return
	}
	a.saves.Add(1)
}

// Stop ends the save loop and waits for an in-flight save to finish.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Saves is the number of successful background saves.
func (a *Autosaver) Saves() int64 {
	return a.saves.Load()
}

// Failures is the number of failed background saves.
func (a *Autosaver) Failures() int64 {
	return a.failures.Load()
}
