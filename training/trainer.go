// Package training drives the learning agent through self-play, training
// against the search agent and evaluation games.
package training

import (
	"context"
	"fmt"
	"time"

	"kamisado/config"
	"kamisado/experiments/metrics"
	"kamisado/game"
	"kamisado/qlearning"
	"kamisado/storage"

	"github.com/rs/zerolog/log"
)

const (
	ModeSelfPlay   = "self-play"
	ModeCurriculum = "curriculum"
)

type Option func(t *Trainer)

// WithStore enables checkpoints, resuming and autosave.
func WithStore(store storage.Store) Option {
	return func(t *Trainer) {
		t.store = store
	}
}

// WithConfig replaces the default tunables. An invalid config is logged and
// ignored.
func WithConfig(cfg *config.Config) Option {
	return func(t *Trainer) {
		if cfg == nil {
			return
		}
		if err := cfg.Validate(); err != nil {
			log.Warn().Err(err).Msg("ignoring trainer config")
			return
		}
		t.cfg = cfg
	}
}

// WithWriter enables CSV episode and game records.
func WithWriter(writer *metrics.Writer) Option {
	return func(t *Trainer) {
		if writer != nil {
			t.writer = writer
			t.collector = metrics.NewCollector()
		}
	}
}

type Trainer struct {
	agent     *qlearning.Agent
	board     *game.Board
	rules     *game.Rules
	cfg       *config.Config
	store     storage.Store
	writer    *metrics.Writer
	collector metrics.Collector
	episodes  []metrics.EpisodeRecord // Not yet written
}

func NewTrainer(agent *qlearning.Agent, board *game.Board, rules *game.Rules, options ...Option) *Trainer {
	t := &Trainer{ // Default values
		agent:     agent,
		board:     board,
		rules:     rules,
		cfg:       config.Default(),
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// episode is the outcome of one training episode for the learning agent.
type episode struct {
	result qlearning.Result
	reward float64
}

// train runs play for each episode. Cancellation is only observed between
// episodes, and progress is checkpointed before returning.
func (t *Trainer) train(ctx context.Context, mode string, episodes int, play func(index int) episode) (qlearning.Stats, error) {
	if episodes <= 0 {
		return t.agent.Stats(), fmt.Errorf("%w: episodes must be positive, got %d", config.ErrInvalid, episodes)
	}

	var saver *storage.Autosaver
	if t.store != nil && t.cfg.AutosaveInterval > 0 {
		saver = storage.NewAutosaver(t.store, t.agent, t.cfg.RecordName, t.cfg.AutosaveInterval)
		saver.Start(ctx)
		defer saver.Stop()
	}
	// checkpoint stops the autosaver first, so no older snapshot can land
	// after the checkpoint. It restarts it when training goes on.
	checkpoint := func(ctx context.Context, resume bool) error {
		if saver != nil {
			saver.Stop()
		}
		err := t.Checkpoint(ctx)
		if saver != nil && resume {
			saver.Start(ctx)
		}
		return err
	}

	first := t.agent.Stats().Episodes()
	log.Info().Msgf("starting %s training for %d episodes from episode %d...", mode, episodes, first)
	start := time.Now()
	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Msgf("%s training interrupted after %d episodes", mode, i)
			if cerr := checkpoint(context.WithoutCancel(ctx), false); cerr != nil {
				return t.agent.Stats(), cerr
			}
			return t.agent.Stats(), err
		}

		index := first + i
		ep := play(index)
		t.agent.RecordEpisode(ep.result, ep.reward)
		if t.writer != nil {
			t.episodes = append(t.episodes, metrics.EpisodeRecord{
				Episode:       index,
				EpisodeMetric: t.collector.Complete(ep.result.String(), t.agent.Len()),
			})
		}

		if (i+1)%t.cfg.ReportInterval == 0 {
			stats := t.agent.Stats()
			log.Info().Msgf("%s episode %d/%d | exploration=%.3f | win rate=%.1f%% | %s | entries=%d | %s",
				mode, index+1, first+episodes, t.agent.Exploration(), 100*stats.WinRate(), stats, t.agent.Len(), time.Since(start).Round(time.Millisecond))
			start = time.Now()
		}
		if (i+1)%t.cfg.CheckpointInterval == 0 && i+1 < episodes {
			if err := checkpoint(ctx, true); err != nil {
				return t.agent.Stats(), err
			}
		}
	}

	if err := checkpoint(ctx, false); err != nil {
		return t.agent.Stats(), err
	}
	log.Info().Msgf("completed %s training: %s", mode, t.agent.Stats())
	return t.agent.Stats(), nil
}

// Checkpoint prunes the live table, saves a snapshot and flushes pending
// episode records. Without a store only the records are flushed.
func (t *Trainer) Checkpoint(ctx context.Context) error {
	if err := t.flushEpisodes(); err != nil {
		return err
	}
	if t.store == nil {
		return nil
	}

	pruned := t.agent.PruneTable(t.cfg.PruneThreshold)
	log.Debug().Msgf("pruned %d entries before checkpoint", pruned)
	if err := t.store.Save(ctx, t.cfg.RecordName, t.agent.Snapshot()); err != nil {
		return fmt.Errorf("failed to checkpoint: %w", err)
	}
	return nil
}

// Resume restores the agent from the store. A missing record returns false
// and leaves the agent untouched.
func (t *Trainer) Resume(ctx context.Context) (bool, error) {
	if t.store == nil {
		return false, nil
	}
	snapshot, found, err := t.store.Load(ctx, t.cfg.RecordName)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	t.agent.Restore(snapshot)
	log.Info().Msgf("resumed at episode %d with %d entries (exploration=%.3f)",
		snapshot.Stats.Episodes(), len(snapshot.Entries), snapshot.Exploration)
	return true, nil
}

func (t *Trainer) flushEpisodes() error {
	if t.writer == nil || len(t.episodes) == 0 {
		return nil
	}
	if err := t.writer.WriteEpisodeRecords(t.episodes); err != nil {
		return err
	}
	t.episodes = t.episodes[:0]
	return nil
}

func heuristicDelta(from, to *game.GameState) float64 {
	return float64(game.EvaluateHeuristic(to) - game.EvaluateHeuristic(from))
}
