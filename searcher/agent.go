package searcher

import (
	"kamisado/game"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Minimax is a game-playing agent backed by BestMove.
type Minimax struct {
	depth    int
	evaluate game.Evaluate
	metrics  MetricsCollector
	last     SearchMetrics
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:    DefaultDepth,
		evaluate: game.EvaluateHeuristic,
		metrics:  NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// FindMove picks a successor among moves, which must be the legal moves of
// state in generation order.
func (m *Minimax) FindMove(state *game.GameState, moves []*game.GameState) (*game.GameState, error) {
	if len(moves) == 0 {
		return nil, nil
	}

	m.metrics.Start(m.depth)
	move, score := bestMove(state, moves, m.depth, m.evaluate, m.metrics)
	m.last = m.metrics.Complete(score)

	log.Debug().
		Int("depth", m.depth).
		Int("score", score).
		Int64("nodes", m.last.Nodes).
		Dur("duration", m.last.Duration).
		Msg("minimax move")
	return move, nil
}

// LastMetrics returns the metrics of the latest search when metrics are enabled.
func (m *Minimax) LastMetrics() SearchMetrics {
	return m.last
}
