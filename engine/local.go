package engine

import (
	"errors"
	"fmt"
	"time"

	"kamisado/experiments/metrics"
	"kamisado/game"

	"github.com/rs/zerolog/log"
)

// ErrResigned is returned by an agent that withdraws from the game.
var ErrResigned = errors.New("player resigned")

// Agent chooses a successor state among the legal moves of state, given in
// generation order. A nil move with a nil error is only valid when moves is
// empty.
type Agent interface {
	FindMove(state *game.GameState, moves []*game.GameState) (*game.GameState, error)
}

// Observer is notified of every state reached, starting with the initial one.
type Observer func(state *game.GameState)

type Option func(e *Engine)

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, observer)
	}
}

type Engine struct {
	State     *game.GameState
	Agents    [2]Agent // Indexed by game.Side
	observers []Observer
}

// Result is the end of a game as seen by the engine.
type Result struct {
	Final    *game.GameState
	Outcome  game.Outcome
	Winner   game.Side
	Decisive bool // False for draws
	Resigned bool
	Metric   metrics.GameMetric
}

func LocalEngine(state *game.GameState, first, second Agent, options ...Option) *Engine {
	e := &Engine{
		State:  state,
		Agents: [2]Agent{first, second},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays until the game reaches a terminal outcome or a player resigns.
// Every move goes forward, so a game always ends.
func (e *Engine) Run() (Result, error) {
	start := time.Now()
	starter := e.State.Turn()
	log.Debug().Msgf("%s side is starting", starter)
	e.notify()

	plies := 0
	result := Result{}
	for {
		outcome := e.State.Outcome()
		if outcome.Terminal() {
			result.Outcome = outcome
			result.Winner, result.Decisive = outcome.Winner(e.State.Turn())
			break
		}

		mover := e.State.Turn()
		moves := e.State.LegalMoves()
		move, err := e.Agents[mover].FindMove(e.State, moves)
		if errors.Is(err, ErrResigned) {
			result.Outcome = game.Ongoing
			result.Winner, result.Decisive, result.Resigned = mover.Opponent(), true, true
			log.Info().Msgf("%s side resigned after %d plies", mover, plies)
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to find move for %s side: %w", mover, err)
		}
		if !contains(moves, move) {
			return Result{}, fmt.Errorf("%s side returned an illegal move", mover)
		}

		e.State = move
		plies++
		e.notify()
	}

	end := time.Now()
	result.Final = e.State
	result.Metric = metrics.GameMetric{
		Starter:   starter.String(),
		Outcome:   result.Outcome.String(),
		Resigned:  result.Resigned,
		Plies:     plies,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
	if result.Decisive {
		result.Metric.Winner = result.Winner.String()
	}
	return result, nil
}

func (e *Engine) notify() {
	for _, observer := range e.observers {
		observer(e.State)
	}
}

func contains(moves []*game.GameState, move *game.GameState) bool {
	if move == nil {
		return false
	}
	key := move.Key()
	for _, m := range moves {
		if m == move || m.Key() == key {
			return true
		}
	}
	return false
}
