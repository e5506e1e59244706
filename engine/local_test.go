package engine

import (
	"errors"
	"math/rand"
	"testing"

	"kamisado/game"
	"kamisado/searcher"

	"github.com/stretchr/testify/require"
)

type randomAgent struct {
	rng *rand.Rand
}

func (a randomAgent) FindMove(state *game.GameState, moves []*game.GameState) (*game.GameState, error) {
	if len(moves) == 0 {
		return nil, nil
	}
	return moves[a.rng.Intn(len(moves))], nil
}

type agentFunc func(state *game.GameState, moves []*game.GameState) (*game.GameState, error)

func (f agentFunc) FindMove(state *game.GameState, moves []*game.GameState) (*game.GameState, error) {
	return f(state, moves)
}

func newGame(options ...game.Option) *game.GameState {
	return game.NewGame(game.NewBoard(), game.NewStandardRules(), options...)
}

func TestRun(t *testing.T) {
	t.Run("random games terminate", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		for i := 0; i < 30; i++ {
			seen := 0
			e := LocalEngine(newGame(), randomAgent{rng}, randomAgent{rng}, WithObserver(func(*game.GameState) { seen++ }))

			result, err := e.Run()

			require.NoError(t, err)
			require.True(t, result.Outcome.Terminal())
			require.Same(t, e.State, result.Final)
			require.Equal(t, seen, result.Metric.Plies+1, "Observer sees the initial state and every move")
			require.Equal(t, "first", result.Metric.Starter)
			require.Equal(t, result.Outcome.String(), result.Metric.Outcome)
			winner, ok := result.Outcome.Winner(result.Final.Turn())
			require.Equal(t, ok, result.Decisive)
			if ok {
				require.Equal(t, winner, result.Winner)
				require.Equal(t, winner.String(), result.Metric.Winner)
			} else {
				require.Empty(t, result.Metric.Winner)
			}
		}
	})

	t.Run("search agents play a full game", func(t *testing.T) {
		first := searcher.NewMinimax(searcher.WithDepth(1))
		second := searcher.NewMinimax(searcher.WithDepth(2))
		e := LocalEngine(newGame(game.WithStarter(game.Second)), first, second)

		result, err := e.Run()

		require.NoError(t, err)
		require.True(t, result.Outcome.Terminal())
		require.Equal(t, "second", result.Metric.Starter)
		require.Greater(t, result.Metric.Plies, 0)
	})

	t.Run("resignation", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		resign := agentFunc(func(*game.GameState, []*game.GameState) (*game.GameState, error) {
			return nil, ErrResigned
		})
		e := LocalEngine(newGame(), randomAgent{rng}, resign)

		result, err := e.Run()

		require.NoError(t, err)
		require.True(t, result.Resigned)
		require.True(t, result.Decisive)
		require.Equal(t, game.First, result.Winner)
		require.Equal(t, 1, result.Metric.Plies)
		require.True(t, result.Metric.Resigned)
	})

	t.Run("agent errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		failing := agentFunc(func(*game.GameState, []*game.GameState) (*game.GameState, error) {
			return nil, boom
		})
		e := LocalEngine(newGame(), failing, failing)

		_, err := e.Run()

		require.ErrorIs(t, err, boom)
	})

	t.Run("illegal moves are rejected", func(t *testing.T) {
		stale := newGame().LegalMoves()[0]
		cheat := agentFunc(func(state *game.GameState, moves []*game.GameState) (*game.GameState, error) {
			return stale, nil
		})
		rng := rand.New(rand.NewSource(2))
		e := LocalEngine(newGame(), randomAgent{rng}, cheat)

		_, err := e.Run()

		require.Error(t, err)
		require.Contains(t, err.Error(), "illegal move")
	})

	t.Run("no move with legal moves available is illegal", func(t *testing.T) {
		idle := agentFunc(func(*game.GameState, []*game.GameState) (*game.GameState, error) {
			return nil, nil
		})
		e := LocalEngine(newGame(), idle, idle)

		_, err := e.Run()

		require.Error(t, err)
	})
}
