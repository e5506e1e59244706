package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"kamisado/experiments/metrics"
	"kamisado/game"

	"github.com/stretchr/testify/require"
)

func TestSearchLadder(t *testing.T) {
	challenger := SearchPlayer(2)

	matchUps := SearchLadder(challenger, 3)

	require.Len(t, matchUps, 3)
	for i, matchUp := range matchUps {
		require.Equal(t, SearchPlayer(i+1).Name, matchUp.Baseline.Name)
		require.Equal(t, "depth 2", matchUp.Challenger.Name)
	}
}

func TestRunner(t *testing.T) {
	board, rules := game.NewBoard(), game.NewStandardRules()

	t.Run("plays every match-up and writes records", func(t *testing.T) {
		writer, err := metrics.NewWriter(t.TempDir(), "ladder")
		require.NoError(t, err)
		runner := NewRunner(board, rules, WithGames(2), WithWriter(writer))

		standings, err := runner.Run(context.Background(), "ladder", SearchLadder(SearchPlayer(1), 2))

		require.NoError(t, err)
		require.Len(t, standings, 2)
		for _, s := range standings {
			require.Equal(t, 2, s.Games)
			require.Equal(t, s.Games, s.BaselineWins+s.ChallengerWins+s.Draws)
		}

		f, err := os.Open(filepath.Join(writer.Dir(), "game_records.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 5)
		require.Equal(t, "game", rows[0][0])
		require.Equal(t, "depth 1", rows[1][1])
		require.Equal(t, "depth 2", rows[4][1])
		require.Equal(t, "second", rows[2][2], "Starting side alternates")
	})

	t.Run("ignores non-positive game counts", func(t *testing.T) {
		runner := NewRunner(board, rules, WithGames(0))

		require.Equal(t, DefaultGames, runner.games)
	})

	t.Run("stops when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		standings, err := NewRunner(board, rules).Run(ctx, "cancelled", SearchLadder(SearchPlayer(1), 1))

		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, standings)
	})
}
