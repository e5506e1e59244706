package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"kamisado/config"
	"kamisado/engine"
	"kamisado/game"
	"kamisado/storage"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.ReportInterval = 5
	cfg.CheckpointInterval = 10
	cfg.EvaluationDepth = 1
	cfg.Curriculum = []config.Stage{{Depth: 1}}
	return cfg
}

func runMenu(t *testing.T, input string, options ...Option) string {
	t.Helper()
	var out bytes.Buffer
	menu, err := NewMenu(strings.NewReader(input), &out, testConfig(), options...)
	require.NoError(t, err)

	require.NoError(t, menu.Run(context.Background()))
	return out.String()
}

func TestMenu(t *testing.T) {
	ctx := context.Background()

	t.Run("exits", func(t *testing.T) {
		out := runMenu(t, "6\n")

		require.Contains(t, out, "KAMISADO")
		require.Contains(t, out, "Goodbye!")
	})

	t.Run("end of input exits cleanly", func(t *testing.T) {
		out := runMenu(t, "")

		require.NotContains(t, out, "Goodbye!")
	})

	t.Run("rejects unknown options", func(t *testing.T) {
		out := runMenu(t, "9\n6\n")

		require.Contains(t, out, "Invalid option, try again.")
		require.Contains(t, out, "Goodbye!")
	})

	t.Run("needs a saved agent", func(t *testing.T) {
		out := runMenu(t, "3\n4\n5\n2\n6\n")

		require.Equal(t, 4, strings.Count(out, "No saved agent found."))
	})

	t.Run("trains, plays and reports", func(t *testing.T) {
		store, err := storage.Open(ctx, "memory://")
		require.NoError(t, err)
		defer store.Close()

		out := runMenu(t, "1\nabc\n3\n3\nquit\n5\n6\n", WithStore(store))

		require.Contains(t, out, "invalid configuration")
		require.Contains(t, out, "Training finished: wins=")
		require.Contains(t, out, "You play the white pieces")
		require.Contains(t, out, "You resigned. The agent wins.")
		require.Contains(t, out, "TRAINING STATISTICS")
		require.Contains(t, out, "Goodbye!")

		snapshot, found, err := store.Load(ctx, testConfig().RecordName)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, 3, snapshot.Stats.Episodes())
	})

	t.Run("continues from the store", func(t *testing.T) {
		store, err := storage.Open(ctx, "memory://")
		require.NoError(t, err)
		defer store.Close()

		runMenu(t, "1\n2\n6\n", WithStore(store))
		out := runMenu(t, "2\n2\n4\n2\n6\n", WithStore(store))

		require.Contains(t, out, "Training finished: wins=")
		require.Contains(t, out, "Results: agent ")
		require.Contains(t, out, "draws ")

		snapshot, found, err := store.Load(ctx, testConfig().RecordName)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, 4, snapshot.Stats.Episodes())
	})
}

func TestDescribeResult(t *testing.T) {
	tests := []struct {
		name   string
		result engine.Result
		want   string
	}{
		{
			name:   "resigned",
			result: engine.Result{Resigned: true, Decisive: true, Winner: game.Second},
			want:   "You resigned. The agent wins.",
		},
		{
			name:   "draw",
			result: engine.Result{Outcome: game.Draw},
			want:   "Draw: too many moves without changing color.",
		},
		{
			name:   "agent blocked",
			result: engine.Result{Outcome: game.Blocked, Decisive: true, Winner: game.First},
			want:   "The agent has no legal move. You win!",
		},
		{
			name:   "human blocked",
			result: engine.Result{Outcome: game.Blocked, Decisive: true, Winner: game.Second},
			want:   "You have no legal move. The agent wins.",
		},
		{
			name:   "human reaches the goal row",
			result: engine.Result{Outcome: game.FirstWins, Decisive: true, Winner: game.First},
			want:   "You win!",
		},
		{
			name:   "agent reaches the goal row",
			result: engine.Result{Outcome: game.SecondWins, Decisive: true, Winner: game.Second},
			want:   "The agent wins.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, describeResult(tt.result))
		})
	}
}
