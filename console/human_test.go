package console

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"kamisado/config"
	"kamisado/engine"
	"kamisado/game"

	"github.com/stretchr/testify/require"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "first move", input: "0", want: 0},
		{name: "last move", input: " 4 \n", want: 4},
		{name: "quit", input: "quit", wantErr: engine.ErrResigned},
		{name: "resign in capitals", input: "RESIGN", wantErr: engine.ErrResigned},
		{name: "desistir", input: "desistir", wantErr: engine.ErrResigned},
		{name: "not a number", input: "b2", wantErr: config.ErrInvalid},
		{name: "negative", input: "-1", wantErr: config.ErrInvalid},
		{name: "out of range", input: "5", wantErr: config.ErrInvalid},
		{name: "empty", input: "", wantErr: config.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChoice(tt.input, 5)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHuman(t *testing.T) {
	gs := game.NewGame(game.NewBoard(), game.NewStandardRules())
	moves := gs.LegalMoves()

	newHuman := func(input string) (*Human, *bytes.Buffer) {
		var out bytes.Buffer
		return NewHuman(bufio.NewScanner(strings.NewReader(input)), &out), &out
	}

	t.Run("asks again after invalid input", func(t *testing.T) {
		human, out := newHuman("abc\n999\n3\n")

		move, err := human.FindMove(gs, moves)

		require.NoError(t, err)
		require.Same(t, moves[3], move)
		require.Equal(t, 3, strings.Count(out.String(), "Your move: "))
		require.Contains(t, out.String(), "Available moves:")
	})

	t.Run("resigns on a withdrawal word", func(t *testing.T) {
		human, _ := newHuman("quit\n")

		_, err := human.FindMove(gs, moves)

		require.ErrorIs(t, err, engine.ErrResigned)
	})

	t.Run("resigns at end of input", func(t *testing.T) {
		human, _ := newHuman("")

		_, err := human.FindMove(gs, moves)

		require.ErrorIs(t, err, engine.ErrResigned)
	})

	t.Run("no moves", func(t *testing.T) {
		human, out := newHuman("")

		move, err := human.FindMove(gs, nil)

		require.NoError(t, err)
		require.Nil(t, move)
		require.Empty(t, out.String())
	})
}
