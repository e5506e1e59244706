package console

import (
	"bytes"
	"strings"
	"testing"

	"kamisado/game"

	"github.com/stretchr/testify/require"
)

func TestDescribeMove(t *testing.T) {
	t.Run("labels pieces by side", func(t *testing.T) {
		require.Equal(t, "W1", PieceLabel(game.First, 0))
		require.Equal(t, "B8", PieceLabel(game.Second, 7))
	})

	t.Run("formats squares in file and rank", func(t *testing.T) {
		move := game.Move{
			Side:  game.First,
			Piece: 2,
			From:  game.Square{Row: 7, Col: 2},
			To:    game.Square{Row: 4, Col: 2},
		}

		require.Equal(t, "W3 C1 -> C4", DescribeMove(move))
	})
}

func TestRender(t *testing.T) {
	gs := game.NewGame(game.NewBoard(), game.NewStandardRules())
	var out bytes.Buffer

	Render(&out, gs)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, game.Size+3)
	require.True(t, strings.HasPrefix(lines[0], "   A    B"))
	require.Contains(t, lines[1], "8 |O:B1 B:B2 ")
	require.Contains(t, lines[8], "1 |N:W1 G:W2 ")
	require.Contains(t, lines[2], "R:   ")
	require.Contains(t, lines[10], "to move: first (W)")
	require.Contains(t, lines[10], "forced color: any")
	require.Contains(t, lines[10], "stalemate: 0/200")
}

func TestListMoves(t *testing.T) {
	gs := game.NewGame(game.NewBoard(), game.NewStandardRules())
	moves := gs.LegalMoves()
	var out bytes.Buffer

	ListMoves(&out, moves)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, len(moves))
	first, _ := moves[0].LastMove()
	require.Equal(t, "0: "+DescribeMove(first), lines[0])
}
