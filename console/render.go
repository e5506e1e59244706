// Package console is the text interface: board rendering, move listing,
// input parsing, a human agent and the interactive menu.
package console

import (
	"fmt"
	"io"
	"strings"

	"kamisado/game"
)

// PieceLabel names a piece as shown to players: W1..W8 for the first side,
// B1..B8 for the second.
func PieceLabel(side game.Side, piece int) string {
	if side == game.First {
		return fmt.Sprintf("W%d", piece+1)
	}
	return fmt.Sprintf("B%d", piece+1)
}

// DescribeMove formats a move as "W3 C1 -> C4".
func DescribeMove(m game.Move) string {
	return fmt.Sprintf("%s %s -> %s", PieceLabel(m.Side, m.Piece), m.From, m.To)
}

// Render draws the board with each cell's color initial and occupant, then
// the side to move and the forced color.
func Render(w io.Writer, gs *game.GameState) {
	var sb strings.Builder
	files := "   " + strings.Join(strings.Split("ABCDEFGH", ""), "    ")
	sb.WriteString(files + "\n")
	for row := 0; row < game.Size; row++ {
		rank := game.Size - row
		fmt.Fprintf(&sb, "%d |", rank)
		for col := 0; col < game.Size; col++ {
			sq := game.Square{Row: int8(row), Col: int8(col)}
			label := "  "
			if side, piece, ok := gs.PieceAt(sq); ok {
				label = PieceLabel(side, piece)
			}
			fmt.Fprintf(&sb, "%c:%s ", gs.Board().Color(sq).Initial(), label)
		}
		fmt.Fprintf(&sb, "| %d\n", rank)
	}
	sb.WriteString(files + "\n")
	fmt.Fprintf(&sb, "to move: %s (%s) | forced color: %s | stalemate: %d/%d\n",
		gs.Turn(), sideLetter(gs.Turn()), gs.ForcedColor(), gs.Stalemate(), gs.Rules().DrawThreshold)
	io.WriteString(w, sb.String())
}

// ListMoves numbers moves in generation order, matching ParseChoice.
func ListMoves(w io.Writer, moves []*game.GameState) {
	for i, m := range moves {
		move, _ := m.LastMove()
		fmt.Fprintf(w, "%d: %s\n", i, DescribeMove(move))
	}
}

func sideLetter(s game.Side) string {
	if s == game.First {
		return "W"
	}
	return "B"
}
