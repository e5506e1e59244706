package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("standard layout is a latin square", func(t *testing.T) {
		_, err := NewBoardFrom(standardLayout)
		require.NoError(t, err)

		counts := map[Color]int{}
		board := NewBoard()
		for r := int8(0); r < Size; r++ {
			for c := int8(0); c < Size; c++ {
				counts[board.Color(Square{Row: r, Col: c})]++
			}
		}
		require.Len(t, counts, Size)
		for color, n := range counts {
			require.Equal(t, Size, n, "Color %s should appear %d times", color, Size)
		}
	})

	t.Run("rejects a repeated color", func(t *testing.T) {
		cells := standardLayout
		cells[0][0] = cells[0][1]

		_, err := NewBoardFrom(cells)
		require.Error(t, err)
	})

	t.Run("rejects an unknown color", func(t *testing.T) {
		cells := standardLayout
		cells[2][5] = AnyColor

		_, err := NewBoardFrom(cells)
		require.Error(t, err)
	})
}

func TestEvaluateHeuristic(t *testing.T) {
	board, rules := NewBoard(), NewStandardRules()

	t.Run("initial position", func(t *testing.T) {
		gs := NewGame(board, rules)

		// progress 8*7*25 - 8*7*30 = -280, no center pieces, 102 first-side
		// moves: 0.5*-280 + 0.2*-816 = -303.2
		require.Equal(t, -303, EvaluateHeuristic(gs))
	})

	t.Run("is pure and deterministic", func(t *testing.T) {
		gs := NewGame(board, rules)
		key := gs.Key()

		require.Equal(t, EvaluateHeuristic(gs), EvaluateHeuristic(gs))
		require.Equal(t, key, gs.Key(), "Evaluation must not change the state")
	})

	t.Run("center control is asymmetric", func(t *testing.T) {
		pieces := homeRows()
		pieces[Second][3] = Square{Row: 3, Col: 3}
		pieces[Second][4] = Square{Row: 4, Col: 4}
		pieces[First][3] = Square{Row: 4, Col: 3}

		gs, err := NewPosition(board, rules, pieces, Second, Orange, 0)
		require.NoError(t, err)
		require.Equal(t, 2*secondCenterBonus-firstCenterPenalty, gs.centerScore())
	})

	t.Run("mobility flips sign with the side to move", func(t *testing.T) {
		first, err := NewPosition(board, rules, homeRows(), First, AnyColor, 0)
		require.NoError(t, err)
		second, err := NewPosition(board, rules, homeRows(), Second, AnyColor, 0)
		require.NoError(t, err)

		require.Equal(t, 102*firstMobilityWeight, first.mobilityScore())
		require.Equal(t, 102*secondMobilityWeight, second.mobilityScore())
	})

	t.Run("truncates toward zero", func(t *testing.T) {
		pieces := homeRows()
		pieces[Second][0] = Square{Row: 1, Col: 0}

		gs, err := NewPosition(board, rules, pieces, First, Red, 0)
		require.NoError(t, err)
		raw := 0.5*float64(gs.progressScore()) + 0.3*float64(gs.centerScore()) + 0.2*float64(gs.mobilityScore())
		require.Equal(t, int(raw), EvaluateHeuristic(gs))
	})
}
