package game

import "fmt"

// Square is a board coordinate. Row 0 is the second side's home row.
type Square struct {
	Row int8
	Col int8
}

func (sq Square) InBounds() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// Index linearizes the square to [0, 64).
func (sq Square) Index() int {
	return int(sq.Row)*Size + int(sq.Col)
}

// String renders the square in file/rank notation as seen by the first side
// (A8 is row 0, column 0).
func (sq Square) String() string {
	return fmt.Sprintf("%c%d", 'A'+sq.Col, Size-int(sq.Row))
}

// Move describes the relocation that produced a state.
type Move struct {
	Side  Side
	Piece int // Index of the piece within its side
	From  Square
	To    Square
}

func (m Move) String() string {
	return fmt.Sprintf("%s %d %s -> %s", m.Side, m.Piece, m.From, m.To)
}

// direction is a single-step offset along a ray.
type direction struct {
	dRow, dCol int8
}

// rays returns the three forward directions of a side in generation order:
// toward column 0, straight ahead, toward column 7.
func rays(s Side) [3]direction {
	f := int8(s.forward())
	return [3]direction{{f, -1}, {f, 0}, {f, 1}}
}
