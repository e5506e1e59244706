package game

import (
	"errors"
	"fmt"
)

// Color is one of the eight tower colors painted on the board.
type Color int8

const (
	Orange Color = iota
	Blue
	Purple
	Pink
	Yellow
	Red
	Green
	Brown
)

// AnyColor means no color constraint applies to the next move.
const AnyColor Color = -1

var colorNames = [Size]string{"orange", "blue", "purple", "pink", "yellow", "red", "green", "brown"}

func (c Color) String() string {
	if c == AnyColor {
		return "any"
	}
	if c < 0 || int(c) >= Size {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// Initial returns the one-letter abbreviation used by text renderers.
// Pink and purple share a first letter, so pink is abbreviated 'K'.
func (c Color) Initial() byte {
	return "OBPKYRGN"[c]
}

// Board is the static colored grid. It never changes once built and is
// shared by every state of every game.
type Board struct {
	cells [Size][Size]Color
}

var standardLayout = [Size][Size]Color{
	{Orange, Blue, Purple, Pink, Yellow, Red, Green, Brown},
	{Red, Orange, Pink, Green, Blue, Yellow, Brown, Purple},
	{Green, Pink, Orange, Red, Purple, Brown, Yellow, Blue},
	{Pink, Purple, Blue, Orange, Brown, Green, Red, Yellow},
	{Yellow, Red, Green, Brown, Orange, Blue, Purple, Pink},
	{Blue, Yellow, Brown, Purple, Red, Orange, Pink, Green},
	{Purple, Brown, Yellow, Blue, Green, Pink, Orange, Red},
	{Brown, Green, Red, Yellow, Pink, Purple, Blue, Orange},
}

// NewBoard returns the standard Kamisado board.
func NewBoard() *Board {
	return &Board{cells: standardLayout}
}

// NewBoardFrom builds a board from a custom layout. Every row and every
// column must contain each color exactly once.
func NewBoardFrom(cells [Size][Size]Color) (*Board, error) {
	b := &Board{cells: cells}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) validate() error {
	for i := 0; i < Size; i++ {
		var rowSeen, colSeen [Size]bool
		for j := 0; j < Size; j++ {
			rc, cc := b.cells[i][j], b.cells[j][i]
			if rc < 0 || int(rc) >= Size || cc < 0 || int(cc) >= Size {
				return errors.New("board contains an unknown color")
			}
			if rowSeen[rc] {
				return fmt.Errorf("color %s repeated in row %d", rc, i)
			}
			if colSeen[cc] {
				return fmt.Errorf("color %s repeated in column %d", cc, i)
			}
			rowSeen[rc], colSeen[cc] = true, true
		}
	}
	return nil
}

// Color returns the color of a square.
func (b *Board) Color(sq Square) Color {
	return b.cells[sq.Row][sq.Col]
}
