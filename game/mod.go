package game

// Size is the number of rows and columns of the board, which is also the
// number of colors and the number of pieces per side.
const Size = 8

// Side identifies one of the two players.
type Side int8

const (
	First  Side = iota // Starts on row 7 and moves toward row 0
	Second             // Starts on row 0 and moves toward row 7
)

func (s Side) Opponent() Side {
	return 1 - s
}

// HomeRow is the row the side's pieces start on.
func (s Side) HomeRow() int {
	if s == First {
		return Size - 1
	}
	return 0
}

// GoalRow is the row a side has to reach to win.
func (s Side) GoalRow() int {
	return s.Opponent().HomeRow()
}

// forward is the row delta of a single step toward the goal row.
func (s Side) forward() int {
	if s == First {
		return -1
	}
	return 1
}

func (s Side) String() string {
	if s == First {
		return "first"
	}
	return "second"
}

// Outcome classifies a state as ongoing or terminal.
type Outcome int8

const (
	Ongoing Outcome = iota
	FirstWins
	SecondWins
	Draw
	Blocked // The side to move has no legal move
)

// Terminal reports whether play stops at this outcome.
func (o Outcome) Terminal() bool {
	return o != Ongoing
}

// Winner resolves the outcome to a winning side. A blocked mover loses to
// the side that still has moves. ok is false for ongoing games and draws.
func (o Outcome) Winner(turn Side) (winner Side, ok bool) {
	switch o {
	case FirstWins:
		return First, true
	case SecondWins:
		return Second, true
	case Blocked:
		return turn.Opponent(), true
	default:
		return 0, false
	}
}

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case FirstWins:
		return "first wins"
	case SecondWins:
		return "second wins"
	case Draw:
		return "draw"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Evaluate scores a state for a search cut off before a terminal outcome.
// Positive values favor the second side.
type Evaluate func(*GameState) int
