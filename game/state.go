package game

import (
	"errors"
	"fmt"
)

// GameState is an immutable snapshot of a game. States are only created by
// NewGame, NewPosition and the move generator; none of its methods mutate the
// receiver, so states may be shared freely between agents and goroutines.
type GameState struct {
	board     *Board
	rules     *Rules
	pieces    [2][Size]Square // Piece positions indexed by side then piece label
	turn      Side
	forced    Color // Color the moving piece must stand on, AnyColor for the opening move
	stalemate int   // Consecutive moves that kept the tower color unchanged
	last      Move
	hasLast   bool
}

type Option func(gs *GameState)

// WithStarter lets the given side make the opening move.
func WithStarter(side Side) Option {
	return func(gs *GameState) {
		gs.turn = side
	}
}

// NewGame returns the starting position: every piece on its home row, the
// first side to move and no color constraint.
func NewGame(board *Board, rules *Rules, options ...Option) *GameState {
	gs := &GameState{
		board:  board,
		rules:  rules,
		turn:   First,
		forced: AnyColor,
	}
	for _, side := range []Side{First, Second} {
		for i := 0; i < Size; i++ {
			gs.pieces[side][i] = Square{Row: int8(side.HomeRow()), Col: int8(i)}
		}
	}
	for _, option := range options {
		option(gs)
	}
	return gs
}

// NewPosition builds an arbitrary position, checking that every piece is on
// the board and that no two pieces share a square.
func NewPosition(board *Board, rules *Rules, pieces [2][Size]Square, turn Side, forced Color, stalemate int) (*GameState, error) {
	if turn != First && turn != Second {
		return nil, fmt.Errorf("invalid side to move: %d", turn)
	}
	if forced != AnyColor && (forced < 0 || int(forced) >= Size) {
		return nil, fmt.Errorf("invalid forced color: %d", forced)
	}
	if stalemate < 0 {
		return nil, errors.New("stalemate counter cannot be negative")
	}

	var occupied [Size * Size]bool
	for side := range pieces {
		for i, sq := range pieces[side] {
			if !sq.InBounds() {
				return nil, fmt.Errorf("piece %d of %s side is off the board at (%d,%d)", i, Side(side), sq.Row, sq.Col)
			}
			if occupied[sq.Index()] {
				return nil, fmt.Errorf("square %s is occupied twice", sq)
			}
			occupied[sq.Index()] = true
		}
	}

	return &GameState{
		board:     board,
		rules:     rules,
		pieces:    pieces,
		turn:      turn,
		forced:    forced,
		stalemate: stalemate,
	}, nil
}

func (gs *GameState) Board() *Board      { return gs.board }
func (gs *GameState) Rules() *Rules      { return gs.rules }
func (gs *GameState) Turn() Side         { return gs.turn }
func (gs *GameState) ForcedColor() Color { return gs.forced }
func (gs *GameState) Stalemate() int     { return gs.stalemate }

// Piece returns the square of a side's i-th piece.
func (gs *GameState) Piece(side Side, i int) Square {
	return gs.pieces[side][i]
}

// Pieces returns a copy of a side's piece squares.
func (gs *GameState) Pieces(side Side) [Size]Square {
	return gs.pieces[side]
}

// LastMove returns the move that produced this state. ok is false for states
// that were not produced by the move generator.
func (gs *GameState) LastMove() (move Move, ok bool) {
	return gs.last, gs.hasLast
}

// PieceAt finds the piece standing on a square.
func (gs *GameState) PieceAt(sq Square) (side Side, piece int, ok bool) {
	for s := range gs.pieces {
		for i, p := range gs.pieces[s] {
			if p == sq {
				return Side(s), i, true
			}
		}
	}
	return 0, 0, false
}

func (gs *GameState) occupancy() [Size * Size]bool {
	var occupied [Size * Size]bool
	for side := range gs.pieces {
		for _, sq := range gs.pieces[side] {
			occupied[sq.Index()] = true
		}
	}
	return occupied
}

// movable reports whether the side to move may move a piece standing on sq.
func (gs *GameState) movable(sq Square) bool {
	return gs.forced == AnyColor || gs.board.Color(sq) == gs.forced
}

// LegalMoves returns every successor state, ordered by piece label, then by
// ray (toward column 0, straight, toward column 7), then by distance. Each
// empty square on a ray before the first obstruction or the board edge is a
// separate move.
func (gs *GameState) LegalMoves() []*GameState {
	occupied := gs.occupancy()
	var moves []*GameState
	for i, from := range gs.pieces[gs.turn] {
		if !gs.movable(from) {
			continue
		}
		for _, d := range rays(gs.turn) {
			to := Square{Row: from.Row + d.dRow, Col: from.Col + d.dCol}
			for to.InBounds() && !occupied[to.Index()] {
				moves = append(moves, gs.play(i, from, to))
				to = Square{Row: to.Row + d.dRow, Col: to.Col + d.dCol}
			}
		}
	}
	return moves
}

// HasLegalMoves reports whether LegalMoves would return anything, without
// building the successor states.
func (gs *GameState) HasLegalMoves() bool {
	occupied := gs.occupancy()
	for _, from := range gs.pieces[gs.turn] {
		if !gs.movable(from) {
			continue
		}
		for _, d := range rays(gs.turn) {
			to := Square{Row: from.Row + d.dRow, Col: from.Col + d.dCol}
			if to.InBounds() && !occupied[to.Index()] {
				return true
			}
		}
	}
	return false
}

// MoveCount returns len(LegalMoves()) without building the successor states.
func (gs *GameState) MoveCount() int {
	occupied := gs.occupancy()
	count := 0
	for _, from := range gs.pieces[gs.turn] {
		if !gs.movable(from) {
			continue
		}
		for _, d := range rays(gs.turn) {
			to := Square{Row: from.Row + d.dRow, Col: from.Col + d.dCol}
			for to.InBounds() && !occupied[to.Index()] {
				count++
				to = Square{Row: to.Row + d.dRow, Col: to.Col + d.dCol}
			}
		}
	}
	return count
}

// play builds the successor reached by moving piece i from one square to
// another. The receiver is copied by value and left untouched.
func (gs *GameState) play(i int, from, to Square) *GameState {
	next := *gs
	next.pieces[gs.turn][i] = to
	next.turn = gs.turn.Opponent()
	next.forced = gs.board.Color(to)
	if gs.board.Color(to) == gs.board.Color(from) {
		next.stalemate = gs.stalemate + 1
	} else {
		next.stalemate = 0
	}
	next.last = Move{Side: gs.turn, Piece: i, From: from, To: to}
	next.hasLast = true
	return &next
}

// Outcome classifies the state. A draw by the stalemate counter takes
// precedence over a piece on its goal row, which takes precedence over the
// side to move being blocked.
func (gs *GameState) Outcome() Outcome {
	if o := gs.Decided(); o != Ongoing {
		return o
	}
	if !gs.HasLegalMoves() {
		return Blocked
	}
	return Ongoing
}

// Decided classifies the state by the draw threshold and goal rows only,
// ignoring whether the side to move is blocked.
func (gs *GameState) Decided() Outcome {
	if gs.rules.IsDraw(gs.stalemate) {
		return Draw
	}
	for _, sq := range gs.pieces[First] {
		if int(sq.Row) == First.GoalRow() {
			return FirstWins
		}
	}
	for _, sq := range gs.pieces[Second] {
		if int(sq.Row) == Second.GoalRow() {
			return SecondWins
		}
	}
	return Ongoing
}
