package game

import "slices"

// StateKey is a canonical, comparable encoding of a state. Piece labels are
// discarded: two states whose sides occupy the same squares with the same
// side to move and the same forced color share a key.
type StateKey struct {
	First  [Size]uint8 // Sorted linearized squares of the first side
	Second [Size]uint8 // Sorted linearized squares of the second side
	Turn   uint8       // 0 when the first side moves, 1 otherwise
	Forced int8        // Forced color index, -1 for any
}

// Key returns the canonical key of the state.
func (gs *GameState) Key() StateKey {
	return StateKey{
		First:  sortedSquares(gs.pieces[First]),
		Second: sortedSquares(gs.pieces[Second]),
		Turn:   uint8(gs.turn),
		Forced: int8(gs.forced),
	}
}

func sortedSquares(pieces [Size]Square) [Size]uint8 {
	var out [Size]uint8
	for i, sq := range pieces {
		out[i] = uint8(sq.Index())
	}
	slices.Sort(out[:])
	return out
}

// Valid reports whether the key could have been produced by Key.
func (k StateKey) Valid() bool {
	if k.Turn > 1 || k.Forced < -1 || k.Forced >= Size {
		return false
	}
	var seen [Size * Size]bool
	for _, squares := range [][Size]uint8{k.First, k.Second} {
		for i, sq := range squares {
			if int(sq) >= Size*Size || seen[sq] {
				return false
			}
			if i > 0 && squares[i-1] > sq {
				return false
			}
			seen[sq] = true
		}
	}
	return true
}
