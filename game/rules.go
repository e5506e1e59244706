package game

// DefaultDrawThreshold is the number of consecutive color-preserving moves
// after which a game is drawn.
const DefaultDrawThreshold = 200

type Rules struct {
	DrawThreshold int
}

func NewStandardRules() *Rules {
	return &Rules{
		DrawThreshold: DefaultDrawThreshold,
	}
}

// IsDraw reports whether a stalemate counter has reached the draw threshold.
func (r *Rules) IsDraw(stalemate int) bool {
	return stalemate >= r.DrawThreshold
}
