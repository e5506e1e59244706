package searcher

import "math"

// Scores are from the second side's perspective, matching game.EvaluateHeuristic.
const (
	WinScore  = 1000 // Second side wins, negated when the first side wins
	DrawScore = 0
)

const infinity = math.MaxInt32

// DefaultDepth is the fixed search depth used for evaluation games.
const DefaultDepth = 3
