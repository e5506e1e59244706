package game

// Heuristic weights. The two sides are tuned separately, so the progress and
// center terms are deliberately asymmetric.
const (
	secondProgressWeight = 25
	firstProgressWeight  = 30
	secondCenterBonus    = 50
	firstCenterPenalty   = 40
	secondMobilityWeight = 10
	firstMobilityWeight  = -8

	progressShare = 0.5
	centerShare   = 0.3
	mobilityShare = 0.2
)

var centerSquares = [4]Square{{3, 3}, {3, 4}, {4, 3}, {4, 4}}

// EvaluateHeuristic scores a state from the second side's perspective as a
// weighted sum of progress, center control and mobility, truncated to an
// integer. It has no side effects.
func EvaluateHeuristic(gs *GameState) int {
	score := progressShare*float64(gs.progressScore()) +
		centerShare*float64(gs.centerScore()) +
		mobilityShare*float64(gs.mobilityScore())
	return int(score)
}

func (gs *GameState) progressScore() int {
	second, first := 0, 0
	for _, sq := range gs.pieces[Second] {
		second += Size - 1 - int(sq.Row)
	}
	for _, sq := range gs.pieces[First] {
		first += int(sq.Row)
	}
	return second*secondProgressWeight - first*firstProgressWeight
}

func (gs *GameState) centerScore() int {
	score := 0
	for _, center := range centerSquares {
		side, _, ok := gs.PieceAt(center)
		if !ok {
			continue
		}
		if side == Second {
			score += secondCenterBonus
		} else {
			score -= firstCenterPenalty
		}
	}
	return score
}

func (gs *GameState) mobilityScore() int {
	mobility := gs.MoveCount()
	if gs.turn == Second {
		return mobility * secondMobilityWeight
	}
	return mobility * firstMobilityWeight
}
