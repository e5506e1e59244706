package searcher

import (
	"kamisado/game"
)

// BestMove searches the game tree to the given depth with alpha-beta pruning
// and returns the successor state chosen for the side to move together with
// its backed-up score. The second side maximizes and the first side
// minimizes. Ties keep the first move that reached the best score. The move
// is nil when the state is already decided or has no legal moves. Depths
// below one search one ply.
func BestMove(state *game.GameState, depth int, evaluate game.Evaluate) (*game.GameState, int) {
	return bestMove(state, state.LegalMoves(), depth, evaluate, NewNoMetricsCollector())
}

// bestMove expects moves to be the legal moves of state in generation order.
func bestMove(state *game.GameState, moves []*game.GameState, depth int, evaluate game.Evaluate, metrics MetricsCollector) (*game.GameState, int) {
	if depth < 1 {
		depth = 1
	}
	s := &search{evaluate: evaluate, metrics: metrics}
	metrics.AddNode()
	if score, ok := decidedScore(state); ok {
		return nil, score
	}
	if len(moves) == 0 {
		return nil, s.blockedScore(state)
	}
	score, best := s.expand(state, moves, depth, -infinity, infinity)
	return best, score
}

type search struct {
	evaluate game.Evaluate
	metrics  MetricsCollector
}

func (s *search) minimax(state *game.GameState, depth, alpha, beta int) int {
	s.metrics.AddNode()

	if score, ok := decidedScore(state); ok {
		return score
	}

	if depth == 0 {
		return s.evaluate(state)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return s.blockedScore(state)
	}

	score, _ := s.expand(state, moves, depth, alpha, beta)
	return score
}

func decidedScore(state *game.GameState) (int, bool) {
	switch state.Decided() {
	case game.SecondWins:
		return WinScore, true
	case game.FirstWins:
		return -WinScore, true
	case game.Draw:
		return DrawScore, true
	}
	return 0, false
}

// blockedScore scores a state whose mover cannot move as a loss for the mover.
func (s *search) blockedScore(state *game.GameState) int {
	if state.Turn() == game.Second {
		return -WinScore
	}
	return WinScore
}

// expand searches the children of a state that has at least one legal move.
func (s *search) expand(state *game.GameState, moves []*game.GameState, depth, alpha, beta int) (int, *game.GameState) {
	var best *game.GameState

	if state.Turn() == game.Second {
		maxScore := -infinity
		for _, move := range moves {
			score := s.minimax(move, depth-1, alpha, beta)
			if score > maxScore {
				maxScore = score
				best = move
			}
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return maxScore, best
	}

	minScore := infinity
	for _, move := range moves {
		score := s.minimax(move, depth-1, alpha, beta)
		if score < minScore {
			minScore = score
			best = move
		}
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return minScore, best
}
