package qlearning

import "fmt"

// Stats accumulates episode results from the learning agent's point of view.
type Stats struct {
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
	TotalReward float64 `json:"total_reward"`
}

// Result is the outcome of one episode for the learning agent.
type Result int

const (
	Win Result = iota
	Loss
	Draw
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Episodes is the number of completed episodes.
func (s Stats) Episodes() int {
	return s.Wins + s.Losses + s.Draws
}

// WinRate is the fraction of completed episodes won, zero before any episode.
func (s Stats) WinRate() float64 {
	n := s.Episodes()
	if n == 0 {
		return 0
	}
	return float64(s.Wins) / float64(n)
}

func (s *Stats) record(result Result, reward float64) {
	switch result {
	case Win:
		s.Wins++
	case Loss:
		s.Losses++
	case Draw:
		s.Draws++
	}
	s.TotalReward += reward
}

func (s Stats) String() string {
	return fmt.Sprintf("wins=%d losses=%d draws=%d reward=%.2f", s.Wins, s.Losses, s.Draws, s.TotalReward)
}
