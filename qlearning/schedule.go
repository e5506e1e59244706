package qlearning

import "math"

// Default exploration constants shared by both schedules.
const (
	DefaultExplorationStart = 1.0
	DefaultExplorationFloor = 0.15
	DefaultExplorationDecay = 0.999
)

// PerEpisodeDecay multiplies the current rate by Decay after every episode,
// never going below Floor. Self-play uses it through DecayExploration.
type PerEpisodeDecay struct {
	Decay float64
	Floor float64
}

func (p PerEpisodeDecay) Next(current float64) float64 {
	return math.Max(p.Floor, current*p.Decay)
}

// IndexDecay derives the rate directly from a global episode index.
// Training against the search agent uses it instead of DecayExploration.
type IndexDecay struct {
	Start float64
	Decay float64
	Floor float64
}

func (d IndexDecay) At(episode int) float64 {
	return math.Max(d.Floor, d.Start*math.Pow(d.Decay, float64(episode)))
}
