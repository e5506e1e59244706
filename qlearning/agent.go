package qlearning

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"kamisado/game"

	"golang.org/x/exp/rand"
)

const (
	DefaultLearningRate = 0.1
	DefaultDiscount     = 0.9
	DefaultTemperature  = 1.0
)

// Policy selects among legal moves when the agent is not exploring.
type Policy int

const (
	Greedy Policy = iota
	Softmax
)

func (p Policy) String() string {
	switch p {
	case Greedy:
		return "greedy"
	case Softmax:
		return "softmax"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps "greedy" or "softmax" to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "greedy":
		return Greedy, nil
	case "softmax":
		return Softmax, nil
	}
	return Greedy, fmt.Errorf("unknown policy %q", name)
}

type Option func(a *Agent)

// Agent is a tabular Q-learning agent whose actions are successor states.
//
// One goroutine drives training. The mutex only lets Snapshot copy the
// table from another goroutine while training runs.
type Agent struct {
	mu          sync.RWMutex
	table       Table
	stats       Stats
	exploration float64

	learningRate float64
	discount     float64
	decay        PerEpisodeDecay
	policy       Policy
	temperature  float64
	training     bool
	rng          *rand.Rand
}

func WithLearningRate(rate float64) Option {
	return func(a *Agent) {
		if rate > 0 && rate <= 1 {
			a.learningRate = rate
		}
	}
}

func WithDiscount(discount float64) Option {
	return func(a *Agent) {
		if discount >= 0 && discount <= 1 {
			a.discount = discount
		}
	}
}

func WithExploration(rate float64) Option {
	return func(a *Agent) {
		if rate >= 0 && rate <= 1 {
			a.exploration = rate
		}
	}
}

func WithExplorationDecay(decay, floor float64) Option {
	return func(a *Agent) {
		if decay > 0 && decay <= 1 && floor >= 0 && floor <= 1 {
			a.decay = PerEpisodeDecay{Decay: decay, Floor: floor}
		}
	}
}

func WithPolicy(policy Policy) Option {
	return func(a *Agent) {
		a.policy = policy
	}
}

func WithTemperature(temperature float64) Option {
	return func(a *Agent) {
		if temperature > 0 {
			a.temperature = temperature
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

func NewAgent(options ...Option) *Agent {
	a := &Agent{ // Default values
		table:        Table{},
		exploration:  DefaultExplorationStart,
		learningRate: DefaultLearningRate,
		discount:     DefaultDiscount,
		decay:        PerEpisodeDecay{Decay: DefaultExplorationDecay, Floor: DefaultExplorationFloor},
		policy:       Greedy,
		temperature:  DefaultTemperature,
		training:     true,
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return a
}

// FindMove plays the move chosen by SelectAction.
func (a *Agent) FindMove(state *game.GameState, moves []*game.GameState) (*game.GameState, error) {
	return a.SelectAction(state, moves), nil
}

// SelectAction returns one of moves, or nil when moves is empty. In training
// mode the agent explores uniformly with probability equal to its
// exploration rate.
func (a *Agent) SelectAction(state *game.GameState, moves []*game.GameState) *game.GameState {
	if len(moves) == 0 {
		return nil
	}
	a.mu.RLock()
	explore := a.training && a.rng.Float64() < a.exploration
	a.mu.RUnlock()
	if explore {
		return moves[a.rng.Intn(len(moves))]
	}

	values := a.values(state.Key(), moves)
	if a.policy == Softmax {
		return a.sample(moves, values)
	}
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return moves[best]
}

func (a *Agent) values(from game.StateKey, moves []*game.GameState) []float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	values := make([]float64, len(moves))
	for i, move := range moves {
		values[i] = a.table[Transition{From: from, To: move.Key()}]
	}
	return values
}

// sample draws a move from the Boltzmann distribution over values, computed
// relative to the maximum value.
func (a *Agent) sample(moves []*game.GameState, values []float64) *game.GameState {
	maxValue := values[0]
	for _, v := range values[1:] {
		maxValue = math.Max(maxValue, v)
	}
	weights := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		weights[i] = math.Exp((v - maxValue) / a.temperature)
		sum += weights[i]
	}
	if sum == 0 || math.IsNaN(sum) {
		return moves[a.rng.Intn(len(moves))]
	}

	sampled := a.rng.Float64() * sum
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if sampled < cumulative {
			return moves[i]
		}
	}
	return moves[len(moves)-1] // Rounding
}

// Update applies one temporal-difference step to the transition from state
// to chosen. The bootstrap term is the best known value among nextMoves from
// next, or zero when nextMoves is empty.
func (a *Agent) Update(state, chosen *game.GameState, reward float64, next *game.GameState, nextMoves []*game.GameState) {
	key := Transition{From: state.Key(), To: chosen.Key()}
	future := 0.0
	if len(nextMoves) > 0 {
		values := a.values(next.Key(), nextMoves)
		future = values[0]
		for _, v := range values[1:] {
			future = math.Max(future, v)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	current := a.table[key]
	a.table[key] = current + a.learningRate*(reward+a.discount*future-current)
}

// Value returns the table value of moving from state to next.
func (a *Agent) Value(state, next *game.GameState) float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table[Transition{From: state.Key(), To: next.Key()}]
}

// DecayExploration applies the per-episode decay schedule.
func (a *Agent) DecayExploration() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.exploration = a.decay.Next(a.exploration)
}

// PruneTable drops entries whose absolute value is at or below threshold.
func (a *Agent) PruneTable(threshold float64) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.table.Prune(threshold)
}

func (a *Agent) SetTraining(training bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.training = training
}

func (a *Agent) Training() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.training
}

func (a *Agent) SetExploration(rate float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.exploration = math.Min(1, math.Max(0, rate))
}

func (a *Agent) Exploration() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.exploration
}

func (a *Agent) Policy() Policy {
	return a.policy
}

func (a *Agent) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stats
}

// RecordEpisode adds a finished episode to the statistics.
func (a *Agent) RecordEpisode(result Result, reward float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.record(result, reward)
}

// Len is the number of table entries.
func (a *Agent) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.table)
}

// Snapshot copies the table, statistics and exploration rate under one read
// lock, so the copy never mixes values from different moments.
func (a *Agent) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Snapshot{
		Entries:     a.table,
		Stats:       a.stats,
		Exploration: a.exploration,
	}.Clone()
}

// Restore replaces the table, statistics and exploration rate.
func (a *Agent) Restore(s Snapshot) {
	s = s.Clone()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.table = s.Entries
	a.stats = s.Stats
	a.exploration = s.Exploration
}
