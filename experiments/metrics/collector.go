package metrics

import (
	"time"
)

// EpisodeMetric describes one training episode.
type EpisodeMetric struct {
	Mode        string // "self-play" or "curriculum"
	Result      string
	Reward      float64
	Plies       int
	Exploration float64
	SearchDepth int // Zero in self-play
	TableSize   int
	StartTime   time.Time
	Duration    time.Duration
}

// GameMetric describes one played game, in training evaluation or
// interactive play.
type GameMetric struct {
	Starter   string
	Outcome   string
	Winner    string // Empty for draws
	Resigned  bool
	Plies     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Collector interface {
	Start(mode string, exploration float64, depth int)
	AddPly()
	AddReward(reward float64)
	Complete(result string, tableSize int) EpisodeMetric
}

// Episodes run on the training goroutine, so the counters are plain fields.
type collector struct {
	mode        string
	exploration float64
	depth       int
	startTime   time.Time
	plies       int
	reward      float64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(mode string, exploration float64, depth int) {
	m.startTime = time.Now()
	m.mode = mode
	m.exploration = exploration
	m.depth = depth
	m.plies = 0
	m.reward = 0
}

func (m *collector) AddPly() {
	m.plies++
}

func (m *collector) AddReward(reward float64) {
	m.reward += reward
}

func (m *collector) Complete(result string, tableSize int) EpisodeMetric {
	return EpisodeMetric{
		Mode:        m.mode,
		Result:      result,
		Reward:      m.reward,
		Plies:       m.plies,
		Exploration: m.exploration,
		SearchDepth: m.depth,
		TableSize:   tableSize,
		StartTime:   m.startTime,
		Duration:    time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(mode string, exploration float64, depth int)   {}
func (m *dummyCollector) AddPly()                                             {}
func (m *dummyCollector) AddReward(reward float64)                            {}
func (m *dummyCollector) Complete(result string, tableSize int) EpisodeMetric { return EpisodeMetric{} }
