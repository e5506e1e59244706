package searcher

import (
	"time"
)

type SearchMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Depth     int
	Nodes     int64
	Score     int
}

type MetricsCollector interface {
	Start(depth int)
	AddNode()
	Complete(score int) SearchMetrics
}

// Search runs on a single goroutine, so the counters are plain fields.
type metricsCollector struct {
	startTime time.Time
	depth     int
	nodes     int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.nodes = 0
}

func (m *metricsCollector) AddNode() {
	m.nodes++
}

func (m *metricsCollector) Complete(score int) SearchMetrics {
	return SearchMetrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Depth:     m.depth,
		Nodes:     m.nodes,
		Score:     score,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(depth int)                  {}
func (m *noMetricsCollector) AddNode()                         {}
func (m *noMetricsCollector) Complete(score int) SearchMetrics { return SearchMetrics{} }
