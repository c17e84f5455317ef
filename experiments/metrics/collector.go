package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes the work done by a single search or training run.
type SearchMetric struct {
	Algorithm   string
	Duration    time.Duration
	Expansions  int // Nodes whose successors were generated
	Evaluations int // Leaves scored by an evaluation function
	Cutoffs     int // Alpha-beta prunes
	Episodes    int
}

type EpisodeRecord struct {
	Episode  int
	Steps    int
	Reward   float64
	Training bool
	Duration time.Duration
}

type SearchRecord struct {
	Step int
	SearchMetric
}

type Collector interface {
	Start(algorithm string)
	AddExpansion()
	AddEvaluation()
	AddCutoff()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	algorithm   string
	startTime   time.Time
	expansions  atomic.Int64
	evaluations atomic.Int64
	cutoffs     atomic.Int64
	episodes    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new run.
func (m *collector) Start(algorithm string) {
	m.algorithm = algorithm
	m.startTime = time.Now()
	m.expansions.Store(0)
	m.evaluations.Store(0)
	m.cutoffs.Store(0)
	m.episodes.Store(0)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:   m.algorithm,
		Duration:    time.Since(m.startTime),
		Expansions:  int(m.expansions.Load()),
		Evaluations: int(m.evaluations.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
		Episodes:    int(m.episodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string)  {}
func (m *dummyCollector) AddExpansion()           {}
func (m *dummyCollector) AddEvaluation()          {}
func (m *dummyCollector) AddCutoff()              {}
func (m *dummyCollector) AddEpisode()             {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
