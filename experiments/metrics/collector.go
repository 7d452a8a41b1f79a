package metrics

import (
	"time"
)

// SearchMetric describes one completed search.
type SearchMetric struct {
	Iterations   int
	RolloutMoves int // Moves played across all rollouts
	Duration     time.Duration
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers statistics from inside a search without coupling the
// searcher to any storage.
type Collector interface {
	Start()
	AddIteration(rolloutMoves int)
	Complete() SearchMetric
}

type collector struct {
	startTime    time.Time
	iterations   int
	rolloutMoves int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.iterations = 0
	m.rolloutMoves = 0
}

func (m *collector) AddIteration(rolloutMoves int) {
	m.iterations++
	m.rolloutMoves += rolloutMoves
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Iterations:   m.iterations,
		RolloutMoves: m.rolloutMoves,
		Duration:     time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                        {}
func (m *dummyCollector) AddIteration(rolloutMoves int) {}
func (m *dummyCollector) Complete() SearchMetric        { return SearchMetric{} }
