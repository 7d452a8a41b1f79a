package engine

import (
	"gambit/experiments/metrics"
)

// MaxMoves caps runaway games.
const MaxMoves = 10000

// Agent picks one action for the side to move.
type Agent[S any, A comparable] interface {
	Name() string
	ChooseAction(state S) (A, error)
}

// SearchMetricSource is implemented by agents that can report on their last
// search. The game loop picks these up into the move metrics.
type SearchMetricSource interface {
	LastSearch() metrics.SearchMetric
}
