package engine

import (
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
)

// Search wraps a searcher.Bot as an agent and keeps the metrics of its most
// recent search.
type Search[S any, A comparable] struct {
	name      string
	bot       *searcher.Bot[S, A]
	collector metrics.Collector
	last      metrics.SearchMetric
}

func NewSearch[S any, A comparable](name string, rules game.Rules[S, A], options ...searcher.Option) *Search[S, A] {
	collector := metrics.NewCollector()
	options = append(options, searcher.WithCollector(collector))
	return &Search[S, A]{
		name:      name,
		bot:       searcher.New(rules, options...),
		collector: collector,
	}
}

func (a *Search[S, A]) Name() string {
	return a.name
}

func (a *Search[S, A]) ChooseAction(state S) (A, error) {
	action, err := a.bot.Think(state)
	if err != nil {
		return action, err
	}
	a.last = a.collector.Complete()
	return action, nil
}

// LastSearch reports on the search behind the latest ChooseAction.
func (a *Search[S, A]) LastSearch() metrics.SearchMetric {
	return a.last
}

// Policy exposes the underlying bot's root visit counts for analysis.
func (a *Search[S, A]) Policy(state S) (map[A]int, error) {
	return a.bot.Policy(state)
}
