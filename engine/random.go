package engine

import (
	"errors"

	"golang.org/x/exp/rand"

	"gambit/game"
)

// Random picks a legal action uniformly at random.
type Random[S any, A comparable] struct {
	name  string
	rules game.Rules[S, A]
	rng   *rand.Rand
}

func NewRandom[S any, A comparable](name string, rules game.Rules[S, A], seed uint64) *Random[S, A] {
	return &Random[S, A]{
		name:  name,
		rules: rules,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (a *Random[S, A]) Name() string {
	return a.name
}

func (a *Random[S, A]) ChooseAction(state S) (A, error) {
	actions := a.rules.LegalActions(state)
	if len(actions) == 0 {
		var zero A
		return zero, errors.New("no legal moves to play")
	}
	return actions[a.rng.Intn(len(actions))], nil
}
