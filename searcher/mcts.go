package searcher

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gambit/experiments/metrics"
	"gambit/game"
)

// ErrGameOver reports a think request on a finished game.
var ErrGameOver = errors.New("searcher: game is already over")

type config struct {
	iterations  int
	exploration float64
	seed        uint64
	seeded      bool
	collector   metrics.Collector
}

type Option func(*config)

// WithIterations sets the number of search iterations per Think call.
func WithIterations(iterations int) Option {
	return func(c *config) {
		c.iterations = iterations
	}
}

// WithExploration sets the UCB exploration constant.
func WithExploration(exploration float64) Option {
	return func(c *config) {
		c.exploration = exploration
	}
}

// WithSeed makes rollouts reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithCollector attaches search instrumentation. The searcher starts the
// collector and feeds it iterations; the caller completes it.
func WithCollector(collector metrics.Collector) Option {
	return func(c *config) {
		if collector != nil {
			c.collector = collector
		}
	}
}

// Bot picks actions by Monte Carlo tree search: UCB-guided descent, one
// expansion per iteration, a uniformly random playout to the end of the
// game, and a win/visit update along the walked path. The final choice is
// the most visited root action.
type Bot[S any, A comparable] struct {
	rules game.Rules[S, A]
	config

	mu  sync.Mutex
	rng *rand.Rand
}

func New[S any, A comparable](rules game.Rules[S, A], options ...Option) *Bot[S, A] {
	c := config{
		iterations:  DefaultIterations,
		exploration: DefaultExploration,
		collector:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&c)
	}
	if c.iterations <= 0 {
		panic("searcher: iterations must be positive")
	}
	if c.exploration < 0 {
		panic("searcher: exploration cannot be negative")
	}

	if !c.seeded {
		c.seed = uint64(time.Now().UnixNano())
	}
	return &Bot[S, A]{
		rules:  rules,
		config: c,
		rng:    rand.New(rand.NewSource(c.seed)),
	}
}

// Think searches from state and returns the best action found. It returns
// ErrGameOver when the game is already decided.
func (b *Bot[S, A]) Think(state S) (A, error) {
	var zero A
	if b.rules.IsEnded(state) {
		return zero, ErrGameOver
	}

	t := b.search(state)
	action := t.bestAction()
	log.Debug().Msgf("action chosen: %v", action)
	return action, nil
}

// Policy searches from state and returns the visit count per root action.
func (b *Bot[S, A]) Policy(state S) (map[A]int, error) {
	if b.rules.IsEnded(state) {
		return nil, ErrGameOver
	}

	t := b.search(state)
	root := t.nodes[0]
	policy := make(map[A]int, len(root.children))
	for _, child := range root.children {
		policy[t.nodes[child].action] = t.nodes[child].visits
	}
	return policy, nil
}

func (b *Bot[S, A]) search(state S) *tree[A] {
	legal := b.rules.LegalActions(state)
	if len(legal) == 0 {
		panic("searcher: no legal actions on a live state")
	}
	rootPlayer := b.rules.CurrentPlayer(state)
	t := newTree(legal)
	rng := b.newSearchRNG()

	b.collector.Start()
	for i := 0; i < b.iterations; i++ {
		id, frontier := b.selectThenExpand(t, state, rootPlayer)
		terminal, depth := b.rollout(frontier, rng)
		won := b.isWin(terminal, rootPlayer)
		backpropagate(t, id, won)
		b.collector.AddIteration(depth)
	}
	return t
}

// newSearchRNG derives an independent stream per search, so concurrent Think
// calls never share rand state.
func (b *Bot[S, A]) newSearchRNG() *rand.Rand {
	b.mu.Lock()
	defer b.mu.Unlock()
	return rand.New(rand.NewSource(b.rng.Uint64()))
}

// selectThenExpand walks down by UCB while nodes are fully expanded, then
// expands one untried action if the frontier has any. States are recomputed
// along the walk; the tree never stores them.
func (b *Bot[S, A]) selectThenExpand(t *tree[A], state S, rootPlayer game.Player) (int32, S) {
	id := int32(0)
	for len(t.nodes[id].untried) == 0 && len(t.nodes[id].children) > 0 {
		opponent := b.rules.CurrentPlayer(state) != rootPlayer
		id = t.pickChild(id, b.exploration, opponent)
		state = b.rules.NextState(state, t.nodes[id].action)
	}

	if len(t.nodes[id].untried) > 0 {
		action := t.popUntried(id)
		state = b.rules.NextState(state, action)
		var legal []A
		if !b.rules.IsEnded(state) {
			legal = b.rules.LegalActions(state)
		}
		id = t.expand(id, action, legal)
	}
	return id, state
}

// rollout plays random actions to the end of the game and returns the
// terminal state with the number of moves played.
func (b *Bot[S, A]) rollout(state S, rng *rand.Rand) (S, int) {
	depth := 0
	for !b.rules.IsEnded(state) {
		actions := b.rules.LegalActions(state)
		if len(actions) == 0 {
			panic("searcher: no legal actions on a live state")
		}
		state = b.rules.NextState(state, actions[rng.Intn(len(actions))])
		depth++
	}
	return state, depth
}

func (b *Bot[S, A]) isWin(state S, player game.Player) bool {
	points := b.rules.Points(state)
	if points == nil {
		panic("searcher: no points on an ended state")
	}
	return points[player] == game.Win
}
