package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gambit/experiments/metrics"
	"gambit/game"
)

// Local plays one game between two agents on the same process.
type Local[S any, A comparable] struct {
	rules  game.Rules[S, A]
	agents map[game.Player]Agent[S, A]
	start  S
	final  S
}

func NewLocal[S any, A comparable](rules game.Rules[S, A], player1, player2 Agent[S, A], start S) *Local[S, A] {
	if player1 == nil || player2 == nil {
		panic("engine: need an agent for each player")
	}
	return &Local[S, A]{
		rules: rules,
		agents: map[game.Player]Agent[S, A]{
			game.P1: player1,
			game.P2: player2,
		},
		start: start,
	}
}

// Run plays the game to the end or to MaxMoves and returns the winner with
// the collected metrics. A drawn or cut-off game has winner Nobody.
func (e *Local[S, A]) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	state := e.start
	startTime := time.Now()
	startingPlayer := e.rules.CurrentPlayer(state)
	log.Info().Msgf("%s (%s) is starting", startingPlayer, e.agents[startingPlayer].Name())

	var moveMetrics []metrics.MoveMetric
	step := 0
	for !e.rules.IsEnded(state) && step < MaxMoves {
		player := e.rules.CurrentPlayer(state)
		agent := e.agents[player]

		began := time.Now()
		action, err := agent.ChooseAction(state)
		if err != nil {
			return game.Nobody, metrics.GameMetric{}, moveMetrics,
				fmt.Errorf("%s failed to move: %w", agent.Name(), err)
		}

		metric := metrics.SearchMetric{Duration: time.Since(began)}
		if source, ok := agent.(SearchMetricSource); ok {
			metric = source.LastSearch()
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			SearchMetric: metric,
		})
		log.Info().Msgf("move %d: %s plays %v", step, player, action)

		state = e.rules.NextState(state, action)
	}

	e.final = state
	winner := game.Nobody
	if e.rules.IsEnded(state) {
		winner = game.Winner(e.rules, state)
	} else {
		log.Warn().Msgf("game stopped after %d moves without a result", step)
	}

	endTime := time.Now()
	log.Info().Msgf("game over: winner %s after %d moves", winner, step)

	gameMetric := metrics.GameMetric{
		StartingPlayer: int(startingPlayer),
		Winner:         winner.String(),
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     step,
	}
	return winner, gameMetric, moveMetrics, nil
}

// Final returns the last state of the most recent Run.
func (e *Local[S, A]) Final() S {
	return e.final
}
