package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gambit/game"
	"gambit/game/tictactoe"
	"gambit/searcher"
)

type failingAgent struct{}

func (failingAgent) Name() string { return "broken" }

func (failingAgent) ChooseAction(tictactoe.State) (tictactoe.Cell, error) {
	return 0, errors.New("out of ideas")
}

func TestNewLocal(t *testing.T) {
	rules := tictactoe.Rules{}

	t.Run("both agents are required", func(t *testing.T) {
		require.PanicsWithValue(t, "engine: need an agent for each player", func() {
			NewLocal[tictactoe.State, tictactoe.Cell](rules, nil, nil, tictactoe.NewState())
		}, "Should panic when an agent is missing")
	})
}

func TestRunSearchAgents(t *testing.T) {
	rules := tictactoe.Rules{}
	alice := NewSearch[tictactoe.State, tictactoe.Cell]("alice", rules,
		searcher.WithIterations(20), searcher.WithSeed(1))
	bob := NewSearch[tictactoe.State, tictactoe.Cell]("bob", rules,
		searcher.WithIterations(20), searcher.WithSeed(2))

	winner, gameMetric, moveMetrics, err := NewLocal[tictactoe.State, tictactoe.Cell](
		rules, alice, bob, tictactoe.NewState()).Run()
	require.NoError(t, err, "Should play the game to the end")

	require.GreaterOrEqual(t, gameMetric.TotalMoves, 5, "Should take at least 5 moves to finish")
	require.LessOrEqual(t, gameMetric.TotalMoves, 9, "Should fit on the board")
	require.Len(t, moveMetrics, gameMetric.TotalMoves, "Should record one metric per move")
	require.Equal(t, winner.String(), gameMetric.Winner, "Should record the winner")
	require.Equal(t, int(game.P1), gameMetric.StartingPlayer, "Should record who started")
	require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime), "Should order start and end times")
	if gameMetric.TotalMoves < 9 {
		require.NotEqual(t, game.Nobody, winner, "Should only stop early with a winner")
	}

	for i, m := range moveMetrics {
		require.Equal(t, i+1, m.Step, "Should number moves from 1")
		require.Equal(t, 1+i%2, m.Player, "Should alternate players starting with player 1")
		require.Equal(t, 20, m.Iterations, "Should report the searches behind each move")
	}
}

func TestRunRandomAgents(t *testing.T) {
	rules := tictactoe.Rules{}
	alice := NewRandom[tictactoe.State, tictactoe.Cell]("alice", rules, 7)
	bob := NewRandom[tictactoe.State, tictactoe.Cell]("bob", rules, 8)

	_, gameMetric, moveMetrics, err := NewLocal[tictactoe.State, tictactoe.Cell](
		rules, alice, bob, tictactoe.NewState()).Run()
	require.NoError(t, err, "Should play the game to the end")
	require.GreaterOrEqual(t, gameMetric.TotalMoves, 5, "Should take at least 5 moves to finish")

	for _, m := range moveMetrics {
		require.Zero(t, m.Iterations, "Should leave search counters empty for non-search agents")
		require.GreaterOrEqual(t, m.Duration, time.Duration(0), "Should still time the move")
	}
}

func TestRunAgentError(t *testing.T) {
	rules := tictactoe.Rules{}
	bob := NewRandom[tictactoe.State, tictactoe.Cell]("bob", rules, 8)

	winner, _, _, err := NewLocal[tictactoe.State, tictactoe.Cell](
		rules, failingAgent{}, bob, tictactoe.NewState()).Run()
	require.ErrorContains(t, err, "broken failed to move", "Should name the failing agent")
	require.ErrorContains(t, err, "out of ideas", "Should keep the cause")
	require.Equal(t, game.Nobody, winner, "Should not pick a winner on failure")
}

func TestRandomAgent(t *testing.T) {
	rules := tictactoe.Rules{}

	t.Run("picking a legal action", func(t *testing.T) {
		agent := NewRandom[tictactoe.State, tictactoe.Cell]("rando", rules, 42)
		state := rules.NextState(tictactoe.NewState(), tictactoe.Cell(4))

		action, err := agent.ChooseAction(state)
		require.NoError(t, err, "Should find a move on an open board")
		require.Contains(t, rules.LegalActions(state), action, "Should pick a legal action")
	})

	t.Run("no legal actions", func(t *testing.T) {
		agent := NewRandom[tictactoe.State, tictactoe.Cell]("rando", rules, 42)
		state := tictactoe.NewState()
		for _, c := range []tictactoe.Cell{0, 3, 1, 4, 2} {
			state = rules.NextState(state, c)
		}

		_, err := agent.ChooseAction(state)
		require.ErrorContains(t, err, "no legal moves to play", "Should fail on a finished game")
	})
}

func TestHumanAgent(t *testing.T) {
	rules := tictactoe.Rules{}

	t.Run("retrying until the input parses", func(t *testing.T) {
		var out bytes.Buffer
		agent := NewHuman[tictactoe.State, tictactoe.Cell]("carol", rules,
			strings.NewReader("zz\nb2\n"), &out, tictactoe.Render, tictactoe.Parse)

		action, err := agent.ChooseAction(tictactoe.NewState())
		require.NoError(t, err, "Should accept the second line")
		require.Equal(t, tictactoe.Cell(4), action, "Should parse b2 as the center cell")
		require.Contains(t, out.String(), "carol> ", "Should prompt by name")
		require.Contains(t, out.String(), "invalid cell", "Should explain the rejected line")
	})

	t.Run("rejecting illegal moves", func(t *testing.T) {
		state := rules.NextState(tictactoe.NewState(), tictactoe.Cell(0))

		var out bytes.Buffer
		agent := NewHuman[tictactoe.State, tictactoe.Cell]("carol", rules,
			strings.NewReader("a1\nb2\n"), &out, tictactoe.Render, tictactoe.Parse)

		action, err := agent.ChooseAction(state)
		require.NoError(t, err, "Should accept the second line")
		require.Equal(t, tictactoe.Cell(4), action, "Should settle for an open cell")
		require.Contains(t, out.String(), "illegal move a1", "Should explain the rejected move")
	})

	t.Run("running out of input", func(t *testing.T) {
		var out bytes.Buffer
		agent := NewHuman[tictactoe.State, tictactoe.Cell]("carol", rules,
			strings.NewReader("zz"), &out, tictactoe.Render, tictactoe.Parse)

		_, err := agent.ChooseAction(tictactoe.NewState())
		require.ErrorContains(t, err, "no more input", "Should give up at the end of input")
	})
}
