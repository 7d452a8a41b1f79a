package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type scriptedRules struct {
	points map[Player]float64
}

func (r scriptedRules) IsEnded(state int) bool { return true }

func (r scriptedRules) CurrentPlayer(state int) Player { return Nobody }

func (r scriptedRules) LegalActions(state int) []int { return nil }

func (r scriptedRules) NextState(state int, action int) int { return state }

func (r scriptedRules) Points(state int) map[Player]float64 { return r.points }

func TestOpponent(t *testing.T) {
	require.Equal(t, P2, P1.Opponent(), "Should swap player1 for player2")
	require.Equal(t, P1, P2.Opponent(), "Should swap player2 for player1")
	require.Equal(t, Nobody, Nobody.Opponent(), "Nobody has no opponent")
}

func TestWinner(t *testing.T) {
	t.Run("finding the winning player", func(t *testing.T) {
		rules := scriptedRules{points: map[Player]float64{P1: Loss, P2: Win}}

		got := Winner[int, int](rules, 0)

		require.Equal(t, P2, got, "Should pick the player whose points equal Win")
	})

	t.Run("draws have no winner", func(t *testing.T) {
		rules := scriptedRules{points: map[Player]float64{P1: Draw, P2: Draw}}

		got := Winner[int, int](rules, 0)

		require.Equal(t, Nobody, got, "Should return Nobody when neither player won")
	})
}
