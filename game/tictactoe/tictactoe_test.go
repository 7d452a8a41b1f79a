package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gambit/game"
)

// boardOf builds a state from a 9-rune picture, row by row from the top left.
func boardOf(t *testing.T, picture string, turn game.Player) State {
	t.Helper()
	require.Len(t, picture, 9, "Board picture needs 9 cells")

	s := State{turn: turn}
	for i, r := range picture {
		switch r {
		case 'X':
			s.cells[i] = game.P1
		case 'O':
			s.cells[i] = game.P2
		}
	}
	return s
}

func TestParse(t *testing.T) {
	t.Run("parsing valid cells", func(t *testing.T) {
		for _, input := range []string{"a1", "b2", "c3", " B2 "} {
			got, err := Parse(input)
			require.NoError(t, err, "Should accept %q", input)
			require.GreaterOrEqual(t, int(got), 0, "Cell should be on the board")
			require.Less(t, int(got), 9, "Cell should be on the board")
		}

		got, err := Parse("b2")
		require.NoError(t, err)
		require.Equal(t, Cell(4), got, "b2 is the center cell")
		require.Equal(t, "b2", got.String(), "String should round-trip Parse")
	})

	t.Run("rejecting invalid cells", func(t *testing.T) {
		for _, input := range []string{"", "d1", "a4", "22", "a", "a12"} {
			_, err := Parse(input)
			require.Error(t, err, "Should reject %q", input)
		}
	})
}

func TestLegalActions(t *testing.T) {
	rules := Rules{}

	t.Run("empty board offers every cell", func(t *testing.T) {
		got := rules.LegalActions(NewState())

		require.Len(t, got, 9, "Should offer all 9 cells")
	})

	t.Run("taken cells are excluded", func(t *testing.T) {
		s := rules.NextState(NewState(), Cell(4))

		got := rules.LegalActions(s)

		require.Len(t, got, 8, "Should offer the remaining cells")
		require.NotContains(t, got, Cell(4), "Should not offer the taken cell")
	})

	t.Run("finished game offers nothing", func(t *testing.T) {
		s := boardOf(t, "XXXOO....", game.P2)

		got := rules.LegalActions(s)

		require.Empty(t, got, "Should offer no actions once the game is over")
	})
}

func TestNextState(t *testing.T) {
	rules := Rules{}

	t.Run("playing a move", func(t *testing.T) {
		s := NewState()

		got := rules.NextState(s, Cell(0))

		require.Equal(t, game.P1, got.At(Cell(0)), "Should place the mover's mark")
		require.Equal(t, game.P2, got.Turn(), "Should pass the turn")
	})

	t.Run("the previous state is untouched", func(t *testing.T) {
		s := NewState()

		rules.NextState(s, Cell(0))

		require.Equal(t, game.Nobody, s.At(Cell(0)), "Should not modify the input state")
		require.Equal(t, game.P1, s.Turn(), "Should not modify the input state")
	})
}

func TestEndings(t *testing.T) {
	rules := Rules{}

	t.Run("ongoing game has no points", func(t *testing.T) {
		s := boardOf(t, "X........", game.P2)

		require.False(t, rules.IsEnded(s), "Game should still be running")
		require.Nil(t, rules.Points(s), "Points should be nil before the end")
	})

	t.Run("line wins", func(t *testing.T) {
		wins := map[string]string{
			"top row":       "XXXOO....",
			"left column":   "XO.XO.X..",
			"main diagonal": "XO..XO..X",
			"anti diagonal": "OOX.X.X..",
		}
		for name, picture := range wins {
			t.Run(name, func(t *testing.T) {
				s := boardOf(t, picture, game.P2)

				require.True(t, rules.IsEnded(s), "Game should be over")
				points := rules.Points(s)
				require.Equal(t, game.Win, points[game.P1], "Winner should score Win")
				require.Equal(t, game.Loss, points[game.P2], "Loser should score Loss")
				require.Equal(t, game.P1, game.Winner[State, Cell](rules, s),
					"Winner helper should agree")
			})
		}
	})

	t.Run("win for the second player", func(t *testing.T) {
		s := boardOf(t, "OOOXX.X..", game.P1)

		points := rules.Points(s)

		require.Equal(t, game.Win, points[game.P2], "Winner should score Win")
		require.Equal(t, game.Loss, points[game.P1], "Loser should score Loss")
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		s := boardOf(t, "XOXXOOOXX", game.P2)

		require.True(t, rules.IsEnded(s), "Game should be over")
		points := rules.Points(s)
		require.Equal(t, game.Draw, points[game.P1], "Draw should score Draw")
		require.Equal(t, game.Draw, points[game.P2], "Draw should score Draw")
		require.Equal(t, game.Nobody, game.Winner[State, Cell](rules, s),
			"Draws should have no winner")
	})
}
