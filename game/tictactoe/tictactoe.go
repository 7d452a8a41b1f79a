package tictactoe

import (
	"fmt"
	"strings"

	"gambit/game"
)

// Cell indexes the board left to right, top to bottom: a1 is the top left
// corner, c3 the bottom right. Columns are letters, rows digits.
type Cell int

func (c Cell) String() string {
	return fmt.Sprintf("%c%d", 'a'+int(c)%3, int(c)/3+1)
}

// Parse reads algebraic cell notation such as "b2".
func Parse(input string) (Cell, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'c' || s[1] < '1' || s[1] > '3' {
		return 0, fmt.Errorf("invalid cell %q: want a1 through c3", input)
	}
	return Cell(int(s[1]-'1')*3 + int(s[0]-'a')), nil
}

// State is a value: playing a move copies the board, so older states stay
// untouched.
type State struct {
	cells [9]game.Player
	turn  game.Player
}

func NewState() State {
	return State{turn: game.P1}
}

// At returns the mark on a cell.
func (s State) At(c Cell) game.Player {
	return s.cells[c]
}

func (s State) Turn() game.Player {
	return s.turn
}

var lines = [8][3]Cell{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // Rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // Columns
	{0, 4, 8}, {2, 4, 6}, // Diagonals
}

func winnerOf(s State) game.Player {
	for _, line := range lines {
		mark := s.cells[line[0]]
		if mark != game.Nobody && mark == s.cells[line[1]] && mark == s.cells[line[2]] {
			return mark
		}
	}
	return game.Nobody
}

func isFull(s State) bool {
	for _, mark := range s.cells {
		if mark == game.Nobody {
			return false
		}
	}
	return true
}

// Rules implements game.Rules for 3x3 tic-tac-toe.
type Rules struct{}

func (Rules) IsEnded(s State) bool {
	return winnerOf(s) != game.Nobody || isFull(s)
}

func (Rules) CurrentPlayer(s State) game.Player {
	return s.turn
}

func (r Rules) LegalActions(s State) []Cell {
	if r.IsEnded(s) {
		return nil
	}
	actions := make([]Cell, 0, 9)
	for i, mark := range s.cells {
		if mark == game.Nobody {
			actions = append(actions, Cell(i))
		}
	}
	return actions
}

func (Rules) NextState(s State, c Cell) State {
	s.cells[c] = s.turn
	s.turn = s.turn.Opponent()
	return s
}

func (Rules) Points(s State) map[game.Player]float64 {
	winner := winnerOf(s)
	if winner == game.Nobody && !isFull(s) {
		return nil
	}
	if winner == game.Nobody {
		return map[game.Player]float64{game.P1: game.Draw, game.P2: game.Draw}
	}
	return map[game.Player]float64{
		winner:            game.Win,
		winner.Opponent(): game.Loss,
	}
}
