// Package nineboard implements nine-board (ultimate) tic-tac-toe: nine 3x3
// boards arranged in a 3x3 grid. A move on cell c of any board sends the
// opponent to board c, unless that board is already resolved, in which case
// any cell of any unresolved board is playable. Winning a board claims its
// spot on the macro grid; three claimed spots in a row win the game.
package nineboard

import (
	"fmt"
	"strings"

	"gambit/game"
)

// Move names a board on the macro grid and a cell inside it. Both use the
// 3x3 index 0..8, left to right, top to bottom.
type Move struct {
	Board int8
	Cell  int8
}

func name3x3(i int8) string {
	return fmt.Sprintf("%c%d", 'a'+int(i)%3, int(i)/3+1)
}

// BoardName names a board the way cells are named, a1 through c3.
func BoardName(board int) string {
	return name3x3(int8(board))
}

func parse3x3(s string) (int8, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'c' || s[1] < '1' || s[1] > '3' {
		return 0, fmt.Errorf("invalid square %q: want a1 through c3", s)
	}
	return int8(s[1]-'1')*3 + int8(s[0]-'a'), nil
}

func (m Move) String() string {
	return name3x3(m.Board) + "/" + name3x3(m.Cell)
}

// Parse reads board/cell notation such as "b2/a1".
func Parse(input string) (Move, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Move{}, fmt.Errorf("invalid move %q: want board/cell, e.g. b2/a1", input)
	}
	board, err := parse3x3(parts[0])
	if err != nil {
		return Move{}, err
	}
	cell, err := parse3x3(parts[1])
	if err != nil {
		return Move{}, err
	}
	return Move{Board: board, Cell: cell}, nil
}

// FreeChoice marks a state where the mover may pick any unresolved board.
const FreeChoice = int8(-1)

// State is a value: playing a move copies the arrays, so older states stay
// untouched.
type State struct {
	cells  [81]game.Player // board*9 + cell
	owners [9]game.Player  // claimed macro spots
	next   int8            // forced board, or FreeChoice
	turn   game.Player
}

func NewState() State {
	return State{next: FreeChoice, turn: game.P1}
}

// At returns the mark on a cell of a board.
func (s State) At(board, cell int) game.Player {
	return s.cells[board*9+cell]
}

// Owner returns who claimed a board, or Nobody.
func (s State) Owner(board int) game.Player {
	return s.owners[board]
}

// Forced returns the board the mover must play on, or FreeChoice.
func (s State) Forced() int8 {
	return s.next
}

func (s State) Turn() game.Player {
	return s.turn
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func boardWinner(s State, board int) game.Player {
	base := board * 9
	for _, line := range lines {
		mark := s.cells[base+line[0]]
		if mark != game.Nobody && mark == s.cells[base+line[1]] && mark == s.cells[base+line[2]] {
			return mark
		}
	}
	return game.Nobody
}

func boardFull(s State, board int) bool {
	base := board * 9
	for i := base; i < base+9; i++ {
		if s.cells[i] == game.Nobody {
			return false
		}
	}
	return true
}

// resolved boards are claimed or drawn; only drawn boards stay unowned.
func resolved(s State, board int) bool {
	return s.owners[board] != game.Nobody || boardFull(s, board)
}

func macroWinner(s State) game.Player {
	for _, line := range lines {
		owner := s.owners[line[0]]
		if owner != game.Nobody && owner == s.owners[line[1]] && owner == s.owners[line[2]] {
			return owner
		}
	}
	return game.Nobody
}

func allResolved(s State) bool {
	for board := 0; board < 9; board++ {
		if !resolved(s, board) {
			return false
		}
	}
	return true
}

// Rules implements game.Rules for nine-board tic-tac-toe.
type Rules struct{}

func (Rules) IsEnded(s State) bool {
	return macroWinner(s) != game.Nobody || allResolved(s)
}

func (Rules) CurrentPlayer(s State) game.Player {
	return s.turn
}

func (r Rules) LegalActions(s State) []Move {
	if r.IsEnded(s) {
		return nil
	}

	appendBoard := func(actions []Move, board int) []Move {
		base := board * 9
		for cell := 0; cell < 9; cell++ {
			if s.cells[base+cell] == game.Nobody {
				actions = append(actions, Move{Board: int8(board), Cell: int8(cell)})
			}
		}
		return actions
	}

	if s.next != FreeChoice {
		return appendBoard(make([]Move, 0, 9), int(s.next))
	}
	actions := make([]Move, 0, 81)
	for board := 0; board < 9; board++ {
		if resolved(s, board) {
			continue
		}
		actions = appendBoard(actions, board)
	}
	return actions
}

func (Rules) NextState(s State, m Move) State {
	mover := s.turn
	s.cells[int(m.Board)*9+int(m.Cell)] = mover
	if s.owners[m.Board] == game.Nobody && boardWinner(s, int(m.Board)) == mover {
		s.owners[m.Board] = mover
	}

	// The opponent is sent to the board named by the cell just played,
	// unless that board is already decided.
	s.next = m.Cell
	if resolved(s, int(m.Cell)) {
		s.next = FreeChoice
	}
	s.turn = mover.Opponent()
	return s
}

func (r Rules) Points(s State) map[game.Player]float64 {
	if winner := macroWinner(s); winner != game.Nobody {
		return map[game.Player]float64{
			winner:            game.Win,
			winner.Opponent(): game.Loss,
		}
	}
	if allResolved(s) {
		return map[game.Player]float64{game.P1: game.Draw, game.P2: game.Draw}
	}
	return nil
}
