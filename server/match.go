package server

import (
	"fmt"
	"sort"

	"gambit/game"
	"gambit/game/nineboard"
	"gambit/game/tictactoe"
	"gambit/searcher"
	"gambit/utils"
)

// match adapts one running game to the string-based API surface.
type match interface {
	Snapshot() boardPayload
	Play(move string) (string, error)
	BotMove() (string, error)
	Analyse() ([]moveStat, error)
	Ended() bool
	CurrentPlayer() game.Player
}

// variants lists the playable games by API name.
var variants = map[string]func(options ...searcher.Option) match{
	"tictactoe": newTicTacToeMatch,
	"nineboard": newNineBoardMatch,
}

type gameMatch[S any, A comparable] struct {
	rules  game.Rules[S, A]
	bot    *searcher.Bot[S, A]
	state  S
	encode func(S) boardPayload
	parse  func(string) (A, error)
}

func (m *gameMatch[S, A]) Snapshot() boardPayload {
	payload := m.encode(m.state)
	if m.rules.IsEnded(m.state) {
		payload.Status = "finished"
		if winner := game.Winner(m.rules, m.state); winner != game.Nobody {
			payload.Winner = winner.String()
		}
	} else {
		payload.Status = "playing"
		payload.Turn = m.rules.CurrentPlayer(m.state).String()
	}
	return payload
}

// Play applies one move and returns it in canonical notation.
func (m *gameMatch[S, A]) Play(move string) (string, error) {
	action, err := m.parse(move)
	if err != nil {
		return "", err
	}
	if utils.FindIndex(m.rules.LegalActions(m.state), action) < 0 {
		return "", fmt.Errorf("illegal move %v", action)
	}
	m.state = m.rules.NextState(m.state, action)
	return fmt.Sprintf("%v", action), nil
}

func (m *gameMatch[S, A]) BotMove() (string, error) {
	action, err := m.bot.Think(m.state)
	if err != nil {
		return "", err
	}
	m.state = m.rules.NextState(m.state, action)
	return fmt.Sprintf("%v", action), nil
}

// Analyse searches the current position and returns the root visit counts,
// strongest move first.
func (m *gameMatch[S, A]) Analyse() ([]moveStat, error) {
	policy, err := m.bot.Policy(m.state)
	if err != nil {
		return nil, err
	}

	stats := make([]moveStat, 0, len(policy))
	for action, visits := range policy {
		stats = append(stats, moveStat{Move: fmt.Sprintf("%v", action), Visits: visits})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Visits != stats[j].Visits {
			return stats[i].Visits > stats[j].Visits
		}
		return stats[i].Move < stats[j].Move
	})
	return stats, nil
}

func (m *gameMatch[S, A]) Ended() bool {
	return m.rules.IsEnded(m.state)
}

func (m *gameMatch[S, A]) CurrentPlayer() game.Player {
	return m.rules.CurrentPlayer(m.state)
}

func newTicTacToeMatch(options ...searcher.Option) match {
	rules := tictactoe.Rules{}
	return &gameMatch[tictactoe.State, tictactoe.Cell]{
		rules:  rules,
		bot:    searcher.New[tictactoe.State, tictactoe.Cell](rules, options...),
		state:  tictactoe.NewState(),
		encode: encodeTicTacToe,
		parse:  tictactoe.Parse,
	}
}

func newNineBoardMatch(options ...searcher.Option) match {
	rules := nineboard.Rules{}
	return &gameMatch[nineboard.State, nineboard.Move]{
		rules:  rules,
		bot:    searcher.New[nineboard.State, nineboard.Move](rules, options...),
		state:  nineboard.NewState(),
		encode: encodeNineBoard,
		parse:  nineboard.Parse,
	}
}

func markOf(p game.Player) string {
	switch p {
	case game.P1:
		return "X"
	case game.P2:
		return "O"
	}
	return ""
}

func encodeTicTacToe(s tictactoe.State) boardPayload {
	cells := make([]string, 9)
	for i := range cells {
		cells[i] = markOf(s.At(tictactoe.Cell(i)))
	}
	return boardPayload{Cells: cells}
}

func encodeNineBoard(s nineboard.State) boardPayload {
	cells := make([]string, 81)
	for board := 0; board < 9; board++ {
		for cell := 0; cell < 9; cell++ {
			cells[board*9+cell] = markOf(s.At(board, cell))
		}
	}
	owners := make([]string, 9)
	for board := range owners {
		owners[board] = markOf(s.Owner(board))
	}

	payload := boardPayload{Cells: cells, Owners: owners}
	if forced := s.Forced(); forced != nineboard.FreeChoice {
		payload.Forced = nineboard.BoardName(int(forced))
	}
	return payload
}
