package game

// Points values at a finished game. A player whose entry equals Win has won;
// anything else is not a win for that player.
const (
	Win  = 1.0
	Loss = -1.0
	Draw = 0.0
)

// Player identifies one of the two sides of a game. Nobody doubles as the
// empty cell value on boards and as the winner of a drawn game.
type Player uint8

const (
	Nobody Player = iota
	P1
	P2
)

func (p Player) Opponent() Player {
	switch p {
	case P1:
		return P2
	case P2:
		return P1
	}
	return Nobody
}

func (p Player) String() string {
	switch p {
	case P1:
		return "player1"
	case P2:
		return "player2"
	}
	return "nobody"
}

// Rules is the oracle a game exposes to searchers and engines. States are
// immutable values - NextState always returns a new state and never modifies
// its argument.
type Rules[S any, A comparable] interface {
	// IsEnded reports whether the game is over in state.
	IsEnded(state S) bool
	// CurrentPlayer returns the player to move. Meaningful only while the
	// game is not ended.
	CurrentPlayer(state S) Player
	// LegalActions returns the available actions. It is never empty while
	// the game is not ended.
	LegalActions(state S) []A
	// NextState applies a legal action and returns the successor state.
	NextState(state S, action A) S
	// Points returns the final score per player, or nil while the game is
	// not ended. Both players have an entry once the game is over.
	Points(state S) map[Player]float64
}

// Winner maps a finished game's points to the winning player, or Nobody on a
// draw.
func Winner[S any, A comparable](rules Rules[S, A], state S) Player {
	points := rules.Points(state)
	for _, player := range []Player{P1, P2} {
		if points[player] == Win {
			return player
		}
	}
	return Nobody
}
