package tictactoe

import (
	"strings"

	"github.com/muesli/termenv"

	"gambit/game"
)

var profile = termenv.EnvColorProfile()

func mark(p game.Player) string {
	switch p {
	case game.P1:
		return termenv.String("X").Foreground(profile.Color("1")).Bold().String()
	case game.P2:
		return termenv.String("O").Foreground(profile.Color("4")).Bold().String()
	}
	return "."
}

// Render draws the board with colored marks for terminal play.
func Render(s State) string {
	var b strings.Builder
	b.WriteString("  a b c\n")
	for row := 0; row < 3; row++ {
		b.WriteByte(byte('1' + row))
		for col := 0; col < 3; col++ {
			b.WriteByte(' ')
			b.WriteString(mark(s.cells[row*3+col]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
