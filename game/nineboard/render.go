package nineboard

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

// Render draws the nine boards with colored marks and the forced board.
func Render(s State) string {
	var b strings.Builder
	b.WriteString("    a b c   a b c   a b c\n")
	for boardRow := 0; boardRow < 3; boardRow++ {
		for cellRow := 0; cellRow < 3; cellRow++ {
			b.WriteByte(byte('1' + cellRow))
			b.WriteByte(' ')
			for boardCol := 0; boardCol < 3; boardCol++ {
				board := boardRow*3 + boardCol
				for cellCol := 0; cellCol < 3; cellCol++ {
					b.WriteByte(' ')
					b.WriteString(mark(s.cells[board*9+cellRow*3+cellCol]))
				}
				if boardCol < 2 {
					b.WriteString(" |")
				}
			}
			b.WriteByte('\n')
		}
		if boardRow < 2 {
			b.WriteString("  --------+---------+--------\n")
		}
	}
	if s.next == FreeChoice {
		b.WriteString("next: any open board\n")
	} else {
		b.WriteString("next: " + name3x3(s.next) + "\n")
	}
	return b.String()
}
