package engine

import (
	"bufio"
	"fmt"
	"io"

	"gambit/game"
	"gambit/utils"
)

// Human reads actions from in, typically stdin. render draws the state
// before each prompt and parse turns one input line into an action.
type Human[S any, A comparable] struct {
	name   string
	rules  game.Rules[S, A]
	in     *bufio.Reader
	out    io.Writer
	render func(S) string
	parse  func(string) (A, error)
}

func NewHuman[S any, A comparable](name string, rules game.Rules[S, A], in io.Reader, out io.Writer,
	render func(S) string, parse func(string) (A, error)) *Human[S, A] {
	return &Human[S, A]{
		name:   name,
		rules:  rules,
		in:     bufio.NewReader(in),
		out:    out,
		render: render,
		parse:  parse,
	}
}

func (a *Human[S, A]) Name() string {
	return a.name
}

func (a *Human[S, A]) ChooseAction(state S) (A, error) {
	fmt.Fprint(a.out, a.render(state))
	legal := a.rules.LegalActions(state)

	for {
		fmt.Fprintf(a.out, "%s> ", a.name)
		line, readErr := a.in.ReadString('\n')

		action, err := a.parse(line)
		if err == nil && utils.FindIndex(legal, action) < 0 {
			err = fmt.Errorf("illegal move %v", action)
		}
		if err == nil {
			return action, nil
		}
		fmt.Fprintln(a.out, err)

		if readErr != nil {
			var zero A
			return zero, fmt.Errorf("no more input: %w", readErr)
		}
	}
}
