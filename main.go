package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gambit/engine"
	"gambit/experiments"
	"gambit/game"
	"gambit/game/nineboard"
	"gambit/game/tictactoe"
	"gambit/searcher"
	"gambit/server"
)

func main() {
	mode := flag.String("mode", "play", "play, serve, or experiment")
	gameName := flag.String("game", "tictactoe", "tictactoe or nineboard")
	iterations := flag.Int("iterations", searcher.DefaultIterations, "search iterations per move")
	explore := flag.Float64("explore", searcher.DefaultExploration, "exploration constant")
	seed := flag.Uint64("seed", 0, "search seed, 0 picks one")
	addr := flag.String("addr", server.DefaultConfig().Addr, "listen address for serve mode")
	experimentName := flag.String("experiment", "budget", "budget or exploration")
	games := flag.Int("games", experiments.DefaultGames, "games per experiment matchup")
	out := flag.String("out", "results", "experiment output directory")
	verbose := flag.Bool("verbose", false, "log at debug level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *iterations <= 0 || *explore < 0 {
		fmt.Fprintln(os.Stderr, "iterations must be positive and explore non-negative")
		os.Exit(2)
	}

	switch *mode {
	case "play":
		if err := play(*gameName, *iterations, *explore, *seed); err != nil {
			log.Fatal().Msgf("game failed: %v", err)
		}
	case "serve":
		cfg := server.DefaultConfig()
		cfg.Addr = *addr
		if err := server.New().Run(cfg); err != nil {
			log.Fatal().Msgf("server failed: %v", err)
		}
	case "experiment":
		var err error
		switch *experimentName {
		case "budget":
			err = experiments.RunBudgetExperiment(*out, *games)
		case "exploration":
			err = experiments.RunExplorationExperiment(*out, *games)
		default:
			err = fmt.Errorf("unknown experiment %q", *experimentName)
		}
		if err != nil {
			log.Fatal().Msgf("experiment failed: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		flag.Usage()
		os.Exit(2)
	}
}

// play runs a terminal game with the human on the first seat.
func play(gameName string, iterations int, explore float64, seed uint64) error {
	options := []searcher.Option{
		searcher.WithIterations(iterations),
		searcher.WithExploration(explore),
	}
	if seed > 0 {
		options = append(options, searcher.WithSeed(seed))
	}

	switch gameName {
	case "tictactoe":
		rules := tictactoe.Rules{}
		human := engine.NewHuman[tictactoe.State, tictactoe.Cell]("you", rules,
			os.Stdin, os.Stdout, tictactoe.Render, tictactoe.Parse)
		bot := engine.NewSearch[tictactoe.State, tictactoe.Cell]("bot", rules, options...)
		return playGame[tictactoe.State, tictactoe.Cell](rules, human, bot, tictactoe.NewState(), tictactoe.Render)
	case "nineboard":
		rules := nineboard.Rules{}
		human := engine.NewHuman[nineboard.State, nineboard.Move]("you", rules,
			os.Stdin, os.Stdout, nineboard.Render, nineboard.Parse)
		bot := engine.NewSearch[nineboard.State, nineboard.Move]("bot", rules, options...)
		return playGame[nineboard.State, nineboard.Move](rules, human, bot, nineboard.NewState(), nineboard.Render)
	}
	return fmt.Errorf("unknown game %q", gameName)
}

func playGame[S any, A comparable](rules game.Rules[S, A], human, bot engine.Agent[S, A],
	start S, render func(S) string) error {
	local := engine.NewLocal[S, A](rules, human, bot, start)
	winner, _, _, err := local.Run()
	if err != nil {
		return err
	}

	fmt.Println(render(local.Final()))
	if winner == game.Nobody {
		fmt.Println("Draw!")
		return nil
	}
	names := map[game.Player]string{game.P1: human.Name(), game.P2: bot.Name()}
	fmt.Printf("%s wins!\n", names[winner])
	return nil
}
