package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"gambit/engine"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/game/nineboard"
	"gambit/searcher"
)

// DefaultGames is the number of games played per matchup.
const DefaultGames = 30

var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, Iterations: 50, Exploration: searcher.DefaultExploration}, // Baseline equivalent
	{ID: 2, Iterations: 200, Exploration: searcher.DefaultExploration},
	{ID: 3, Iterations: 800, Exploration: searcher.DefaultExploration},
}

var explorationConfigs = []metrics.AgentConfig{
	{ID: 1, Iterations: 200, Exploration: 0.5},
	{ID: 2, Iterations: 200, Exploration: 1},
	{ID: 3, Iterations: 200, Exploration: searcher.DefaultExploration}, // Baseline equivalent
	{ID: 4, Iterations: 200, Exploration: 4},
}

// RunBudgetExperiment measures how playing strength scales with the
// iteration budget. Each budget plays the baseline budget on nine-board.
func RunBudgetExperiment(dir string, games int) error {
	baseline := metrics.AgentConfig{
		ID:          0,
		Iterations:  searcher.DefaultIterations,
		Exploration: searcher.DefaultExploration,
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment("budget_to_strength", dir, games, append(budgetConfigs, baseline), matchUps)
}

// RunExplorationExperiment measures how the exploration constant affects
// playing strength at a fixed iteration budget.
func RunExplorationExperiment(dir string, games int) error {
	baseline := metrics.AgentConfig{
		ID:          0,
		Iterations:  200,
		Exploration: searcher.DefaultExploration,
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range explorationConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment("exploration_to_strength", dir, games, append(explorationConfigs, baseline), matchUps)
}

func runExperiment(name, dir string, games int, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) error {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...",
			mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			// Alternate who starts to cancel any first-move advantage.
			first, second := matchup[0], matchup[1]
			if i%2 == 1 {
				first, second = second, first
			}

			winner, gameMetric, moveMetrics, err := runGame(first, second)
			if err != nil {
				return fmt.Errorf("failed to run matchup %d game %d: %w", mi+1, i+1, err)
			}

			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s",
				mi+1, len(matchUps), i+1, games, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msg("stored move records")

	log.Info().Msgf("results are in %s", writer.BaseDir())
	return nil
}

// runGame plays a single nine-board game between two search configurations.
func runGame(first, second metrics.AgentConfig) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	rules := nineboard.Rules{}
	agent1 := engine.NewSearch[nineboard.State, nineboard.Move](agentName(first), rules, searchOptions(first)...)
	agent2 := engine.NewSearch[nineboard.State, nineboard.Move](agentName(second), rules, searchOptions(second)...)

	return engine.NewLocal[nineboard.State, nineboard.Move](rules, agent1, agent2, nineboard.NewState()).Run()
}

func agentName(config metrics.AgentConfig) string {
	return fmt.Sprintf("agent%d", config.ID)
}

func searchOptions(config metrics.AgentConfig) []searcher.Option {
	options := []searcher.Option{}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Seed > 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}

	return options
}
