package searcher

// Hyperparameters for MCTS

// DefaultIterations is the search budget per Think call.
const DefaultIterations = 50

// DefaultExploration multiplies sqrt(ln(parent visits)/child visits) in UCB.
const DefaultExploration = 2.0
