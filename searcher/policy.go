package searcher

import (
	"math"

	"gambit/utils"
)

// ucb scores a node given its parent's precomputed c^2*ln(N) normalizer.
// Unvisited nodes rank above every visited one. opponent reads the
// root-relative win rate from the other side: nodes reached by the
// opponent's move count the root player's wins against them.
func ucb(wins, visits int, c2LnN float64, opponent bool) float64 {
	if visits == 0 { // Prioritize unexplored nodes
		return math.Inf(1)
	}

	rate := float64(wins) / float64(visits)
	if opponent {
		rate = 1 - rate
	}
	return rate + math.Sqrt(c2LnN/float64(visits))
}

// pickChild returns the UCB-maximizing child of a fully expanded node.
// opponent applies when the player who moves at this node is not the root
// player, so its children are scored from the other side.
func (t *tree[A]) pickChild(id int32, exploration float64, opponent bool) int32 {
	n := t.nodes[id]
	if n.visits == 0 {
		panic("searcher: node has children but no visits")
	}

	normalizer := exploration * exploration * math.Log(float64(n.visits))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := ucb(t.nodes[child].wins, t.nodes[child].visits, normalizer, opponent)
		if score == math.Inf(1) {
			return child
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return n.children[maxIndex]
}

// bestAction returns the action of the most visited root child. Ties go to
// the earliest expanded child.
func (t *tree[A]) bestAction() A {
	root := t.nodes[0]
	if len(root.children) == 0 {
		panic("searcher: node has no children")
	}

	visits := make([]int, len(root.children))
	for i, child := range root.children {
		visits[i] = t.nodes[child].visits
	}
	return t.nodes[root.children[utils.ArgMax(visits)]].action
}
