package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCB(t *testing.T) {
	t.Run("unvisited nodes rank first", func(t *testing.T) {
		got := ucb(0, 0, 4*math.Log(100), false)

		require.True(t, math.IsInf(got, 1), "Unvisited nodes should score +Inf")
	})

	t.Run("computing the score", func(t *testing.T) {
		c2LnN := 4 * math.Log(20)
		got := ucb(5, 10, c2LnN, false)

		expected := 0.5 + math.Sqrt(c2LnN/10)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute win rate plus sqrt(c^2*ln(N)/n)")
	})

	t.Run("opponent nodes read the rate from the other side", func(t *testing.T) {
		c2LnN := 4 * math.Log(20)

		mine := ucb(3, 10, c2LnN, false)
		theirs := ucb(3, 10, c2LnN, true)

		require.InDelta(t, 0.3+math.Sqrt(c2LnN/10), mine, 0.0001,
			"Own moves should keep the stored rate")
		require.InDelta(t, 0.7+math.Sqrt(c2LnN/10), theirs, 0.0001,
			"Opponent moves should flip the stored rate")
	})

	t.Run("unvisited beats any finite score", func(t *testing.T) {
		finite := ucb(1000, 1000, 4*math.Log(1000000), false)

		require.Greater(t, ucb(0, 0, 0, false), finite,
			"Unvisited nodes should outrank every visited one")
	})

	t.Run("exploration term decreases with visits", func(t *testing.T) {
		c2LnN := 4 * math.Log(100)

		score1 := ucb(0, 10, c2LnN, false)
		score2 := ucb(0, 20, c2LnN, false)

		require.Greater(t, score1, score2,
			"More visits should decrease the exploration term")
	})
}

// treeOf builds an arena with one root and a child per entry, in order.
func treeOf(rootVisits int, children ...node[int]) *tree[int] {
	tr := &tree[int]{nodes: []node[int]{{parent: noParent, visits: rootVisits}}}
	for i := range children {
		children[i].parent = 0
		id := int32(len(tr.nodes))
		tr.nodes = append(tr.nodes, children[i])
		tr.nodes[0].children = append(tr.nodes[0].children, id)
	}
	return tr
}

func TestPickChild(t *testing.T) {
	t.Run("picking the max UCB child", func(t *testing.T) {
		tr := treeOf(3,
			node[int]{action: 1, wins: 0, visits: 1},
			node[int]{action: 2, wins: 1, visits: 1},
			node[int]{action: 3, wins: 0, visits: 1},
		)

		got := tr.pickChild(0, 2, false)

		require.Equal(t, 2, tr.nodes[got].action, "Should pick the child with the best score")
	})

	t.Run("the opponent flip reverses the preference", func(t *testing.T) {
		tr := treeOf(3,
			node[int]{action: 1, wins: 0, visits: 1},
			node[int]{action: 2, wins: 1, visits: 1},
			node[int]{action: 3, wins: 0, visits: 1},
		)

		got := tr.pickChild(0, 2, true)

		require.Equal(t, 1, tr.nodes[got].action,
			"The opponent should prefer the child that loses for the root player")
	})

	t.Run("unvisited children win immediately", func(t *testing.T) {
		tr := treeOf(10,
			node[int]{action: 1, wins: 9, visits: 9},
			node[int]{action: 2, visits: 0},
		)

		got := tr.pickChild(0, 2, false)

		require.Equal(t, 2, tr.nodes[got].action, "Unvisited children should be picked first")
	})

	t.Run("panics on an unvisited parent", func(t *testing.T) {
		tr := treeOf(0, node[int]{action: 1, visits: 1})

		require.Panics(t, func() {
			tr.pickChild(0, 2, false)
		}, "Should panic when the parent has children but no visits")
	})
}

func TestBestAction(t *testing.T) {
	t.Run("the most visited action wins", func(t *testing.T) {
		tr := treeOf(11,
			node[int]{action: 1, visits: 3},
			node[int]{action: 2, visits: 7},
			node[int]{action: 3, visits: 1},
		)

		got := tr.bestAction()

		require.Equal(t, 2, got, "Should pick the action with the most visits")
	})

	t.Run("ties go to the earliest expanded child", func(t *testing.T) {
		tr := treeOf(15,
			node[int]{action: 1, visits: 7},
			node[int]{action: 2, visits: 7},
		)

		got := tr.bestAction()

		require.Equal(t, 1, got, "Should keep the first maximum")
	})

	t.Run("win rates do not matter", func(t *testing.T) {
		tr := treeOf(10,
			node[int]{action: 1, wins: 0, visits: 6},
			node[int]{action: 2, wins: 4, visits: 4},
		)

		got := tr.bestAction()

		require.Equal(t, 1, got, "Visits should decide, not wins")
	})

	t.Run("panics without children", func(t *testing.T) {
		tr := newTree([]int{1})

		require.Panics(t, func() {
			tr.bestAction()
		}, "Should panic when the root has no children")
	})
}
