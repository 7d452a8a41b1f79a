package searcher

// noParent marks the root's parent index.
const noParent int32 = -1

// node is one tree position. Wins are counted from the root player's
// perspective on every node; UCB flips them at read time where needed.
type node[A comparable] struct {
	action   A       // Action that led here from the parent; zero value at the root
	parent   int32
	children []int32 // In expansion order
	untried  []A
	visits   int
	wins     int
}

// tree is a slice-backed arena owned by a single search. Nodes refer to each
// other by index, so the arena can grow without touching existing links.
type tree[A comparable] struct {
	nodes []node[A]
}

func newTree[A comparable](legal []A) *tree[A] {
	untried := make([]A, len(legal))
	copy(untried, legal)
	return &tree[A]{nodes: []node[A]{{parent: noParent, untried: untried}}}
}

// popUntried removes and returns one untried action. Actions come off the
// back of the list; each is expanded exactly once, in no promised order.
func (t *tree[A]) popUntried(id int32) A {
	n := &t.nodes[id]
	last := len(n.untried) - 1
	action := n.untried[last]
	n.untried = n.untried[:last]
	return action
}

// expand appends a child reached by action and returns its index. legal holds
// the legal actions of the child's state.
func (t *tree[A]) expand(parent int32, action A, legal []A) int32 {
	untried := make([]A, len(legal))
	copy(untried, legal)

	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, node[A]{
		action:  action,
		parent:  parent,
		untried: untried,
	})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// backpropagate adds a visit along the path to the root, counting a win for
// the root player on every node when won is set.
func backpropagate[A comparable](t *tree[A], id int32, won bool) {
	for id != noParent {
		t.nodes[id].visits++
		if won {
			t.nodes[id].wins++
		}
		id = t.nodes[id].parent
	}
}
