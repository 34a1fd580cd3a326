package searcher

import (
	"pente/game"

	"github.com/chewxy/math32"
)

// node is one position in the search tree. A node owns its children;
// the parent pointer is a non-owning back-reference used only for
// backpropagation and the parent-visit term of PUCT, so the tree stays
// acyclic and a finished search drops the whole subtree at once.
//
// visits and total are the only fields mutated after creation (plus
// children, which grows as widening admits more candidates). total
// accumulates from the perspective of the player whose move led to the
// node, so a parent picks the child maximizing Q directly.
type node struct {
	move   game.Position
	parent *node

	children []*node
	visits   int
	total    float32
	prior    float32

	expanded  bool
	nextWiden int // visit count at which to recheck the widening bucket

	terminal      bool
	terminalValue float32 // from the perspective of the player to move at the node
}

// q is the node's mean backpropagated value.
func (n *node) q() float32 {
	if n.visits == 0 {
		return 0
	}
	return n.total / float32(n.visits)
}

// puctScore ranks a child for selection: exploitation plus the
// prior-weighted exploration bonus. An unvisited child scores +Inf so
// every materialized child is visited at least once before the mean
// values start to discriminate; this tie-break is load-bearing, not an
// optimization.
func (n *node) puctScore(exploration float32, parentVisits int) float32 {
	if n.visits == 0 {
		return math32.Inf(1)
	}
	u := exploration * n.prior * math32.Sqrt(float32(parentVisits)) / float32(1+n.visits)
	return n.q() + u
}

// selectChild returns the child maximizing the PUCT score. Ties keep
// the earliest child, which makes selection deterministic for a
// deterministic evaluator.
func (n *node) selectChild(exploration float32) *node {
	var best *node
	bestScore := math32.Inf(-1)
	for _, child := range n.children {
		score := child.puctScore(exploration, n.visits)
		if score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// bestChild returns the most-visited child: visit counts are less noisy
// than mean values for low-sample children. Ties keep the earliest.
func (n *node) bestChild() *node {
	var best *node
	for _, child := range n.children {
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	return best
}

// hasChild reports whether a child for the given move already exists.
func (n *node) hasChild(move game.Position) bool {
	for _, child := range n.children {
		if child.move == move {
			return true
		}
	}
	return false
}

// visitPolicy returns the children's visit counts normalized into a
// distribution over their moves, the training-target shape.
func (n *node) visitPolicy() map[game.Position]float32 {
	total := 0
	for _, child := range n.children {
		total += child.visits
	}
	if total == 0 {
		return nil
	}
	policy := make(map[game.Position]float32, len(n.children))
	for _, child := range n.children {
		if child.visits > 0 {
			policy[child.move] = float32(child.visits) / float32(total)
		}
	}
	return policy
}
