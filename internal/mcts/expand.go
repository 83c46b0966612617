package mcts

import (
	"math/rand"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Expander materializes up to K unexplored children of the selected leaf,
// sampled uniformly without replacement. When the unexplored frontier fits
// within K the node is marked fully expanded and every remaining child is
// created. Terminal leaves are returned as-is so their exact payoff is
// re-propagated.
type Expander struct {
	K     int
	Rules game.Rules
	Rand  *rand.Rand
}

// Expand returns the nodes to simulate from.
func (e *Expander) Expand(parent *Node) []*Node {
	if parent.GameOver {
		return []*Node{parent}
	}
	moves := e.Rules.Moves(parent.State)
	unexplored := make([]game.Move, 0, len(moves))
	for _, m := range moves {
		if _, ok := parent.children[m]; !ok {
			unexplored = append(unexplored, m)
		}
	}
	k := e.K
	if k < 1 {
		k = 1
	}
	if len(unexplored) <= k {
		parent.FullyExpanded = true
		expanded := make([]*Node, len(unexplored))
		for i, m := range unexplored {
			expanded[i] = parent.addChild(e.Rules, m)
		}
		return expanded
	}
	// Partial Fisher-Yates: the first k slots are a uniform sample.
	for i := 0; i < k; i++ {
		j := i + e.Rand.Intn(len(unexplored)-i)
		unexplored[i], unexplored[j] = unexplored[j], unexplored[i]
	}
	expanded := make([]*Node, k)
	for i := 0; i < k; i++ {
		expanded[i] = parent.addChild(e.Rules, unexplored[i])
	}
	return expanded
}
