// Package mcts implements Monte Carlo Tree Search over the Quarto game
// model with pluggable stop, selection, expansion and simulation policies.
package mcts

import (
	"github.com/giovanni-poggio/quarto/internal/game"
)

// Node is a search-tree node keyed under its parent by the move reaching
// it. Parents own their children; the parent pointer is a non-owning back
// reference used only during backpropagation.
type Node struct {
	State     game.State
	Plying    game.Player
	GameOver  bool
	Winner    game.Player
	HasWinner bool
	Depth     int

	Parent   *Node
	children map[game.Move]*Node
	moves    []game.Move // child-creation order

	Payoffs       game.Payoffs
	Visits        int
	FullyExpanded bool
}

// NewRoot creates a root node from an arbitrary state.
func NewRoot(state game.State) *Node {
	winner, hasWinner := state.Winner()
	return &Node{
		State:     state,
		Plying:    state.Plying(),
		GameOver:  state.IsOver(),
		Winner:    winner,
		HasWinner: hasWinner,
		children:  make(map[game.Move]*Node),
	}
}

// Child returns the child reached by the move, if materialized.
func (n *Node) Child(m game.Move) (*Node, bool) {
	c, ok := n.children[m]
	return c, ok
}

// Children yields the materialized children in creation order.
func (n *Node) Children(visit func(m game.Move, c *Node) bool) {
	for _, m := range n.moves {
		if !visit(m, n.children[m]) {
			return
		}
	}
}

// NumChildren returns the number of materialized children.
func (n *Node) NumChildren() int {
	return len(n.moves)
}

// addChild materializes the successor of n under move using the rules.
func (n *Node) addChild(rules game.Rules, move game.Move) *Node {
	state := rules.Play(n.State, move)
	winner, hasWinner := state.Winner()
	child := &Node{
		State:     state,
		Plying:    state.Plying(),
		GameOver:  state.IsOver(),
		Winner:    winner,
		HasWinner: hasWinner,
		Depth:     n.Depth + 1,
		Parent:    n,
		children:  make(map[game.Move]*Node),
	}
	n.children[move] = child
	n.moves = append(n.moves, move)
	return child
}

// BackPropagate accumulates the payoffs and a visit at every node from n up
// to the root.
func BackPropagate(n *Node, payoffs game.Payoffs) {
	for ; n != nil; n = n.Parent {
		n.Payoffs.Add(payoffs)
		n.Visits++
	}
}
