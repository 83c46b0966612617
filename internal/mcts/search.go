package mcts

import (
	"math"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Search is the MCTS loop: select a leaf, expand it, simulate the expanded
// nodes (possibly in parallel through the executor) and back-propagate each
// result in expansion order. The stop predicate is polled between
// iterations.
type Search struct {
	Stop     Stopper
	Select   Selector
	Expand   *Expander
	Simulate Simulator
	Exec     Executor
}

// Run grows the tree under root until the stopper fires. Terminal roots
// are returned untouched.
func (s *Search) Run(root *Node) *Node {
	if root.GameOver {
		return root
	}
	exec := s.Exec
	if exec == nil {
		exec = Serial{}
	}
	for iteration := 0; !s.Stop.Done(iteration); iteration++ {
		leaf := s.Select.Select(root)
		expanded := s.Expand.Expand(leaf)
		results := exec.Map(s.Simulate.Simulate, expanded)
		for i, node := range expanded {
			BackPropagate(node, results[i])
		}
	}
	return root
}

// BestMove returns the root child maximizing per-visit payoff for the
// root's player. Ties keep the earliest created child.
func BestMove(root *Node) (game.Move, bool) {
	best := game.NoMove
	bestValue := math.Inf(-1)
	found := false
	root.Children(func(m game.Move, child *Node) bool {
		if child.Visits == 0 {
			return true
		}
		if value := child.Payoffs[root.Plying] / float64(child.Visits); value > bestValue {
			best, bestValue, found = m, value, true
		}
		return true
	})
	return best, found
}
