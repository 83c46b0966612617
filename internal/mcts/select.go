package mcts

import "math"

// Measure scores a child during selection; the child maximizing it is
// descended into.
type Measure interface {
	Score(child *Node) float64
}

// UCT is the standard Upper Confidence bound applied to Trees: per-visit
// payoff for the parent's player plus an exploration bonus.
type UCT struct {
	Exploration float64
}

// DefaultExploration is the textbook UCT constant.
var DefaultExploration = math.Sqrt2

// Score computes exploitation + c * sqrt(ln(parent.Visits) / child.Visits).
func (u UCT) Score(child *Node) float64 {
	player := child.Parent.Plying
	exploitation := child.Payoffs[player] / float64(child.Visits)
	exploration := u.Exploration * math.Sqrt(math.Log(float64(child.Parent.Visits))/float64(child.Visits))
	return exploitation + exploration
}

// Selector descends from the root through fully expanded nodes, at each
// step picking the child with the highest measure, and returns the first
// node with unexplored moves (or a terminal node).
type Selector struct {
	Measure Measure
}

// Select walks down to the next node to expand. Ties keep the earliest
// created child, so identical trees select identically.
func (s Selector) Select(node *Node) *Node {
	for node.FullyExpanded {
		var best *Node
		bestScore := math.Inf(-1)
		for _, m := range node.moves {
			child := node.children[m]
			if score := s.Measure.Score(child); score > bestScore {
				best, bestScore = child, score
			}
		}
		if best == nil {
			return node
		}
		node = best
	}
	return node
}
