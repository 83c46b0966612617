package mcts

import (
	"golang.org/x/sync/errgroup"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Executor applies a simulation function over a batch of nodes and gathers
// the payoffs in input order. Parallelism is a capability of the executor,
// not of the search loop: backpropagation always happens sequentially after
// the map returns.
type Executor interface {
	Map(fn func(*Node) game.Payoffs, nodes []*Node) []game.Payoffs
}

// Serial is the default executor: a plain in-order map.
type Serial struct{}

// Map applies fn to each node in order.
func (Serial) Map(fn func(*Node) game.Payoffs, nodes []*Node) []game.Payoffs {
	results := make([]game.Payoffs, len(nodes))
	for i, n := range nodes {
		results[i] = fn(n)
	}
	return results
}

// Parallel spreads the map over a bounded group of goroutines. Rollouts are
// pure functions of immutable states, so only the simulator's random source
// needs to be safe for concurrent use.
type Parallel struct {
	Workers int
}

// Map applies fn concurrently and blocks until every result is available.
func (p Parallel) Map(fn func(*Node) game.Payoffs, nodes []*Node) []game.Payoffs {
	results := make([]game.Payoffs, len(nodes))
	var g errgroup.Group
	if p.Workers > 0 {
		g.SetLimit(p.Workers)
	}
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			results[i] = fn(n)
			return nil
		})
	}
	_ = g.Wait() // no error path: fn never fails
	return results
}
