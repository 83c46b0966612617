package mcts

import (
	"math/rand"
	"sync"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Simulator estimates the payoffs of a node, typically by playing it out.
type Simulator interface {
	Simulate(n *Node) game.Payoffs
}

// RandomSimulator plays uniformly random moves until the game ends and
// returns the terminal payoffs. Each rollout runs on its own random stream
// seeded from the master source under a lock, so rollouts may run
// concurrently. With a serial executor a fixed master seed reproduces the
// whole search; under a parallel executor the order in which rollouts draw
// their seeds depends on scheduling, so runs are not reproducible.
type RandomSimulator struct {
	Rules game.Rules

	mu     sync.Mutex
	master *rand.Rand
}

// NewRandomSimulator creates a rollout simulator over the given rules.
func NewRandomSimulator(rules game.Rules, seed int64) *RandomSimulator {
	return &RandomSimulator{
		Rules:  rules,
		master: rand.New(rand.NewSource(seed)),
	}
}

// Simulate rolls the node's state out to a terminal position.
func (s *RandomSimulator) Simulate(n *Node) game.Payoffs {
	s.mu.Lock()
	rng := rand.New(rand.NewSource(s.master.Int63()))
	s.mu.Unlock()

	state := n.State
	for !state.IsOver() {
		moves := s.Rules.Moves(state)
		state = s.Rules.Play(state, moves[rng.Intn(len(moves))])
	}
	return state.Payoffs()
}

// BatchSimulator averages N independent rollouts of the same node; only
// the averaged payoff is back-propagated. The executor may spread the
// rollouts over workers.
type BatchSimulator struct {
	N       int
	Rollout Simulator
	Exec    Executor
}

// NewBatchSimulator wraps a simulator into an N-rollout averaging one.
func NewBatchSimulator(n int, sim Simulator, exec Executor) *BatchSimulator {
	if exec == nil {
		exec = Serial{}
	}
	return &BatchSimulator{N: n, Rollout: sim, Exec: exec}
}

// Simulate averages N rollouts from the node.
func (b *BatchSimulator) Simulate(n *Node) game.Payoffs {
	batch := make([]*Node, b.N)
	for i := range batch {
		batch[i] = n
	}
	var totals game.Payoffs
	for _, payoffs := range b.Exec.Map(b.Rollout.Simulate, batch) {
		totals.Add(payoffs)
	}
	return totals.Scale(float64(b.N))
}
