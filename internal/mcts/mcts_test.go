package mcts

import (
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// endgameState builds a position with three free squares where placing the
// selected piece at (2,0) wins on the spot for PLAYER1, while the other two
// placements are at best a draw with perfect play.
func endgameState(t *testing.T) game.State {
	t.Helper()
	pairs := []struct {
		piece  game.Piece
		square game.Square
	}{
		{14, game.NewSquare(1, 2)}, {3, game.NewSquare(2, 1)}, {12, game.NewSquare(1, 3)},
		{13, game.NewSquare(3, 1)}, {8, game.NewSquare(3, 3)}, {7, game.NewSquare(2, 3)},
		{5, game.NewSquare(0, 0)}, {1, game.NewSquare(2, 2)}, {6, game.NewSquare(0, 1)},
		{15, game.NewSquare(0, 3)}, {4, game.NewSquare(1, 0)}, {2, game.NewSquare(3, 2)},
		{9, game.NewSquare(3, 0)},
	}
	s := game.New()
	for _, pair := range pairs {
		s = s.MustPlay(game.Give(pair.piece)).MustPlay(game.Put(pair.square))
	}
	s = s.MustPlay(game.Give(11))
	require.Equal(t, game.Player1, s.Plying())
	require.Equal(t, game.PhasePut, s.Phase())
	return s
}

func newTestPlayer(seed int64) *Player {
	return NewPlayer(game.Basic{}, Options{
		Exploration: DefaultExploration,
		Seed:        seed,
	})
}

func TestDeterminismUnderFixedSeed(t *testing.T) {
	runSearch := func() (*Node, game.Move) {
		root := newTestPlayer(42).Search(game.New(), MaxIters(500))
		move, ok := BestMove(root)
		require.True(t, ok)
		return root, move
	}
	rootA, moveA := runSearch()
	rootB, moveB := runSearch()

	assert.Equal(t, rootA.Visits, rootB.Visits)
	assert.Equal(t, rootA.Payoffs, rootB.Payoffs)
	assert.Equal(t, moveA, moveB)
}

func TestVisitAccounting(t *testing.T) {
	const iters = 200
	root := newTestPlayer(7).Search(game.New(), MaxIters(iters))
	assert.GreaterOrEqual(t, root.Visits, iters)

	childVisits := 0
	root.Children(func(_ game.Move, c *Node) bool {
		childVisits += c.Visits
		return true
	})
	assert.Equal(t, root.Visits, childVisits, "every root visit descends into a child")
}

func TestFindsImmediateWin(t *testing.T) {
	state := endgameState(t)
	root := newTestPlayer(1).Search(state, MaxIters(300))
	move, ok := BestMove(root)
	require.True(t, ok)
	assert.Equal(t, game.Put(game.NewSquare(2, 0)), move)
}

func TestTerminalRootIsReturnedUntouched(t *testing.T) {
	state := endgameState(t).MustPlay(game.Put(game.NewSquare(2, 0)))
	require.True(t, state.IsOver())
	root := newTestPlayer(1).Search(state, MaxIters(10))
	assert.Equal(t, 0, root.Visits)
	assert.True(t, root.GameOver)
}

func TestExpandMarksFullyExpanded(t *testing.T) {
	rules := game.Basic{}
	expander := &Expander{K: 16, Rules: rules, Rand: rand.New(rand.NewSource(1))}
	root := NewRoot(game.New())
	expanded := expander.Expand(root)
	assert.Len(t, expanded, game.NumPieces)
	assert.True(t, root.FullyExpanded)

	single := &Expander{K: 1, Rules: rules, Rand: rand.New(rand.NewSource(1))}
	root = NewRoot(game.New())
	for k := 0; k < game.NumPieces; k++ {
		assert.Len(t, single.Expand(root), 1)
	}
	assert.True(t, root.FullyExpanded)
	assert.Equal(t, game.NumPieces, root.NumChildren())
}

func TestBatchSimulatorOnTerminalNode(t *testing.T) {
	state := endgameState(t).MustPlay(game.Put(game.NewSquare(2, 0)))
	node := NewRoot(state)
	sim := NewBatchSimulator(8, NewRandomSimulator(game.Basic{}, 1), Serial{})
	payoffs := sim.Simulate(node)
	assert.Equal(t, game.Payoffs{1, -1}, payoffs)
}

func TestParallelExecutorMatchesSerial(t *testing.T) {
	nodes := make([]*Node, 32)
	for i := range nodes {
		nodes[i] = NewRoot(game.New())
		nodes[i].Depth = i
	}
	fn := func(n *Node) game.Payoffs {
		return game.Payoffs{float64(n.Depth), -float64(n.Depth)}
	}
	serial := Serial{}.Map(fn, nodes)
	parallel := Parallel{Workers: 4}.Map(fn, nodes)
	assert.Equal(t, serial, parallel)
}

func TestStoppers(t *testing.T) {
	t.Run("MaxIters", func(t *testing.T) {
		stop := MaxIters(3)
		assert.False(t, stop.Done(0))
		assert.False(t, stop.Done(2))
		assert.True(t, stop.Done(3))
	})

	t.Run("MaxTime", func(t *testing.T) {
		stop := NewMaxTime(20 * time.Millisecond)
		assert.False(t, stop.Done(0))
		time.Sleep(30 * time.Millisecond)
		assert.True(t, stop.Done(1))
	})

	t.Run("Async", func(t *testing.T) {
		var flag atomic.Bool
		stop := Async{Flag: &flag}
		assert.False(t, stop.Done(0))
		flag.Store(true)
		assert.True(t, stop.Done(1))
	})

	t.Run("FirstOf", func(t *testing.T) {
		var flag atomic.Bool
		stop := FirstOf{Async{Flag: &flag}, MaxIters(5)}
		assert.False(t, stop.Done(4))
		assert.True(t, stop.Done(5))
		flag.Store(true)
		assert.True(t, stop.Done(0))
	})
}

func TestBackPropagate(t *testing.T) {
	rules := game.Basic{}
	root := NewRoot(game.New())
	child := root.addChild(rules, game.Give(0))
	grandchild := child.addChild(rules, game.Put(game.NewSquare(0, 0)))

	BackPropagate(grandchild, game.Payoffs{1, -1})
	assert.Equal(t, 1, root.Visits)
	assert.Equal(t, 1, child.Visits)
	assert.Equal(t, 1, grandchild.Visits)
	assert.Equal(t, game.Payoffs{1, -1}, root.Payoffs)

	BackPropagate(child, game.Payoffs{-1, 1})
	assert.Equal(t, 2, root.Visits)
	assert.Equal(t, 2, child.Visits)
	assert.Equal(t, 1, grandchild.Visits)
	assert.Equal(t, game.Payoffs{0, 0}, root.Payoffs)
}

func TestUCTPrefersUnderexploredAmongEqual(t *testing.T) {
	rules := game.Basic{}
	root := NewRoot(game.New())
	a := root.addChild(rules, game.Give(0))
	b := root.addChild(rules, game.Give(1))
	root.FullyExpanded = true

	BackPropagate(a, game.Payoffs{0, 0})
	BackPropagate(a, game.Payoffs{0, 0})
	BackPropagate(b, game.Payoffs{0, 0})

	selector := Selector{Measure: UCT{Exploration: DefaultExploration}}
	assert.Same(t, b, selector.Select(root))
}
