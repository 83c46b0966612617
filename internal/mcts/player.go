package mcts

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Options configure an MCTS player.
type Options struct {
	MaxTime     time.Duration // wall-clock budget per move
	ExpandK     int           // children expanded per iteration
	NSims       int           // rollouts per simulation; >1 uses batching
	Exploration float64       // UCT exploration constant
	Workers     int           // >0 enables parallel simulation
	Seed        int64         // 0 seeds from the clock
}

// DefaultOptions mirror the recognized configuration defaults.
func DefaultOptions() Options {
	return Options{
		MaxTime:     2 * time.Second,
		ExpandK:     1,
		NSims:       1,
		Exploration: 1.0,
	}
}

// Player chooses moves by building a fresh search tree per invocation.
type Player struct {
	opts  Options
	rules game.Rules
}

// NewPlayer creates an MCTS player over the given rules.
func NewPlayer(rules game.Rules, opts Options) *Player {
	if opts.MaxTime <= 0 {
		opts.MaxTime = DefaultOptions().MaxTime
	}
	if opts.ExpandK < 1 {
		opts.ExpandK = 1
	}
	if opts.NSims < 1 {
		opts.NSims = 1
	}
	if opts.Exploration == 0 {
		opts.Exploration = 1.0
	}
	return &Player{opts: opts, rules: rules}
}

// Name identifies the player in driver logs.
func (p *Player) Name() string {
	return "mcts"
}

// ChooseMove searches from the state and returns the child with the best
// per-visit payoff.
func (p *Player) ChooseMove(state game.State) (game.Move, error) {
	root := p.search(state, NewMaxTime(p.opts.MaxTime))
	move, ok := BestMove(root)
	if !ok {
		return game.NoMove, &game.IllegalMoveError{Move: game.NoMove, Reason: "no legal moves"}
	}
	ev := root.Payoffs[game.Player1] / float64(root.Visits)
	log.Info().
		Int("visits", root.Visits).
		Float64("ev", ev).
		Stringer("best_move", move).
		Msg("mcts")
	return move, nil
}

// Search runs the configured search from the state with an explicit
// stopper; tests use it with MaxIters for determinism.
func (p *Player) Search(state game.State, stop Stopper) *Node {
	return p.search(state, stop)
}

func (p *Player) search(state game.State, stop Stopper) *Node {
	seed := p.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var exec Executor = Serial{}
	if p.opts.Workers > 0 {
		exec = Parallel{Workers: p.opts.Workers}
	}
	var sim Simulator = NewRandomSimulator(p.rules, rng.Int63())
	if p.opts.NSims > 1 {
		sim = NewBatchSimulator(p.opts.NSims, sim, exec)
	}
	search := &Search{
		Stop:     stop,
		Select:   Selector{Measure: UCT{Exploration: p.opts.Exploration}},
		Expand:   &Expander{K: p.opts.ExpandK, Rules: p.rules, Rand: rng},
		Simulate: sim,
		Exec:     exec,
	}
	return search.Run(NewRoot(state))
}
