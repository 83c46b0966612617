package mtdf

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Options configure an MTD(f) player.
type Options struct {
	MaxTime  time.Duration // wall-clock budget per move
	MaxDepth int           // deepening ceiling, in plies
}

// DefaultOptions mirror the recognized configuration defaults.
func DefaultOptions() Options {
	return Options{MaxTime: 2 * time.Second, MaxDepth: 2 * game.LastPly}
}

// Player chooses moves by iterative-deepening MTD(f); the move comes from
// the root's transposition entry.
type Player struct {
	opts Options
	ctx  *Context
}

// NewPlayer creates an MTD(f) player over the given rules.
func NewPlayer(rules game.Rules, opts Options) *Player {
	if opts.MaxTime <= 0 {
		opts.MaxTime = DefaultOptions().MaxTime
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	return &Player{opts: opts, ctx: NewContext(rules)}
}

// Name identifies the player in driver logs.
func (p *Player) Name() string {
	return "mtdf"
}

// Context exposes the search context; tests inspect the table through it.
func (p *Player) Context() *Context {
	return p.ctx
}

// ChooseMove deepens from the state and returns the proved best move.
func (p *Player) ChooseMove(state game.State) (game.Move, error) {
	value := p.ctx.IterativeDeepening(state, p.opts.MaxDepth, true, p.opts.MaxTime)
	entry := p.ctx.Table.Lookup(state)
	if !entry.BestMove.IsValid() {
		return game.NoMove, &game.IllegalMoveError{Move: game.NoMove, Reason: "no best move proved"}
	}
	log.Info().
		Float64("value", value).
		Stringer("best_move", entry.BestMove).
		Float64("lower", entry.Lower).
		Float64("upper", entry.Upper).
		Msg("mtdf")
	return entry.BestMove, nil
}
