package mtdf

import (
	"math"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Context bundles the transposition table with the rule set driving move
// generation. All values are from Player1's perspective: Player1 maximizes,
// Player2 minimizes.
type Context struct {
	Table *Table
	Rules game.Rules
	Nodes uint64
}

// NewContext creates a search context with a fresh table.
func NewContext(rules game.Rules) *Context {
	return &Context{Table: NewTable(), Rules: rules}
}

// AlphaBeta searches the state to the given depth inside the (alpha, beta)
// window and returns the value together with the shallowest sub-resolution
// depth (+Inf when every line below reached a terminal position). In
// fail-soft mode the returned value may fall outside the window, which
// lets the table store tighter bounds.
func (c *Context) AlphaBeta(state game.State, depth, alpha, beta float64, failSoft bool) (float64, float64) {
	c.Nodes++

	entry := c.Table.Lookup(state)
	if entry.Valid && entry.Depth >= depth {
		if entry.Lower >= beta {
			return entry.Lower, entry.Depth
		}
		if entry.Upper <= alpha {
			return entry.Upper, entry.Depth
		}
		alpha = math.Max(alpha, entry.Lower)
		beta = math.Min(beta, entry.Upper)
	}

	var bestValue, minDepth float64
	bestMove := game.NoMove

	switch gameOver := state.IsOver(); {
	case gameOver || depth <= 0:
		bestValue = state.Payoffs()[game.Player1]
		minDepth = depth
		if gameOver {
			minDepth = math.Inf(1)
		}
	case state.Plying() == game.Player1:
		bestValue, minDepth = math.Inf(-1), math.Inf(1)
		a := alpha
		for _, move := range c.Rules.Moves(state) {
			child := c.Rules.Play(state, move)
			value, plies := c.AlphaBeta(child, depth-1, a, beta, failSoft)
			if value > bestValue {
				bestValue = value
				bestMove = move
			}
			minDepth = math.Min(plies+1, minDepth)
			if !failSoft && bestValue > beta {
				break
			}
			a = math.Max(a, bestValue)
			if failSoft && bestValue >= beta {
				break
			}
		}
	default:
		bestValue, minDepth = math.Inf(1), math.Inf(1)
		b := beta
		for _, move := range c.Rules.Moves(state) {
			child := c.Rules.Play(state, move)
			value, plies := c.AlphaBeta(child, depth-1, alpha, b, failSoft)
			if value < bestValue {
				bestValue = value
				bestMove = move
			}
			minDepth = math.Min(plies+1, minDepth)
			if !failSoft && bestValue < alpha {
				break
			}
			b = math.Min(b, bestValue)
			if failSoft && bestValue <= alpha {
				break
			}
		}
	}

	if bestValue <= alpha {
		entry.Upper = bestValue
	}
	if alpha < bestValue && bestValue < beta {
		entry.Lower = bestValue
		entry.Upper = bestValue
	}
	if bestValue >= beta {
		entry.Lower = bestValue
	}
	entry.checkBounds()

	entry.BestMove = bestMove
	entry.Depth = minDepth
	entry.Valid = true

	return bestValue, minDepth
}
