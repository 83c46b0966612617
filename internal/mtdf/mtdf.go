package mtdf

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// MTDF converges to the minimax value of the root at the given depth by
// repeated zero-window alpha-beta calls seeded with a first guess.
func (c *Context) MTDF(root game.State, firstGuess, depth float64, failSoft bool) float64 {
	value := firstGuess
	lower, upper := math.Inf(-1), math.Inf(1)
	for lower < upper {
		beta := value
		if value == lower {
			beta = value + 1
		}
		value, _ = c.AlphaBeta(root, depth, beta-1, beta, failSoft)
		if value < beta {
			upper = value
		} else {
			lower = value
		}
	}
	return value
}

var counts = message.NewPrinter(language.English)

// IterativeDeepening runs MTD(f) at even depths 2, 4, ... up to maxDepth,
// seeding each round with the previous value. Between rounds the table is
// filtered down to fully resolved entries. The loop ends early once a
// decisive value is proved or the wall clock runs out; exceeding maxTime is
// a normal exit, and the value of the deepest completed round is returned.
func (c *Context) IterativeDeepening(root game.State, maxDepth int, failSoft bool, maxTime time.Duration) float64 {
	c.Table = NewTable()
	firstGuess := 0.0
	starting := time.Now()
	for depth := 2; depth <= maxDepth; depth += 2 {
		before, after := c.Table.Filter()
		start := time.Now()
		value := c.MTDF(root, firstGuess, float64(depth), failSoft)
		log.Debug().
			Int("depth", depth).
			Float64("value", value).
			Dur("elapsed", time.Since(start)).
			Str("entries", counts.Sprintf("%d -> %d -> %d", before, after, c.Table.Len())).
			Str("nodes", counts.Sprintf("%d", c.Nodes)).
			Msg("mtdf round")
		firstGuess = value
		if math.Abs(value) > 0 {
			break
		}
		if time.Since(starting) > maxTime {
			break
		}
	}
	return firstGuess
}
