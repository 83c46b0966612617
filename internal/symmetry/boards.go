package symmetry

import (
	"sort"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// boardKey orders occupancy patterns the way their row-major 0/1 rendering
// orders lexicographically: square (0,0) is the most significant bit.
func boardKey(occupied uint16) uint16 {
	var key uint16
	for sq := game.Square(0); sq < game.NumSquares; sq++ {
		key <<= 1
		if occupied&sq.Mask() != 0 {
			key |= 1
		}
	}
	return key
}

// canonicalBoard returns the orbit representative of an occupancy pattern —
// the pattern with the lexicographically maximal rendering over the 8
// transforms — and the first transform reaching it.
func canonicalBoard(occupied uint16) (uint16, Transform) {
	best := occupied
	bestKey := boardKey(occupied)
	bestT := Identity
	for _, t := range AllTransforms[1:] {
		mapped := t.applyMask(occupied)
		if key := boardKey(mapped); key > bestKey {
			best, bestKey, bestT = mapped, key, t
		}
	}
	return best, bestT
}

// connectedness scores an occupancy pattern by how concentrated its stones
// are on winning lines: the sum over rows, columns and the two diagonals of
// line_sum^Side. Placements raising it create more simultaneous threats and
// are tried first by alpha-beta.
func connectedness(occupied uint16) int {
	pow := func(n int) int {
		total := 1
		for k := 0; k < game.Side; k++ {
			total *= n
		}
		return total
	}
	lineSum := func(line [game.Side]game.Square) int {
		n := 0
		for _, sq := range line {
			if occupied&sq.Mask() != 0 {
				n++
			}
		}
		return n
	}
	total := 0
	for i := 0; i < game.Side; i++ {
		total += pow(lineSum(game.Rows[i]))
		total += pow(lineSum(game.Cols[i]))
	}
	total += pow(lineSum(game.Diag))
	total += pow(lineSum(game.ADiag))
	return total
}

// buildBoardTables BFS-walks the canonical occupancy DAG from the empty
// board. For every canonical pattern it records the orbit-representative
// placements, ordered by descending connectedness of the canonical child,
// and per placement the transform that re-canonicalizes the successor.
func buildBoardTables() (map[uint16][]game.Square, map[uint16]map[game.Square]Transform) {
	free := make(map[uint16][]game.Square)
	transforms := make(map[uint16]map[game.Square]Transform)

	queue := []uint16{0}
	seen := map[uint16]bool{0: true}
	for len(queue) > 0 {
		occupied := queue[0]
		queue = queue[1:]

		type edge struct {
			move      game.Square
			transform Transform
			score     int
		}
		var edges []edge
		produced := make(map[uint16]bool)
		for sq := game.Square(0); sq < game.NumSquares; sq++ {
			if occupied&sq.Mask() != 0 {
				continue
			}
			child, t := canonicalBoard(occupied | sq.Mask())
			if produced[child] {
				continue
			}
			produced[child] = true
			edges = append(edges, edge{move: sq, transform: t, score: connectedness(child)})
			if !seen[child] {
				seen[child] = true
				queue = append(queue, child)
			}
		}
		sort.SliceStable(edges, func(a, b int) bool {
			return edges[a].score > edges[b].score
		})

		moves := make([]game.Square, len(edges))
		byMove := make(map[game.Square]Transform, len(edges))
		for k, e := range edges {
			moves[k] = e.move
			byMove[e.move] = e.transform
		}
		free[occupied] = moves
		transforms[occupied] = byMove
	}
	return free, transforms
}
