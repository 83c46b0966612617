package symmetry

import (
	"math/bits"
	"sort"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// pieceSetLess orders two equal-size piece sets the way their
// sorted-and-joined renderings order lexicographically. The sequences share
// a prefix up to the smallest element on which membership differs, and the
// set containing that element sorts first.
func pieceSetLess(a, b uint16) bool {
	diff := a ^ b
	if diff == 0 {
		return false
	}
	lowest := uint16(1) << bits.TrailingZeros16(diff)
	return a&lowest != 0
}

// canonicalPieces returns the orbit representative of a piece set — the set
// with the lexicographically minimal rendering over the 384 mappings — and
// the first mapping reaching it.
func canonicalPieces(used uint16) (uint16, Mapping) {
	best := used
	bestM := IdentityMapping
	for _, m := range AllMappings[1:] {
		if mapped := m.applyMask(used); pieceSetLess(mapped, best) {
			best, bestM = mapped, m
		}
	}
	return best, bestM
}

// stabilizer counts the mappings fixing the set. Large stabilizers mean the
// set is highly symmetric; gives leading to less symmetric sets are tried
// first, so the score sorts ascending.
func stabilizer(used uint16) int {
	n := 0
	for _, m := range AllMappings {
		if m.applyMask(used) == used {
			n++
		}
	}
	return n
}

// buildPieceTables BFS-walks the canonical piece-set DAG from the empty
// set. For every canonical set it records the orbit-representative gives,
// ordered by ascending stabilizer size of the canonical child, and per give
// the mapping that re-canonicalizes the successor.
func buildPieceTables() (map[uint16][]game.Piece, map[uint16]map[game.Piece]Mapping) {
	available := make(map[uint16][]game.Piece)
	mappings := make(map[uint16]map[game.Piece]Mapping)

	queue := []uint16{0}
	seen := map[uint16]bool{0: true}
	for len(queue) > 0 {
		used := queue[0]
		queue = queue[1:]

		type edge struct {
			move    game.Piece
			mapping Mapping
			score   int
		}
		var edges []edge
		produced := make(map[uint16]bool)
		for p := game.Piece(0); p < game.NumPieces; p++ {
			if used&p.Mask() != 0 {
				continue
			}
			child, m := canonicalPieces(used | p.Mask())
			if produced[child] {
				continue
			}
			produced[child] = true
			edges = append(edges, edge{move: p, mapping: m, score: stabilizer(child)})
			if !seen[child] {
				seen[child] = true
				queue = append(queue, child)
			}
		}
		sort.SliceStable(edges, func(a, b int) bool {
			return edges[a].score < edges[b].score
		})

		moves := make([]game.Piece, len(edges))
		byMove := make(map[game.Piece]Mapping, len(edges))
		for k, e := range edges {
			moves[k] = e.move
			byMove[e.move] = e.mapping
		}
		available[used] = moves
		mappings[used] = byMove
	}
	return available, mappings
}
