package symmetry

import (
	"fmt"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Mapping is an element of the piece group: an XOR flip of attribute bits
// followed by a permutation of attribute positions. The group has
// 2^4 * 4! = 384 elements.
type Mapping struct {
	Perm [game.Attributes]uint8
	Flip game.Piece
}

// IdentityMapping is the do-nothing mapping.
var IdentityMapping = Mapping{Perm: [game.Attributes]uint8{0, 1, 2, 3}}

// AllMappings lists the 384 piece mappings in the fixed tie-breaking order:
// permutations lexicographically, flips by value within each permutation.
var AllMappings = buildMappings()

func buildMappings() []Mapping {
	perms := permutations([game.Attributes]uint8{0, 1, 2, 3})
	all := make([]Mapping, 0, len(perms)*game.NumPieces)
	for _, perm := range perms {
		for flip := game.Piece(0); flip < game.NumPieces; flip++ {
			all = append(all, Mapping{Perm: perm, Flip: flip})
		}
	}
	return all
}

// permutations generates all orderings of the elements in lexicographic
// order, starting from the sorted input.
func permutations(first [game.Attributes]uint8) [][game.Attributes]uint8 {
	out := [][game.Attributes]uint8{first}
	cur := first
	for {
		// next_permutation on cur
		i := len(cur) - 2
		for i >= 0 && cur[i] >= cur[i+1] {
			i--
		}
		if i < 0 {
			return out
		}
		j := len(cur) - 1
		for cur[j] <= cur[i] {
			j--
		}
		cur[i], cur[j] = cur[j], cur[i]
		for l, r := i+1, len(cur)-1; l < r; l, r = l+1, r-1 {
			cur[l], cur[r] = cur[r], cur[l]
		}
		out = append(out, cur)
	}
}

// IsIdentity reports whether the mapping leaves every piece unchanged.
func (m Mapping) IsIdentity() bool {
	return m == IdentityMapping
}

// Apply maps a piece: flip attribute bits, then permute attribute
// positions. Position indices follow the rendered string, leftmost first:
// output position j takes input position Perm[j]. The null piece is fixed.
func (m Mapping) Apply(p game.Piece) game.Piece {
	if !p.IsValid() {
		return p
	}
	flipped := p ^ m.Flip
	var out game.Piece
	for j := 0; j < game.Attributes; j++ {
		bit := game.Piece(flipped.Bit(int(m.Perm[j])))
		out |= bit << (game.Attributes - 1 - j)
	}
	return out
}

// applyMask maps every piece of the usage mask.
func (m Mapping) applyMask(used uint16) uint16 {
	var out uint16
	for p := game.Piece(0); p < game.NumPieces; p++ {
		if used&p.Mask() != 0 {
			out |= m.Apply(p).Mask()
		}
	}
	return out
}

// String renders the mapping as "<perm>/<flip>", e.g. "0213/0010".
func (m Mapping) String() string {
	return fmt.Sprintf("%d%d%d%d/%s", m.Perm[0], m.Perm[1], m.Perm[2], m.Perm[3], m.Flip)
}
