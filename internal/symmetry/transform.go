// Package symmetry collapses equivalent Quarto positions onto canonical
// orbit representatives. Two independent groups act on positions: the
// dihedral group of the board (8 transforms) and the piece group generated
// by attribute-bit flips and attribute permutations (384 mappings). The
// package precomputes, per canonical position and legal move, the transform
// or mapping that re-canonicalizes the successor, so every reachable state
// stays on an orbit representative.
package symmetry

import "github.com/giovanni-poggio/quarto/internal/game"

// Transform is an element of the board's dihedral group: an optional
// horizontal flip followed by a quarter-turn rotation.
type Transform struct {
	Rotate int
	Flip   bool
}

// Identity is the do-nothing transform.
var Identity = Transform{}

// AllTransforms lists the 8 board transforms in the fixed order used to
// break canonicalization ties: by rotation, unflipped first.
var AllTransforms = [8]Transform{
	{0, false}, {0, true},
	{1, false}, {1, true},
	{2, false}, {2, true},
	{3, false}, {3, true},
}

// IsIdentity reports whether the transform leaves the board unchanged.
func (t Transform) IsIdentity() bool {
	return t.Rotate == 0 && !t.Flip
}

// Apply maps a square under the transform: flip first, then rotate.
// The null square is fixed.
func (t Transform) Apply(sq game.Square) game.Square {
	if !sq.IsValid() {
		return sq
	}
	i, j := sq.Row(), sq.Col()
	if t.Flip {
		j = game.Side - 1 - j
	}
	for k := 0; k < t.Rotate&3; k++ {
		i, j = game.Side-1-j, i
	}
	return game.NewSquare(i, j)
}

// String renders the transform as "e", "r2", "f", "r1f", ...
func (t Transform) String() string {
	out := ""
	if t.Rotate != 0 {
		out = "r" + string(rune('0'+t.Rotate))
	}
	if t.Flip {
		out += "f"
	}
	if out == "" {
		return "e"
	}
	return out
}

// applyMask maps every occupied square of the occupancy mask.
func (t Transform) applyMask(occupied uint16) uint16 {
	var out uint16
	for sq := game.Square(0); sq < game.NumSquares; sq++ {
		if occupied&sq.Mask() != 0 {
			out |= t.Apply(sq).Mask()
		}
	}
	return out
}
