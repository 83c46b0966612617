package game

// Moves enumerates the legal moves of the state in a deterministic order:
// unused pieces sorted by attribute bits in the GIVE phase, free squares in
// row-major order in the PUT phase. Terminal states have no moves.
func (s State) Moves() []Move {
	if s.IsOver() {
		return nil
	}
	if s.Phase() == PhaseGive {
		moves := make([]Move, 0, NumPieces-int(s.placed))
		for p := Piece(0); p < NumPieces; p++ {
			if s.used&p.Mask() == 0 {
				moves = append(moves, Give(p))
			}
		}
		return moves
	}
	moves := make([]Move, 0, NumSquares-int(s.placed))
	for sq := Square(0); sq < NumSquares; sq++ {
		if s.occupied&sq.Mask() == 0 {
			moves = append(moves, Put(sq))
		}
	}
	return moves
}

// Rules abstracts move generation and application so the search engines run
// identically over the raw game or its symmetry-folded variant.
type Rules interface {
	Moves(s State) []Move
	Play(s State, m Move) State
}

// Basic is the raw rule set without symmetry folding.
type Basic struct{}

// Moves returns the legal moves of the state.
func (Basic) Moves(s State) []Move {
	return s.Moves()
}

// Play applies the move without canonicalization.
func (Basic) Play(s State, m Move) State {
	return s.MustPlay(m)
}
