package game

import (
	"fmt"
	"strings"
)

// Phase is derived from the state: GIVE when no piece is selected (next
// action selects a piece for the opponent), PUT otherwise.
type Phase uint8

const (
	PhaseGive Phase = iota
	PhasePut
)

// String returns "GIVE" or "PUT".
func (ph Phase) String() string {
	if ph == PhasePut {
		return "PUT"
	}
	return "GIVE"
}

// LastPly is the ply at which all pieces have been placed.
const LastPly = NumPieces

// State is an immutable snapshot of a Quarto position. It preserves the
// semantics of an insertion-ordered square-to-piece map with a null-square
// sentinel holding the selected piece: the order array recovers "the last
// square placed" and the selected field is the sentinel's value.
type State struct {
	board    [NumSquares]Piece
	order    [NumSquares]Square
	placed   uint8
	occupied uint16
	used     uint16
	selected Piece
}

// New returns the empty board in the GIVE phase.
func New() State {
	var s State
	for sq := range s.board {
		s.board[sq] = NullPiece
	}
	s.selected = NullPiece
	return s
}

// Phase returns the current phase.
func (s State) Phase() Phase {
	if s.selected.IsValid() {
		return PhasePut
	}
	return PhaseGive
}

// Ply counts the state entries, including the selected-piece sentinel.
// A give increments it; a put replaces the sentinel with a board entry and
// leaves it unchanged. Range [0, LastPly].
func (s State) Ply() int {
	ply := int(s.placed)
	if s.selected.IsValid() {
		ply++
	}
	return ply
}

// Plying returns the player to move.
func (s State) Plying() Player {
	return Plying(s.Ply())
}

// PieceAt returns the piece on the square, NullPiece if empty.
func (s State) PieceAt(sq Square) Piece {
	return s.board[sq]
}

// Selected returns the piece awaiting placement, NullPiece in GIVE phase.
func (s State) Selected() Piece {
	return s.selected
}

// Occupied returns the occupancy bitmask of placed squares.
func (s State) Occupied() uint16 {
	return s.occupied
}

// UsedPieces returns the bitmask of pieces consumed so far, including the
// selected one.
func (s State) UsedPieces() uint16 {
	return s.used
}

// PlacedPieces returns the bitmask of pieces already on the board.
func (s State) PlacedPieces() uint16 {
	if s.selected.IsValid() {
		return s.used &^ s.selected.Mask()
	}
	return s.used
}

// LastPlaced returns the most recently placed square.
func (s State) LastPlaced() (Square, bool) {
	if s.placed == 0 {
		return NullSquare, false
	}
	return s.order[s.placed-1], true
}

// Play applies a move and returns the successor state. The receiver is not
// modified. Wrong-phase moves, used pieces and occupied squares yield an
// IllegalMoveError.
func (s State) Play(m Move) (State, error) {
	switch m.Kind {
	case KindGive:
		if s.Phase() != PhaseGive {
			return s, illegal(m, "phase is PUT")
		}
		if !m.Piece.IsValid() {
			return s, illegal(m, "no such piece")
		}
		if s.used&m.Piece.Mask() != 0 {
			return s, illegal(m, "piece already used")
		}
		s.selected = m.Piece
		s.used |= m.Piece.Mask()
		return s, nil
	case KindPut:
		if s.Phase() != PhasePut {
			return s, illegal(m, "phase is GIVE")
		}
		if !m.Square.IsValid() {
			return s, illegal(m, "no such square")
		}
		if s.occupied&m.Square.Mask() != 0 {
			return s, illegal(m, "square occupied")
		}
		s.board[m.Square] = s.selected
		s.order[s.placed] = m.Square
		s.placed++
		s.occupied |= m.Square.Mask()
		s.selected = NullPiece
		return s, nil
	default:
		return s, illegal(m, "not a move")
	}
}

// MustPlay applies a move known to be legal; an illegal move panics.
// The search cores only generate legal moves, so a failure here is a bug.
func (s State) MustPlay(m Move) State {
	next, err := s.Play(m)
	if err != nil {
		panic(err)
	}
	return next
}

// Winner returns the winning player, if any. Only the last-placed square
// can complete a new quarto, so only its row, column and any main diagonal
// through it are inspected.
func (s State) Winner() (Player, bool) {
	if s.Ply() < Side || s.Phase() == PhasePut {
		return Player1, false
	}
	last, ok := s.LastPlaced()
	if !ok {
		return Player1, false
	}
	lines := [][Side]Square{Rows[last.Row()], Cols[last.Col()]}
	if last.OnDiag() {
		lines = append(lines, Diag)
	}
	if last.OnAntiDiag() {
		lines = append(lines, ADiag)
	}
	for _, line := range lines {
		if s.lineQuarto(line) {
			return s.Plying(), true
		}
	}
	return Player1, false
}

func (s State) lineQuarto(line [Side]Square) bool {
	var pieces [Side]Piece
	for k, sq := range line {
		p := s.board[sq]
		if !p.IsValid() {
			return false
		}
		pieces[k] = p
	}
	return IsQuarto(pieces[:])
}

// IsOver reports whether the game has ended: a quarto exists, or every
// piece is placed with none left to give.
func (s State) IsOver() bool {
	if s.Ply() == LastPly && s.Phase() == PhaseGive {
		return true
	}
	_, won := s.Winner()
	return won
}

// Payoffs returns the terminal payoffs of the state: +1/-1 for a decided
// game, 0/0 otherwise.
func (s State) Payoffs() Payoffs {
	if winner, ok := s.Winner(); ok {
		return WinPayoffs(winner)
	}
	return Payoffs{}
}

// MapPieces returns the state with every piece value rewritten through f.
// Placement is untouched. Used by the symmetry engine.
func (s State) MapPieces(f func(Piece) Piece) State {
	next := s
	next.used = 0
	for k := uint8(0); k < s.placed; k++ {
		sq := s.order[k]
		next.board[sq] = f(s.board[sq])
		next.used |= next.board[sq].Mask()
	}
	if s.selected.IsValid() {
		next.selected = f(s.selected)
		next.used |= next.selected.Mask()
	}
	return next
}

// MapSquares returns the state with every square rewritten through f.
// Placement order is preserved under the renaming. Used by the symmetry
// engine.
func (s State) MapSquares(f func(Square) Square) State {
	next := s
	for sq := range next.board {
		next.board[sq] = NullPiece
	}
	next.occupied = 0
	for k := uint8(0); k < s.placed; k++ {
		sq := f(s.order[k])
		next.order[k] = sq
		next.board[sq] = s.board[s.order[k]]
		next.occupied |= sq.Mask()
	}
	return next
}

// BoardString renders the four board rows, pieces space-separated and empty
// squares as "----".
func (s State) BoardString() string {
	var b strings.Builder
	for i := 0; i < Side; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := 0; j < Side; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(s.board[NewSquare(i, j)].String())
		}
	}
	return b.String()
}

// String returns the printable canonical form used as a transposition key:
//
//	plying=PLAYER1
//	ply= 0	phase=GIVE
//	<four board rows>
//	piece=----
func (s State) String() string {
	return fmt.Sprintf("plying=%s\nply=%2d\tphase=%s\n%s\npiece=%s",
		s.Plying(), s.Ply(), s.Phase(), s.BoardString(), s.selected)
}
