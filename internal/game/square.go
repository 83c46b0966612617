package game

import "fmt"

// Side is the board side length.
const Side = 4

// NumSquares is the number of board squares.
const NumSquares = Side * Side

// Square is a board coordinate encoded row-major (0-15).
type Square uint8

// NullSquare marks "no square". It is the sentinel key under which the
// selected-but-unplaced piece is stored.
const NullSquare Square = NumSquares

// NewSquare creates a square from row and column.
func NewSquare(i, j int) Square {
	return Square(i*Side + j)
}

// Row returns the row of the square.
func (sq Square) Row() int {
	return int(sq) / Side
}

// Col returns the column of the square.
func (sq Square) Col() int {
	return int(sq) % Side
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NumSquares
}

// OnDiag reports whether the square lies on the main diagonal.
func (sq Square) OnDiag() bool {
	return sq.Row() == sq.Col()
}

// OnAntiDiag reports whether the square lies on the anti-diagonal.
func (sq Square) OnAntiDiag() bool {
	return sq.Row()+sq.Col() == Side-1
}

// Mask returns the square as a one-bit set in a 16-bit occupancy mask.
func (sq Square) Mask() uint16 {
	return 1 << sq
}

// String returns the square as "(i, j)", or "(-, -)" for the null square.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "(-, -)"
	}
	return fmt.Sprintf("(%d, %d)", sq.Row(), sq.Col())
}

// Line tables. Only the last-placed square's lines can produce a new quarto.
var (
	Rows  [Side][Side]Square
	Cols  [Side][Side]Square
	Diag  [Side]Square
	ADiag [Side]Square
)

func init() {
	for i := 0; i < Side; i++ {
		for j := 0; j < Side; j++ {
			Rows[i][j] = NewSquare(i, j)
			Cols[j][i] = NewSquare(i, j)
		}
		Diag[i] = NewSquare(i, i)
		ADiag[i] = NewSquare(i, Side-1-i)
	}
}
