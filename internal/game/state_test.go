package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawSequence is a full placement order that never completes a quarto.
var drawSequence = []struct {
	piece  Piece
	square Square
}{
	{14, NewSquare(1, 2)}, {3, NewSquare(2, 1)}, {12, NewSquare(1, 3)},
	{13, NewSquare(3, 1)}, {8, NewSquare(3, 3)}, {7, NewSquare(2, 3)},
	{5, NewSquare(0, 0)}, {1, NewSquare(2, 2)}, {6, NewSquare(0, 1)},
	{15, NewSquare(0, 3)}, {4, NewSquare(1, 0)}, {2, NewSquare(3, 2)},
	{9, NewSquare(3, 0)}, {11, NewSquare(1, 1)}, {10, NewSquare(2, 0)},
	{0, NewSquare(0, 2)},
}

func playPairs(t *testing.T, n int) State {
	t.Helper()
	s := New()
	for _, pair := range drawSequence[:n] {
		var err error
		s, err = s.Play(Give(pair.piece))
		require.NoError(t, err)
		s, err = s.Play(Put(pair.square))
		require.NoError(t, err)
	}
	return s
}

func TestEmptyState(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Ply())
	assert.Equal(t, PhaseGive, s.Phase())
	assert.Equal(t, Player1, s.Plying())
	assert.False(t, s.IsOver())
	assert.Len(t, s.Moves(), NumPieces)
}

func TestStateString(t *testing.T) {
	want := "plying=PLAYER1\n" +
		"ply= 0\tphase=GIVE\n" +
		"---- ---- ---- ----\n" +
		"---- ---- ---- ----\n" +
		"---- ---- ---- ----\n" +
		"---- ---- ---- ----\n" +
		"piece=----"
	assert.Equal(t, want, New().String())

	s := New().MustPlay(Give(2))
	assert.Contains(t, s.String(), "plying=PLAYER2")
	assert.Contains(t, s.String(), "ply= 1\tphase=PUT")
	assert.Contains(t, s.String(), "piece=0010")
}

func TestPhaseAlternation(t *testing.T) {
	s := New()
	for !s.IsOver() {
		phase := s.Phase()
		moves := s.Moves()
		require.NotEmpty(t, moves)
		s = s.MustPlay(moves[0])
		assert.NotEqual(t, phase, s.Phase())
	}
}

func TestPlyAccounting(t *testing.T) {
	// A give adds the sentinel entry; a put replaces it with a board entry.
	s := New()
	require.Equal(t, 0, s.Ply())

	s = s.MustPlay(Give(0))
	assert.Equal(t, 1, s.Ply())
	assert.Equal(t, Player2, s.Plying())

	s = s.MustPlay(Put(NewSquare(0, 0)))
	assert.Equal(t, 1, s.Ply())
	assert.Equal(t, Player2, s.Plying())

	s = s.MustPlay(Give(1))
	assert.Equal(t, 2, s.Ply())
	assert.Equal(t, Player1, s.Plying())
}

func TestMoveOrder(t *testing.T) {
	moves := New().Moves()
	require.Len(t, moves, NumPieces)
	for k, m := range moves {
		assert.Equal(t, Give(Piece(k)), m)
	}

	puts := New().MustPlay(Give(7)).Moves()
	require.Len(t, puts, NumSquares)
	for k, m := range puts {
		assert.Equal(t, Put(Square(k)), m)
	}
}

func TestIllegalMoves(t *testing.T) {
	s := New()

	_, err := s.Play(Put(NewSquare(0, 0)))
	var illegalErr *IllegalMoveError
	require.ErrorAs(t, err, &illegalErr)

	s = s.MustPlay(Give(3))
	_, err = s.Play(Give(5))
	assert.ErrorAs(t, err, &illegalErr)

	s = s.MustPlay(Put(NewSquare(1, 1)))
	_, err = s.Play(Give(3)) // already used
	assert.ErrorAs(t, err, &illegalErr)

	s = s.MustPlay(Give(5))
	_, err = s.Play(Put(NewSquare(1, 1))) // occupied
	assert.ErrorAs(t, err, &illegalErr)
}

func TestImmediateQuarto(t *testing.T) {
	// 0000, 0001, 0010, 0011 share their two leading attribute bits.
	s := New()
	for k := 0; k < 3; k++ {
		s = s.MustPlay(Give(Piece(k))).MustPlay(Put(NewSquare(0, k)))
		assert.False(t, s.IsOver())
	}
	s = s.MustPlay(Give(3))
	require.Equal(t, Player1, s.Plying(), "even ply: PLAYER1 places")

	s = s.MustPlay(Put(NewSquare(0, 3)))
	winner, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, Player1, winner)
	assert.True(t, s.IsOver())
	assert.Equal(t, Payoffs{1, -1}, s.Payoffs())
}

func TestDiagonalQuarto(t *testing.T) {
	// 0000, 0001, 0010, 0100 share their leading attribute bit.
	pieces := []Piece{0, 1, 2, 4}
	s := New()
	for k, p := range pieces {
		s = s.MustPlay(Give(p)).MustPlay(Put(NewSquare(k, k)))
	}
	winner, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, Player1, winner)
}

func TestNoWinTerminal(t *testing.T) {
	s := playPairs(t, len(drawSequence))
	assert.Equal(t, LastPly, s.Ply())
	assert.Equal(t, PhaseGive, s.Phase())
	assert.True(t, s.IsOver())
	_, ok := s.Winner()
	assert.False(t, ok)
	assert.Equal(t, Payoffs{0, 0}, s.Payoffs())
}

func TestDrawSequenceHasNoEarlyWinner(t *testing.T) {
	s := New()
	for _, pair := range drawSequence {
		s = s.MustPlay(Give(pair.piece)).MustPlay(Put(pair.square))
		_, ok := s.Winner()
		assert.False(t, ok)
	}
}

func TestLastPlaced(t *testing.T) {
	s := New()
	_, ok := s.LastPlaced()
	assert.False(t, ok)

	s = playPairs(t, 3)
	last, ok := s.LastPlaced()
	require.True(t, ok)
	assert.Equal(t, drawSequence[2].square, last)
}

func TestRandomPlaythroughs(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for game := 0; game < 50; game++ {
		s := New()
		for !s.IsOver() {
			moves := s.Moves()
			require.NotEmpty(t, moves)
			s = s.MustPlay(moves[rng.Intn(len(moves))])
			require.LessOrEqual(t, s.Ply(), LastPly)
		}
		if _, ok := s.Winner(); !ok {
			assert.Equal(t, LastPly, s.Ply())
			assert.Equal(t, PhaseGive, s.Phase())
		}
	}
}

func TestIsQuarto(t *testing.T) {
	assert.True(t, IsQuarto([]Piece{0, 1, 2, 3}))
	assert.True(t, IsQuarto([]Piece{15, 14, 13, 12}))
	assert.False(t, IsQuarto([]Piece{0, 15, 3, 12}))
	assert.False(t, IsQuarto([]Piece{0, 1, 2}), "incomplete line")
}
