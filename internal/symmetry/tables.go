package symmetry

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// Tables are the immutable runtime lookup maps derived from the two
// canonical DAGs. They are safe for any number of concurrent readers.
//
// Tables implement game.Rules: Moves enumerates only orbit-representative
// moves and Play rewrites each successor onto its canonical representative,
// so every state reachable through them stays canonical.
type Tables struct {
	free       map[uint16][]game.Square
	transforms map[uint16]map[game.Square]Transform
	available  map[uint16][]game.Piece
	mappings   map[uint16]map[game.Piece]Mapping
}

// Build computes both DAGs from scratch.
func Build() *Tables {
	start := time.Now()
	t := &Tables{}
	t.free, t.transforms = buildBoardTables()
	log.Debug().
		Int("nodes", len(t.free)).
		Dur("elapsed", time.Since(start)).
		Msg("board DAG built")

	start = time.Now()
	t.available, t.mappings = buildPieceTables()
	log.Debug().
		Int("nodes", len(t.available)).
		Dur("elapsed", time.Since(start)).
		Msg("piece DAG built")
	return t
}

// Moves returns the orbit-representative legal moves of a canonical state,
// in the precomputed ordering (gives by ascending stabilizer, puts by
// descending connectedness).
func (t *Tables) Moves(s game.State) []game.Move {
	if s.IsOver() {
		return nil
	}
	if s.Phase() == game.PhaseGive {
		reps, ok := t.available[s.PlacedPieces()]
		if !ok {
			panic(fmt.Sprintf("symmetry: no piece table entry for used=%#04x", s.PlacedPieces()))
		}
		moves := make([]game.Move, len(reps))
		for k, p := range reps {
			moves[k] = game.Give(p)
		}
		return moves
	}
	reps, ok := t.free[s.Occupied()]
	if !ok {
		panic(fmt.Sprintf("symmetry: no board table entry for occupied=%#04x", s.Occupied()))
	}
	moves := make([]game.Move, len(reps))
	for k, sq := range reps {
		moves[k] = game.Put(sq)
	}
	return moves
}

// Play applies a move and rewrites the successor onto its canonical orbit
// representative. A legal move missing from the tables is a bug and panics.
func (t *Tables) Play(s game.State, m game.Move) game.State {
	switch m.Kind {
	case game.KindGive:
		byMove, ok := t.mappings[s.PlacedPieces()]
		if !ok {
			panic(fmt.Sprintf("symmetry: no mapping table entry for used=%#04x", s.PlacedPieces()))
		}
		mapping, ok := byMove[m.Piece]
		if !ok {
			panic(fmt.Sprintf("symmetry: no mapping for used=%#04x give %s", s.PlacedPieces(), m.Piece))
		}
		next := s.MustPlay(m)
		if !mapping.IsIdentity() {
			next = next.MapPieces(mapping.Apply)
		}
		return next
	case game.KindPut:
		byMove, ok := t.transforms[s.Occupied()]
		if !ok {
			panic(fmt.Sprintf("symmetry: no transform table entry for occupied=%#04x", s.Occupied()))
		}
		transform, ok := byMove[m.Square]
		if !ok {
			panic(fmt.Sprintf("symmetry: no transform for occupied=%#04x put %s", s.Occupied(), m.Square))
		}
		next := s.MustPlay(m)
		if !transform.IsIdentity() {
			next = next.MapSquares(transform.Apply)
		}
		return next
	default:
		panic(fmt.Sprintf("symmetry: not a move: %s", m))
	}
}

// BoardNodes returns the number of canonical occupancy patterns.
func (t *Tables) BoardNodes() int {
	return len(t.free)
}

// PieceNodes returns the number of canonical piece sets.
func (t *Tables) PieceNodes() int {
	return len(t.available)
}
