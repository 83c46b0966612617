package symmetry

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"

	"github.com/giovanni-poggio/quarto/internal/game"
)

// The DAG tables are cached as opaque gob blobs, one per DAG, so a process
// can skip the BFS rebuild. Invalidation is by blob presence only.

type boardBlob struct {
	Free       map[uint16][]game.Square
	Transforms map[uint16]map[game.Square]Transform
}

type pieceBlob struct {
	Available map[uint16][]game.Piece
	Mappings  map[uint16]map[game.Piece]Mapping
}

// EncodeBoards serializes the board DAG tables.
func (t *Tables) EncodeBoards() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(boardBlob{Free: t.free, Transforms: t.transforms}); err != nil {
		return nil, errors.Wrap(err, "encoding board tables")
	}
	return buf.Bytes(), nil
}

// EncodePieces serializes the piece DAG tables.
func (t *Tables) EncodePieces() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(pieceBlob{Available: t.available, Mappings: t.mappings}); err != nil {
		return nil, errors.Wrap(err, "encoding piece tables")
	}
	return buf.Bytes(), nil
}

// FromBlobs reconstructs Tables from the two cached blobs.
func FromBlobs(boards, pieces []byte) (*Tables, error) {
	var bb boardBlob
	if err := gob.NewDecoder(bytes.NewReader(boards)).Decode(&bb); err != nil {
		return nil, errors.Wrap(err, "decoding board tables")
	}
	var pb pieceBlob
	if err := gob.NewDecoder(bytes.NewReader(pieces)).Decode(&pb); err != nil {
		return nil, errors.Wrap(err, "decoding piece tables")
	}
	return &Tables{
		free:       bb.Free,
		transforms: bb.Transforms,
		available:  pb.Available,
		mappings:   pb.Mappings,
	}, nil
}
