package storage

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// Storage keys
const (
	keyBoardDAG = "dag/board"
	keyPieceDAG = "dag/pieces"
	keyStats    = "stats"
)

// SelfPlayStats accumulates results across self-play runs.
type SelfPlayStats struct {
	Games    int `json:"games"`
	MCTSWins int `json:"mcts_wins"`
	MTDFWins int `json:"mtdf_wins"`
	Draws    int `json:"draws"`
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the database in an explicit directory; tests use temp dirs.
func OpenAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening badger store")
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBoardDAG caches the board DAG blob.
func (s *Storage) SaveBoardDAG(blob []byte) error {
	return s.setBlob(keyBoardDAG, blob)
}

// SavePieceDAG caches the piece DAG blob.
func (s *Storage) SavePieceDAG(blob []byte) error {
	return s.setBlob(keyPieceDAG, blob)
}

// LoadDAGs returns the cached blobs. The second result is false when either
// blob is absent: invalidation is by key presence, there is no versioning.
func (s *Storage) LoadDAGs() (boards, pieces []byte, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		var inner error
		if boards, inner = getBlob(txn, keyBoardDAG); inner != nil {
			return inner
		}
		pieces, inner = getBlob(txn, keyPieceDAG)
		return inner
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, errors.Wrap(err, "loading symmetry DAG cache")
	}
	return boards, pieces, true, nil
}

func (s *Storage) setBlob(key string, blob []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
	return errors.Wrapf(err, "storing %s", key)
}

func getBlob(txn *badger.Txn, key string) ([]byte, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// LoadStats loads the self-play statistics, empty if not recorded yet.
func (s *Storage) LoadStats() (*SelfPlayStats, error) {
	stats := &SelfPlayStats{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, errors.Wrap(err, "loading stats")
}

// SaveStats saves the self-play statistics.
func (s *Storage) SaveStats(stats *SelfPlayStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "encoding stats")
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
	return errors.Wrap(err, "saving stats")
}

// RecordGame folds one finished game into the statistics. The winner name
// is the winning player's solver name, empty for a draw.
func (s *Storage) RecordGame(winner string) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.Games++
	switch winner {
	case "mcts":
		stats.MCTSWins++
	case "mtdf":
		stats.MTDFWins++
	default:
		stats.Draws++
	}
	return s.SaveStats(stats)
}
