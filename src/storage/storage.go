// Package storage keeps finished games and their totals in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cellchess/src/base"
	"cellchess/src/logic/history"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	keyStats      = "stats"
	keyGamePrefix = "game/"
)

// Record is one finished game.
type Record struct {
	ID       uuid.UUID       `json:"id"`
	State    base.GameState  `json:"state"`
	Winner   *base.Color     `json:"winner,omitempty"`
	Plies    int             `json:"plies"`
	Moves    []history.Entry `json:"moves"`
	Finished time.Time       `json:"finished"`
}

// Stats are totals over every recorded game.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Stalemates  int `json:"stalemates"`
	LongestGame int `json:"longest_game"`
}

// Result is what a front end knows when a game ends.
type Result struct {
	State  base.GameState
	Winner *base.Color
	Moves  []history.Entry
}

// Storage wraps BadgerDB
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory keeps everything in memory; nothing survives Close.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordGame stores the game and updates the totals in one transaction.
func (s *Storage) RecordGame(res Result) (Record, error) {
	if !res.State.Terminal() {
		return Record{}, fmt.Errorf("record game: state is %s", res.State)
	}
	rec := Record{
		ID:       uuid.New(),
		State:    res.State,
		Winner:   res.Winner,
		Plies:    len(res.Moves),
		Moves:    res.Moves,
		Finished: time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return Record{}, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.GamesPlayed++
		switch {
		case rec.State == base.Stalemate:
			stats.Stalemates++
		case rec.Winner != nil && *rec.Winner == base.White:
			stats.WhiteWins++
		case rec.Winner != nil:
			stats.BlackWins++
		}
		if rec.Plies > stats.LongestGame {
			stats.LongestGame = rec.Plies
		}
		sdata, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(keyGamePrefix+rec.ID.String()), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), sdata)
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// LoadStats returns empty stats if nothing was recorded yet.
func (s *Storage) LoadStats() (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*Stats, error) {
	stats := &Stats{}
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}

// Game loads one record by id.
func (s *Storage) Game(id uuid.UUID) (*Record, error) {
	rec := &Record{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyGamePrefix + id.String()))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Games lists every record, in key order.
func (s *Storage) Games() ([]Record, error) {
	out := make([]Record, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(keyGamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

// WhiteWinRate is the share of decisive games won by White, 0-100.
func (s *Stats) WhiteWinRate() float64 {
	decisive := s.WhiteWins + s.BlackWins
	if decisive == 0 {
		return 0
	}
	return float64(s.WhiteWins) / float64(decisive) * 100
}
