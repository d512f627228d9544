// Package store is the document store of record: the commissions, showcase
// and users collections backed by SQLite, plus a change-notification channel
// per collection so mirrors can keep a live local copy.
package store

import (
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a point write names an identifier that does
// not exist in the collection.
var ErrNotFound = errors.New("store: record not found")

// Collection names accepted by Watch.
const (
	CollectionCommissions = "commissions"
	CollectionShowcase    = "showcase"
)

type Store struct {
	DB *sql.DB

	mu       sync.Mutex
	watchers map[string][]chan struct{}
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{
		DB:       db,
		watchers: make(map[string][]chan struct{}),
	}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
