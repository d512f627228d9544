// Package commissions keeps a live local mirror of the commissions
// collection. The mirror is read-only from the UI's point of view: mutations
// write through to the collection and the snapshot changes only when the
// collection's change notification redelivers the full set. Callers must not
// expect a write to be visible in the very next read.
package commissions

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pinky890114/Xianluo/internal/models"
	"github.com/pinky890114/Xianluo/internal/status"
	"github.com/pinky890114/Xianluo/internal/store"
)

// Collection is the slice of the document store the mirror depends on.
// *store.Store satisfies it.
type Collection interface {
	ListCommissions() ([]models.Commission, error)
	InsertCommission(c *models.Commission) (string, error)
	PatchCommission(id string, patch models.CommissionPatch, now time.Time) error
	DeleteCommission(id string) error
	Watch(ctx context.Context, collection string) <-chan struct{}
}

type Store struct {
	col Collection
	now func() time.Time

	mu          sync.RWMutex
	commissions []models.Commission
	loaded      bool
	running     bool
	listeners   []chan struct{}
}

func NewStore(col Collection) *Store {
	return &Store{col: col, now: time.Now}
}

// Subscribe loads the full collection, marks the store loaded, and keeps the
// snapshot current until ctx ends. Calling Subscribe while a subscription is
// already running is a no-op; after the previous ctx is cancelled a fresh
// Subscribe starts over.
func (s *Store) Subscribe(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	changes := s.col.Watch(ctx, store.CollectionCommissions)

	if err := s.refresh(); err != nil {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				s.mu.Lock()
				s.running = false
				s.mu.Unlock()
				return
			case <-changes:
				if err := s.refresh(); err != nil {
					// Keep the previous snapshot; the next delivery retries.
					slog.Error("Failed to refresh commission mirror", "error", err)
				}
			}
		}
	}()

	return nil
}

// refresh replaces the whole snapshot with a fresh read, never patches it.
func (s *Store) refresh() error {
	list, err := s.col.ListCommissions()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.commissions = list
	s.loaded = true
	listeners := make([]chan struct{}, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, ch := range listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

// Commissions returns a copy of the current snapshot, ordered newest first.
func (s *Store) Commissions() []models.Commission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Commission, len(s.commissions))
	copy(out, s.commissions)
	return out
}

// Loaded reports whether the first snapshot has been delivered.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Watch re-exposes snapshot-change signals, coalesced, for consumers such as
// the admin live feed. Released when ctx ends.
func (s *Store) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.listeners = append(s.listeners, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l == ch {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
	}()

	return ch
}

// Create stamps timestamps and the default initial status, then writes
// through. The new record appears in the snapshot only after the next
// delivery. Field validation is the form layer's job, not ours.
func (s *Store) Create(c models.Commission) (string, error) {
	now := s.now()
	c.CreatedAt = now
	c.LastUpdated = now
	if c.Status == "" {
		c.Status = status.Default
	}
	return s.col.InsertCommission(&c)
}

// UpdateStatus writes the new status plus a refreshed last-updated stamp.
// The caller surfaces any error to the user; the mirror is left untouched.
func (s *Store) UpdateStatus(id, newStatus string) error {
	return s.col.PatchCommission(id, models.CommissionPatch{Status: &newStatus}, s.now())
}

// Update applies a typed partial patch. The patch cannot express ID or
// CreatedAt, so those survive every edit.
func (s *Store) Update(id string, patch models.CommissionPatch) error {
	return s.col.PatchCommission(id, patch, s.now())
}

// Delete removes the record from the collection.
func (s *Store) Delete(id string) error {
	return s.col.DeleteCommission(id)
}
