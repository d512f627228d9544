// Package showcase mirrors the gallery collection. Showcase items are create
// and delete only; the same live-subscription discipline as the commission
// mirror applies.
package showcase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pinky890114/Xianluo/internal/models"
	"github.com/pinky890114/Xianluo/internal/store"
)

type Collection interface {
	ListShowcase() ([]models.ShowcaseItem, error)
	InsertShowcaseItem(url string, now time.Time) (string, error)
	DeleteShowcaseItem(id string) error
	Watch(ctx context.Context, collection string) <-chan struct{}
}

type Store struct {
	col Collection
	now func() time.Time

	mu      sync.RWMutex
	items   []models.ShowcaseItem
	loaded  bool
	running bool
}

func NewStore(col Collection) *Store {
	return &Store{col: col, now: time.Now}
}

func (s *Store) Subscribe(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	changes := s.col.Watch(ctx, store.CollectionShowcase)

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
					slog.Error("Failed to refresh showcase mirror", "error", err)
				}
			}
		}
	}()

	return nil
}

func (s *Store) refresh() error {
	list, err := s.col.ListShowcase()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = list
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *Store) Items() []models.ShowcaseItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ShowcaseItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Add records an already-uploaded image URL in the gallery.
func (s *Store) Add(url string) (string, error) {
	return s.col.InsertShowcaseItem(url, s.now())
}

func (s *Store) Remove(id string) error {
	return s.col.DeleteShowcaseItem(id)
}
