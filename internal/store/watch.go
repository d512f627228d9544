package store

import (
	"context"
)

// Watch registers a change listener for one collection. The returned channel
// receives a signal after every committed write; signals are coalesced, so a
// listener that is busy sees at most one pending notification and should
// re-read the full collection when it fires. The registration is released
// when ctx ends.
func (s *Store) Watch(ctx context.Context, collection string) <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers[collection] = append(s.watchers[collection], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		list := s.watchers[collection]
		for i, w := range list {
			if w == ch {
				s.watchers[collection] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}()

	return ch
}

// notify wakes every watcher of the collection. Non-blocking: a watcher with
// a pending signal is left alone.
func (s *Store) notify(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.watchers[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
