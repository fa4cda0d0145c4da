package memory

import (
	"sync"

	"rssmerge/domain"
)

// Store keeps the latest Feed per source in memory. Entries are replaced
// wholesale; each source is expected to have a single writer.
type Store struct {
	mu    sync.RWMutex
	feeds map[domain.Source]domain.Feed
}

var _ domain.FeedStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{feeds: make(map[domain.Source]domain.Feed)}
}

func (s *Store) Publish(source domain.Source, feed domain.Feed) {
	if feed == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds[source] = feed
}

func (s *Store) Get(source domain.Source) (domain.Feed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.feeds[source]
	return f, ok
}

// Snapshot returns a copy of every entry. Feeds are immutable values, so
// the copy is shallow.
func (s *Store) Snapshot() map[domain.Source]domain.Feed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.Source]domain.Feed, len(s.feeds))
	for k, v := range s.feeds {
		out[k] = v
	}
	return out
}
