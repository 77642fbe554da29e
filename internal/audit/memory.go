package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record stores a copy of entry
func (s *MemoryStore) Record(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

// Query returns entries matching filter, newest first
func (s *MemoryStore) Query(_ context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if filter.Commander != "" && e.Commander != filter.Commander {
			continue
		}
		if filter.Command != "" && e.Command != filter.Command {
			continue
		}
		if filter.Feedback != "" && e.Feedback != filter.Feedback {
			continue
		}
		if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Recent returns the n newest entries
func (s *MemoryStore) Recent(ctx context.Context, n int) ([]*Entry, error) {
	return s.Query(ctx, Filter{Limit: n})
}

// Stats counts entries per feedback type plus the total
func (s *MemoryStore) Stats(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]int64{"total": int64(len(s.entries))}
	for _, e := range s.entries {
		stats[e.Feedback]++
	}
	return stats, nil
}

// Prune removes entries older than olderThan
func (s *MemoryStore) Prune(_ context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := s.entries[:0]
	var removed int64
	for _, e := range s.entries {
		if e.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
