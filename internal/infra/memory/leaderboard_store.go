package memory

import (
	"sort"
	"sync"

	"pixel-trivia-service/internal/domain"
)

// LeaderboardStore is an in-memory implementation of app.LeaderboardStore.
// Entries are append-only and never evicted; the canonical order is computed
// on every read, not cached.
type LeaderboardStore struct {
	mu      sync.RWMutex
	entries []domain.PlayerScore
}

// NewLeaderboardStore creates a store pre-populated with seed entries.
func NewLeaderboardStore(seed ...domain.PlayerScore) *LeaderboardStore {
	store := &LeaderboardStore{}
	store.entries = append(store.entries, seed...)
	return store
}

// Add appends a completed-session entry.
func (s *LeaderboardStore) Add(entry domain.PlayerScore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// List returns entries sorted by score descending, filtered by category when
// categoryID is non-empty. The sort is stable: equal scores keep insertion
// order.
func (s *LeaderboardStore) List(categoryID string) []domain.PlayerScore {
	s.mu.RLock()
	filtered := make([]domain.PlayerScore, 0, len(s.entries))
	for _, entry := range s.entries {
		if categoryID == "" || entry.CategoryID == categoryID {
			filtered = append(filtered, entry)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})
	return filtered
}
