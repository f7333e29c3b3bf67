package settings

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory settings repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu   sync.Mutex
	rows map[string]Settings
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{rows: make(map[string]Settings)} }

func (r *MemoryRepo) Get(ctx context.Context, siteID string) (Settings, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[siteID]
	return s, ok, nil
}

func (r *MemoryRepo) Put(ctx context.Context, s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.SiteID] = s
	return nil
}
