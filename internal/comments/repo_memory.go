package comments

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory comment repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu   sync.Mutex
	rows map[string]Comment
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{rows: make(map[string]Comment)} }

func (r *MemoryRepo) Insert(ctx context.Context, c Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[c.SiteID+"/"+c.ID] = c
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, siteID, id string) (Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[siteID+"/"+id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) ListByStatus(ctx context.Context, siteID string, status Status, limit int) ([]Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Comment
	for _, c := range r.rows {
		if c.SiteID != siteID || c.Status != status {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepo) TransitionStatus(ctx context.Context, siteID, id string, from, to Status, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[siteID+"/"+id]
	if !ok {
		return ErrNotFound
	}
	if c.Status != from {
		return ErrNotHeld
	}
	c.Status = to
	c.UpdatedAt = now
	r.rows[siteID+"/"+id] = c
	return nil
}
