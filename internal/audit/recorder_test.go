package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"moderation-platform/internal/spam"
)

type flakyRepo struct {
	mu      sync.Mutex
	fail    bool
	entries []Entry
}

func (r *flakyRepo) Append(ctx context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("storage down")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *flakyRepo) List(ctx context.Context, siteID string, from, to time.Time, limit int) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *flakyRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func TestRecorder_PersistsEnqueuedEntries(t *testing.T) {
	repo := &flakyRepo{}
	rec := NewRecorder(NewService(repo), nil, 8)

	for i := 0; i < 5; i++ {
		rec.Enqueue(Entry{SiteID: "s", Decision: spam.DecisionAllow, Reason: spam.ReasonNoSignals})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rec.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := repo.count(); got != 5 {
		t.Fatalf("expected 5 persisted entries, got %d", got)
	}
}

func TestRecorder_AppendFailureIsSwallowed(t *testing.T) {
	repo := &flakyRepo{fail: true}
	rec := NewRecorder(NewService(repo), nil, 8)

	// Must not panic or surface anything to the caller.
	rec.Enqueue(Entry{SiteID: "s", Decision: spam.DecisionReject, Reason: spam.ReasonVerdictSpam})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rec.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRecorder_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	// A service with a nil repo makes appends fail fast; the point here is
	// only that Enqueue never blocks the caller.
	rec := NewRecorder(NewService(nil), nil, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			rec.Enqueue(Entry{SiteID: "s", Decision: spam.DecisionAllow})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = rec.Close(ctx)
}

func TestRecorder_CloseIsIdempotent(t *testing.T) {
	rec := NewRecorder(NewService(NewMemoryRepo()), nil, 4)
	ctx := context.Background()
	if err := rec.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := rec.Close(ctx); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
