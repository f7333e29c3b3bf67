package settings

import (
	"context"
	"errors"
	"testing"
)

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestGet_ReturnsDefaultsForUnprovisionedSite(t *testing.T) {
	store := NewStore(NewMemoryRepo())

	s, err := store.Get(context.Background(), "site-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !s.IsEnabled {
		t.Fatalf("default must be enabled")
	}
	if s.RiskThreshold != 0.5 {
		t.Fatalf("default risk threshold 0.5, got %v", s.RiskThreshold)
	}
	if s.LinkCountLimit != 2 {
		t.Fatalf("default link count limit 2, got %d", s.LinkCountLimit)
	}
}

func TestUpdate_MergesPartialFields(t *testing.T) {
	store := NewStore(NewMemoryRepo())

	_, err := store.Update(context.Background(), "site-1", Patch{RiskThreshold: floatPtr(0.7)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s, err := store.Update(context.Background(), "site-1", Patch{LinkCountLimit: intPtr(4), HeldMessage: strPtr("held!")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Earlier update survives a later disjoint patch.
	if s.RiskThreshold != 0.7 {
		t.Fatalf("expected threshold 0.7 preserved, got %v", s.RiskThreshold)
	}
	if s.LinkCountLimit != 4 || s.HeldMessage != "held!" {
		t.Fatalf("patch not applied: %+v", s)
	}
}

func TestUpdate_InvalidThresholdRejectedWithoutPartialWrite(t *testing.T) {
	store := NewStore(NewMemoryRepo())

	if _, err := store.Update(context.Background(), "site-1", Patch{RiskThreshold: floatPtr(0.3)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Invalid threshold together with an otherwise valid field: nothing may be written.
	_, err := store.Update(context.Background(), "site-1", Patch{
		RiskThreshold:  floatPtr(1.5),
		LinkCountLimit: intPtr(9),
	})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	s, err := store.Get(context.Background(), "site-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.RiskThreshold != 0.3 {
		t.Fatalf("prior threshold must be unchanged, got %v", s.RiskThreshold)
	}
	if s.LinkCountLimit != 2 {
		t.Fatalf("link count limit must be unchanged, got %d", s.LinkCountLimit)
	}
}

func TestUpdate_RejectsNegativeLimits(t *testing.T) {
	store := NewStore(NewMemoryRepo())
	if _, err := store.Update(context.Background(), "s", Patch{LinkCountLimit: intPtr(-1)}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative link count limit, got %v", err)
	}
	if _, err := store.Update(context.Background(), "s", Patch{TimeoutMs: intPtr(-5)}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative timeout, got %v", err)
	}
}

func TestUpdate_LastWriteWinsOnWholeRow(t *testing.T) {
	// Row-level last-write-wins is the documented concurrency contract:
	// two racing updates do not merge; whichever Put lands last defines the
	// whole row. Simulated sequentially since the loser's snapshot was taken
	// before the winner's write.
	repo := NewMemoryRepo()
	store := NewStore(repo)
	ctx := context.Background()

	base, err := store.Get(ctx, "site-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Writer A: read base, set threshold.
	a := applyPatch(base, Patch{RiskThreshold: floatPtr(0.9)})
	if err := repo.Put(ctx, a); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Writer B raced A: also read base, sets only the limit, lands last.
	b := applyPatch(base, Patch{LinkCountLimit: intPtr(7)})
	if err := repo.Put(ctx, b); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := store.Get(ctx, "site-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.LinkCountLimit != 7 {
		t.Fatalf("expected B's limit, got %d", got.LinkCountLimit)
	}
	if got.RiskThreshold != 0.5 {
		t.Fatalf("A's threshold is lost by design (whole-row LWW), got %v", got.RiskThreshold)
	}
}

func TestPreview_DoesNotPersist(t *testing.T) {
	store := NewStore(NewMemoryRepo())

	p, err := store.Preview(context.Background(), "site-1", Patch{IsEnabled: boolPtr(false)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.IsEnabled {
		t.Fatalf("preview must reflect the patch")
	}

	s, err := store.Get(context.Background(), "site-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !s.IsEnabled {
		t.Fatalf("preview must not persist")
	}
}
