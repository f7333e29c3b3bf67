package signals

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubScores struct {
	score float64
	err   error
	delay time.Duration
}

func (s stubScores) Score(ctx context.Context, sub Submission) (float64, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return s.score, s.err
}

type stubVerdicts struct {
	verdict Verdict
	err     error
}

func (s stubVerdicts) Check(ctx context.Context, sub Submission) (Verdict, error) {
	return s.verdict, s.err
}

func TestCollect_AllSignals(t *testing.T) {
	c := NewCollector(stubScores{score: 0.8}, stubVerdicts{verdict: VerdictHam}, time.Second)
	c.Now = func() time.Time { return time.Unix(1700000000, 0) }

	b := c.Collect(context.Background(), Submission{SiteID: "s", Body: "hi https://a.com", IPHash: "hash"}, 0)

	if b.LinkCount != 1 {
		t.Fatalf("expected 1 link, got %d", b.LinkCount)
	}
	if b.Score == nil || *b.Score != 0.8 {
		t.Fatalf("expected score 0.8, got %v", b.Score)
	}
	if b.Verdict != VerdictHam {
		t.Fatalf("expected ham, got %q", b.Verdict)
	}
	if b.IPHash != "hash" {
		t.Fatalf("ip hash must pass through unchanged")
	}
	if !b.SubmittedAt.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("unexpected submitted_at: %v", b.SubmittedAt)
	}
}

func TestCollect_ProviderFailureDegrades(t *testing.T) {
	c := NewCollector(stubScores{err: errors.New("boom")}, stubVerdicts{err: errors.New("down")}, time.Second)

	b := c.Collect(context.Background(), Submission{SiteID: "s", Body: "text"}, 0)

	if b.Score != nil {
		t.Fatalf("failed score provider must yield absent score")
	}
	if b.Verdict != VerdictUnknown {
		t.Fatalf("failed verdict provider must yield unknown, got %q", b.Verdict)
	}
}

func TestCollect_TimeoutDegradesScore(t *testing.T) {
	c := NewCollector(stubScores{score: 0.9, delay: 500 * time.Millisecond}, nil, time.Second)

	start := time.Now()
	b := c.Collect(context.Background(), Submission{SiteID: "s", Body: "x"}, 20*time.Millisecond)
	elapsed := time.Since(start)

	if b.Score != nil {
		t.Fatalf("timed-out score provider must yield absent score")
	}
	if elapsed > 300*time.Millisecond {
		t.Fatalf("collect did not respect the per-call timeout, took %v", elapsed)
	}
}

func TestCollect_NoProviders(t *testing.T) {
	c := NewCollector(nil, nil, time.Second)
	b := c.Collect(context.Background(), Submission{SiteID: "s", Body: "a b c"}, 0)
	if b.Score != nil || b.Verdict != VerdictUnknown {
		t.Fatalf("no providers must mean absent signals")
	}
}

func TestCollect_OutOfRangeScoreDropped(t *testing.T) {
	c := NewCollector(stubScores{score: 1.5}, nil, time.Second)
	b := c.Collect(context.Background(), Submission{SiteID: "s", Body: "x"}, 0)
	if b.Score != nil {
		t.Fatalf("out-of-range score must be dropped, got %v", b.Score)
	}
}
