package audit

import (
	"context"
	"errors"
	"time"

	"moderation-platform/internal/signals"
	"moderation-platform/internal/spam"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit entries.
//
// It MUST be append-only: no Update/Delete methods are provided by design.
// List exists for the admin tuning surface and for replay.

type Repository interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, siteID string, from, to time.Time, limit int) ([]Entry, error)
}

// Service records spam decisions.
//
// IMPORTANT:
// - The trail is internal-only. Do not expose entries to site visitors.
// - Callers on the submission path should treat recording as best-effort;
//   use a Recorder for that, not Record directly.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEntry = errors.New("audit: invalid entry")

func (s *Service) Record(ctx context.Context, e Entry) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.SiteID == "" {
		return ErrInvalidEntry
	}
	if e.Decision == "" {
		return ErrInvalidEntry
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// RecordDecision builds an entry from an engine decision and its inputs.
func (s *Service) RecordDecision(ctx context.Context, siteID, commentID string, d spam.Decision, reason string, b signals.Bundle) error {
	return s.Record(ctx, Entry{
		SiteID:      siteID,
		CommentID:   commentID,
		Decision:    d,
		Reason:      reason,
		LinkCount:   b.LinkCount,
		Score:       b.Score,
		Verdict:     b.Verdict,
		IPHash:      b.IPHash,
		SubmittedAt: b.SubmittedAt,
	})
}

// RecordModeratorAction records a manual approve/reject of a held comment.
func (s *Service) RecordModeratorAction(ctx context.Context, siteID, commentID, actorUserID string, d spam.Decision, reason string) error {
	return s.Record(ctx, Entry{
		SiteID:      siteID,
		CommentID:   commentID,
		Decision:    d,
		Reason:      reason,
		Verdict:     signals.VerdictUnknown,
		ActorUserID: actorUserID,
	})
}

func (s *Service) List(ctx context.Context, siteID string, from, to time.Time, limit int) ([]Entry, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	if siteID == "" {
		return nil, ErrInvalidEntry
	}
	return s.repo.List(ctx, siteID, from, to, limit)
}
