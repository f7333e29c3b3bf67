package reporting

import (
	"context"
	"errors"
	"time"

	"moderation-platform/internal/audit"
	"moderation-platform/internal/signals"
	"moderation-platform/internal/spam"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting.
//
// IMPORTANT:
// - Methods must enforce site filtering.
// - Implementations should query the immutable audit trail, never the
//   mutable comments table, so numbers are stable over time.

// The signature matches audit.Repository's List so any audit repository
// can back reporting without an adapter.
type Repository interface {
	List(ctx context.Context, siteID string, from, to time.Time, limit int) ([]audit.Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

const summaryScanLimit = 10000

func (s *Service) DecisionSummary(ctx context.Context, req DecisionSummaryRequest) (DecisionSummary, error) {
	if req.SiteID == "" {
		return DecisionSummary{}, ErrInvalidRequest
	}
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return DecisionSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return DecisionSummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.List(ctx, req.SiteID, req.Range.From, req.Range.To, summaryScanLimit)
	if err != nil {
		return DecisionSummary{}, err
	}

	out := DecisionSummary{SiteID: req.SiteID, ByReason: make(map[string]int)}
	for _, e := range rows {
		if e.ActorUserID != "" {
			out.ModeratorActions++
			continue
		}
		out.Total++
		switch e.Decision {
		case spam.DecisionAllow:
			out.Allowed++
		case spam.DecisionHold:
			out.Held++
		case spam.DecisionReject:
			out.Rejected++
		}
		out.ByReason[e.Reason]++
		if e.Score == nil {
			out.ScoreDegraded++
		}
		if e.Verdict == signals.VerdictUnknown {
			out.VerdictDegraded++
		}
	}
	return out, nil
}
