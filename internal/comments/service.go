package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"moderation-platform/internal/audit"
	"moderation-platform/internal/settings"
	"moderation-platform/internal/signals"
	"moderation-platform/internal/spam"
)

var (
	ErrInvalidRequest = errors.New("comments: invalid request")
	ErrRateLimited    = errors.New("comments: submission rate limited")
	ErrNotFound       = errors.New("comments: not found")
	ErrNotHeld        = errors.New("comments: comment is not held")
)

// Repository is the persistence contract for comments.
//
// TransitionStatus is the atomic check-and-set behind moderation: it applies
// the transition only when the comment's current status equals from, returning
// ErrNotFound for a missing comment and ErrNotHeld on a status mismatch.
type Repository interface {
	Insert(ctx context.Context, c Comment) error
	GetByID(ctx context.Context, siteID, id string) (Comment, error)
	ListByStatus(ctx context.Context, siteID string, status Status, limit int) ([]Comment, error)
	TransitionStatus(ctx context.Context, siteID, id string, from, to Status, now time.Time) error
}

// RateLimiter bounds submission throughput per submitter.
// Implementations live alongside Redis wiring; see NewRedisLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Service runs the spam-decision pipeline for incoming comments and owns the
// moderation queue.
//
// Pipeline per submission: rate limit -> settings snapshot -> collect signals
// -> decide -> persist (allow/hold) -> hand entry to the audit recorder.
// The settings snapshot is taken once per submission so a concurrent admin
// update cannot be observed mid-decision.
type Service struct {
	repo      Repository
	store     *settings.Store
	collector *signals.Collector
	recorder  *audit.Recorder
	auditSvc  *audit.Service
	limiter   RateLimiter

	newID func() string
	clock func() time.Time
}

func NewService(repo Repository, store *settings.Store, collector *signals.Collector, recorder *audit.Recorder, auditSvc *audit.Service, limiter RateLimiter, newID func() string) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		collector: collector,
		recorder:  recorder,
		auditSvc:  auditSvc,
		limiter:   limiter,
		newID:     newID,
		clock:     time.Now,
	}
}

type SubmitRequest struct {
	SiteID      string
	PostID      string
	AuthorName  string
	AuthorEmail string
	Body        string

	// IPHash must be precomputed by the HTTP layer (see utils.HashIP).
	IPHash string

	CaptchaToken string
}

type SubmitResult struct {
	CommentID string        `json:"comment_id,omitempty"`
	Decision  spam.Decision `json:"decision"`
	Status    Status        `json:"status,omitempty"`

	// Message is the site-configured text shown to the submitter for held
	// and rejected outcomes. Empty for published.
	Message string `json:"message,omitempty"`
}

// Submit evaluates and stores one comment submission.
//
// Enrichment failures never block submission; a limiter failure fails open
// for the same reason. Audit recording is fire-and-forget: the result does
// not depend on it.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	if req.SiteID == "" || req.Body == "" || req.AuthorName == "" {
		return SubmitResult{}, ErrInvalidRequest
	}

	if s.limiter != nil && req.IPHash != "" {
		ok, err := s.limiter.Allow(ctx, req.SiteID+":"+req.IPHash)
		switch {
		case err != nil:
			// Fail open: a limiter outage must not block legitimate comments.
			slog.Debug("rate limiter unavailable", "site_id", req.SiteID, "err", err)
		case !ok:
			return SubmitResult{}, ErrRateLimited
		}
	}

	cfg, err := s.store.Get(ctx, req.SiteID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("comments: settings lookup failed: %w", err)
	}

	bundle := s.collector.Collect(ctx, signals.Submission{
		SiteID:       req.SiteID,
		Body:         req.Body,
		AuthorName:   req.AuthorName,
		AuthorEmail:  req.AuthorEmail,
		IPHash:       req.IPHash,
		CaptchaToken: req.CaptchaToken,
	}, time.Duration(cfg.TimeoutMs)*time.Millisecond)

	decision, reason := spam.Decide(bundle, cfg)

	res := SubmitResult{Decision: decision}
	switch decision {
	case spam.DecisionReject:
		res.Status = StatusRejected
		res.Message = cfg.RejectedMessage
	case spam.DecisionHold, spam.DecisionAllow:
		now := s.clock().UTC()
		c := Comment{
			ID:          s.newID(),
			SiteID:      req.SiteID,
			PostID:      req.PostID,
			AuthorName:  req.AuthorName,
			AuthorEmail: req.AuthorEmail,
			Body:        req.Body,
			Status:      StatusPublished,
			IPHash:      req.IPHash,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if decision == spam.DecisionHold {
			c.Status = StatusHeld
			res.Message = cfg.HeldMessage
		}
		if err := s.repo.Insert(ctx, c); err != nil {
			return SubmitResult{}, fmt.Errorf("comments: insert failed: %w", err)
		}
		res.CommentID = c.ID
		res.Status = c.Status
	}

	if s.recorder != nil {
		s.recorder.Enqueue(audit.Entry{
			SiteID:      req.SiteID,
			CommentID:   res.CommentID,
			Decision:    decision,
			Reason:      reason,
			LinkCount:   bundle.LinkCount,
			Score:       bundle.Score,
			Verdict:     bundle.Verdict,
			IPHash:      bundle.IPHash,
			SubmittedAt: bundle.SubmittedAt,
		})
	}

	return res, nil
}

// ListByStatus serves the admin moderation queue.
func (s *Service) ListByStatus(ctx context.Context, siteID string, status Status, limit int) ([]Comment, error) {
	if siteID == "" {
		return nil, ErrInvalidRequest
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByStatus(ctx, siteID, status, limit)
}

// Approve publishes a held comment. The manual decision is audited
// synchronously; a moderator action that cannot be audited still applies,
// with the failure logged by the audit layer contract (best-effort).
func (s *Service) Approve(ctx context.Context, siteID, commentID, actorUserID string) (Comment, error) {
	return s.moderate(ctx, siteID, commentID, actorUserID, StatusPublished, spam.DecisionAllow, "moderator approved")
}

// Reject marks a held comment rejected.
func (s *Service) Reject(ctx context.Context, siteID, commentID, actorUserID string) (Comment, error) {
	return s.moderate(ctx, siteID, commentID, actorUserID, StatusRejected, spam.DecisionReject, "moderator rejected")
}

func (s *Service) moderate(ctx context.Context, siteID, commentID, actorUserID string, status Status, d spam.Decision, reason string) (Comment, error) {
	if siteID == "" || commentID == "" {
		return Comment{}, ErrInvalidRequest
	}
	c, err := s.repo.GetByID(ctx, siteID, commentID)
	if err != nil {
		return Comment{}, err
	}
	if c.Status != StatusHeld {
		return Comment{}, ErrNotHeld
	}

	// The repository re-checks the held status inside the write, so two racing
	// moderators cannot both apply a transition.
	now := s.clock().UTC()
	if err := s.repo.TransitionStatus(ctx, siteID, commentID, StatusHeld, status, now); err != nil {
		return Comment{}, err
	}
	c.Status = status
	c.UpdatedAt = now

	if s.auditSvc != nil {
		// Best-effort: the moderation action stands even if audit fails.
		if err := s.auditSvc.RecordModeratorAction(ctx, siteID, commentID, actorUserID, d, reason); err != nil {
			slog.Warn("moderation audit failed", "site_id", siteID, "comment_id", commentID, "err", err)
		}
	}
	return c, nil
}
