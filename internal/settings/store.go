package settings

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalid = errors.New("settings: invalid value")
)

// Repository is the persistence contract for settings rows.
//
// Get returns (Settings{}, false, nil) when no row exists for the site.
// Put overwrites the whole row (last-write-wins).
type Repository interface {
	Get(ctx context.Context, siteID string) (Settings, bool, error)
	Put(ctx context.Context, s Settings) error
}

// Store serves settings snapshots to the decision pipeline and applies
// admin updates.
type Store struct {
	repo  Repository
	clock func() time.Time
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, clock: time.Now}
}

// Get returns the current settings for a site, or defaults when the site has
// never been provisioned.
func (s *Store) Get(ctx context.Context, siteID string) (Settings, error) {
	if siteID == "" {
		return Settings{}, fmt.Errorf("%w: site_id required", ErrInvalid)
	}
	if s.repo == nil {
		return Settings{}, errors.New("settings: repository not configured")
	}
	cur, ok, err := s.repo.Get(ctx, siteID)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Defaults(siteID), nil
	}
	return cur, nil
}

// Update merges p over the current row and persists the result.
//
// All provided fields are validated before anything is written; an invalid
// field rejects the whole update with no partial mutation. Concurrent updates
// are last-write-wins on the whole row.
func (s *Store) Update(ctx context.Context, siteID string, p Patch) (Settings, error) {
	if err := validatePatch(p); err != nil {
		return Settings{}, err
	}

	cur, err := s.Get(ctx, siteID)
	if err != nil {
		return Settings{}, err
	}

	next := applyPatch(cur, p)
	next.UpdatedAt = s.clock().UTC()

	if err := s.repo.Put(ctx, next); err != nil {
		return Settings{}, err
	}
	return next, nil
}

// Preview validates p and returns the settings that Update would produce,
// without persisting anything. Used for audit replay dry-runs.
func (s *Store) Preview(ctx context.Context, siteID string, p Patch) (Settings, error) {
	if err := validatePatch(p); err != nil {
		return Settings{}, err
	}
	cur, err := s.Get(ctx, siteID)
	if err != nil {
		return Settings{}, err
	}
	return applyPatch(cur, p), nil
}

func validatePatch(p Patch) error {
	if p.RiskThreshold != nil && (*p.RiskThreshold < 0 || *p.RiskThreshold > 1) {
		return fmt.Errorf("%w: risk_threshold must be in [0,1], got %v", ErrInvalid, *p.RiskThreshold)
	}
	if p.LinkCountLimit != nil && *p.LinkCountLimit < 0 {
		return fmt.Errorf("%w: link_count_limit must be >= 0, got %d", ErrInvalid, *p.LinkCountLimit)
	}
	if p.TimeoutMs != nil && *p.TimeoutMs < 0 {
		return fmt.Errorf("%w: timeout_ms must be >= 0, got %d", ErrInvalid, *p.TimeoutMs)
	}
	return nil
}

func applyPatch(cur Settings, p Patch) Settings {
	out := cur
	if p.IsEnabled != nil {
		out.IsEnabled = *p.IsEnabled
	}
	if p.RiskThreshold != nil {
		out.RiskThreshold = *p.RiskThreshold
	}
	if p.LinkCountLimit != nil {
		out.LinkCountLimit = *p.LinkCountLimit
	}
	if p.HeldMessage != nil {
		out.HeldMessage = *p.HeldMessage
	}
	if p.RejectedMessage != nil {
		out.RejectedMessage = *p.RejectedMessage
	}
	if p.ModelID != nil {
		out.ModelID = *p.ModelID
	}
	if p.TrainingActiveBatch != nil {
		out.TrainingActiveBatch = *p.TrainingActiveBatch
	}
	if p.TimeoutMs != nil {
		out.TimeoutMs = *p.TimeoutMs
	}
	return out
}
