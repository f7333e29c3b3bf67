package audit

import (
	"time"

	"moderation-platform/internal/signals"
	"moderation-platform/internal/spam"
)

// Entry is an immutable, append-only record of one spam decision.
//
// Invariants:
// - Entries are never updated or deleted; the trail exists for threshold
//   tuning and compliance, and replay requires the exact inputs.
// - site_id is required for tenancy isolation.
// - The signal snapshot holds the exact values the engine saw, not a
//   reference that could drift.
//
// Storage recommendation (Postgres):
// - Table spam_audit_entries with an INSERT-only policy.
// - Optional: trigger to prevent UPDATE/DELETE.
// - Optional: partition by created_at for retention.

type Entry struct {
	ID     string `json:"id" db:"id"`
	SiteID string `json:"site_id" db:"site_id"`

	// CommentID correlates the entry with the persisted comment, when the
	// decision let one be persisted. Optional for admin actions.
	CommentID string `json:"comment_id,omitempty" db:"comment_id"`

	Decision spam.Decision `json:"decision" db:"decision"`
	Reason   string        `json:"reason" db:"reason"`

	// Signal snapshot.
	LinkCount   int             `json:"link_count" db:"link_count"`
	Score       *float64        `json:"score,omitempty" db:"score"`
	Verdict     signals.Verdict `json:"verdict" db:"verdict"`
	IPHash      string          `json:"ip_hash" db:"ip_hash"`
	SubmittedAt time.Time       `json:"submitted_at" db:"submitted_at"`

	// ActorUserID is set when the decision came from a moderator action
	// rather than the engine.
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Bundle reconstructs the signal bundle the engine evaluated, for replay.
func (e Entry) Bundle() signals.Bundle {
	return signals.Bundle{
		LinkCount:   e.LinkCount,
		Score:       e.Score,
		Verdict:     e.Verdict,
		IPHash:      e.IPHash,
		SubmittedAt: e.SubmittedAt,
	}
}
