package audit

import (
	"context"
	"database/sql"
	"time"

	"moderation-platform/internal/signals"
	"moderation-platform/internal/spam"
)

// PostgresRepo appends entries to spam_audit_entries.
//
// The table is INSERT-only; no UPDATE/DELETE statements exist in this
// package by design.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Entry) error {
	const q = `
INSERT INTO spam_audit_entries (
  id, site_id, comment_id, decision, reason,
  link_count, score, verdict, ip_hash, submitted_at,
  actor_user_id, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`
	var submittedAt any
	if !e.SubmittedAt.IsZero() {
		submittedAt = e.SubmittedAt
	}
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.SiteID,
		nullString(e.CommentID),
		string(e.Decision),
		e.Reason,
		e.LinkCount,
		e.Score,
		string(e.Verdict),
		e.IPHash,
		submittedAt,
		nullString(e.ActorUserID),
		e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, siteID string, from, to time.Time, limit int) ([]Entry, error) {
	const q = `
SELECT id, site_id, COALESCE(comment_id, ''), decision, reason,
       link_count, score, verdict, ip_hash, COALESCE(submitted_at, created_at),
       COALESCE(actor_user_id, ''), created_at
FROM spam_audit_entries
WHERE site_id = $1 AND created_at >= $2 AND created_at < $3
ORDER BY created_at DESC
LIMIT $4
`
	rows, err := r.db.QueryContext(ctx, q, siteID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var decision, verdict string
		if err := rows.Scan(
			&e.ID,
			&e.SiteID,
			&e.CommentID,
			&decision,
			&e.Reason,
			&e.LinkCount,
			&e.Score,
			&verdict,
			&e.IPHash,
			&e.SubmittedAt,
			&e.ActorUserID,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Decision = spam.Decision(decision)
		e.Verdict = signals.Verdict(verdict)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
