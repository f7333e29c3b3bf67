package comments

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"moderation-platform/pkg/utils"
)

// PostgresRepo persists comments.
//
// Assumed table:
//
//	comments (
//	  id TEXT PRIMARY KEY, site_id TEXT, post_id TEXT,
//	  author_name TEXT, author_email TEXT, body TEXT,
//	  status TEXT, ip_hash TEXT,
//	  created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ
//	)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, c Comment) error {
	const q = `
INSERT INTO comments (
  id, site_id, post_id, author_name, author_email, body, status, ip_hash, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`
	_, err := r.db.ExecContext(ctx, q,
		c.ID,
		c.SiteID,
		c.PostID,
		c.AuthorName,
		c.AuthorEmail,
		c.Body,
		string(c.Status),
		c.IPHash,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, siteID, id string) (Comment, error) {
	const q = `
SELECT id, site_id, post_id, author_name, author_email, body, status, ip_hash, created_at, updated_at
FROM comments
WHERE site_id = $1 AND id = $2
`
	var c Comment
	var status string
	if err := r.db.QueryRowContext(ctx, q, siteID, id).Scan(
		&c.ID,
		&c.SiteID,
		&c.PostID,
		&c.AuthorName,
		&c.AuthorEmail,
		&c.Body,
		&status,
		&c.IPHash,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Comment{}, ErrNotFound
		}
		return Comment{}, err
	}
	c.Status = Status(status)
	return c, nil
}

func (r *PostgresRepo) ListByStatus(ctx context.Context, siteID string, status Status, limit int) ([]Comment, error) {
	const q = `
SELECT id, site_id, post_id, author_name, author_email, body, status, ip_hash, created_at, updated_at
FROM comments
WHERE site_id = $1 AND status = $2
ORDER BY created_at DESC
LIMIT $3
`
	rows, err := r.db.QueryContext(ctx, q, siteID, string(status), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		var c Comment
		var st string
		if err := rows.Scan(
			&c.ID,
			&c.SiteID,
			&c.PostID,
			&c.AuthorName,
			&c.AuthorEmail,
			&c.Body,
			&st,
			&c.IPHash,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		c.Status = Status(st)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) TransitionStatus(ctx context.Context, siteID, id string, from, to Status, now time.Time) error {
	// Row lock then conditional update: a concurrent moderator sees ErrNotHeld
	// instead of silently overwriting the first transition.
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const sel = `
SELECT status FROM comments
WHERE site_id = $1 AND id = $2
FOR UPDATE
`
		var current string
		if err := tx.QueryRowContext(ctx, sel, siteID, id).Scan(&current); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if Status(current) != from {
			return ErrNotHeld
		}

		const upd = `
UPDATE comments SET status = $3, updated_at = $4
WHERE site_id = $1 AND id = $2
`
		_, err := tx.ExecContext(ctx, upd, siteID, id, string(to), now)
		return err
	})
}
