package settings

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists one settings row per site.
//
// Assumed table:
//
//	spam_settings (
//	  site_id TEXT PRIMARY KEY,
//	  is_enabled BOOLEAN, risk_threshold DOUBLE PRECISION,
//	  link_count_limit INT, held_message TEXT, rejected_message TEXT,
//	  model_id TEXT, training_active_batch TEXT, timeout_ms INT,
//	  updated_at TIMESTAMPTZ
//	)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Get(ctx context.Context, siteID string) (Settings, bool, error) {
	const q = `
SELECT site_id, is_enabled, risk_threshold, link_count_limit,
       held_message, rejected_message, model_id, training_active_batch,
       timeout_ms, updated_at
FROM spam_settings
WHERE site_id = $1
`
	var s Settings
	if err := r.db.QueryRowContext(ctx, q, siteID).Scan(
		&s.SiteID,
		&s.IsEnabled,
		&s.RiskThreshold,
		&s.LinkCountLimit,
		&s.HeldMessage,
		&s.RejectedMessage,
		&s.ModelID,
		&s.TrainingActiveBatch,
		&s.TimeoutMs,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settings{}, false, nil
		}
		return Settings{}, false, err
	}
	return s, true, nil
}

func (r *PostgresRepo) Put(ctx context.Context, s Settings) error {
	// Whole-row upsert: last write wins across concurrent admin updates.
	const q = `
INSERT INTO spam_settings (
  site_id, is_enabled, risk_threshold, link_count_limit,
  held_message, rejected_message, model_id, training_active_batch,
  timeout_ms, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (site_id)
DO UPDATE SET is_enabled = EXCLUDED.is_enabled,
              risk_threshold = EXCLUDED.risk_threshold,
              link_count_limit = EXCLUDED.link_count_limit,
              held_message = EXCLUDED.held_message,
              rejected_message = EXCLUDED.rejected_message,
              model_id = EXCLUDED.model_id,
              training_active_batch = EXCLUDED.training_active_batch,
              timeout_ms = EXCLUDED.timeout_ms,
              updated_at = EXCLUDED.updated_at
`
	_, err := r.db.ExecContext(ctx, q,
		s.SiteID,
		s.IsEnabled,
		s.RiskThreshold,
		s.LinkCountLimit,
		s.HeldMessage,
		s.RejectedMessage,
		s.ModelID,
		s.TrainingActiveBatch,
		s.TimeoutMs,
		s.UpdatedAt,
	)
	return err
}
