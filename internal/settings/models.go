package settings

import "time"

// Settings is the site-scoped spam engine configuration.
//
// Storage invariant: at most one row per site (overwrite semantics, no
// history). The row is read on every decision and written only through the
// authenticated admin path. Concurrent admin updates are last-write-wins on
// the whole row; staleness across replicas is acceptable because settings
// changes are rare.
type Settings struct {
	SiteID string `json:"site_id" db:"site_id"`

	IsEnabled bool `json:"is_enabled" db:"is_enabled"`

	// RiskThreshold is in [0,1]. The engine holds a comment when
	// (1 - trust score) >= RiskThreshold.
	RiskThreshold float64 `json:"risk_threshold" db:"risk_threshold"`

	// LinkCountLimit is the maximum number of links tolerated in a comment
	// body. Strictly more than this holds the comment.
	LinkCountLimit int `json:"link_count_limit" db:"link_count_limit"`

	// HeldMessage and RejectedMessage are shown to the submitter.
	HeldMessage     string `json:"held_message" db:"held_message"`
	RejectedMessage string `json:"rejected_message" db:"rejected_message"`

	// ModelID and TrainingActiveBatch are pass-through knobs for the external
	// categorical filter; this service stores them and hands them to the
	// provider unmodified.
	ModelID             string `json:"model_id" db:"model_id"`
	TrainingActiveBatch string `json:"training_active_batch" db:"training_active_batch"`

	// TimeoutMs bounds each enrichment provider call. Zero means the
	// process-level default applies.
	TimeoutMs int `json:"timeout_ms" db:"timeout_ms"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Defaults returns the settings used when a site has never been provisioned.
func Defaults(siteID string) Settings {
	return Settings{
		SiteID:          siteID,
		IsEnabled:       true,
		RiskThreshold:   0.5,
		LinkCountLimit:  2,
		HeldMessage:     "Your comment is awaiting moderation.",
		RejectedMessage: "Your comment could not be accepted.",
	}
}

// Patch is a partial settings update. Nil fields are left unchanged.
// Validation happens field-by-field before a single atomic write.
type Patch struct {
	IsEnabled           *bool    `json:"is_enabled,omitempty"`
	RiskThreshold       *float64 `json:"risk_threshold,omitempty"`
	LinkCountLimit      *int     `json:"link_count_limit,omitempty"`
	HeldMessage         *string  `json:"held_message,omitempty"`
	RejectedMessage     *string  `json:"rejected_message,omitempty"`
	ModelID             *string  `json:"model_id,omitempty"`
	TrainingActiveBatch *string  `json:"training_active_batch,omitempty"`
	TimeoutMs           *int     `json:"timeout_ms,omitempty"`
}
