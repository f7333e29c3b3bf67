package reporting

import "time"

// Common filtering inputs.

type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DecisionSummaryRequest requests aggregated spam-decision metrics.
// Site isolation: SiteID is required.

type DecisionSummaryRequest struct {
	SiteID string    `json:"site_id"`
	Range  TimeRange `json:"range"`
}

// DecisionSummary aggregates the immutable audit trail for threshold tuning.
type DecisionSummary struct {
	SiteID string `json:"site_id"`

	Total    int `json:"total"`
	Allowed  int `json:"allowed"`
	Held     int `json:"held"`
	Rejected int `json:"rejected"`

	// ByReason counts engine decisions per reason string.
	ByReason map[string]int `json:"by_reason"`

	// ScoreDegraded counts entries where the reputation score was absent
	// (enrichment unavailable). High values point at provider trouble.
	ScoreDegraded int `json:"score_degraded"`

	// VerdictDegraded counts entries with an unknown categorical verdict.
	VerdictDegraded int `json:"verdict_degraded"`

	// ModeratorActions counts manual approve/reject entries (not engine output).
	ModeratorActions int `json:"moderator_actions"`
}
