package audit

import (
	"moderation-platform/internal/settings"
	"moderation-platform/internal/spam"
)

// Replay re-evaluates recorded decisions against a candidate settings
// snapshot. Because the engine is deterministic and entries snapshot their
// exact inputs, the result shows precisely what a threshold change would have
// done to past traffic.

type ReplayResult struct {
	EntryID string `json:"entry_id"`

	Recorded spam.Decision `json:"recorded"`
	Replayed spam.Decision `json:"replayed"`
	Reason   string        `json:"reason"`

	Changed bool `json:"changed"`
}

type ReplaySummary struct {
	Total   int `json:"total"`
	Changed int `json:"changed"`

	// Counts of replayed outcomes, keyed by decision.
	Outcomes map[spam.Decision]int `json:"outcomes"`

	Results []ReplayResult `json:"results"`
}

// Replay runs the engine over entries with candidate settings.
// Moderator-action entries carry no engine inputs and are skipped.
func Replay(entries []Entry, candidate settings.Settings) ReplaySummary {
	sum := ReplaySummary{Outcomes: make(map[spam.Decision]int)}
	for _, e := range entries {
		if e.ActorUserID != "" {
			continue
		}
		d, reason := spam.Decide(e.Bundle(), candidate)
		res := ReplayResult{
			EntryID:  e.ID,
			Recorded: e.Decision,
			Replayed: d,
			Reason:   reason,
			Changed:  d != e.Decision,
		}
		sum.Total++
		if res.Changed {
			sum.Changed++
		}
		sum.Outcomes[d]++
		sum.Results = append(sum.Results, res)
	}
	return sum
}
