package spam

import (
	"moderation-platform/internal/settings"
	"moderation-platform/internal/signals"
)

// Decide maps one signal bundle and one settings snapshot to a decision.
//
// Priority (first match wins):
//  1. Engine disabled
//  2. External verdict: spam
//  3. Link count over limit
//  4. Risk (1 - trust score) at or over threshold
//  5. Allow
//
// Decide is a pure function: no clock, no randomness, no side effects.
// Re-evaluating the same (bundle, settings) pair always yields the same
// result, which is what makes audit-trail replay meaningful.
//
// The settings snapshot is passed in rather than fetched here so that a
// decision never observes a settings change mid-flight.
//
// Ambiguous signals lean toward hold, never reject: only an explicit external
// spam verdict rejects outright. An absent score skips rule 4 entirely; it is
// never treated as maximal risk.
func Decide(b signals.Bundle, s settings.Settings) (Decision, string) {
	if !s.IsEnabled {
		return DecisionAllow, ReasonDisabled
	}
	if b.Verdict == signals.VerdictSpam {
		return DecisionReject, ReasonVerdictSpam
	}
	if b.LinkCount > s.LinkCountLimit {
		return DecisionHold, ReasonLinkCount
	}
	if b.Score != nil && (1-*b.Score) >= s.RiskThreshold {
		return DecisionHold, ReasonRiskScore
	}
	return DecisionAllow, ReasonNoSignals
}
