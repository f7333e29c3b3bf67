package spam

import (
	"testing"
	"time"

	"moderation-platform/internal/settings"
	"moderation-platform/internal/signals"
)

func score(v float64) *float64 { return &v }

func baseSettings() settings.Settings {
	s := settings.Defaults("site-1")
	return s
}

func TestDecide_RuleOrder(t *testing.T) {
	ts := time.Unix(1700000000, 0).UTC()

	tests := []struct {
		name     string
		bundle   signals.Bundle
		mutate   func(*settings.Settings)
		decision Decision
		reason   string
	}{
		{
			name:     "disabled allows everything",
			bundle:   signals.Bundle{LinkCount: 99, Score: score(0.0), Verdict: signals.VerdictSpam, SubmittedAt: ts},
			mutate:   func(s *settings.Settings) { s.IsEnabled = false },
			decision: DecisionAllow,
			reason:   ReasonDisabled,
		},
		{
			name:     "spam verdict rejects before link count",
			bundle:   signals.Bundle{LinkCount: 99, Verdict: signals.VerdictSpam, SubmittedAt: ts},
			decision: DecisionReject,
			reason:   ReasonVerdictSpam,
		},
		{
			name:     "spam verdict rejects before risk score",
			bundle:   signals.Bundle{Score: score(0.0), Verdict: signals.VerdictSpam, SubmittedAt: ts},
			decision: DecisionReject,
			reason:   ReasonVerdictSpam,
		},
		{
			name:     "link count over limit holds",
			bundle:   signals.Bundle{LinkCount: 3, Verdict: signals.VerdictUnknown, SubmittedAt: ts},
			decision: DecisionHold,
			reason:   ReasonLinkCount,
		},
		{
			name:     "link count at limit passes",
			bundle:   signals.Bundle{LinkCount: 2, Verdict: signals.VerdictUnknown, SubmittedAt: ts},
			decision: DecisionAllow,
			reason:   ReasonNoSignals,
		},
		{
			name:     "risky score holds",
			bundle:   signals.Bundle{Score: score(0.2), Verdict: signals.VerdictHam, SubmittedAt: ts},
			decision: DecisionHold,
			reason:   ReasonRiskScore,
		},
		{
			name:     "trusted score allows",
			bundle:   signals.Bundle{Score: score(0.9), Verdict: signals.VerdictUnknown, SubmittedAt: ts},
			decision: DecisionAllow,
			reason:   ReasonNoSignals,
		},
		{
			name:     "absent score skips risk rule",
			bundle:   signals.Bundle{Verdict: signals.VerdictUnknown, SubmittedAt: ts},
			decision: DecisionAllow,
			reason:   ReasonNoSignals,
		},
		{
			name:     "no signals allows",
			bundle:   signals.Bundle{Verdict: signals.VerdictHam, SubmittedAt: ts},
			decision: DecisionAllow,
			reason:   ReasonNoSignals,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseSettings()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			d, reason := Decide(tt.bundle, cfg)
			if d != tt.decision {
				t.Fatalf("expected %q, got %q", tt.decision, d)
			}
			if reason != tt.reason {
				t.Fatalf("expected reason %q, got %q", tt.reason, reason)
			}
		})
	}
}

func TestDecide_ThresholdEdges(t *testing.T) {
	// riskThreshold 0 holds anything with any score present, even a perfect one.
	cfg := baseSettings()
	cfg.RiskThreshold = 0
	if d, _ := Decide(signals.Bundle{Score: score(1.0), Verdict: signals.VerdictUnknown}, cfg); d != DecisionHold {
		t.Fatalf("threshold 0 with score present should hold, got %q", d)
	}
	// ...but an absent score still allows.
	if d, _ := Decide(signals.Bundle{Verdict: signals.VerdictUnknown}, cfg); d != DecisionAllow {
		t.Fatalf("threshold 0 without score should allow, got %q", d)
	}

	// riskThreshold 1: risk reaches 1 only for score exactly 0, and the >=
	// comparison means that boundary still holds.
	cfg.RiskThreshold = 1
	if d, _ := Decide(signals.Bundle{Score: score(0.01), Verdict: signals.VerdictUnknown}, cfg); d != DecisionAllow {
		t.Fatalf("threshold 1 should not hold score 0.01, got %q", d)
	}
	if d, r := Decide(signals.Bundle{Score: score(0.0), Verdict: signals.VerdictUnknown}, cfg); d != DecisionHold || r != ReasonRiskScore {
		t.Fatalf("threshold 1 with score 0 is risk 1 >= 1 and must hold, got %q (%q)", d, r)
	}

	// linkCountLimit 0 holds any submission with at least one link.
	cfg = baseSettings()
	cfg.LinkCountLimit = 0
	if d, _ := Decide(signals.Bundle{LinkCount: 1, Verdict: signals.VerdictUnknown}, cfg); d != DecisionHold {
		t.Fatalf("limit 0 should hold one link, got %q", d)
	}
	if d, _ := Decide(signals.Bundle{LinkCount: 0, Verdict: signals.VerdictUnknown}, cfg); d != DecisionAllow {
		t.Fatalf("limit 0 should allow zero links, got %q", d)
	}
}

func TestDecide_Deterministic(t *testing.T) {
	cfg := baseSettings()
	b := signals.Bundle{LinkCount: 1, Score: score(0.4), Verdict: signals.VerdictHam, IPHash: "h", SubmittedAt: time.Now()}

	d0, r0 := Decide(b, cfg)
	for i := 0; i < 100; i++ {
		d, r := Decide(b, cfg)
		if d != d0 || r != r0 {
			t.Fatalf("non-deterministic result on iteration %d: (%q,%q) vs (%q,%q)", i, d, r, d0, r0)
		}
	}
}
