package signals

import "time"

// Verdict is the categorical judgement returned by an external spam filter
// (e.g., Akismet). VerdictUnknown covers both "provider gave no opinion" and
// "provider unavailable"; the decision engine treats them identically.
type Verdict string

const (
	VerdictSpam    Verdict = "spam"
	VerdictHam     Verdict = "ham"
	VerdictUnknown Verdict = "unknown"
)

// Bundle is the immutable set of signals collected for one comment submission.
//
// Invariants:
// - LinkCount is never negative.
// - Score, when present, is a trust score in [0,1]; higher means more
//   trustworthy. A nil Score means enrichment was unavailable and must never
//   be read as "maximally risky".
// - IPHash is an opaque one-way hash computed by the caller; this package
//   passes it through unchanged and never sees a raw IP.
type Bundle struct {
	LinkCount   int       `json:"link_count"`
	Score       *float64  `json:"score,omitempty"`
	Verdict     Verdict   `json:"verdict"`
	IPHash      string    `json:"ip_hash"`
	SubmittedAt time.Time `json:"submitted_at"`
}
