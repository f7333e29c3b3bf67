package spam

// Decision is the categorical outcome of evaluating one comment submission.
//
// It must contain *only* information required by the caller boundary
// (comment persistence, user-facing response) to act on the outcome.
//
// No provider identity and no provider-specific fields belong here.

type Decision string

const (
	DecisionAllow  Decision = "allow"
	DecisionHold   Decision = "hold"
	DecisionReject Decision = "reject"
)

// Reason strings are stable; they are persisted in audit entries and surfaced
// in admin tooling. Do not rename without a migration plan.
const (
	ReasonDisabled    = "engine disabled"
	ReasonVerdictSpam = "external verdict: spam"
	ReasonLinkCount   = "link count exceeds limit"
	ReasonRiskScore   = "risk score above threshold"
	ReasonNoSignals   = "no signals triggered"
)
