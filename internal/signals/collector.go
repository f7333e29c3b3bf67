package signals

import (
	"context"
	"log/slog"
	"time"
)

// Submission is the raw material the collector works from.
// IPHash must already be hashed by the caller; raw IPs never enter this package.
type Submission struct {
	SiteID      string
	Body        string
	AuthorName  string
	AuthorEmail string
	IPHash      string

	// CaptchaToken is the client-side reputation token, when the site embeds one.
	CaptchaToken string
}

// ScoreProvider returns a trust score in [0,1] for a submission.
// Higher means more trustworthy.
type ScoreProvider interface {
	Score(ctx context.Context, sub Submission) (float64, error)
}

// VerdictProvider returns a categorical spam verdict for a submission.
type VerdictProvider interface {
	Check(ctx context.Context, sub Submission) (Verdict, error)
}

const defaultEnrichTimeout = 2 * time.Second

// Collector builds a signal Bundle for a submission.
//
// Enrichment is best-effort: provider failure or timeout degrades that one
// signal to absent/unknown and never fails Collect. The two provider calls are
// independent and run concurrently.
type Collector struct {
	Scores   ScoreProvider
	Verdicts VerdictProvider

	// Timeout bounds each provider call. Zero means defaultEnrichTimeout.
	Timeout time.Duration

	Now func() time.Time
}

func NewCollector(scores ScoreProvider, verdicts VerdictProvider, timeout time.Duration) *Collector {
	return &Collector{Scores: scores, Verdicts: verdicts, Timeout: timeout, Now: time.Now}
}

// Collect gathers all signals for sub. It always returns a usable Bundle.
//
// timeout bounds each provider call for this submission (the site's
// settings-level timeout). Non-positive falls back to the collector default.
func (c *Collector) Collect(ctx context.Context, sub Submission, timeout time.Duration) Bundle {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	b := Bundle{
		LinkCount:   CountLinks(sub.Body),
		Verdict:     VerdictUnknown,
		IPHash:      sub.IPHash,
		SubmittedAt: now().UTC(),
	}

	if timeout <= 0 {
		timeout = c.Timeout
	}
	if timeout <= 0 {
		timeout = defaultEnrichTimeout
	}

	type scoreResult struct {
		score float64
		err   error
	}
	type verdictResult struct {
		verdict Verdict
		err     error
	}

	var scoreCh chan scoreResult
	if c.Scores != nil {
		scoreCh = make(chan scoreResult, 1)
		go func() {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			s, err := c.Scores.Score(callCtx, sub)
			scoreCh <- scoreResult{score: s, err: err}
		}()
	}

	var verdictCh chan verdictResult
	if c.Verdicts != nil {
		verdictCh = make(chan verdictResult, 1)
		go func() {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			v, err := c.Verdicts.Check(callCtx, sub)
			verdictCh <- verdictResult{verdict: v, err: err}
		}()
	}

	if scoreCh != nil {
		res := <-scoreCh
		switch {
		case res.err != nil:
			slog.Debug("score enrichment unavailable", "site_id", sub.SiteID, "err", res.err)
		case res.score < 0 || res.score > 1:
			slog.Warn("score provider returned out-of-range value", "site_id", sub.SiteID, "score", res.score)
		default:
			s := res.score
			b.Score = &s
		}
	}

	if verdictCh != nil {
		res := <-verdictCh
		if res.err != nil {
			slog.Debug("verdict enrichment unavailable", "site_id", sub.SiteID, "err", res.err)
		} else {
			switch res.verdict {
			case VerdictSpam, VerdictHam:
				b.Verdict = res.verdict
			default:
				b.Verdict = VerdictUnknown
			}
		}
	}

	return b
}
