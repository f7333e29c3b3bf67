package signals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// AkismetProvider asks the Akismet comment-check API for a categorical
// verdict. The API answers "true" (spam) or "false" (ham) as a plain body.
//
// Privacy note: the submission carries only the hashed IP; Akismet's
// user_ip field is therefore filled with the hash, not a raw address.
type AkismetProvider struct {
	APIKey  string
	SiteURL string

	HTTPClient *http.Client

	// BaseURL may be overridden for tests. Defaults to the Akismet REST host.
	BaseURL string
}

func (p *AkismetProvider) Check(ctx context.Context, sub Submission) (Verdict, error) {
	endpoint := p.BaseURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.rest.akismet.com/1.1/comment-check", p.APIKey)
	}

	form := url.Values{}
	form.Set("blog", p.SiteURL)
	form.Set("user_ip", sub.IPHash)
	form.Set("comment_type", "comment")
	form.Set("comment_author", sub.AuthorName)
	form.Set("comment_author_email", sub.AuthorEmail)
	form.Set("comment_content", sub.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return VerdictUnknown, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return VerdictUnknown, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VerdictUnknown, fmt.Errorf("signals: comment-check returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return VerdictUnknown, err
	}
	switch strings.TrimSpace(string(raw)) {
	case "true":
		return VerdictSpam, nil
	case "false":
		return VerdictHam, nil
	default:
		return VerdictUnknown, fmt.Errorf("signals: comment-check returned %q", strings.TrimSpace(string(raw)))
	}
}
