package signals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaProvider verifies a client token against the reCAPTCHA v3
// siteverify endpoint and returns the trust score it reports.
type RecaptchaProvider struct {
	Secret string

	// HTTPClient may be overridden for tests. Defaults to http.DefaultClient.
	// Per-call deadlines come from ctx; do not set a client timeout here.
	HTTPClient *http.Client

	// BaseURL may be overridden for tests. Defaults to the Google endpoint.
	BaseURL string
}

var ErrNoCaptchaToken = errors.New("signals: submission carries no captcha token")

func (p *RecaptchaProvider) Score(ctx context.Context, sub Submission) (float64, error) {
	if sub.CaptchaToken == "" {
		return 0, ErrNoCaptchaToken
	}

	endpoint := p.BaseURL
	if endpoint == "" {
		endpoint = recaptchaVerifyURL
	}
	form := url.Values{}
	form.Set("secret", p.Secret)
	form.Set("response", sub.CaptchaToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("signals: siteverify returned status %d", resp.StatusCode)
	}

	var body struct {
		Success    bool     `json:"success"`
		Score      float64  `json:"score"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("signals: siteverify decode failed: %w", err)
	}
	if !body.Success {
		return 0, fmt.Errorf("signals: siteverify rejected token: %s", strings.Join(body.ErrorCodes, ","))
	}
	return body.Score, nil
}
