package signals

import "regexp"

// Link counting policy: scheme-prefixed URLs and bare domains both count,
// and duplicates are not deduplicated. A scheme-prefixed match is removed
// before the bare-domain pass so a single URL is not counted twice.

var (
	schemeURLPattern  = regexp.MustCompile(`(?i)\bhttps?://[^\s<>"']+`)
	bareDomainPattern = regexp.MustCompile(`(?i)\b(?:www\.)?[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?)*\.[a-z]{2,}\b`)
)

// CountLinks returns the number of URL-like substrings in body.
func CountLinks(body string) int {
	if body == "" {
		return 0
	}
	n := len(schemeURLPattern.FindAllStringIndex(body, -1))
	stripped := schemeURLPattern.ReplaceAllString(body, " ")
	n += len(bareDomainPattern.FindAllStringIndex(stripped, -1))
	return n
}
