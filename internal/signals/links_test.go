package signals

import "testing"

func TestCountLinks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty", "", 0},
		{"plain text", "just a friendly comment", 0},
		{"scheme url", "see https://example.com/page for details", 1},
		{"http scheme", "http://example.com", 1},
		{"bare domain", "check example.com for details", 1},
		{"www prefix", "visit www.example.com today", 1},
		{"duplicates count separately", "example.com and example.com again", 2},
		{"scheme url not double counted", "https://example.com/x?q=1", 1},
		{"mixed", "https://a.com plus b.org and http://c.net/path", 3},
		{"subdomain", "deep.sub.example.co.uk", 1},
		{"trailing punctuation", "read example.com.", 1},
		{"version number is not a domain", "works on v1.2 of the API", 0},
		{"sentence boundary not counted", "done. next sentence", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountLinks(tt.body); got != tt.want {
				t.Fatalf("CountLinks(%q) = %d, want %d", tt.body, got, tt.want)
			}
		})
	}
}
