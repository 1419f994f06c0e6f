package origins

import "testing"

var matchWildcardCases = []struct {
	desc    string
	origin  string
	pattern string
	want    bool
}{
	{
		desc:    "global wildcard vs https origin",
		origin:  "https://api.example.com",
		pattern: "*",
		want:    true,
	}, {
		desc:    "global wildcard vs http origin",
		origin:  "http://localhost:3000",
		pattern: "*",
		want:    true,
	}, {
		desc:    "global wildcard vs non-HTTP origin",
		origin:  "ftp://example.com",
		pattern: "*",
	}, {
		desc:    "global wildcard vs null origin",
		origin:  "null",
		pattern: "*",
	}, {
		desc:    "global wildcard vs garbage",
		origin:  "not an origin",
		pattern: "*",
	}, {
		desc:    "scheme and host pattern",
		origin:  "https://api.example.com",
		pattern: "https://*.example.com",
		want:    true,
	}, {
		desc:    "scheme mismatch",
		origin:  "http://api.example.com",
		pattern: "https://*.example.com",
	}, {
		desc:    "scheme case-insensitivity",
		origin:  "https://api.example.com",
		pattern: "HTTPS://*.example.com",
		want:    true,
	}, {
		desc:    "apex is not covered",
		origin:  "https://example.com",
		pattern: "https://*.example.com",
	}, {
		desc:    "scheme-agnostic host pattern vs https origin",
		origin:  "https://api.example.com",
		pattern: "*.example.com",
		want:    true,
	}, {
		desc:    "scheme-agnostic host pattern vs http origin",
		origin:  "http://api.example.com",
		pattern: "*.example.com",
		want:    true,
	}, {
		desc:    "protocol-only wildcard",
		origin:  "https://example.com",
		pattern: "https://*",
		want:    true,
	}, {
		desc:    "protocol-only wildcard with scheme mismatch",
		origin:  "http://example.com",
		pattern: "https://*",
	}, {
		desc:    "explicit port on the candidate",
		origin:  "https://api.example.com:8443",
		pattern: "https://*.example.com",
		want:    true,
	}, {
		desc:    "multi-label wildcard",
		origin:  "https://a.b.example.com",
		pattern: "https://**.example.com",
		want:    true,
	}, {
		desc:    "IPv4 candidate vs subdomain wildcard",
		origin:  "http://127.0.0.1",
		pattern: "*.0.0.1",
	}, {
		desc:    "IPv6 candidate vs subdomain wildcard",
		origin:  "http://[2001:db8::1]",
		pattern: "*.example.com",
	}, {
		desc:    "public-suffix-anchored pattern",
		origin:  "https://foo.com",
		pattern: "https://*.com",
	}, {
		desc:    "unparseable candidate",
		origin:  "https://",
		pattern: "https://*.example.com",
	},
}

func TestMatchWildcard(t *testing.T) {
	for _, c := range matchWildcardCases {
		f := func(t *testing.T) {
			t.Parallel()
			if got := MatchWildcard(c.origin, c.pattern); got != c.want {
				t.Errorf("(%q, %q): got %t; want %t", c.origin, c.pattern, got, c.want)
			}
		}
		t.Run(c.desc, f)
	}
}
