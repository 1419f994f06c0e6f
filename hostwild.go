package hostwild

import (
	"github.com/hostwild/hostwild/internal/domains"
	"github.com/hostwild/hostwild/internal/origins"
	"github.com/hostwild/hostwild/internal/wildcards"
)

// NormalizeDomain canonicalizes a raw domain string: surrounding
// whitespace is trimmed, one trailing full stop is dropped, Unicode full
// stops (U+3002, U+FF0E, U+FF61) are folded to ASCII, IP literals are
// lowercased (IPv6 brackets stripped), and domain labels are NFC-normalized,
// lowercased, and converted to their IDNA ASCII form, subject to DNS length
// limits (63 octets per label, 255 overall).
//
// The empty string signals failure and never denotes a valid domain;
// treat it as matching nothing. NormalizeDomain is idempotent.
func NormalizeDomain(domain string) string {
	return domains.Normalize(domain)
}

// NormalizeOrigin canonicalizes a raw origin string into the form
// scheme://host[:port], with a lowercase scheme, a host normalized like
// [NormalizeDomain] (IPv6 literals canonicalized within brackets), and the
// port elided when it is the scheme's default (80 for http, 443 for https).
//
// The literal "null" (the serialization of an opaque origin) passes
// through unchanged; the comparison is case-sensitive, so "NULL" is
// rejected. The empty string signals failure and matches nothing.
// NormalizeOrigin is idempotent.
func NormalizeOrigin(origin string) string {
	return origins.Normalize(origin)
}

// OriginOptions configures [NormalizeOriginWithOptions].
type OriginOptions struct {
	// PreserveZoneCase leaves the case of an IPv6 zone ID untouched;
	// by default the whole bracket content is lowercased.
	PreserveZoneCase bool
}

// NormalizeOriginWithOptions is like [NormalizeOrigin] but honors opts.
func NormalizeOriginWithOptions(origin string, opts OriginOptions) string {
	return origins.NormalizeWithOptions(origin, origins.Options{
		PreserveZoneCase: opts.PreserveZoneCase,
	})
}

// IsIPAddress reports whether str is an IPv4 or IPv6 address literal.
// IPv6 literals may be bracketed and may carry an RFC 6874 zone ID.
func IsIPAddress(str string) bool {
	return domains.IsIPAddress(str)
}

// MatchesWildcardDomain reports whether domain matches the wildcard host
// pattern. The pattern "*" matches any syntactically valid domain or IP
// address; any other pattern must contain at least one literal label, must
// not be anchored to an IP address or a public suffix, and never matches
// IP addresses or the anchor apex itself. Invalid input on either side
// fails the match.
func MatchesWildcardDomain(domain, pattern string) bool {
	return wildcards.MatchDomain(domain, pattern)
}

// MatchesWildcardOrigin reports whether origin is encompassed by the
// origin pattern. Only http and https origins ever match. The pattern "*"
// matches any parseable http(s) origin; "scheme://*" matches any origin of
// exactly that scheme; "scheme://<host pattern>" additionally matches the
// host per [MatchesWildcardDomain]; a pattern without a scheme matches the
// origin's host regardless of (http or https) scheme.
func MatchesWildcardOrigin(origin, pattern string) bool {
	return origins.MatchWildcard(origin, pattern)
}
