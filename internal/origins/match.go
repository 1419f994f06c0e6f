package origins

import (
	"strings"

	"github.com/hostwild/hostwild/internal/domains"
	"github.com/hostwild/hostwild/internal/util"
	"github.com/hostwild/hostwild/internal/wildcards"
)

// MatchWildcard reports whether raw origin is encompassed by raw origin
// pattern. Only http and https origins ever match; candidates with any
// other scheme (ws, ftp, chrome-extension, ...) fail outright, as do
// candidates that don't parse. Four pattern forms are recognized:
//
//   - "*": any parseable http(s) origin;
//   - "scheme://*": any origin of exactly that scheme;
//   - "scheme://<host pattern>": scheme must match exactly and the origin's
//     host must match the wildcard host pattern;
//   - "<host pattern>": scheme-agnostic wildcard host matching.
//
// Ports, paths, querystrings, fragments, userinfo, and IP-literal hosts
// inside a host pattern are rejected structurally before any matching.
func MatchWildcard(origin, pattern string) bool {
	o, ok := Parse(domains.ASCIIFoldDots(origin))
	if !ok || o.Scheme != schemeHTTP && o.Scheme != schemeHTTPS {
		return false
	}
	pattern = strings.TrimSpace(domains.ASCIIFoldDots(pattern))
	if pattern == wildcards.Global {
		return true
	}
	scheme, rest, found := strings.Cut(pattern, schemeHostSep)
	if !found {
		return wildcards.MatchDomain(o.Host, pattern)
	}
	if util.ByteLowercase(scheme) != o.Scheme {
		return false
	}
	if rest == wildcards.Global { // protocol-only wildcard
		return true
	}
	return wildcards.MatchDomain(o.Host, rest)
}
