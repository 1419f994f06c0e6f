package hostwild

import (
	"strings"

	"github.com/hostwild/hostwild/internal/domains"
	"github.com/hostwild/hostwild/internal/origins"
	"github.com/hostwild/hostwild/internal/util"
	"github.com/hostwild/hostwild/internal/wildcards"
)

// WildcardKind classifies the kind of wildcard (if any) an allowlist entry
// represents.
type WildcardKind uint8

const (
	// WildcardNone marks an exact-match entry.
	WildcardNone WildcardKind = iota
	// WildcardGlobal marks the global wildcard "*".
	WildcardGlobal
	// WildcardProtocol marks a protocol-only wildcard such as "https://*".
	WildcardProtocol
	// WildcardSubdomain marks a subdomain wildcard such as "*.example.com".
	WildcardSubdomain
)

// String returns the lowercase name of k.
func (k WildcardKind) String() string {
	switch k {
	case WildcardGlobal:
		return "global"
	case WildcardProtocol:
		return "protocol"
	case WildcardSubdomain:
		return "subdomain"
	default:
		return "none"
	}
}

// EntryContext selects the validation rules for an allowlist entry.
type EntryContext uint8

const (
	// ContextDomain validates entries of a domain allowlist.
	ContextDomain EntryContext = iota
	// ContextOrigin validates entries of an origin allowlist.
	ContextOrigin
)

// ValidationOptions configures [ValidateConfigEntry]. The riskiest wildcard
// forms are rejected unless explicitly enabled.
type ValidationOptions struct {
	// AllowGlobalWildcard accepts the global wildcard entry "*".
	AllowGlobalWildcard bool
	// AllowProtocolWildcard accepts protocol-only wildcard entries such as
	// "https://*" (origin context only).
	AllowProtocolWildcard bool
}

// A Verdict is the result of validating a single allowlist entry.
// It is a pure classification: validation never panics and never returns
// an error through any other channel.
type Verdict struct {
	// Valid reports whether the entry is acceptable in its context.
	Valid bool
	// Info carries a stable rejection reason when Valid is false, or an
	// optional advisory when Valid is true.
	Info string
	// Kind classifies the wildcard form detected in the entry, whether or
	// not the entry was accepted.
	Kind WildcardKind
}

// Stable Info strings not covered by the pattern compiler's errors.
const (
	infoEmptyEntry       = "empty entry"
	infoSchemeInDomain   = "scheme not allowed in domain entries"
	infoGlobalDisabled   = "global wildcard not allowed in this context"
	infoProtocolDisabled = "protocol wildcard not allowed in this context"
	infoWildcardIPTail   = "wildcard must not be anchored to an IP address"
	infoWildcardPSLTail  = "wildcard must not be anchored to a public suffix"
	infoNotADomain       = "not a valid domain"
	infoNotAnOrigin      = "not a valid origin"
	infoDomainIsPSL      = "domain is a public suffix"
	infoMissingScheme    = "origin must include a scheme"
	infoUserinfo         = "origin must not include userinfo"
	infoPath             = "origin must not include a path"
	infoQuery            = "origin must not include a querystring"
	infoFragment         = "origin must not include a fragment"
	infoUnclosedBracket  = "unclosed bracket in IPv6 address"
	infoBracketGarbage   = "unexpected characters after IPv6 address"
	infoBadIPv6          = "not a valid IPv6 address"
	infoNonHTTPScheme    = "non-http(s) scheme; CORS may not match"
)

// ValidateConfigEntry validates a single allowlist entry at configuration
// time and classifies it. It never panics: every rejection is reported as a
// [Verdict] with a specific, stable Info string, so that configuration
// tooling can enumerate all the problems in a list rather than stop at the
// first one.
func ValidateConfigEntry(entry string, ctx EntryContext, opts ValidationOptions) Verdict {
	e := strings.TrimSpace(entry)
	if e == "" {
		return Verdict{Info: infoEmptyEntry}
	}
	if ctx == ContextOrigin {
		return validateOriginEntry(e, opts)
	}
	return validateDomainEntry(e, opts)
}

func validateDomainEntry(e string, opts ValidationOptions) Verdict {
	if strings.Contains(e, schemeHostSep) {
		return Verdict{Info: infoSchemeInDomain}
	}
	if e == globalWildcard {
		if !opts.AllowGlobalWildcard {
			return Verdict{Info: infoGlobalDisabled, Kind: WildcardGlobal}
		}
		return Verdict{Valid: true, Kind: WildcardGlobal}
	}
	if strings.ContainsRune(e, '*') {
		return validateHostPattern(e)
	}
	nd := domains.Normalize(e)
	if nd == "" {
		return Verdict{Info: infoNotADomain}
	}
	if !domains.IsIPAddress(nd) && wildcards.IsPublicSuffix(nd) {
		return Verdict{Info: infoDomainIsPSL}
	}
	return Verdict{Valid: true}
}

// validateHostPattern validates a scheme-less wildcard host pattern,
// shared by both contexts.
func validateHostPattern(e string) Verdict {
	p, err := wildcards.Compile(e)
	if err != nil {
		return Verdict{Info: err.Error(), Kind: WildcardSubdomain}
	}
	if p.TailIsIPAddress() {
		return Verdict{Info: infoWildcardIPTail, Kind: WildcardSubdomain}
	}
	if p.TailIsPublicSuffix() {
		return Verdict{Info: infoWildcardPSLTail, Kind: WildcardSubdomain}
	}
	return Verdict{Valid: true, Kind: WildcardSubdomain}
}

func validateOriginEntry(e string, opts ValidationOptions) Verdict {
	if e == origins.Null {
		// The serialization of an opaque origin; exact-match only.
		return Verdict{Valid: true}
	}
	if e == globalWildcard {
		if !opts.AllowGlobalWildcard {
			return Verdict{Info: infoGlobalDisabled, Kind: WildcardGlobal}
		}
		return Verdict{Valid: true, Kind: WildcardGlobal}
	}
	scheme, rest, found := strings.Cut(e, schemeHostSep)
	if !found {
		// Bare host patterns are protocol-agnostic wildcard entries;
		// a bare exact host, however, can never equal a normalized origin
		// and would be structurally inert in an origin list.
		if strings.ContainsRune(e, '*') {
			return validateHostPattern(e)
		}
		return Verdict{Info: infoMissingScheme}
	}
	if !validScheme(scheme) {
		return Verdict{Info: infoNotAnOrigin}
	}
	var advisory string
	lscheme := util.ByteLowercase(scheme)
	if lscheme != "http" && lscheme != "https" {
		advisory = infoNonHTTPScheme
	}
	if rest == globalWildcard {
		if !opts.AllowProtocolWildcard {
			return Verdict{Info: infoProtocolDisabled, Kind: WildcardProtocol}
		}
		return Verdict{Valid: true, Info: advisory, Kind: WildcardProtocol}
	}
	if i := strings.IndexAny(rest, "@/?#"); i != -1 {
		switch rest[i] {
		case '@':
			return Verdict{Info: infoUserinfo}
		case '/':
			return Verdict{Info: infoPath}
		case '?':
			return Verdict{Info: infoQuery}
		default:
			return Verdict{Info: infoFragment}
		}
	}
	if strings.ContainsRune(rest, '*') {
		v := validateHostPattern(rest)
		if v.Valid && v.Info == "" {
			v.Info = advisory
		}
		return v
	}
	if strings.HasPrefix(rest, "[") {
		i := strings.IndexByte(rest, ']')
		if i == -1 {
			return Verdict{Info: infoUnclosedBracket}
		}
		if !domains.IsIPv6(rest[1:i]) {
			return Verdict{Info: infoBadIPv6}
		}
		if after := rest[i+1:]; after != "" && after[0] != ':' {
			return Verdict{Info: infoBracketGarbage}
		}
	}
	o, ok := origins.Parse(e)
	if !ok {
		return Verdict{Info: infoNotAnOrigin}
	}
	if !strings.HasPrefix(o.Host, "[") &&
		!domains.IsIPAddress(o.Host) &&
		wildcards.IsPublicSuffix(o.Host) {
		return Verdict{Info: infoDomainIsPSL}
	}
	return Verdict{Valid: true, Info: advisory}
}

// validScheme reports whether str is a syntactically valid URI scheme;
// see https://www.rfc-editor.org/rfc/rfc3986.html#section-3.1.
func validScheme(str string) bool {
	if str == "" || !isAlpha(str[0]) {
		return false
	}
	for i := 1; i < len(str); i++ {
		c := str[i]
		if !isAlpha(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
