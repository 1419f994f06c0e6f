package hostwild

import (
	"strings"

	"github.com/hostwild/hostwild/cfgerrors"
	"github.com/hostwild/hostwild/internal/domains"
	"github.com/hostwild/hostwild/internal/origins"
	"github.com/hostwild/hostwild/internal/wildcards"
)

const (
	globalWildcard = "*"
	schemeHostSep  = "://"
)

// MatchesDomainList reports whether domain matches any entry of list.
// Entries are trimmed, and empty entries are skipped; entries containing a
// wildcard are matched per [MatchesWildcardDomain], all others by
// normalized equality.
//
// Origin-style entries (containing "://") have no place in a domain list:
// they can never match a bare domain, and silently skipping them would
// leave an operator believing a pattern is active when it is structurally
// inert. MatchesDomainList therefore returns a non-nil
// [cfgerrors.OriginStyleEntryError] (and a false match) when list contains
// any such entry; callers must treat that error as fatal.
func MatchesDomainList(domain string, list []string) (bool, error) {
	for _, entry := range list {
		if strings.Contains(entry, schemeHostSep) {
			return false, &cfgerrors.OriginStyleEntryError{Value: strings.TrimSpace(entry)}
		}
	}
	nd := domains.Normalize(domain)
	if nd == "" {
		return false, nil
	}
	for _, entry := range list {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.ContainsRune(entry, '*') {
			if wildcards.MatchDomain(nd, entry) {
				return true, nil
			}
			continue
		}
		if domains.Normalize(entry) == nd {
			return true, nil
		}
	}
	return false, nil
}

// OriginListOptions configures [MatchesOriginList].
type OriginListOptions struct {
	// TreatNoOriginAsAllowed makes an absent origin (the empty string,
	// i.e. no Origin header) match a list that contains the literal "*".
	// By default an absent origin matches nothing.
	TreatNoOriginAsAllowed bool
}

// MatchesOriginList reports whether origin matches any entry of list.
// An empty origin denotes the absence of an Origin header; it matches only
// under [OriginListOptions.TreatNoOriginAsAllowed], and only when the list
// contains the literal "*". Entries are trimmed, and empty entries are
// skipped; a "*" entry delegates to [MatchesWildcardOrigin] so that
// unparseable candidates still fail against it; other wildcard entries are
// matched per [MatchesWildcardOrigin], exact entries by normalized
// equality.
func MatchesOriginList(origin string, list []string, opts OriginListOptions) bool {
	if origin == "" {
		if !opts.TreatNoOriginAsAllowed {
			return false
		}
		for _, entry := range list {
			if strings.TrimSpace(entry) == globalWildcard {
				return true
			}
		}
		return false
	}
	no := origins.Normalize(origin)
	for _, entry := range list {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.ContainsRune(entry, '*') {
			if origins.MatchWildcard(origin, entry) {
				return true
			}
			continue
		}
		if no != "" && origins.Normalize(entry) == no {
			return true
		}
	}
	return false
}

// CredentialsListOptions configures [MatchesCORSCredentialsList].
type CredentialsListOptions struct {
	// AllowWildcardSubdomains enables subdomain wildcard entries
	// (e.g. "https://*.example.com"). By default all wildcard entries are
	// ignored, since a credentialed CORS response granted to a
	// wildcard-matched origin by accident is a serious vulnerability.
	AllowWildcardSubdomains bool
}

// MatchesCORSCredentialsList reports whether origin matches any entry of a
// list that gates credentialed CORS responses. This is the
// security-hardened variant of [MatchesOriginList]: by default only exact,
// normalized-equality matches count, and every entry containing a wildcard
// is ignored. Setting [CredentialsListOptions.AllowWildcardSubdomains]
// enables subdomain wildcard entries; the global "*" remains ignored
// regardless. An empty origin (absent Origin header) never matches.
func MatchesCORSCredentialsList(origin string, list []string, opts CredentialsListOptions) bool {
	if origin == "" {
		return false
	}
	no := origins.Normalize(origin)
	for _, entry := range list {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.ContainsRune(entry, '*') {
			// Global and protocol-only wildcards stay off-limits even with
			// the opt-in; only subdomain wildcards are enabled.
			if opts.AllowWildcardSubdomains &&
				entry != globalWildcard &&
				!strings.HasSuffix(entry, schemeHostSep+globalWildcard) &&
				origins.MatchWildcard(origin, entry) {
				return true
			}
			continue
		}
		if no != "" && origins.Normalize(entry) == no {
			return true
		}
	}
	return false
}
