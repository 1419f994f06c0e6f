// Package wildcards implements compilation of wildcard host patterns and
// bounded matching of normalized domains against them.
//
// Two wildcard markers are supported, each spanning a whole DNS label:
// * matches exactly one label, and ** matches a run of labels (at least one
// when ** leads the pattern, zero or more otherwise). Every pattern must be
// anchored by at least one literal label; the literal labels after the last
// wildcard form the pattern's fixed tail and are matched right-aligned.
package wildcards

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/unicode/norm"

	"github.com/hostwild/hostwild/internal/domains"
	"github.com/hostwild/hostwild/internal/util"
)

const (
	labelSep = "." // DNS-label separator

	// Global is the global wildcard pattern; it matches any
	// syntactically valid domain or IP address.
	Global = "*"
	// OneLabel matches exactly one DNS label.
	OneLabel = "*"
	// ManyLabels matches a run of DNS labels.
	ManyLabels = "**"
)

const (
	// MaxLabels caps the number of labels considered on either side of a
	// match; longer inputs fail outright.
	MaxLabels = 32
	// StepLimit caps the number of search states the backtracking matcher
	// may visit in a single call; exceeding it fails the match.
	StepLimit = 10_000
)

// forbiddenByteSet holds the bytes that may never occur in a wildcard host
// pattern: they introduce ports, paths, querystrings, fragments, brackets,
// userinfo, or backslash escapes.
var forbiddenByteSet = util.MakeASCIISet(`/?#:[]@\`)

// pseudoTLDs lists non-registrable single-label suffixes that wildcard
// patterns may nonetheless be anchored to.
var pseudoTLDs = map[string]bool{
	"localhost": true,
}

// A Pattern is a compiled wildcard host pattern.
// The zero value does not correspond to a valid pattern.
type Pattern struct {
	// Labels holds the pattern's labels in order; literal labels are
	// normalized, wildcard markers are preserved verbatim.
	Labels []string
	// Wildcards is the number of wildcard labels in Labels.
	Wildcards int
	// TailStart is the index in Labels of the first label after the last
	// wildcard marker; the labels from TailStart on are all literal.
	TailStart int
}

// Canonical returns the canonical string form of p.
func (p *Pattern) Canonical() string {
	return strings.Join(p.Labels, labelSep)
}

// Tail returns the canonical string form of p's fixed tail.
func (p *Pattern) Tail() string {
	return strings.Join(p.Labels[p.TailStart:], labelSep)
}

// Compilation failures. The error texts double as the stable rejection
// reasons surfaced by the entry validator.
var (
	ErrForbiddenByte   = errors.New("pattern contains a forbidden character")
	ErrEmptyLabel      = errors.New("pattern contains an empty label")
	ErrPartialWildcard = errors.New("wildcard must span a whole label")
	ErrLabelTooLong    = errors.New("label exceeds 63 characters")
	ErrInvalidLabel    = errors.New("label is not a valid DNS label")
	ErrTooLong         = errors.New("pattern exceeds maximum domain length")
	ErrAllWildcards    = errors.New("pattern must contain at least one literal label")
)

// Compile validates and canonicalizes a raw wildcard host pattern.
// Literal labels undergo the same per-label normalization as domains do;
// wildcard markers pass through unchanged. Compile fails on forbidden
// characters, on empty labels, on partial-label wildcards (e.g. "ex*"),
// on oversized labels or an oversized literal concatenation, and on
// patterns devoid of literal labels (which includes the global wildcard;
// callers are expected to special-case that one beforehand).
func Compile(raw string) (Pattern, error) {
	var zero Pattern
	s := strings.TrimSpace(raw)
	s = norm.NFC.String(s)
	s = domains.ASCIIFoldDots(s)
	for i := 0; i < len(s); i++ {
		if forbiddenByteSet.Contains(s[i]) {
			return zero, ErrForbiddenByte
		}
	}
	s = strings.TrimSuffix(s, labelSep)
	if s == "" {
		return zero, ErrEmptyLabel
	}
	labels := strings.Split(s, labelSep)
	p := Pattern{Labels: labels}
	var total int // length of the literal labels joined with separators
	for i, label := range labels {
		switch label {
		case "":
			return zero, ErrEmptyLabel
		case OneLabel, ManyLabels:
			p.Wildcards++
			p.TailStart = i + 1
			continue
		}
		if strings.ContainsRune(label, '*') {
			return zero, ErrPartialWildcard
		}
		// Cheap pre-check: Punycode output is never shorter than the
		// rune count, so overlong labels fail before the IDNA work.
		if utf8.RuneCountInString(label) > domains.MaxLabelLen {
			return zero, ErrLabelTooLong
		}
		ascii, ok := domains.NormalizeLabel(label)
		if !ok {
			if len(label) > domains.MaxLabelLen {
				return zero, ErrLabelTooLong
			}
			return zero, ErrInvalidLabel
		}
		labels[i] = ascii
		if total > 0 {
			total++
		}
		total += len(ascii)
	}
	if total == 0 {
		return zero, ErrAllWildcards
	}
	if total > domains.MaxDomainLen {
		return zero, ErrTooLong
	}
	return p, nil
}

// TailIsIPAddress reports whether p's fixed tail is an IP address literal.
func (p *Pattern) TailIsIPAddress() bool {
	return domains.IsIPAddress(p.Tail())
}

// TailIsPublicSuffix reports whether p's fixed tail is exactly a public
// suffix (and not one of the internal pseudo-TLDs).
func (p *Pattern) TailIsPublicSuffix() bool {
	return IsPublicSuffix(p.Tail())
}

// IsPublicSuffix reports whether host is exactly a [public suffix], also
// known as an effective top-level domain. Internal pseudo-TLDs such as
// localhost are exempt.
//
// [public suffix]: https://publicsuffix.org/list/
func IsPublicSuffix(host string) bool {
	if pseudoTLDs[host] {
		return false
	}
	// The second (boolean) result is deliberately ignored: it is false
	// for some listed suffixes (e.g. github.io).
	etld, _ := publicsuffix.PublicSuffix(host)
	return etld == host
}

// MatchDomain reports whether raw domain matches raw wildcard pattern.
// Any input that fails normalization or compilation fails the match;
// so does any match whose cost would exceed [StepLimit].
func MatchDomain(domain, pattern string) bool {
	if strings.TrimSpace(pattern) == Global {
		return domains.Normalize(domain) != ""
	}
	nd := domains.Normalize(domain)
	if nd == "" {
		return false
	}
	p, err := Compile(pattern)
	if err != nil {
		return false
	}
	if p.Wildcards == 0 {
		return nd == p.Canonical()
	}
	// IP addresses never match non-global wildcard patterns,
	// and wildcard tails must be neither IP addresses nor public suffixes.
	if domains.IsIPAddress(nd) ||
		p.TailIsIPAddress() ||
		p.TailIsPublicSuffix() {
		return false
	}
	tail := p.Tail()
	if nd == tail { // the apex itself is never covered by a wildcard
		return false
	}
	if p.Labels[0] == ManyLabels {
		// Same apex exclusion, via registrable-domain decomposition.
		// Redundant with the equality check above for all inputs observed
		// so far, but kept as a second line of defense.
		if etld1, err := publicsuffix.EffectiveTLDPlusOne(nd); err == nil &&
			etld1 == nd && nd == tail {
			return false
		}
	}
	dls := strings.Split(nd, labelSep)
	if len(dls) > MaxLabels || len(p.Labels) > MaxLabels {
		return false
	}
	return matchLabels(dls, p.Labels, p.TailStart)
}

// matchLabels matches dom against pat, whose labels from tailStart on are
// all literal. The fixed tail is matched right-aligned; the rest is handled
// by a bounded backtracking search.
func matchLabels(dom, pat []string, tailStart int) bool {
	tail := pat[tailStart:]
	if len(dom) < len(tail) {
		return false
	}
	split := len(dom) - len(tail)
	for i, label := range tail {
		if dom[split+i] != label {
			return false
		}
	}
	return matchBacktrack(dom[:split], pat[:tailStart])
}

// matchBacktrack runs an explicit-stack backtracking search of dom against
// pat, visiting at most [StepLimit] states. Each state is a pair of indices
// (di, pi): dom[di:] remains to be matched against pat[pi:].
func matchBacktrack(dom, pat []string) bool {
	type state struct{ di, pi int }
	stack := []state{{0, 0}}
	var steps int
	for len(stack) > 0 {
		steps++
		if steps > StepLimit {
			return false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		di, pi := top.di, top.pi
		if pi == len(pat) {
			if di == len(dom) {
				return true
			}
			continue
		}
		switch pat[pi] {
		case ManyLabels:
			if pi == 0 && di == 0 {
				// A leading ** must consume at least one label.
				if di < len(dom) {
					stack = append(stack, state{di + 1, pi}, state{di + 1, pi + 1})
				}
				continue
			}
			stack = append(stack, state{di, pi + 1}) // zero labels
			if di < len(dom) {
				stack = append(stack, state{di + 1, pi})
			}
		case OneLabel:
			if di < len(dom) {
				stack = append(stack, state{di + 1, pi + 1})
			}
		default:
			if di < len(dom) && dom[di] == pat[pi] {
				stack = append(stack, state{di + 1, pi + 1})
			}
		}
	}
	return false
}
