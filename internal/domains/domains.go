// Package domains implements classification and canonicalization of
// untrusted host strings: IPv4/IPv6 literal detection (including RFC 6874
// zone IDs), Unicode-dot folding, and IDNA-based domain normalization.
package domains

import (
	"net/netip"
	"strings"
	"sync"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"

	"github.com/hostwild/hostwild/internal/util"
)

const (
	labelSep = '.' // DNS-label separator

	// MaxLabelLen is the maximum length of a single DNS label;
	// see https://www.rfc-editor.org/rfc/rfc1035#section-2.3.4.
	MaxLabelLen = 63
	// MaxDomainLen is the maximum length of a fully qualified domain name.
	MaxDomainLen = 255
)

// ASCIIFoldDots replaces the fullwidth (U+FF0E), ideographic (U+3002), and
// halfwidth-ideographic (U+FF61) full stops in str with an ASCII full stop.
// Browsers perform the same folding before host parsing, which is what makes
// inputs like "127。0。0。1" resolve as IP addresses; folding first defeats
// that class of bypass.
func ASCIIFoldDots(str string) string {
	return strings.Map(foldDotOne, str)
}

func foldDotOne(r rune) rune {
	switch r {
	case '．', '。', '｡':
		return labelSep
	}
	return r
}

// IsIPv4 reports whether str is a strict dotted-quad IPv4 address:
// four decimal octets in the 0-255 range, no leading zeros.
func IsIPv4(str string) bool {
	addr, err := netip.ParseAddr(str)
	return err == nil && addr.Is4()
}

// IsIPv6 reports whether str is an IPv6 address, bracketed or not,
// possibly carrying an RFC 6874 zone ID. IPv4-mapped IPv6 addresses
// (e.g. ::ffff:127.0.0.1) are considered IPv6.
func IsIPv6(str string) bool {
	if len(str) >= 2 && str[0] == '[' {
		if str[len(str)-1] != ']' {
			return false
		}
		str = str[1 : len(str)-1]
	}
	addrPart, zone, hasZone := strings.Cut(str, "%")
	if hasZone && !ValidZoneID(zone) {
		return false
	}
	if !strings.Contains(addrPart, ":") {
		return false
	}
	addr, err := netip.ParseAddr(addrPart)
	return err == nil && !addr.Is4()
}

// IsIPAddress reports whether str is an IPv4 or IPv6 address literal.
func IsIPAddress(str string) bool {
	return IsIPv4(str) || IsIPv6(str)
}

// zoneByteSet holds the unreserved characters permitted in a zone ID;
// see https://www.rfc-editor.org/rfc/rfc6874#section-2.
var zoneByteSet = util.MakeASCIISet(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"abcdefghijklmnopqrstuvwxyz" +
		"0123456789._~-",
)

var hexByteSet = util.MakeASCIISet("0123456789ABCDEFabcdef")

// ValidZoneID reports whether zone is a non-empty RFC 6874 zone ID
// consisting of unreserved characters and/or percent-encoded byte pairs
// (the percent sign itself travels as "%25").
func ValidZoneID(zone string) bool {
	if zone == "" {
		return false
	}
	for i := 0; i < len(zone); {
		c := zone[i]
		if c == '%' {
			if i+2 >= len(zone) ||
				!hexByteSet.Contains(zone[i+1]) ||
				!hexByteSet.Contains(zone[i+2]) {
				return false
			}
			i += 3
			continue
		}
		if !zoneByteSet.Contains(c) {
			return false
		}
		i++
	}
	return true
}

// SplitZone slices an (unbracketed) IPv6 literal around its zone-ID
// delimiter. The found result reports whether a zone ID is present.
func SplitZone(str string) (addr, zone string, found bool) {
	return strings.Cut(str, "%")
}

var (
	profileOnce sync.Once     // guards init of profile via initProfile
	profile     *idna.Profile // lazily initialized
)

func initProfile() {
	profile = idna.New(
		idna.BidiRule(),
		idna.ValidateLabels(true),
		idna.StrictDomainName(true),
		idna.CheckHyphens(true),
		idna.CheckJoiners(true),
		idna.Transitional(false),
	)
}

// NormalizeLabel canonicalizes a single DNS label: NFC normalization,
// lowercasing, then IDNA conversion to its ASCII (possibly Punycode) form.
// It fails on empty labels, on labels that IDNA rejects, and on labels
// whose ASCII form exceeds [MaxLabelLen] octets.
func NormalizeLabel(label string) (string, bool) {
	if label == "" {
		return "", false
	}
	label = norm.NFC.String(label)
	label = strings.ToLower(label)
	profileOnce.Do(initProfile)
	ascii, err := profile.ToASCII(label)
	if err != nil || ascii == "" || len(ascii) > MaxLabelLen {
		return "", false
	}
	return ascii, true
}

// Normalize canonicalizes a raw domain string: leading/trailing whitespace
// is trimmed, one trailing full stop is dropped, Unicode full stops are
// folded to ASCII, and then either the input is recognized as an IP literal
// (lowercased; IPv6 brackets stripped) or each of its labels is normalized
// via [NormalizeLabel] and the result is checked against DNS length limits.
//
// The empty string signals failure; it never denotes a valid domain.
// Normalize is idempotent: feeding its output back yields the same output.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimSuffix(s, string(labelSep))
	s = ASCIIFoldDots(s)
	if s == "" {
		return ""
	}
	if IsIPAddress(s) {
		s = util.ByteLowercase(s)
		if s[0] == '[' { // bracketed IPv6; brackets are not part of the address
			s = s[1 : len(s)-1]
		}
		return s
	}
	labels := strings.Split(s, string(labelSep))
	total := len(labels) - 1 // separators
	for i, label := range labels {
		ascii, ok := NormalizeLabel(label)
		if !ok {
			return ""
		}
		labels[i] = ascii
		total += len(ascii)
	}
	if total > MaxDomainLen {
		return ""
	}
	return strings.Join(labels, string(labelSep))
}
