// Package origins implements parsing and canonicalization of Web origins
// (scheme://host[:port]) and wildcard matching at the origin level.
package origins

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/hostwild/hostwild/internal/domains"
	"github.com/hostwild/hostwild/internal/util"
)

const (
	schemeHostSep = "://" // scheme-host separator
	hostPortSep   = ':'   // host-port separator

	schemeHTTP  = "http"
	schemeHTTPS = "https"

	// Null is the serialization of an opaque (sandboxed) origin.
	// Only this exact, lowercase spelling is recognized.
	Null = "null"

	maxPort = 1<<16 - 1
)

// An Origin represents a parsed, canonicalized [Web origin].
// The zero value does not correspond to a valid origin.
//
// [Web origin]: https://developer.mozilla.org/en-US/docs/Glossary/Origin
type Origin struct {
	// Scheme is the origin's scheme, lowercase.
	Scheme string
	// Host is the origin's canonical host: a normalized domain, a dotted
	// quad, or a bracketed IPv6 literal.
	Host string
	// Port is the origin's explicit port.
	// The zero value marks the absence of an explicit port.
	Port int
}

var zeroOrigin Origin

// Options configures origin canonicalization.
type Options struct {
	// PreserveZoneCase, when set, leaves the case of an IPv6 zone ID
	// untouched; by default the whole bracket content is lowercased.
	PreserveZoneCase bool
}

// bracketedIPv6Re is a fallback for inputs that [url.Parse] chokes on,
// notably bracketed IPv6 literals whose zone ID carries a raw percent sign.
var bracketedIPv6Re = regexp.MustCompile(
	`^([A-Za-z][A-Za-z0-9+.-]*)://\[([^\]]+)\](?::([0-9]+))?$`,
)

// Parse parses raw into an [Origin] structure with default [Options].
func Parse(raw string) (Origin, bool) {
	return ParseWithOptions(raw, Options{})
}

// ParseWithOptions parses raw into an [Origin] structure.
// The host is canonicalized: domains are normalized per
// [domains.Normalize]; IPv6 bracket contents are lowercased (subject to
// opts) and re-bracketed. Userinfo, paths, querystrings, and fragments are
// dropped, as a URL parser would. Explicit ports must be in the 1-65535
// range with no leading zero.
func ParseWithOptions(raw string, opts Options) (Origin, bool) {
	s := domains.ASCIIFoldDots(raw)
	var scheme, authority, rawPort string
	u, err := url.Parse(s)
	switch {
	case err == nil && u.Scheme != "" && u.Host != "":
		scheme = util.ByteLowercase(u.Scheme)
		authority = u.Host
	default:
		m := bracketedIPv6Re.FindStringSubmatch(s)
		if m == nil {
			return zeroOrigin, false
		}
		scheme = util.ByteLowercase(m[1])
		authority = "[" + m[2] + "]"
		rawPort = m[3]
	}
	var host string
	if strings.HasPrefix(authority, "[") {
		// Inspect the bracket content directly rather than relying on the
		// URL parser's view of the hostname, which mangles zone IDs.
		content, rest, found := strings.Cut(authority[1:], "]")
		if !found || !domains.IsIPv6(content) {
			return zeroOrigin, false
		}
		host = "[" + lowercaseIPv6(content, opts) + "]"
		if rawPort == "" {
			var ok bool
			if rawPort, ok = cutPort(rest); !ok {
				return zeroOrigin, false
			}
		}
	} else {
		hostname, portPart, ok := splitHostPort(authority)
		if !ok {
			return zeroOrigin, false
		}
		host = domains.Normalize(hostname)
		if host == "" {
			// A schemeful origin with no usable host is no origin at all.
			return zeroOrigin, false
		}
		rawPort = portPart
	}
	o := Origin{Scheme: scheme, Host: host}
	if rawPort != "" {
		port, ok := parsePort(rawPort)
		if !ok {
			return zeroOrigin, false
		}
		o.Port = port
	}
	return o, true
}

// String returns the canonical serialization of o, eliding the port when it
// is the default port for o's scheme (80 for http, 443 for https).
func (o Origin) String() string {
	if o.Port == 0 || isDefaultPortForScheme(o.Scheme, o.Port) {
		return o.Scheme + schemeHostSep + o.Host
	}
	return o.Scheme + schemeHostSep + o.Host + string(hostPortSep) + strconv.Itoa(o.Port)
}

// Normalize canonicalizes a raw origin string with default [Options];
// see [NormalizeWithOptions].
func Normalize(raw string) string {
	return NormalizeWithOptions(raw, Options{})
}

// NormalizeWithOptions canonicalizes a raw origin string. The literal
// "null" passes through unchanged and exactly; any other spelling of it
// (e.g. "NULL") is not special. The empty string signals failure.
func NormalizeWithOptions(raw string, opts Options) string {
	if raw == Null {
		return Null
	}
	o, ok := ParseWithOptions(raw, opts)
	if !ok {
		return ""
	}
	return o.String()
}

// lowercaseIPv6 lowercases the content of an IPv6 bracket pair, leaving the
// zone ID untouched when opts says so.
func lowercaseIPv6(content string, opts Options) string {
	if !opts.PreserveZoneCase {
		return util.ByteLowercase(content)
	}
	addr, zone, found := domains.SplitZone(content)
	if !found {
		return util.ByteLowercase(content)
	}
	return util.ByteLowercase(addr) + "%" + zone
}

// cutPort consumes a leading host-port separator from str and returns the
// remainder. It fails on any other non-empty leftover after an authority.
func cutPort(str string) (string, bool) {
	if str == "" {
		return "", true
	}
	return strings.CutPrefix(str, string(hostPortSep))
}

// splitHostPort slices a non-bracketed authority around the last colon,
// provided that everything after it is a decimal port candidate. A trailing
// bare colon is tolerated and treated as the absence of a port, which is
// how Web URL parsers behave.
func splitHostPort(authority string) (host, port string, ok bool) {
	i := strings.LastIndexByte(authority, hostPortSep)
	if i == -1 {
		return authority, "", true
	}
	host, port = authority[:i], authority[i+1:]
	for j := 0; j < len(port); j++ {
		if !isDigit(port[j]) {
			return "", "", false
		}
	}
	return host, port, true
}

// parsePort parses a decimal port number in the 1-65535 range.
// A leading zero is rejected.
func parsePort(str string) (int, bool) {
	if str == "" || str[0] == '0' {
		return 0, false
	}
	if len(str) > len("65535") {
		return 0, false
	}
	var port int
	for i := 0; i < len(str); i++ {
		if !isDigit(str[i]) {
			return 0, false
		}
		port = 10*port + int(str[i]-'0')
	}
	if port > maxPort {
		return 0, false
	}
	return port, true
}

// isDigit reports whether c is in the 0x30-0x39 ASCII range.
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isDefaultPortForScheme returns true for the (http, 80) and (https, 443)
// combinations, and false otherwise.
func isDefaultPortForScheme(scheme string, port int) bool {
	const (
		portHTTP  = 80
		portHTTPS = 443
	)
	return port == portHTTP && scheme == schemeHTTP ||
		port == portHTTPS && scheme == schemeHTTPS
}
