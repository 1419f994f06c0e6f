/*
Package cfgerrors provides functionalities for programmatically handling
allowlist-configuration errors produced by package
[github.com/hostwild/hostwild].

Most users of package [github.com/hostwild/hostwild] have no use for this
package. However, applications that let their operators or tenants edit
domain/origin allowlists (e.g. via some Web portal or some command-line
interface) may find it useful: it allows such applications to surface
configuration mistakes via custom, human-friendly error messages.
*/
package cfgerrors

import (
	"fmt"
	"iter"
)

// An OriginStyleEntryError indicates that an entry of a domain allowlist is
// origin-shaped (i.e. contains a scheme). Such entries are structurally
// inert in a domain list; silently ignoring them would give operators a
// false sense of security, so they are treated as configuration errors.
type OriginStyleEntryError struct {
	Value string // the offending entry
}

func (err *OriginStyleEntryError) Error() string {
	const tmpl = "hostwild: origin-style patterns are not allowed in domain lists: %q"
	return fmt.Sprintf(tmpl, err.Value)
}

// An UnacceptableEntryError indicates an allowlist entry that failed
// validation. Context is either "domain" or "origin"; Reason is the stable,
// human-readable rejection reason produced by the entry validator.
type UnacceptableEntryError struct {
	Value   string // the unacceptable value that was specified
	Context string // domain | origin
	Reason  string
}

func (err *UnacceptableEntryError) Error() string {
	const tmpl = "hostwild: unacceptable %s entry %q: %s"
	return fmt.Sprintf(tmpl, err.Context, err.Value, err.Reason)
}

// All returns an iterator over the configuration errors contained in err's
// error tree. The order is unspecified and may change from one release to
// the next.
func All(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		every(err, yield)
	}
}

func every(err error, f func(error) bool) bool {
	switch err := err.(type) {
	// Note that there's no need for any "interface { Unwrap() error }" case
	// because nowhere do we "wrap" errors; we only ever "join" them.
	case interface{ Unwrap() []error }:
		for _, err := range err.Unwrap() {
			if !every(err, f) {
				return false
			}
		}
		return true
	default:
		return f(err)
	}
}
