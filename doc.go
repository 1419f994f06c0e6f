/*
Package hostwild decides whether untrusted hostnames and Web origins are
permitted by a configured allowlist.

It canonicalizes possibly internationalized, possibly adversarial input
(IDNA/Punycode conversion, Unicode full-stop folding, IPv4/IPv6 literal
detection, default-port elision) and matches the result against exact
entries and wildcard patterns, with guardrails against the classic
allowlist footguns: wildcards anchored to public suffixes or IP addresses,
partial-label wildcards, and pathological patterns designed to trigger
exponential matching work.

Two wildcard markers are supported in host patterns, each spanning a whole
DNS label: * matches exactly one label and ** matches one or more labels
when leading (zero or more elsewhere). Neither ever matches the apex:

	*.example.com   matches api.example.com, not app.api.example.com
	**.example.com  matches api.example.com and app.api.example.com
	example.com     is matched by neither

A single asterisk is the global wildcard and matches any syntactically
valid domain (or any parseable http/https origin, in origin position).

All matching functions fail closed: any input that cannot be normalized
matches nothing. The only error ever returned surfaces a configuration
mistake, not a runtime mismatch; see [MatchesDomainList]. Everything in
this package is a pure function of its inputs and is safe for concurrent
use.

Applications are expected to run [ValidateConfigEntry] over each configured
allowlist entry at startup or config reload, report problems, and only then
serve traffic; at request time they call the Matches* functions with the
live candidate.
*/
package hostwild
