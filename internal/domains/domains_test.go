package domains

import (
	"strings"
	"testing"
)

var normalizeCases = []struct {
	desc    string
	input   string
	want    string
	failure bool
}{
	{
		desc:    "empty input",
		input:   "",
		failure: true,
	}, {
		desc:    "lone full stop",
		input:   ".",
		failure: true,
	}, {
		desc:  "already canonical",
		input: "example.com",
		want:  "example.com",
	}, {
		desc:  "uppercase",
		input: "Example.COM",
		want:  "example.com",
	}, {
		desc:  "surrounding whitespace",
		input: "  example.com\t",
		want:  "example.com",
	}, {
		desc:  "trailing full stop",
		input: "example.com.",
		want:  "example.com",
	}, {
		desc:  "internationalized domain name",
		input: "bücher.de",
		want:  "xn--bcher-kva.de",
	}, {
		desc:  "already Punycoded",
		input: "xn--bcher-kva.de",
		want:  "xn--bcher-kva.de",
	}, {
		desc:  "uppercase internationalized domain name",
		input: "BÜCHER.de",
		want:  "xn--bcher-kva.de",
	}, {
		desc:  "ideographic full stops",
		input: "127。0。0。1",
		want:  "127.0.0.1",
	}, {
		desc:  "fullwidth full stops",
		input: "example．com",
		want:  "example.com",
	}, {
		desc:  "dotted quad",
		input: "127.0.0.1",
		want:  "127.0.0.1",
	}, {
		desc:  "bracketed IPv6",
		input: "[2001:DB8::1]",
		want:  "2001:db8::1",
	}, {
		desc:  "unbracketed IPv6 with zone ID",
		input: "FE80::1%ETH0",
		want:  "fe80::1%eth0",
	}, {
		desc:    "interior space",
		input:   "exa mple.com",
		failure: true,
	}, {
		desc:    "leading hyphen in label",
		input:   "-example.com",
		failure: true,
	}, {
		desc:    "empty label",
		input:   "example..com",
		failure: true,
	}, {
		desc:    "overlong label",
		input:   strings.Repeat("a", MaxLabelLen+1) + ".com",
		failure: true,
	}, {
		desc:  "longest possible label",
		input: strings.Repeat("a", MaxLabelLen) + ".com",
		want:  strings.Repeat("a", MaxLabelLen) + ".com",
	}, {
		desc: "longest possible domain",
		input: strings.Repeat(strings.Repeat("a", MaxLabelLen)+".", 3) +
			strings.Repeat("a", MaxLabelLen),
		want: strings.Repeat(strings.Repeat("a", MaxLabelLen)+".", 3) +
			strings.Repeat("a", MaxLabelLen),
	}, {
		desc: "overlong domain",
		input: "aa." + strings.Repeat(strings.Repeat("a", MaxLabelLen)+".", 3) +
			strings.Repeat("a", MaxLabelLen),
		failure: true,
	}, {
		desc:    "forbidden character",
		input:   "example_.com",
		failure: true,
	},
}

func TestNormalize(t *testing.T) {
	for _, c := range normalizeCases {
		f := func(t *testing.T) {
			t.Parallel()
			got := Normalize(c.input)
			want := c.want
			if c.failure {
				want = ""
			}
			if got != want {
				t.Errorf("%q: got %q; want %q", c.input, got, want)
			}
			if again := Normalize(got); again != got {
				t.Errorf("%q: not idempotent: got %q, then %q", c.input, got, again)
			}
		}
		t.Run(c.desc, f)
	}
}

var isIPv4Cases = []struct {
	desc  string
	input string
	want  bool
}{
	{
		desc:  "loopback",
		input: "127.0.0.1",
		want:  true,
	}, {
		desc:  "highest address",
		input: "255.255.255.255",
		want:  true,
	}, {
		desc:  "octet with leading zero",
		input: "127.0.0.01",
	}, {
		desc:  "octet out of range",
		input: "256.0.0.1",
	}, {
		desc:  "too few octets",
		input: "127.0.1",
	}, {
		desc:  "IPv6 address",
		input: "::1",
	}, {
		desc:  "domain",
		input: "example.com",
	}, {
		desc:  "empty string",
		input: "",
	},
}

func TestIsIPv4(t *testing.T) {
	for _, c := range isIPv4Cases {
		f := func(t *testing.T) {
			t.Parallel()
			if got := IsIPv4(c.input); got != c.want {
				t.Errorf("%q: got %t; want %t", c.input, got, c.want)
			}
		}
		t.Run(c.desc, f)
	}
}

var isIPv6Cases = []struct {
	desc  string
	input string
	want  bool
}{
	{
		desc:  "loopback",
		input: "::1",
		want:  true,
	}, {
		desc:  "bracketed loopback",
		input: "[::1]",
		want:  true,
	}, {
		desc:  "full form",
		input: "2001:0db8:0000:0000:0000:0000:0000:0001",
		want:  true,
	}, {
		desc:  "IPv4-mapped",
		input: "::ffff:127.0.0.1",
		want:  true,
	}, {
		desc:  "zone ID",
		input: "fe80::1%eth0",
		want:  true,
	}, {
		desc:  "percent-encoded zone ID",
		input: "fe80::1%25eth0",
		want:  true,
	}, {
		desc:  "empty zone ID",
		input: "fe80::1%",
	}, {
		desc:  "zone ID with forbidden character",
		input: "fe80::1%eth/0",
	}, {
		desc:  "unmatched left bracket",
		input: "[::1",
	}, {
		desc:  "unmatched right bracket",
		input: "::1]",
	}, {
		desc:  "brackets around garbage",
		input: "[example]",
	}, {
		desc:  "dotted quad",
		input: "127.0.0.1",
	}, {
		desc:  "domain",
		input: "example.com",
	}, {
		desc:  "empty string",
		input: "",
	},
}

func TestIsIPv6(t *testing.T) {
	for _, c := range isIPv6Cases {
		f := func(t *testing.T) {
			t.Parallel()
			if got := IsIPv6(c.input); got != c.want {
				t.Errorf("%q: got %t; want %t", c.input, got, c.want)
			}
		}
		t.Run(c.desc, f)
	}
}

var validZoneIDCases = []struct {
	desc  string
	input string
	want  bool
}{
	{
		desc:  "interface name",
		input: "eth0",
		want:  true,
	}, {
		desc:  "unreserved punctuation",
		input: "en0._~-",
		want:  true,
	}, {
		desc:  "percent-encoded percent sign",
		input: "%25",
		want:  true,
	}, {
		desc:  "empty",
		input: "",
	}, {
		desc:  "truncated percent-encoding",
		input: "eth%2",
	}, {
		desc:  "non-hex percent-encoding",
		input: "eth%zz",
	}, {
		desc:  "reserved character",
		input: "eth/0",
	},
}

func TestValidZoneID(t *testing.T) {
	for _, c := range validZoneIDCases {
		f := func(t *testing.T) {
			t.Parallel()
			if got := ValidZoneID(c.input); got != c.want {
				t.Errorf("%q: got %t; want %t", c.input, got, c.want)
			}
		}
		t.Run(c.desc, f)
	}
}
