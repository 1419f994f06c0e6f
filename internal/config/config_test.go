package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostwild/hostwild/cfgerrors"
	"github.com/hostwild/hostwild/internal/config"
)

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		yaml    string
		expCfg  *config.Config
		expErr  bool
	}{
		"A full configuration should load every field.": {
			yaml: `
domains:
  - example.com
  - "*.example.org"
origins:
  - https://app.example.com
credentialed_origins:
  - https://app.example.com
allow_global_wildcard: true
allow_protocol_wildcard: true
allow_wildcard_subdomains: true
treat_no_origin_as_allowed: true
`,
			expCfg: &config.Config{
				Domains:                 []string{"example.com", "*.example.org"},
				Origins:                 []string{"https://app.example.com"},
				CredentialedOrigins:     []string{"https://app.example.com"},
				AllowGlobalWildcard:     true,
				AllowProtocolWildcard:   true,
				AllowWildcardSubdomains: true,
				TreatNoOriginAsAllowed:  true,
			},
		},

		"An empty configuration should load with zero values.": {
			yaml:   `{}`,
			expCfg: &config.Config{},
		},

		"An unknown field should fail loading.": {
			yaml: `
domains:
  - example.com
unknown_field: true
`,
			expErr: true,
		},

		"Malformed YAML should fail loading.": {
			yaml:   `domains: [`,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			cfg, err := config.Load(strings.NewReader(test.yaml))

			if test.expErr {
				assert.Error(err)
				return
			}
			if assert.NoError(err) {
				assert.Equal(test.expCfg, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		cfg        config.Config
		expReasons map[string]string // offending entry -> reason
	}{
		"A valid configuration should produce no errors.": {
			cfg: config.Config{
				Domains:             []string{"example.com", "*.example.org"},
				Origins:             []string{"https://app.example.com", "null"},
				CredentialedOrigins: []string{"https://app.example.com"},
			},
		},

		"Risky wildcards should be rejected unless enabled.": {
			cfg: config.Config{
				Domains: []string{"*"},
				Origins: []string{"https://*"},
			},
			expReasons: map[string]string{
				"*":         "global wildcard not allowed in this context",
				"https://*": "protocol wildcard not allowed in this context",
			},
		},

		"Risky wildcards should be accepted when enabled.": {
			cfg: config.Config{
				Domains:               []string{"*"},
				Origins:               []string{"https://*"},
				AllowGlobalWildcard:   true,
				AllowProtocolWildcard: true,
			},
		},

		"Every invalid entry should be reported, not just the first one.": {
			cfg: config.Config{
				Domains:             []string{"*.com", "https://example.com"},
				Origins:             []string{"https://example.com/api"},
				CredentialedOrigins: []string{"example.com"},
			},
			expReasons: map[string]string{
				"*.com":                   "wildcard must not be anchored to a public suffix",
				"https://example.com":     "scheme not allowed in domain entries",
				"https://example.com/api": "origin must not include a path",
				"example.com":             "origin must include a scheme",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			err := test.cfg.Validate()

			if len(test.expReasons) == 0 {
				assert.NoError(err)
				return
			}
			require.Error(err)
			gotReasons := map[string]string{}
			for err := range cfgerrors.All(err) {
				uerr, ok := err.(*cfgerrors.UnacceptableEntryError)
				require.True(ok, "unexpected error type %T", err)
				gotReasons[uerr.Value] = uerr.Reason
			}
			assert.Equal(test.expReasons, gotReasons)
		})
	}
}
