// Package config loads and validates allowlist configuration files for the
// hostwild command-line tool.
package config

import (
	"errors"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/hostwild/hostwild"
	"github.com/hostwild/hostwild/cfgerrors"
	"github.com/hostwild/hostwild/internal/util"
)

// Config is the on-disk allowlist configuration.
type Config struct {
	// Domains are exact or wildcard domain allowlist entries.
	Domains []string `yaml:"domains"`
	// Origins are exact or wildcard origin allowlist entries.
	Origins []string `yaml:"origins"`
	// CredentialedOrigins gate credentialed CORS responses; wildcard
	// entries there are inert unless AllowWildcardSubdomains is set.
	CredentialedOrigins []string `yaml:"credentialed_origins"`

	AllowGlobalWildcard     bool `yaml:"allow_global_wildcard"`
	AllowProtocolWildcard   bool `yaml:"allow_protocol_wildcard"`
	AllowWildcardSubdomains bool `yaml:"allow_wildcard_subdomains"`
	TreatNoOriginAsAllowed  bool `yaml:"treat_no_origin_as_allowed"`
}

// Load decodes a YAML configuration from r.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, util.Errorf("could not decode configuration: %s", err)
	}
	return &cfg, nil
}

// LoadFile decodes the YAML configuration file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.Errorf("could not open configuration file: %s", err)
	}
	defer f.Close()
	return Load(f)
}

// ValidationOptions derives the entry-validation options from cfg.
func (cfg *Config) ValidationOptions() hostwild.ValidationOptions {
	return hostwild.ValidationOptions{
		AllowGlobalWildcard:   cfg.AllowGlobalWildcard,
		AllowProtocolWildcard: cfg.AllowProtocolWildcard,
	}
}

// Validate runs the entry validator over every allowlist entry of cfg and
// returns all the problems found, joined into a single error whose tree can
// be enumerated with [cfgerrors.All]. A nil result means every entry is
// acceptable.
func (cfg *Config) Validate() error {
	opts := cfg.ValidationOptions()
	var errs []error
	for _, entry := range cfg.Domains {
		v := hostwild.ValidateConfigEntry(entry, hostwild.ContextDomain, opts)
		if !v.Valid {
			errs = append(errs, &cfgerrors.UnacceptableEntryError{
				Value:   entry,
				Context: "domain",
				Reason:  v.Info,
			})
		}
	}
	for _, entry := range slices.Concat(cfg.Origins, cfg.CredentialedOrigins) {
		v := hostwild.ValidateConfigEntry(entry, hostwild.ContextOrigin, opts)
		if !v.Valid {
			errs = append(errs, &cfgerrors.UnacceptableEntryError{
				Value:   entry,
				Context: "origin",
				Reason:  v.Info,
			})
		}
	}
	return errors.Join(errs...)
}
