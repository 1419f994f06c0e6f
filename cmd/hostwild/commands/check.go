package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/hostwild/hostwild"
	"github.com/hostwild/hostwild/internal/config"
	"github.com/hostwild/hostwild/internal/util"
)

// CheckCommand evaluates candidate domains and origins against the
// allowlists of a configuration file.
type CheckCommand struct {
	root       *RootCommand
	configPath string
	domains    []string
	origins    []string
	creds      []string
}

// NewCheckCommand sets up the check command.
func NewCheckCommand(root *RootCommand, app *kingpin.Application) *CheckCommand {
	c := &CheckCommand{root: root}
	cmd := app.Command("check", "Evaluate candidate domains/origins against the allowlists of a configuration file.")
	cmd.Arg("config-file", "Path to the allowlist YAML file.").Required().StringVar(&c.configPath)
	cmd.Flag("domain", "Candidate domain to evaluate against the domain list (repeatable).").StringsVar(&c.domains)
	cmd.Flag("origin", "Candidate origin to evaluate against the origin list (repeatable).").StringsVar(&c.origins)
	cmd.Flag("credentialed", "Candidate origin to evaluate against the credentialed-origin list (repeatable).").StringsVar(&c.creds)
	return c
}

// Name returns the command name.
func (c *CheckCommand) Name() string { return "check" }

// Run executes the command.
func (c *CheckCommand) Run(_ context.Context) error {
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return err
	}
	if len(c.domains)+len(c.origins)+len(c.creds) == 0 {
		return util.NewError("nothing to check: pass --domain, --origin, or --credentialed")
	}

	var nbDenied int
	report := func(kind, candidate string, allowed bool) {
		verdict := "allowed"
		if !allowed {
			verdict = "denied"
			nbDenied++
		}
		fmt.Fprintf(c.root.Stdout, "%s\t%s\t%s\n", kind, candidate, verdict)
	}

	for _, d := range c.domains {
		allowed, err := hostwild.MatchesDomainList(d, cfg.Domains)
		if err != nil {
			return err
		}
		report("domain", d, allowed)
	}
	originOpts := hostwild.OriginListOptions{
		TreatNoOriginAsAllowed: cfg.TreatNoOriginAsAllowed,
	}
	for _, o := range c.origins {
		report("origin", o, hostwild.MatchesOriginList(o, cfg.Origins, originOpts))
	}
	credOpts := hostwild.CredentialsListOptions{
		AllowWildcardSubdomains: cfg.AllowWildcardSubdomains,
	}
	for _, o := range c.creds {
		report("credentialed", o, hostwild.MatchesCORSCredentialsList(o, cfg.CredentialedOrigins, credOpts))
	}

	if nbDenied > 0 {
		return util.Errorf("%d candidates denied", nbDenied)
	}
	return nil
}
