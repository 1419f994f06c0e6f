package commands

import (
	"context"

	"github.com/alecthomas/kingpin/v2"

	"github.com/hostwild/hostwild/cfgerrors"
	"github.com/hostwild/hostwild/internal/config"
	"github.com/hostwild/hostwild/internal/util"
)

// LintCommand validates every entry of an allowlist configuration file.
type LintCommand struct {
	root       *RootCommand
	configPath string
}

// NewLintCommand sets up the lint command.
func NewLintCommand(root *RootCommand, app *kingpin.Application) *LintCommand {
	c := &LintCommand{root: root}
	cmd := app.Command("lint", "Validate every entry of an allowlist configuration file.")
	cmd.Arg("config-file", "Path to the allowlist YAML file.").Required().StringVar(&c.configPath)
	return c
}

// Name returns the command name.
func (c *LintCommand) Name() string { return "lint" }

// Run executes the command.
func (c *LintCommand) Run(_ context.Context) error {
	logger := c.root.Logger

	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return err
	}

	nbEntries := len(cfg.Domains) + len(cfg.Origins) + len(cfg.CredentialedOrigins)
	logger.Debugf("Loaded %d allowlist entries from %q", nbEntries, c.configPath)

	verr := cfg.Validate()
	if verr == nil {
		logger.Infof("All %d entries are valid", nbEntries)
		return nil
	}

	var nbInvalid int
	for err := range cfgerrors.All(verr) {
		nbInvalid++
		if uerr, ok := err.(*cfgerrors.UnacceptableEntryError); ok {
			logger.WithField("context", uerr.Context).
				WithField("entry", uerr.Value).
				Errorf("%s", uerr.Reason)
			continue
		}
		logger.Errorf("%s", err)
	}
	return util.Errorf("%d invalid allowlist entries", nbInvalid)
}
