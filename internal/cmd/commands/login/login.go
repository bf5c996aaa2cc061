package login

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/internal/config"
	"github.com/hashicorp-forge/classbridge/pkg/classroom/auth"
)

type Command struct {
	*base.Command

	// Fs defaults to the OS filesystem.
	Fs afero.Fs

	// OpenURL opens the consent page. Defaults to the system browser.
	OpenURL func(url string) error

	flagConfig string
	flagForce  bool
}

func (c *Command) Synopsis() string {
	return "Authorize classbridge with Google Classroom"
}

func (c *Command) Help() string {
	return `Usage: classbridge login [options]

  Establishes a Classroom session and saves the token file. A valid stored
  token is reused; an expired one is refreshed. Otherwise the Google consent
  page is opened in the browser.

  Use -force to discard the stored token, for example after changing
  accounts or scopes.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to the classbridge HCL config file. Defaults apply when unset.",
	)
	f.BoolVar(
		&c.flagForce, "force", false,
		"Discard the stored token and authorize again.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := config.NewConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error parsing config: %v", err))
		return 1
	}
	c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	filesystem := c.Fs
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}

	if c.flagForce {
		err := filesystem.Remove(cfg.Classroom.TokenFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.UI.Error(fmt.Sprintf("error removing token file: %v", err))
			return 1
		}
	}

	ctx, cancel := base.SignalContext()
	defer cancel()

	sess, err := auth.Open(ctx, auth.Options{
		CredentialsFile: cfg.Classroom.CredentialsFile,
		TokenFile:       cfg.Classroom.TokenFile,
		Scopes:          cfg.Classroom.Scopes,
		Fs:              filesystem,
		OpenURL:         c.OpenURL,
		Logger:          c.Log,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("login failed: %v", err))
		return 1
	}

	tok, err := sess.TokenSource().Token()
	if err != nil {
		c.UI.Error(fmt.Sprintf("login failed: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("Logged in. Token saved to %s (expires %s)",
		sess.TokenFile(), tok.Expiry.Local().Format("2006-01-02 15:04")))
	return 0
}
