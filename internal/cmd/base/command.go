package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command holds what every classbridge command needs.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// NewCommand returns a Command writing to log and ui.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
	}
}
