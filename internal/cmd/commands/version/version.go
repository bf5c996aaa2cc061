package version

import (
	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the classbridge version"
}

func (c *Command) Help() string {
	return `Usage: classbridge version

  Prints the classbridge version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("classbridge " + version.Version)
	return 0
}
