package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/internal/cmd/commands/courses"
	"github.com/hashicorp-forge/classbridge/internal/cmd/commands/login"
	"github.com/hashicorp-forge/classbridge/internal/cmd/commands/posts"
	"github.com/hashicorp-forge/classbridge/internal/cmd/commands/topics"
	"github.com/hashicorp-forge/classbridge/internal/cmd/commands/version"
)

// Commands is the mapping of all available classbridge commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)
	query := func() *base.QueryCommand { return base.NewQueryCommand(b) }

	Commands = map[string]cli.CommandFactory{
		"login": func() (cli.Command, error) {
			return &login.Command{Command: b}, nil
		},
		"courses": func() (cli.Command, error) {
			return &courses.ListCommand{QueryCommand: query()}, nil
		},
		"course": func() (cli.Command, error) {
			return &courses.GetCommand{QueryCommand: query()}, nil
		},
		"topics": func() (cli.Command, error) {
			return &topics.ListCommand{QueryCommand: query()}, nil
		},
		"topic": func() (cli.Command, error) {
			return &topics.GetCommand{QueryCommand: query()}, nil
		},
		"announcements": func() (cli.Command, error) {
			return &posts.AnnouncementsCommand{QueryCommand: query()}, nil
		},
		"courseworks": func() (cli.Command, error) {
			return &posts.CourseworksCommand{QueryCommand: query()}, nil
		},
		"coursework": func() (cli.Command, error) {
			return &posts.CourseworkCommand{QueryCommand: query()}, nil
		},
		"materials": func() (cli.Command, error) {
			return &posts.MaterialsCommand{QueryCommand: query()}, nil
		},
		"material": func() (cli.Command, error) {
			return &posts.MaterialCommand{QueryCommand: query()}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
