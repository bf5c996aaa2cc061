package base

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/classbridge/internal/cmd/render"
	"github.com/hashicorp-forge/classbridge/internal/config"
	"github.com/hashicorp-forge/classbridge/pkg/classroom"
	"github.com/hashicorp-forge/classbridge/pkg/classroom/auth"
)

// QueryCommand is embedded by commands that query Classroom. It owns the
// shared -config and -format flags.
type QueryCommand struct {
	*Command

	FlagConfig string
	FlagFormat string
}

// NewQueryCommand returns a QueryCommand writing through c.
func NewQueryCommand(c *Command) *QueryCommand {
	return &QueryCommand{Command: c}
}

// QueryFlags returns a FlagSet named name with the shared flags registered.
func (c *QueryCommand) QueryFlags(name string) *FlagSet {
	f := NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))

	f.StringVar(
		&c.FlagConfig, "config", "",
		"Path to the classbridge HCL config file. Defaults apply when unset.",
	)
	f.StringVar(
		&c.FlagFormat, "format", string(render.FormatTable),
		"Output format: table, json, yaml or discord.",
	)

	return f
}

// SignalContext returns a context canceled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Setup loads the config, opens the session and returns a ready adapter.
func (c *QueryCommand) Setup(ctx context.Context) (*classroom.Adapter, *config.Config, error) {
	if _, err := render.ParseFormat(c.FlagFormat); err != nil {
		return nil, nil, err
	}

	cfg, err := config.NewConfig(c.FlagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing config: %w", err)
	}
	c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	sess, err := auth.Open(ctx, auth.Options{
		CredentialsFile: cfg.Classroom.CredentialsFile,
		TokenFile:       cfg.Classroom.TokenFile,
		Scopes:          cfg.Classroom.Scopes,
		Logger:          c.Log,
	})
	if err != nil {
		return nil, nil, err
	}

	client := sess.Client(ctx)
	client.Timeout = cfg.Classroom.RequestTimeout()

	adapter, err := classroom.New(ctx, classroom.Config{
		HTTPClient:   client,
		Endpoint:     cfg.Classroom.Endpoint,
		PageSize:     int64(cfg.Classroom.PageSize),
		CourseStates: cfg.Classroom.CourseStates,
		Verify:       cfg.Classroom.Verify(),
		Logger:       c.Log,
	})
	if err != nil {
		return nil, nil, err
	}

	return adapter, cfg, nil
}

// Printer returns a printer for the -format flag writing to the UI.
func (c *QueryCommand) Printer() *render.Printer {
	format, _ := render.ParseFormat(c.FlagFormat)
	return render.NewPrinter(format, c.UI)
}

// ReportError prints err for the user and returns the exit code.
func (c *QueryCommand) ReportError(what string, err error) int {
	var merr *classroom.MappingError
	switch {
	case classroom.IsNotFound(err):
		c.UI.Error(fmt.Sprintf("%s not found", what))
	case errors.Is(err, classroom.ErrSessionUnavailable):
		c.UI.Error(fmt.Sprintf("classroom session unavailable: %v", err))
	case errors.As(err, &merr):
		c.UI.Error(fmt.Sprintf("unexpected data from classroom: %v", err))
	default:
		c.UI.Error(fmt.Sprintf("error fetching %s: %v", what, err))
	}
	c.Log.Debug("command failed", "what", what, "error", err)
	return 1
}
