package topics

import (
	"fmt"

	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/internal/cmd/render"
)

// ListCommand lists the topics of a course.
type ListCommand struct {
	*base.QueryCommand

	flagCourse string
}

func (c *ListCommand) Synopsis() string {
	return "List the topics of a course"
}

func (c *ListCommand) Help() string {
	return `Usage: classbridge topics -course=<course id> [options]

  Lists every topic in a course.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := c.QueryFlags("topics")
	f.StringVar(&c.flagCourse, "course", "", "(Required) Course ID.")
	return f
}

func (c *ListCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagCourse == "" {
		c.UI.Error("course flag is required")
		return 1
	}

	ctx, cancel := base.SignalContext()
	defer cancel()

	adapter, _, err := c.Setup(ctx)
	if err != nil {
		return c.ReportError("topics", err)
	}

	topics, err := adapter.CourseTopics(ctx, c.flagCourse)
	if err != nil {
		return c.ReportError(fmt.Sprintf("topics of course %s", c.flagCourse), err)
	}
	if topics == nil {
		c.UI.Warn(fmt.Sprintf("No topics found in course %s", c.flagCourse))
		return 0
	}

	if err := c.Printer().Print(render.Topics(topics)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

// GetCommand shows a single topic.
type GetCommand struct {
	*base.QueryCommand

	flagCourse string
	flagID     string
}

func (c *GetCommand) Synopsis() string {
	return "Show a topic"
}

func (c *GetCommand) Help() string {
	return `Usage: classbridge topic -course=<course id> -id=<topic id> [options]

  Shows a single topic of a course.` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := c.QueryFlags("topic")
	f.StringVar(&c.flagCourse, "course", "", "(Required) Course ID.")
	f.StringVar(&c.flagID, "id", "", "(Required) Topic ID.")
	return f
}

func (c *GetCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagCourse == "" || c.flagID == "" {
		c.UI.Error("course and id flags are required")
		return 1
	}

	ctx, cancel := base.SignalContext()
	defer cancel()

	adapter, _, err := c.Setup(ctx)
	if err != nil {
		return c.ReportError("topic", err)
	}

	topic, err := adapter.Topic(ctx, c.flagCourse, c.flagID)
	if err != nil {
		return c.ReportError(fmt.Sprintf("topic %s", c.flagID), err)
	}

	if err := c.Printer().Print(render.Topic(topic)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
