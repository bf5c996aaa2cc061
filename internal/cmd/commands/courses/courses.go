package courses

import (
	"fmt"

	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/internal/cmd/render"
)

// ListCommand lists the courses of the signed-in user.
type ListCommand struct {
	*base.QueryCommand
}

func (c *ListCommand) Synopsis() string {
	return "List courses"
}

func (c *ListCommand) Help() string {
	return `Usage: classbridge courses [options]

  Lists every course visible to the signed-in user. The course_states
  config setting restricts the list to courses in those states.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	return c.QueryFlags("courses")
}

func (c *ListCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	ctx, cancel := base.SignalContext()
	defer cancel()

	adapter, _, err := c.Setup(ctx)
	if err != nil {
		return c.ReportError("courses", err)
	}

	courses, err := adapter.Courses(ctx)
	if err != nil {
		return c.ReportError("courses", err)
	}
	if courses == nil {
		c.UI.Warn("No courses found")
		return 0
	}

	if err := c.Printer().Print(render.Courses(courses)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

// GetCommand shows a single course.
type GetCommand struct {
	*base.QueryCommand

	flagID string
}

func (c *GetCommand) Synopsis() string {
	return "Show a course"
}

func (c *GetCommand) Help() string {
	return `Usage: classbridge course -id=<course id> [options]

  Shows a single course.` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := c.QueryFlags("course")
	f.StringVar(&c.flagID, "id", "", "(Required) Course ID.")
	return f
}

func (c *GetCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagID == "" {
		c.UI.Error("id flag is required")
		return 1
	}

	ctx, cancel := base.SignalContext()
	defer cancel()

	adapter, _, err := c.Setup(ctx)
	if err != nil {
		return c.ReportError("course", err)
	}

	course, err := adapter.Course(ctx, c.flagID)
	if err != nil {
		return c.ReportError(fmt.Sprintf("course %s", c.flagID), err)
	}

	if err := c.Printer().Print(render.Course(course)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
