package posts

import (
	"fmt"

	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/internal/cmd/render"
)

// CourseworksCommand lists the course work of a course.
type CourseworksCommand struct {
	*base.QueryCommand

	flagCourse string
}

func (c *CourseworksCommand) Synopsis() string {
	return "List the course work of a course"
}

func (c *CourseworksCommand) Help() string {
	return `Usage: classbridge courseworks -course=<course id> [options]

  Lists every assignment and question in a course with its due date.` +
		c.Flags().Help()
}

func (c *CourseworksCommand) Flags() *base.FlagSet {
	f := c.QueryFlags("courseworks")
	f.StringVar(&c.flagCourse, "course", "", "(Required) Course ID.")
	return f
}

func (c *CourseworksCommand) Run(args []string) int {
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
		return c.ReportError("course work", err)
	}

	works, err := adapter.Courseworks(ctx, c.flagCourse)
	if err != nil {
		return c.ReportError(fmt.Sprintf("course work of course %s", c.flagCourse), err)
	}
	if works == nil {
		c.UI.Warn(fmt.Sprintf("No course work found in course %s", c.flagCourse))
		return 0
	}

	if err := c.Printer().Print(render.Posts(works)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

// CourseworkCommand shows a single course work item.
type CourseworkCommand struct {
	*base.QueryCommand

	flagCourse string
	flagID     string
}

func (c *CourseworkCommand) Synopsis() string {
	return "Show a course work item"
}

func (c *CourseworkCommand) Help() string {
	return `Usage: classbridge coursework -course=<course id> -id=<course work id> [options]

  Shows a single assignment or question.` +
		c.Flags().Help()
}

func (c *CourseworkCommand) Flags() *base.FlagSet {
	f := c.QueryFlags("coursework")
	f.StringVar(&c.flagCourse, "course", "", "(Required) Course ID.")
	f.StringVar(&c.flagID, "id", "", "(Required) Course work ID.")
	return f
}

func (c *CourseworkCommand) Run(args []string) int {
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
		return c.ReportError("course work", err)
	}

	work, err := adapter.Coursework(ctx, c.flagCourse, c.flagID)
	if err != nil {
		return c.ReportError(fmt.Sprintf("course work %s", c.flagID), err)
	}

	if err := c.Printer().Print(render.Post(work)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
