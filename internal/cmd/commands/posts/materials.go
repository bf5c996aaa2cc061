package posts

import (
	"fmt"

	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/internal/cmd/render"
)

// MaterialsCommand lists the course work materials of a course.
type MaterialsCommand struct {
	*base.QueryCommand

	flagCourse string
	flagTopic  string
}

func (c *MaterialsCommand) Synopsis() string {
	return "List the materials of a course"
}

func (c *MaterialsCommand) Help() string {
	return `Usage: classbridge materials -course=<course id> [-topic=<topic id>] [options]

  Lists course work materials, optionally only those in one topic.` +
		c.Flags().Help()
}

func (c *MaterialsCommand) Flags() *base.FlagSet {
	f := c.QueryFlags("materials")
	f.StringVar(&c.flagCourse, "course", "", "(Required) Course ID.")
	f.StringVar(&c.flagTopic, "topic", "", "Only list materials in this topic.")
	return f
}

func (c *MaterialsCommand) Run(args []string) int {
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
		return c.ReportError("materials", err)
	}

	materials, err := adapter.Materials(ctx, c.flagCourse, c.flagTopic)
	if err != nil {
		return c.ReportError(fmt.Sprintf("materials of course %s", c.flagCourse), err)
	}
	if materials == nil {
		c.UI.Warn(fmt.Sprintf("No materials found in course %s", c.flagCourse))
		return 0
	}

	if err := c.Printer().Print(render.Posts(materials)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

// MaterialCommand shows a single course work material.
type MaterialCommand struct {
	*base.QueryCommand

	flagCourse string
	flagID     string
}

func (c *MaterialCommand) Synopsis() string {
	return "Show a material"
}

func (c *MaterialCommand) Help() string {
	return `Usage: classbridge material -course=<course id> -id=<material id> [options]

  Shows a single course work material.` +
		c.Flags().Help()
}

func (c *MaterialCommand) Flags() *base.FlagSet {
	f := c.QueryFlags("material")
	f.StringVar(&c.flagCourse, "course", "", "(Required) Course ID.")
	f.StringVar(&c.flagID, "id", "", "(Required) Material ID.")
	return f
}

func (c *MaterialCommand) Run(args []string) int {
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
		return c.ReportError("material", err)
	}

	material, err := adapter.Material(ctx, c.flagCourse, c.flagID)
	if err != nil {
		return c.ReportError(fmt.Sprintf("material %s", c.flagID), err)
	}

	if err := c.Printer().Print(render.Post(material)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
