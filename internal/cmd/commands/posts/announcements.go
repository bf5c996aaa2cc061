package posts

import (
	"fmt"
	"slices"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/internal/cmd/render"
	"github.com/hashicorp-forge/classbridge/pkg/classroom"
)

// AnnouncementsCommand lists the latest announcements of a course.
type AnnouncementsCommand struct {
	*base.QueryCommand

	flagCourse string
	flagLimit  int
	flagSince  string
}

func (c *AnnouncementsCommand) Synopsis() string {
	return "List the latest announcements of a course"
}

func (c *AnnouncementsCommand) Help() string {
	return `Usage: classbridge announcements -course=<course id> [options]

  Lists announcements newest first. Without -limit the announcement_limit
  config setting applies (default 5); -limit=0 lists all of them.` +
		c.Flags().Help()
}

func (c *AnnouncementsCommand) Flags() *base.FlagSet {
	f := c.QueryFlags("announcements")
	f.StringVar(&c.flagCourse, "course", "", "(Required) Course ID.")
	f.IntVar(
		&c.flagLimit, "limit", -1,
		"Maximum number of announcements. Negative uses the config value.",
	)
	f.StringVar(
		&c.flagSince, "since", "",
		`Only announcements created at or after this time (e.g. "2024-09-01", "Sep 1 2024 8am").`,
	)
	return f
}

func (c *AnnouncementsCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagCourse == "" {
		c.UI.Error("course flag is required")
		return 1
	}

	var since time.Time
	if c.flagSince != "" {
		t, err := dateparse.ParseLocal(c.flagSince)
		if err != nil {
			c.UI.Error(fmt.Sprintf("invalid since value %q: %v", c.flagSince, err))
			return 1
		}
		since = t
	}

	ctx, cancel := base.SignalContext()
	defer cancel()

	adapter, cfg, err := c.Setup(ctx)
	if err != nil {
		return c.ReportError("announcements", err)
	}

	limit := c.flagLimit
	if limit < 0 {
		limit = cfg.Classroom.Limit()
	}

	// Fetch uncapped so the since filter runs before the limit.
	announcements, err := adapter.Announcements(ctx, c.flagCourse, 0)
	if err != nil {
		return c.ReportError(fmt.Sprintf("announcements of course %s", c.flagCourse), err)
	}
	announcements = latest(announcements, since, limit)
	if announcements == nil {
		c.UI.Warn(fmt.Sprintf("No announcements found in course %s", c.flagCourse))
		return 0
	}

	if err := c.Printer().Print(render.Posts(announcements)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

// latest drops announcements created before since (when set) and caps the
// newest-first list at limit (when positive).
func latest(announcements []*classroom.Announcement, since time.Time, limit int) []*classroom.Announcement {
	if !since.IsZero() {
		announcements = slices.DeleteFunc(announcements, func(a *classroom.Announcement) bool {
			return a.CreationTime().Before(since)
		})
	}
	if limit > 0 && len(announcements) > limit {
		announcements = announcements[:limit]
	}
	if len(announcements) == 0 {
		return nil
	}
	return announcements
}
