package render

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/forPelevin/gomoji"

	"github.com/hashicorp-forge/classbridge/pkg/classroom"
	"github.com/hashicorp-forge/classbridge/pkg/discord"
)

// CourseView is the serialized form of a classroom.Course.
type CourseView struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Link    string `json:"link" yaml:"link"`
}

// TopicView is the serialized form of a classroom.Topic.
type TopicView struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// PostView is the serialized form of any classroom.Post.
type PostView struct {
	ID          string     `json:"id" yaml:"id"`
	Kind        string     `json:"kind" yaml:"kind"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	TopicID     string     `json:"topicId,omitempty" yaml:"topicId,omitempty"`
	Due         *time.Time `json:"due,omitempty" yaml:"due,omitempty"`
	Created     *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	Link        string     `json:"link" yaml:"link"`
}

// Courses renders a list of courses.
func Courses(courses []*classroom.Course) Result {
	r := Result{
		Header: []string{"ID", "NAME", "SECTION", "STATE"},
	}
	views := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, CourseView{
			ID:      c.ID(),
			Name:    c.Name(),
			Section: c.Section(),
			State:   c.State(),
			Link:    c.AlternateLink(),
		})
		r.Embeds = append(r.Embeds, discord.CourseEmbed(c))
		r.Rows = append(r.Rows, []string{c.ID(), oneLine(c.Name(), 60), oneLine(c.Section(), 30), c.State()})
	}
	r.Data = views
	return r
}

// Course renders a single course.
func Course(c *classroom.Course) Result {
	r := Courses([]*classroom.Course{c})
	r.Data = r.Data.([]CourseView)[0]
	return r
}

// Topics renders a list of topics.
func Topics(topics []*classroom.Topic) Result {
	r := Result{
		Header: []string{"ID", "NAME"},
	}
	views := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		views = append(views, TopicView{ID: t.ID(), Name: t.Name()})
		r.Embeds = append(r.Embeds, &discordgo.MessageEmbed{
			Type:  discordgo.EmbedTypeRich,
			Title: t.Name(),
			Color: discord.ColorPost,
		})
		r.Rows = append(r.Rows, []string{t.ID(), oneLine(t.Name(), 60)})
	}
	r.Data = views
	return r
}

// Topic renders a single topic.
func Topic(t *classroom.Topic) Result {
	r := Topics([]*classroom.Topic{t})
	r.Data = r.Data.([]TopicView)[0]
	return r
}

// Posts renders announcements, coursework or materials.
func Posts[P classroom.Post](posts []P) Result {
	r := Result{
		Header: []string{"ID", "TITLE", "TOPIC", "DUE"},
	}
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		v := postView(p)
		views = append(views, v)
		r.Embeds = append(r.Embeds, discord.PostEmbed(p))

		due := ""
		if v.Due != nil {
			due = v.Due.Format("2006-01-02 15:04")
		}
		r.Rows = append(r.Rows, []string{v.ID, oneLine(v.Title, 60), v.TopicID, due})
	}
	r.Data = views
	return r
}

// Post renders a single post.
func Post(p classroom.Post) Result {
	r := Posts([]classroom.Post{p})
	r.Data = r.Data.([]PostView)[0]
	return r
}

func postView(p classroom.Post) PostView {
	v := PostView{
		ID:          p.ID(),
		Kind:        string(p.Kind()),
		Title:       p.Headline(),
		Description: p.Detail(),
		Link:        p.Link(),
	}

	switch post := p.(type) {
	case *classroom.Coursework:
		v.TopicID = post.TopicID()
		if d := post.Due(); d != nil {
			due := d.Time()
			v.Due = &due
		}
	case *classroom.Material:
		v.TopicID = post.TopicID()
	case *classroom.Announcement:
		if created := post.CreationTime(); !created.IsZero() {
			v.Created = &created
		}
	}
	return v
}

// oneLine flattens s to a single line of at most n runes for tables.
// Emoji are dropped: tabwriter aligns by rune count, and emoji render two
// cells wide in most terminals.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(gomoji.RemoveEmojis(s)), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
