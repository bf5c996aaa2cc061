package classroom

import (
	"fmt"
	"time"
)

// Course is a class or section in Google Classroom.
//
// Courses are built by the mapping layer and never change afterwards; every
// attribute is read through an accessor.
type Course struct {
	id                 string
	name               string
	alternateLink      string
	section            string
	descriptionHeading string
	state              string
}

// NewCourse creates a Course. id, name and alternateLink are required.
func NewCourse(id, name, alternateLink string) (*Course, error) {
	if err := requireFields(ResourceCourse, id,
		field{"id", id},
		field{"name", name},
		field{"alternateLink", alternateLink},
	); err != nil {
		return nil, err
	}

	return &Course{
		id:            id,
		name:          name,
		alternateLink: alternateLink,
	}, nil
}

// ID returns the Classroom course identifier.
func (c *Course) ID() string {
	return c.id
}

// Name returns the course title shown in Classroom.
func (c *Course) Name() string { return c.name }

// AlternateLink returns the URL of the course in the Classroom web UI.
func (c *Course) AlternateLink() string { return c.alternateLink }

// Section returns the optional section, e.g. "Period 2".
func (c *Course) Section() string { return c.section }

// DescriptionHeading returns the optional heading of the course description.
func (c *Course) DescriptionHeading() string { return c.descriptionHeading }

// State returns the course state (ACTIVE, ARCHIVED, ...); empty when unset.
func (c *Course) State() string { return c.state }

// Topic is a named grouping of coursework within a course.
type Topic struct {
	id         string
	name       string
	courseID   string
	updateTime time.Time
}

// NewTopic creates a Topic. id and name are required.
func NewTopic(id, name string) (*Topic, error) {
	if err := requireFields(ResourceTopic, id,
		field{"topicId", id},
		field{"name", name},
	); err != nil {
		return nil, err
	}

	return &Topic{
		id:   id,
		name: name,
	}, nil
}

// ID returns the Classroom topic identifier.
func (t *Topic) ID() string {
	return t.id
}

// Name returns the topic name.
func (t *Topic) Name() string { return t.name }

// CourseID returns the identifier of the course the topic belongs to.
func (t *Topic) CourseID() string { return t.courseID }

// UpdateTime returns when the topic was last changed; zero when unknown.
func (t *Topic) UpdateTime() time.Time { return t.updateTime }

// Kind identifies which Classroom resource a Post was mapped from.
type Kind string

const (
	KindAnnouncement Kind = "announcement"
	KindCoursework   Kind = "coursework"
	KindMaterial     Kind = "material"
)

// Post is the capability set shared by announcements, coursework and
// coursework materials.
type Post interface {
	ID() string
	Kind() Kind
	// Headline is the title of the post. Announcements have no title and
	// use their text instead.
	Headline() string
	// Link is the URL of the post in the Classroom web UI.
	Link() string
	// Detail is the optional description; empty when absent.
	Detail() string
}

var (
	_ Post = (*Announcement)(nil)
	_ Post = (*Coursework)(nil)
	_ Post = (*Material)(nil)
)

// Announcement is a stream post in a course.
type Announcement struct {
	id            string
	text          string
	alternateLink string
	creationTime  time.Time
	updateTime    time.Time
}

// NewAnnouncement creates an Announcement. id, text and alternateLink are
// required.
func NewAnnouncement(id, text, alternateLink string) (*Announcement, error) {
	if err := requireFields(ResourceAnnouncement, id,
		field{"id", id},
		field{"text", text},
		field{"alternateLink", alternateLink},
	); err != nil {
		return nil, err
	}

	return &Announcement{
		id:            id,
		text:          text,
		alternateLink: alternateLink,
	}, nil
}

// Post implementation. An announcement's headline is its text and it has
// no separate detail.
func (a *Announcement) ID() string       { return a.id }
func (a *Announcement) Kind() Kind       { return KindAnnouncement }
func (a *Announcement) Headline() string { return a.text }
func (a *Announcement) Link() string     { return a.alternateLink }
func (a *Announcement) Detail() string   { return "" }

// Text returns the announcement body.
func (a *Announcement) Text() string { return a.text }

// CreationTime returns when the announcement was posted; zero when unknown.
func (a *Announcement) CreationTime() time.Time { return a.creationTime }

// UpdateTime returns when the announcement was last edited; zero when unknown.
func (a *Announcement) UpdateTime() time.Time { return a.updateTime }

// Coursework is an assignment or question in a course.
type Coursework struct {
	id            string
	title         string
	alternateLink string
	description   string
	topicID       string
	due           *DueDate
	workType      string
	maxPoints     float64
}

// NewCoursework creates a Coursework. id, title and alternateLink are
// required.
func NewCoursework(id, title, alternateLink string) (*Coursework, error) {
	if err := requireFields(ResourceCoursework, id,
		field{"id", id},
		field{"title", title},
		field{"alternateLink", alternateLink},
	); err != nil {
		return nil, err
	}

	return &Coursework{
		id:            id,
		title:         title,
		alternateLink: alternateLink,
	}, nil
}

// Post implementation: headline is the title, detail the description.
func (c *Coursework) ID() string       { return c.id }
func (c *Coursework) Kind() Kind       { return KindCoursework }
func (c *Coursework) Headline() string { return c.title }
func (c *Coursework) Link() string     { return c.alternateLink }
func (c *Coursework) Detail() string   { return c.description }

// Title returns the coursework title.
func (c *Coursework) Title() string { return c.title }

// Description returns the optional description.
func (c *Coursework) Description() string { return c.description }

// TopicID returns the topic the coursework is filed under; empty when none.
func (c *Coursework) TopicID() string { return c.topicID }

// Due returns a copy of the due date, or nil when none is set.
func (c *Coursework) Due() *DueDate {
	if c.due == nil {
		return nil
	}
	due := *c.due
	return &due
}

// WorkType returns ASSIGNMENT, SHORT_ANSWER_QUESTION or
// MULTIPLE_CHOICE_QUESTION.
func (c *Coursework) WorkType() string { return c.workType }

// MaxPoints returns the maximum grade; 0 when ungraded.
func (c *Coursework) MaxPoints() float64 { return c.maxPoints }

// Material is a coursework material: reference content with no submission.
type Material struct {
	id            string
	title         string
	alternateLink string
	description   string
	topicID       string
}

// NewMaterial creates a Material. id, title and alternateLink are required.
func NewMaterial(id, title, alternateLink string) (*Material, error) {
	if err := requireFields(ResourceMaterial, id,
		field{"id", id},
		field{"title", title},
		field{"alternateLink", alternateLink},
	); err != nil {
		return nil, err
	}

	return &Material{
		id:            id,
		title:         title,
		alternateLink: alternateLink,
	}, nil
}

// Post implementation: headline is the title, detail the description.
func (m *Material) ID() string       { return m.id }
func (m *Material) Kind() Kind       { return KindMaterial }
func (m *Material) Headline() string { return m.title }
func (m *Material) Link() string     { return m.alternateLink }
func (m *Material) Detail() string   { return m.description }

// Title returns the material title.
func (m *Material) Title() string { return m.title }

// Description returns the optional description.
func (m *Material) Description() string { return m.description }

// TopicID returns the topic the material is filed under; empty when none.
func (m *Material) TopicID() string { return m.topicID }

// DueDate is the due date of a coursework item. Classroom stores due dates
// and times in UTC.
type DueDate struct {
	Year  int
	Month time.Month
	Day   int

	// HasTime is false when only a date was set on the coursework.
	HasTime bool
	Hour    int
	Minute  int
}

// Time returns the due instant in UTC. Without a time of day it is the
// start of the due day.
func (d DueDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, d.Hour, d.Minute, 0, 0, time.UTC)
}

func (d DueDate) String() string {
	if !d.HasTime {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d UTC", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}

type field struct {
	name  string
	value string
}

// requireFields returns a MappingError for the first empty field.
func requireFields(resource Resource, id string, fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return &MappingError{Resource: resource, ID: id, Field: f.name}
		}
	}
	return nil
}
