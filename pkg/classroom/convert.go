package classroom

import (
	"fmt"
	"time"

	classroomapi "google.golang.org/api/classroom/v1"
)

// ConvertCourse converts a Classroom API course to a Course.
//
// Mapping:
//   - ID, Name, AlternateLink: required
//   - Section, DescriptionHeading, State (courseState): copied when present
func ConvertCourse(c *classroomapi.Course) (*Course, error) {
	if c == nil {
		return nil, fmt.Errorf("course cannot be nil")
	}

	course, err := NewCourse(c.Id, c.Name, c.AlternateLink)
	if err != nil {
		return nil, err
	}
	course.section = c.Section
	course.descriptionHeading = c.DescriptionHeading
	course.state = c.CourseState

	return course, nil
}

// ConvertTopic converts a Classroom API topic to a Topic.
func ConvertTopic(t *classroomapi.Topic) (*Topic, error) {
	if t == nil {
		return nil, fmt.Errorf("topic cannot be nil")
	}

	topic, err := NewTopic(t.TopicId, t.Name)
	if err != nil {
		return nil, err
	}
	topic.courseID = t.CourseId
	topic.updateTime = parseTimestamp(t.UpdateTime)

	return topic, nil
}

// ConvertAnnouncement converts a Classroom API announcement to an
// Announcement.
func ConvertAnnouncement(a *classroomapi.Announcement) (*Announcement, error) {
	if a == nil {
		return nil, fmt.Errorf("announcement cannot be nil")
	}

	announcement, err := NewAnnouncement(a.Id, a.Text, a.AlternateLink)
	if err != nil {
		return nil, err
	}
	announcement.creationTime = parseTimestamp(a.CreationTime)
	announcement.updateTime = parseTimestamp(a.UpdateTime)

	return announcement, nil
}

// ConvertCoursework converts a Classroom API course work item to a
// Coursework.
//
// Mapping:
//   - ID, Title, AlternateLink: required
//   - Description, TopicID (topicId), WorkType, MaxPoints: optional
//   - Due: built from dueDate and dueTime; nil when dueDate is absent
func ConvertCoursework(w *classroomapi.CourseWork) (*Coursework, error) {
	if w == nil {
		return nil, fmt.Errorf("course work cannot be nil")
	}

	coursework, err := NewCoursework(w.Id, w.Title, w.AlternateLink)
	if err != nil {
		return nil, err
	}
	coursework.description = w.Description
	coursework.topicID = w.TopicId
	coursework.workType = w.WorkType
	coursework.maxPoints = w.MaxPoints
	coursework.due = convertDueDate(w.DueDate, w.DueTime)

	return coursework, nil
}

// ConvertMaterial converts a Classroom API course work material to a
// Material.
func ConvertMaterial(m *classroomapi.CourseWorkMaterial) (*Material, error) {
	if m == nil {
		return nil, fmt.Errorf("course work material cannot be nil")
	}

	material, err := NewMaterial(m.Id, m.Title, m.AlternateLink)
	if err != nil {
		return nil, err
	}
	material.description = m.Description
	material.topicID = m.TopicId

	return material, nil
}

func convertDueDate(d *classroomapi.Date, t *classroomapi.TimeOfDay) *DueDate {
	// Classroom leaves year/month/day zero on partially specified dates;
	// those are not usable as a due date.
	if d == nil || d.Year == 0 || d.Month == 0 || d.Day == 0 {
		return nil
	}

	due := &DueDate{
		Year:  int(d.Year),
		Month: time.Month(d.Month),
		Day:   int(d.Day),
	}
	if t != nil {
		due.HasTime = true
		due.Hour = int(t.Hours)
		due.Minute = int(t.Minutes)
	}

	return due
}

// parseTimestamp parses an RFC 3339 timestamp from the API. Unparseable or
// empty values give the zero time.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
