package classroom

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrSessionUnavailable is returned when an adapter cannot reach
	// Classroom with the session it was given.
	ErrSessionUnavailable = errors.New("classroom session unavailable")

	// ErrPaginationStalled is returned when a list call hands back the page
	// token it was called with.
	ErrPaginationStalled = errors.New("classroom pagination stalled")
)

// Resource names a Classroom resource type in errors and logs.
type Resource string

const (
	ResourceCourse       Resource = "course"
	ResourceTopic        Resource = "topic"
	ResourceAnnouncement Resource = "announcement"
	ResourceCoursework   Resource = "courseWork"
	ResourceMaterial     Resource = "courseWorkMaterial"
)

// MappingError reports an API record that is missing a field the domain
// type requires.
type MappingError struct {
	Resource Resource
	ID       string
	Field    string
}

func (e *MappingError) Error() string {
	id := e.ID
	if id == "" {
		id = "<unknown id>"
	}
	return fmt.Sprintf("%s %s: missing required field %q", e.Resource, id, e.Field)
}

// IsNotFound reports whether err wraps a Classroom API 404 response.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}
