package classroom

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/hashicorp/go-hclog"
	classroomapi "google.golang.org/api/classroom/v1"
	"google.golang.org/api/option"
)

// DefaultPageSize is the page size requested from list endpoints when the
// config leaves it unset.
const DefaultPageSize = 30

// Config holds what an Adapter needs to talk to Classroom.
type Config struct {
	// HTTPClient must already be authenticated (see the auth package).
	HTTPClient *http.Client

	// Endpoint overrides the Classroom API base URL. Empty uses the
	// production endpoint.
	Endpoint string

	// PageSize is sent as pageSize on every list call.
	PageSize int64

	// CourseStates restricts Courses to the given states (e.g. "ACTIVE").
	// Empty returns courses in every state.
	CourseStates []string

	// Verify makes New issue one probe call so an unusable session fails
	// construction instead of the first query.
	Verify bool

	Logger hclog.Logger
}

// Adapter exposes Classroom queries as domain types. Every query
// re-fetches from the API; nothing is cached.
//
// List queries return a nil slice and a nil error when Classroom has no
// matching records.
type Adapter struct {
	service      *classroomapi.Service
	pageSize     int64
	courseStates []string
	logger       hclog.Logger
}

// New creates an Adapter. It never returns a partially initialized
// adapter: any failure building or verifying the session is returned as an
// error wrapping ErrSessionUnavailable.
func New(ctx context.Context, cfg Config) (*Adapter, error) {
	if cfg.HTTPClient == nil {
		return nil, fmt.Errorf("%w: http client is required", ErrSessionUnavailable)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	opts := []option.ClientOption{option.WithHTTPClient(cfg.HTTPClient)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := classroomapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create classroom service: %w", ErrSessionUnavailable, err)
	}

	a := &Adapter{
		service:      service,
		pageSize:     cfg.PageSize,
		courseStates: cfg.CourseStates,
		logger:       cfg.Logger.Named("classroom"),
	}

	if cfg.Verify {
		if _, err := service.Courses.List().PageSize(1).Context(ctx).Do(); err != nil {
			return nil, fmt.Errorf("%w: failed to reach classroom: %w", ErrSessionUnavailable, err)
		}
		a.logger.Debug("session verified")
	}

	return a, nil
}

// ===================================================================
// Courses
// ===================================================================

// Courses returns every course visible to the session user.
func (a *Adapter) Courses(ctx context.Context) ([]*Course, error) {
	records, err := paginate(ctx, func(ctx context.Context, token string) ([]*classroomapi.Course, string, error) {
		call := a.service.Courses.List().PageSize(a.pageSize).PageToken(token).Context(ctx)
		if len(a.courseStates) > 0 {
			call = call.CourseStates(a.courseStates...)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, "", err
		}
		return resp.Courses, resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	a.logger.Debug("listed courses", "records", len(records))
	return mapAll(records, ConvertCourse)
}

// Course returns a single course. An unknown id surfaces the API's 404
// error; see IsNotFound.
func (a *Adapter) Course(ctx context.Context, courseID string) (*Course, error) {
	c, err := a.service.Courses.Get(courseID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}
	return ConvertCourse(c)
}

// ===================================================================
// Topics
// ===================================================================

// CourseTopics returns every topic in a course.
func (a *Adapter) CourseTopics(ctx context.Context, courseID string) ([]*Topic, error) {
	records, err := paginate(ctx, func(ctx context.Context, token string) ([]*classroomapi.Topic, string, error) {
		resp, err := a.service.Courses.Topics.List(courseID).
			PageSize(a.pageSize).
			PageToken(token).
			Context(ctx).
			Do()
		if err != nil {
			return nil, "", err
		}
		return resp.Topic, resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list topics for course %s: %w", courseID, err)
	}

	a.logger.Debug("listed topics", "course_id", courseID, "records", len(records))
	return mapAll(records, ConvertTopic)
}

// Topic returns a single topic of a course.
func (a *Adapter) Topic(ctx context.Context, courseID, topicID string) (*Topic, error) {
	t, err := a.service.Courses.Topics.Get(courseID, topicID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get topic %s in course %s: %w", topicID, courseID, err)
	}
	return ConvertTopic(t)
}

// ===================================================================
// Announcements
// ===================================================================

// Announcements returns the announcements of a course, newest first by
// creation time. When limit is positive at most limit announcements are
// returned.
func (a *Adapter) Announcements(ctx context.Context, courseID string, limit int) ([]*Announcement, error) {
	records, err := paginate(ctx, func(ctx context.Context, token string) ([]*classroomapi.Announcement, string, error) {
		resp, err := a.service.Courses.Announcements.List(courseID).
			PageSize(a.pageSize).
			PageToken(token).
			Context(ctx).
			Do()
		if err != nil {
			return nil, "", err
		}
		return resp.Announcements, resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements for course %s: %w", courseID, err)
	}

	announcements, err := mapAll(records, ConvertAnnouncement)
	if err != nil || announcements == nil {
		return nil, err
	}

	slices.SortStableFunc(announcements, func(x, y *Announcement) int {
		return y.CreationTime().Compare(x.CreationTime())
	})
	if limit > 0 && len(announcements) > limit {
		announcements = announcements[:limit]
	}

	a.logger.Debug("listed announcements",
		"course_id", courseID,
		"records", len(records),
		"returned", len(announcements))
	return announcements, nil
}

// ===================================================================
// Coursework
// ===================================================================

// Courseworks returns every course work item in a course. Each listed item
// is fetched again individually for its full detail.
func (a *Adapter) Courseworks(ctx context.Context, courseID string) ([]*Coursework, error) {
	records, err := paginate(ctx, func(ctx context.Context, token string) ([]*classroomapi.CourseWork, string, error) {
		resp, err := a.service.Courses.CourseWork.List(courseID).
			PageSize(a.pageSize).
			PageToken(token).
			Context(ctx).
			Do()
		if err != nil {
			return nil, "", err
		}
		return resp.CourseWork, resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list course work for course %s: %w", courseID, err)
	}

	a.logger.Debug("listed course work", "course_id", courseID, "records", len(records))
	return mapAll(records, func(w *classroomapi.CourseWork) (*Coursework, error) {
		if w == nil || w.Id == "" {
			return nil, &MappingError{Resource: ResourceCoursework, Field: "id"}
		}
		return a.Coursework(ctx, courseID, w.Id)
	})
}

// Coursework returns a single course work item.
func (a *Adapter) Coursework(ctx context.Context, courseID, courseworkID string) (*Coursework, error) {
	w, err := a.service.Courses.CourseWork.Get(courseID, courseworkID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get course work %s in course %s: %w", courseworkID, courseID, err)
	}
	return ConvertCoursework(w)
}

// ===================================================================
// Materials
// ===================================================================

// Materials returns the course work materials of a course. Each listed
// material is fetched again individually for its full detail. A non-empty
// topicID keeps only materials in that topic; the filter is applied locally
// after mapping.
func (a *Adapter) Materials(ctx context.Context, courseID, topicID string) ([]*Material, error) {
	records, err := paginate(ctx, func(ctx context.Context, token string) ([]*classroomapi.CourseWorkMaterial, string, error) {
		resp, err := a.service.Courses.CourseWorkMaterials.List(courseID).
			PageSize(a.pageSize).
			PageToken(token).
			Context(ctx).
			Do()
		if err != nil {
			return nil, "", err
		}
		return resp.CourseWorkMaterial, resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list materials for course %s: %w", courseID, err)
	}

	materials, err := mapAll(records, func(m *classroomapi.CourseWorkMaterial) (*Material, error) {
		if m == nil || m.Id == "" {
			return nil, &MappingError{Resource: ResourceMaterial, Field: "id"}
		}
		return a.Material(ctx, courseID, m.Id)
	})
	if err != nil || materials == nil || topicID == "" {
		return materials, err
	}

	filtered := slices.DeleteFunc(slices.Clone(materials), func(m *Material) bool {
		return m.TopicID() != topicID
	})
	a.logger.Debug("filtered materials",
		"course_id", courseID,
		"topic_id", topicID,
		"records", len(materials),
		"matched", len(filtered))
	if len(filtered) == 0 {
		return nil, nil
	}
	return filtered, nil
}

// Material returns a single course work material.
func (a *Adapter) Material(ctx context.Context, courseID, materialID string) (*Material, error) {
	m, err := a.service.Courses.CourseWorkMaterials.Get(courseID, materialID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get material %s in course %s: %w", materialID, courseID, err)
	}
	return ConvertMaterial(m)
}
