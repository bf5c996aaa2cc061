package classroom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	classroomapi "google.golang.org/api/classroom/v1"
	"google.golang.org/api/googleapi"
)

// newTestAdapter starts a mock Classroom API serving mux and returns an
// Adapter pointed at it.
func newTestAdapter(t *testing.T, mux *http.ServeMux) *Adapter {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	adapter, err := New(context.Background(), Config{
		HTTPClient: server.Client(),
		Endpoint:   server.URL + "/",
		PageSize:   2,
		Logger:     hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	return adapter
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, code int, status, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"status":  status,
		},
	})
}

// servePages serves pages in order. Page i is addressed by the token
// "page-i"; the last page carries no next page token.
func servePages[T any](t *testing.T, pages [][]T, respond func(records []T, next string) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx := 0
		if tok := r.URL.Query().Get("pageToken"); tok != "" {
			var err error
			idx, err = strconv.Atoi(strings.TrimPrefix(tok, "page-"))
			if !assert.NoError(t, err) {
				writeAPIError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "bad page token")
				return
			}
		}

		var records []T
		if idx < len(pages) {
			records = pages[idx]
		}
		next := ""
		if idx+1 < len(pages) {
			next = fmt.Sprintf("page-%d", idx+1)
		}
		writeJSON(w, respond(records, next))
	}
}

func apiCourse(id, name string) *classroomapi.Course {
	return &classroomapi.Course{
		Id:            id,
		Name:          name,
		AlternateLink: "https://classroom.google.com/c/" + id,
		CourseState:   "ACTIVE",
	}
}

func TestAdapter_Courses(t *testing.T) {
	pages := [][]*classroomapi.Course{
		{apiCourse("c1", "Algebra"), apiCourse("c2", "Biology")},
		{apiCourse("c3", "Chemistry")},
	}

	var requests atomic.Int32
	mux := http.NewServeMux()
	handler := servePages(t, pages, func(records []*classroomapi.Course, next string) any {
		return &classroomapi.ListCoursesResponse{Courses: records, NextPageToken: next}
	})
	mux.HandleFunc("GET /v1/courses", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "2", r.URL.Query().Get("pageSize"))
		handler(w, r)
	})

	adapter := newTestAdapter(t, mux)

	courses, err := adapter.Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 3)

	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string{courses[0].ID(), courses[1].ID(), courses[2].ID()})
	assert.Equal(t, "Algebra", courses[0].Name())
	assert.Equal(t, "https://classroom.google.com/c/c3", courses[2].AlternateLink())
	assert.Equal(t, "ACTIVE", courses[2].State())
}

func TestAdapter_Courses_Empty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{})
	})

	adapter := newTestAdapter(t, mux)

	courses, err := adapter.Courses(context.Background())
	require.NoError(t, err)
	assert.Nil(t, courses)
}

func TestAdapter_Courses_CourseStates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"ACTIVE", "PROVISIONED"}, r.URL.Query()["courseStates"])
		writeJSON(w, &classroomapi.ListCoursesResponse{
			Courses: []*classroomapi.Course{apiCourse("c1", "Algebra")},
		})
	}))
	defer server.Close()

	adapter, err := New(context.Background(), Config{
		HTTPClient:   server.Client(),
		Endpoint:     server.URL + "/",
		CourseStates: []string{"ACTIVE", "PROVISIONED"},
	})
	require.NoError(t, err)

	courses, err := adapter.Courses(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestAdapter_Courses_FailureMidPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") == "" {
			writeJSON(w, &classroomapi.ListCoursesResponse{
				Courses:       []*classroomapi.Course{apiCourse("c1", "Algebra")},
				NextPageToken: "page-1",
			})
			return
		}
		writeAPIError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "backend unavailable")
	})

	adapter := newTestAdapter(t, mux)

	courses, err := adapter.Courses(context.Background())
	require.Error(t, err)
	assert.Nil(t, courses)

	var gerr *googleapi.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusServiceUnavailable, gerr.Code)
}

func TestAdapter_Courses_MappingError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &classroomapi.ListCoursesResponse{
			Courses: []*classroomapi.Course{{Id: "c9", AlternateLink: "https://classroom.google.com/c/c9"}},
		})
	})

	adapter := newTestAdapter(t, mux)

	_, err := adapter.Courses(context.Background())
	require.Error(t, err)

	var merr *MappingError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, ResourceCourse, merr.Resource)
	assert.Equal(t, "c9", merr.ID)
	assert.Equal(t, "name", merr.Field)
}

func TestAdapter_Course(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "c1" {
			writeAPIError(w, http.StatusNotFound, "NOT_FOUND", "Requested entity was not found.")
			return
		}
		course := apiCourse("c1", "Algebra")
		course.Section = "Period 3"
		writeJSON(w, course)
	})

	adapter := newTestAdapter(t, mux)

	t.Run("found", func(t *testing.T) {
		course, err := adapter.Course(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, "c1", course.ID())
		assert.Equal(t, "Algebra", course.Name())
		assert.Equal(t, "Period 3", course.Section())
	})

	t.Run("not found", func(t *testing.T) {
		course, err := adapter.Course(context.Background(), "missing")
		require.Error(t, err)
		assert.Nil(t, course)
		assert.True(t, IsNotFound(err))

		var gerr *googleapi.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, http.StatusNotFound, gerr.Code)
		assert.Equal(t, "Requested entity was not found.", gerr.Message)
	})
}

func TestAdapter_CourseTopics(t *testing.T) {
	pages := [][]*classroomapi.Topic{
		{{CourseId: "c1", TopicId: "t1", Name: "Unit 1", UpdateTime: "2024-09-01T10:00:00.000Z"}},
		{{CourseId: "c1", TopicId: "t2", Name: "Unit 2"}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/{courseId}/topics", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c1", r.PathValue("courseId"))
		servePages(t, pages, func(records []*classroomapi.Topic, next string) any {
			return &classroomapi.ListTopicResponse{Topic: records, NextPageToken: next}
		})(w, r)
	})

	adapter := newTestAdapter(t, mux)

	topics, err := adapter.CourseTopics(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, topics, 2)

	assert.Equal(t, "t1", topics[0].ID())
	assert.Equal(t, "Unit 1", topics[0].Name())
	assert.Equal(t, "c1", topics[0].CourseID())
	assert.Equal(t, 2024, topics[0].UpdateTime().Year())
	assert.Equal(t, "t2", topics[1].ID())
	assert.Equal(t, "Unit 2", topics[1].Name())
}

func TestAdapter_CourseTopics_Empty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/{courseId}/topics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &classroomapi.ListTopicResponse{})
	})

	adapter := newTestAdapter(t, mux)

	topics, err := adapter.CourseTopics(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, topics)
}

func TestAdapter_Topic(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/{courseId}/topics/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c1", r.PathValue("courseId"))
		writeJSON(w, &classroomapi.Topic{CourseId: "c1", TopicId: r.PathValue("id"), Name: "Unit 4"})
	})

	adapter := newTestAdapter(t, mux)

	topic, err := adapter.Topic(context.Background(), "c1", "t4")
	require.NoError(t, err)
	assert.Equal(t, "t4", topic.ID())
	assert.Equal(t, "Unit 4", topic.Name())
}

func TestAdapter_Announcements(t *testing.T) {
	announcement := func(id, created string) *classroomapi.Announcement {
		return &classroomapi.Announcement{
			Id:            id,
			Text:          "Announcement " + id,
			AlternateLink: "https://classroom.google.com/c/c1/p/" + id,
			CreationTime:  created,
		}
	}
	pages := [][]*classroomapi.Announcement{
		{announcement("a1", "2024-09-01T08:00:00Z"), announcement("a2", "2024-09-03T08:00:00Z")},
		{announcement("a3", "2024-09-02T08:00:00Z"), announcement("a4", "2024-09-05T08:00:00Z")},
		{announcement("a5", "2024-09-04T08:00:00Z")},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/{courseId}/announcements",
		servePages(t, pages, func(records []*classroomapi.Announcement, next string) any {
			return &classroomapi.ListAnnouncementsResponse{Announcements: records, NextPageToken: next}
		}))

	adapter := newTestAdapter(t, mux)

	ids := func(as []*Announcement) []string {
		out := make([]string, len(as))
		for i, a := range as {
			out[i] = a.ID()
		}
		return out
	}

	t.Run("unlimited", func(t *testing.T) {
		announcements, err := adapter.Announcements(context.Background(), "c1", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a4", "a5", "a2", "a3", "a1"}, ids(announcements))
		assert.Equal(t, "Announcement a4", announcements[0].Headline())
		assert.Equal(t, KindAnnouncement, announcements[0].Kind())
	})

	t.Run("limited", func(t *testing.T) {
		announcements, err := adapter.Announcements(context.Background(), "c1", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"a4", "a5"}, ids(announcements))
	})
}

func TestAdapter_Courseworks(t *testing.T) {
	// The list call returns sparse records; full detail comes from get.
	pages := [][]*classroomapi.CourseWork{
		{{Id: "w1"}, {Id: "w2"}},
		{{Id: "w3"}},
	}
	details := map[string]*classroomapi.CourseWork{
		"w1": {
			Id:            "w1",
			Title:         "Essay",
			Description:   "Write 500 words",
			AlternateLink: "https://classroom.google.com/c/c1/a/w1",
			TopicId:       "t1",
			WorkType:      "ASSIGNMENT",
			MaxPoints:     100,
			DueDate:       &classroomapi.Date{Year: 2024, Month: 10, Day: 31},
			DueTime:       &classroomapi.TimeOfDay{Hours: 23, Minutes: 59},
		},
		"w2": {Id: "w2", Title: "Quiz", AlternateLink: "https://classroom.google.com/c/c1/a/w2"},
		"w3": {Id: "w3", Title: "Lab", AlternateLink: "https://classroom.google.com/c/c1/a/w3"},
	}

	var gets atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/{courseId}/courseWork",
		servePages(t, pages, func(records []*classroomapi.CourseWork, next string) any {
			return &classroomapi.ListCourseWorkResponse{CourseWork: records, NextPageToken: next}
		}))
	mux.HandleFunc("GET /v1/courses/{courseId}/courseWork/{id}", func(w http.ResponseWriter, r *http.Request) {
		gets.Add(1)
		writeJSON(w, details[r.PathValue("id")])
	})

	adapter := newTestAdapter(t, mux)

	works, err := adapter.Courseworks(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, works, 3)
	assert.Equal(t, int32(3), gets.Load())

	essay := works[0]
	assert.Equal(t, "w1", essay.ID())
	assert.Equal(t, "Essay", essay.Headline())
	assert.Equal(t, "Write 500 words", essay.Detail())
	assert.Equal(t, "t1", essay.TopicID())
	assert.Equal(t, 100.0, essay.MaxPoints())
	require.NotNil(t, essay.Due())
	assert.Equal(t, "2024-10-31 23:59 UTC", essay.Due().String())

	assert.Nil(t, works[1].Due())
	assert.Equal(t, "Lab", works[2].Title())
}

func TestAdapter_Coursework_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/{courseId}/courseWork/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "NOT_FOUND", "Requested entity was not found.")
	})

	adapter := newTestAdapter(t, mux)

	_, err := adapter.Coursework(context.Background(), "c1", "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func materialsMux(t *testing.T) *http.ServeMux {
	pages := [][]*classroomapi.CourseWorkMaterial{
		{{Id: "m1"}, {Id: "m2"}},
		{{Id: "m3"}},
	}
	details := map[string]*classroomapi.CourseWorkMaterial{
		"m1": {Id: "m1", Title: "Syllabus", AlternateLink: "https://classroom.google.com/c/c1/m/m1", TopicId: "t1"},
		"m2": {Id: "m2", Title: "Slides", AlternateLink: "https://classroom.google.com/c/c1/m/m2", TopicId: "t2", Description: "Week 1"},
		"m3": {Id: "m3", Title: "Reading", AlternateLink: "https://classroom.google.com/c/c1/m/m3", TopicId: "t1"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/{courseId}/courseWorkMaterials",
		servePages(t, pages, func(records []*classroomapi.CourseWorkMaterial, next string) any {
			return &classroomapi.ListCourseWorkMaterialResponse{CourseWorkMaterial: records, NextPageToken: next}
		}))
	mux.HandleFunc("GET /v1/courses/{courseId}/courseWorkMaterials/{id}", func(w http.ResponseWriter, r *http.Request) {
		m, ok := details[r.PathValue("id")]
		if !ok {
			writeAPIError(w, http.StatusNotFound, "NOT_FOUND", "Requested entity was not found.")
			return
		}
		writeJSON(w, m)
	})
	return mux
}

func TestAdapter_Materials(t *testing.T) {
	adapter := newTestAdapter(t, materialsMux(t))
	ctx := context.Background()

	all, err := adapter.Materials(ctx, "c1", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Syllabus", all[0].Title())
	assert.Equal(t, "Week 1", all[1].Detail())

	filtered, err := adapter.Materials(ctx, "c1", "t1")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, m := range filtered {
		assert.Equal(t, "t1", m.TopicID())
		assert.Contains(t, all, m)
	}
	assert.Equal(t, []string{"m1", "m3"}, []string{filtered[0].ID(), filtered[1].ID()})

	none, err := adapter.Materials(ctx, "c1", "t404")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAdapter_Material(t *testing.T) {
	adapter := newTestAdapter(t, materialsMux(t))

	m, err := adapter.Material(context.Background(), "c1", "m2")
	require.NoError(t, err)
	assert.Equal(t, "m2", m.ID())
	assert.Equal(t, KindMaterial, m.Kind())
	assert.Equal(t, "https://classroom.google.com/c/c1/m/m2", m.Link())

	_, err = adapter.Material(context.Background(), "c1", "m9")
	assert.True(t, IsNotFound(err))
}

func TestNew_Verify(t *testing.T) {
	t.Run("unreachable session fails construction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Request had invalid authentication credentials.")
		}))
		defer server.Close()

		adapter, err := New(context.Background(), Config{
			HTTPClient: server.Client(),
			Endpoint:   server.URL + "/",
			Verify:     true,
		})
		require.Error(t, err)
		assert.Nil(t, adapter)
		assert.ErrorIs(t, err, ErrSessionUnavailable)
	})

	t.Run("reachable session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("pageSize"))
			writeJSON(w, &classroomapi.ListCoursesResponse{})
		}))
		defer server.Close()

		adapter, err := New(context.Background(), Config{
			HTTPClient: server.Client(),
			Endpoint:   server.URL + "/",
			Verify:     true,
		})
		require.NoError(t, err)
		assert.NotNil(t, adapter)
	})

	t.Run("missing http client", func(t *testing.T) {
		_, err := New(context.Background(), Config{})
		assert.ErrorIs(t, err, ErrSessionUnavailable)
	})
}

func TestAdapter_EmptyPostLists(t *testing.T) {
	mux := http.NewServeMux()
	for _, resource := range []string{"announcements", "courseWork", "courseWorkMaterials"} {
		mux.HandleFunc("GET /v1/courses/c1/"+resource, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{})
		})
	}
	adapter := newTestAdapter(t, mux)
	ctx := context.Background()

	cases := []struct {
		name string
		list func() (any, error)
	}{
		{"announcements", func() (any, error) { return adapter.Announcements(ctx, "c1", 5) }},
		{"announcements uncapped", func() (any, error) { return adapter.Announcements(ctx, "c1", 0) }},
		{"courseworks", func() (any, error) { return adapter.Courseworks(ctx, "c1") }},
		{"materials", func() (any, error) { return adapter.Materials(ctx, "c1", "") }},
		{"materials by topic", func() (any, error) { return adapter.Materials(ctx, "c1", "t1") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.list()
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}
