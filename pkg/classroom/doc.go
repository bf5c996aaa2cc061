// Package classroom exposes a small typed facade over the Google Classroom
// API.
//
// # Overview
//
// An Adapter owns one authenticated *classroom.Service and offers one method
// per query:
//
//   - Courses, Course
//   - CourseTopics, Topic
//   - Announcements
//   - Courseworks, Coursework
//   - Materials, Material
//
// Responses are converted into immutable domain values (Course, Topic,
// Announcement, Coursework, Material). Announcements, coursework and
// materials share the Post interface.
//
// # Results
//
// List methods page through the API until no next page token is returned.
// When Classroom has nothing to return they yield a nil slice and a nil
// error. Remote errors are wrapped, never translated: a *googleapi.Error
// stays reachable with errors.As, and IsNotFound checks for a 404.
//
// # Sessions
//
// New takes an authenticated *http.Client. The auth subpackage builds one
// from the client secret and token files.
//
//	sess, err := auth.Open(ctx, auth.Options{...})
//	if err != nil {
//		return err
//	}
//	adapter, err := classroom.New(ctx, classroom.Config{
//		HTTPClient: sess.Client(ctx),
//		Verify:     true,
//	})
package classroom
