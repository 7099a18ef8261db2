package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/learnsphere/learnsphere-ui/internal/domain/course"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
)

// Backend course endpoints.
const (
	PathCatalog           = "/api/public/courses"
	PathEnroll            = "/api/protected/enrollments/enroll"
	PathEnrolledCourses   = "/api/protected/enrollments/enroll/courses"
	PathInstructorCourses = "/api/protected/courses/instructor"
)

// Catalog lists the public courses shown on the home page.
func (c *Client) Catalog(ctx context.Context) ([]course.Course, error) {
	var out []course.Course
	err := c.do(ctx, call{endpoint: "catalog", method: http.MethodGet, path: PathCatalog, out: &out})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []course.Course{}
	}
	return out, nil
}

// EnrolledCourses lists the current user's enrollments.
func (c *Client) EnrolledCourses(ctx context.Context) ([]course.EnrolledCourse, error) {
	var out []course.EnrolledCourse
	err := c.do(ctx, call{endpoint: "enrolled_courses", method: http.MethodGet, path: PathEnrolledCourses, out: &out})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []course.EnrolledCourse{}
	}
	return out, nil
}

// Enroll enrolls the current user in courseID and returns the created enrollment.
func (c *Client) Enroll(ctx context.Context, courseID course.ID) (course.Enrollment, error) {
	if courseID == "" {
		return course.Enrollment{}, apperrors.ValidationField("courseId", "Course is required.")
	}
	q := url.Values{"courseId": {string(courseID)}}
	var out course.Enrollment
	err := c.do(ctx, call{
		endpoint: "enroll",
		method:   http.MethodPost,
		path:     PathEnroll + "?" + q.Encode(),
		out:      &out,
	})
	if err != nil {
		return course.Enrollment{}, err
	}
	if out.CourseID == "" {
		out.CourseID = courseID
	}
	return out, nil
}

// InstructorCourses lists the courses authored by the current user.
func (c *Client) InstructorCourses(ctx context.Context) ([]course.InstructorCourse, error) {
	var out []course.InstructorCourse
	err := c.do(ctx, call{endpoint: "instructor_courses", method: http.MethodGet, path: PathInstructorCourses, out: &out})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []course.InstructorCourse{}
	}
	return out, nil
}
