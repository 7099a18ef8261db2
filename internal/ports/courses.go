package ports

import (
	"context"

	"github.com/learnsphere/learnsphere-ui/internal/domain/course"
)

// CourseAPI reads course data from the backend on behalf of the current session.
type CourseAPI interface {
	Catalog(ctx context.Context) ([]course.Course, error)
	EnrolledCourses(ctx context.Context) ([]course.EnrolledCourse, error)
	Enroll(ctx context.Context, courseID course.ID) (course.Enrollment, error)
	InstructorCourses(ctx context.Context) ([]course.InstructorCourse, error)
}
