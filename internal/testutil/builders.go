package testutil

import (
	"time"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	"github.com/learnsphere/learnsphere-ui/internal/domain/course"
)

// TestTime is the fixed instant tests pin their clocks to.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// FixedTimeFunc returns a clock frozen at t.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 { return &f }

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }

// SessionBuilder builds auth sessions for tests.
type SessionBuilder struct {
	user  auth.User
	token string
}

// NewSession starts a student session with token "test-token".
func NewSession() *SessionBuilder {
	return &SessionBuilder{
		user: auth.User{
			ID:        "1",
			Email:     "student@example.com",
			Role:      auth.RoleStudent,
			FirstName: "Sam",
			LastName:  "Student",
		},
		token: "test-token",
	}
}

// AsInstructor switches the role and default identity to an instructor.
func (b *SessionBuilder) AsInstructor() *SessionBuilder {
	b.user.ID = "2"
	b.user.Email = "instructor@example.com"
	b.user.Role = auth.RoleInstructor
	b.user.FirstName = "Ivy"
	b.user.LastName = "Instructor"
	return b
}

// WithEmail sets the user's email.
func (b *SessionBuilder) WithEmail(email string) *SessionBuilder {
	b.user.Email = email
	return b
}

// WithToken sets the bearer token.
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.token = token
	return b
}

// Build returns the session.
func (b *SessionBuilder) Build() auth.Session {
	u := b.user
	return auth.Session{User: &u, Token: b.token}
}

// CourseBuilder builds catalog courses for tests.
type CourseBuilder struct {
	c course.Course
}

// NewCourse starts a paid "Go Basics" course in the Programming category.
func NewCourse(id string) *CourseBuilder {
	return &CourseBuilder{c: course.Course{
		ID:          course.ID(id),
		Title:       "Go Basics",
		Description: "Learn the language.",
		Instructor:  course.Instructor{FirstName: "Ivy", LastName: "Instructor"},
		Price:       FloatPtr(49.99),
		Category:    StringPtr("Programming"),
	}}
}

// WithTitle sets the title.
func (b *CourseBuilder) WithTitle(title string) *CourseBuilder {
	b.c.Title = title
	return b
}

// WithCategory sets the category; an empty name clears it.
func (b *CourseBuilder) WithCategory(name string) *CourseBuilder {
	if name == "" {
		b.c.Category = nil
		return b
	}
	b.c.Category = StringPtr(name)
	return b
}

// Free clears the price.
func (b *CourseBuilder) Free() *CourseBuilder {
	b.c.Price = nil
	return b
}

// Build returns the course.
func (b *CourseBuilder) Build() course.Course {
	return b.c
}

// EnrolledCourse returns an enrolled course with the given progress and
// lesson counts.
func EnrolledCourse(id string, progress, total, completed int) course.EnrolledCourse {
	return course.EnrolledCourse{
		ID:               course.ID(id),
		Title:            "Course " + id,
		Instructor:       course.Instructor{FirstName: "Ivy", LastName: "Instructor"},
		Progress:         progress,
		TotalLessons:     total,
		CompletedLessons: completed,
	}
}
