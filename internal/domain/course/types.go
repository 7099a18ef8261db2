// Package course holds the course view models rendered by the dashboards and
// the home catalog, plus the statistics derived from them.
package course

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID is a course identifier. The backend sends numbers on some endpoints and
// strings on others.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("course id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Instructor is the author shown on course cards.
type Instructor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Name joins first and last name.
func (i Instructor) Name() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	default:
		return i.FirstName + " " + i.LastName
	}
}

// Course is a catalog entry on the home page.
type Course struct {
	ID            ID         `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ThumbnailURL  *string    `json:"thumbnailUrl,omitempty"`
	Instructor    Instructor `json:"instructor"`
	Price         *float64   `json:"price,omitempty"`
	Duration      *string    `json:"duration,omitempty"`
	StudentsCount *int       `json:"studentsCount,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	Category      *string    `json:"category,omitempty"`
}

// CategoryName returns the category or "" when unset.
func (c Course) CategoryName() string {
	if c.Category == nil {
		return ""
	}
	return *c.Category
}

// IsFree reports whether the course has no price or a zero price.
func (c Course) IsFree() bool {
	return c.Price == nil || *c.Price == 0
}

// EnrolledCourse is a course as seen from a student's enrollment.
type EnrolledCourse struct {
	ID               ID         `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ThumbnailURL     *string    `json:"thumbnailUrl,omitempty"`
	Instructor       Instructor `json:"instructor"`
	Progress         int        `json:"progress"`
	LastAccessed     *time.Time `json:"lastAccessed,omitempty"`
	TotalLessons     int        `json:"totalLessons"`
	CompletedLessons int        `json:"completedLessons"`
}

// Completed reports whether every lesson is done.
func (c EnrolledCourse) Completed() bool { return c.Progress == 100 }

// Status is the publication state of an instructor course.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// InstructorCourse is a course as seen by its author.
type InstructorCourse struct {
	ID            ID       `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ThumbnailURL  *string  `json:"thumbnailUrl,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	StudentsCount int      `json:"studentsCount"`
	Revenue       float64  `json:"revenue"`
	Status        Status   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
}

// Enrollment is the record created when a student enrolls in a course.
type Enrollment struct {
	ID         ID         `json:"id"`
	CourseID   ID         `json:"courseId"`
	StudentID  ID         `json:"studentId,omitempty"`
	Progress   int        `json:"progress"`
	EnrolledAt *time.Time `json:"enrolledAt,omitempty"`
}
