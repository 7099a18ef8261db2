package course

import (
	"math"
	"sort"
	"strings"
)

// hoursPerLesson is the nominal length used to estimate learning time.
const hoursPerLesson = 0.5

// StudentStats summarises a student's enrollments.
type StudentStats struct {
	TotalCourses     int
	CompletedCourses int
	TotalHours       float64
	AvgProgress      int
}

// ComputeStudentStats derives dashboard figures from enrolled courses.
// AvgProgress is the mean progress rounded half up; zero with no courses.
func ComputeStudentStats(courses []EnrolledCourse) StudentStats {
	st := StudentStats{TotalCourses: len(courses)}
	if len(courses) == 0 {
		return st
	}
	sum := 0
	for _, c := range courses {
		if c.Completed() {
			st.CompletedCourses++
		}
		st.TotalHours += float64(c.TotalLessons) * hoursPerLesson
		sum += c.Progress
	}
	st.AvgProgress = int(math.Floor(float64(sum)/float64(len(courses)) + 0.5))
	return st
}

// InstructorStats summarises an instructor's catalog.
type InstructorStats struct {
	TotalCourses     int
	PublishedCourses int
	TotalStudents    int
	TotalRevenue     float64
}

// ComputeInstructorStats derives dashboard figures from an instructor's courses.
func ComputeInstructorStats(courses []InstructorCourse) InstructorStats {
	st := InstructorStats{TotalCourses: len(courses)}
	for _, c := range courses {
		if c.Status == StatusPublished {
			st.PublishedCourses++
		}
		st.TotalStudents += c.StudentsCount
		st.TotalRevenue += c.Revenue
	}
	return st
}

// Filter narrows the home catalog.
type Filter struct {
	Search   string
	Category string
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || f.Category != ""
}

// Matches applies a case-insensitive substring search over title and
// description, and an exact category match when a category is selected.
func (f Filter) Matches(c Course) bool {
	if f.Category != "" && c.CategoryName() != f.Category {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), term) ||
		strings.Contains(strings.ToLower(c.Description), term)
}

// Apply returns the courses that match, preserving order.
func (f Filter) Apply(courses []Course) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// Categories lists the distinct non-empty categories in first-seen order.
func Categories(courses []Course) []string {
	seen := make(map[string]struct{}, len(courses))
	var out []string
	for _, c := range courses {
		name := c.CategoryName()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// EnrolledSet indexes enrolled course IDs so catalog cards can show
// "continue" instead of "enroll".
func EnrolledSet(courses []EnrolledCourse) map[ID]bool {
	set := make(map[ID]bool, len(courses))
	for _, c := range courses {
		set[c.ID] = true
	}
	return set
}

// SortByLastAccessed orders enrolled courses most recent first. Courses never
// accessed sort last, keeping their relative order.
func SortByLastAccessed(courses []EnrolledCourse) {
	sort.SliceStable(courses, func(i, j int) bool {
		a, b := courses[i].LastAccessed, courses[j].LastAccessed
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
