package course

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestComputeStudentStats(t *testing.T) {
	courses := []EnrolledCourse{
		{ID: "1", Progress: 65, TotalLessons: 20},
		{ID: "2", Progress: 30, TotalLessons: 15},
		{ID: "3", Progress: 100, TotalLessons: 4},
	}

	st := ComputeStudentStats(courses)
	assert.Equal(t, 3, st.TotalCourses)
	assert.Equal(t, 1, st.CompletedCourses)
	assert.InDelta(t, 19.5, st.TotalHours, 0.0001)
	assert.Equal(t, 65, st.AvgProgress) // 195/3
}

func TestComputeStudentStats_RoundsHalfUp(t *testing.T) {
	st := ComputeStudentStats([]EnrolledCourse{{Progress: 50}, {Progress: 51}})
	assert.Equal(t, 51, st.AvgProgress)
}

func TestComputeStudentStats_Empty(t *testing.T) {
	assert.Equal(t, StudentStats{}, ComputeStudentStats(nil))
}

func TestComputeInstructorStats(t *testing.T) {
	courses := []InstructorCourse{
		{ID: "1", StudentsCount: 1250, Revenue: 111250, Status: StatusPublished},
		{ID: "2", StudentsCount: 450, Revenue: 31050, Status: StatusPublished},
		{ID: "3", Status: StatusDraft},
	}

	st := ComputeInstructorStats(courses)
	assert.Equal(t, InstructorStats{
		TotalCourses:     3,
		PublishedCourses: 2,
		TotalStudents:    1700,
		TotalRevenue:     142300,
	}, st)
}

func TestFilter(t *testing.T) {
	courses := []Course{
		{ID: "1", Title: "Complete Web Development Bootcamp", Description: "HTML and CSS", Category: strPtr("Web Development")},
		{ID: "2", Title: "Python for Data Science", Description: "Pandas and numpy", Category: strPtr("Data Science")},
		{ID: "3", Title: "UI/UX Design Fundamentals", Description: "Learn design principles", Category: strPtr("Design")},
		{ID: "4", Title: "Uncategorised", Description: "misc"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []ID
	}{
		{"no filter", Filter{}, []ID{"1", "2", "3", "4"}},
		{"title match is case-insensitive", Filter{Search: "PYTHON"}, []ID{"2"}},
		{"description match", Filter{Search: "design"}, []ID{"3"}},
		{"category only", Filter{Category: "Data Science"}, []ID{"2"}},
		{"search and category", Filter{Search: "learn", Category: "Web Development"}, nil},
		{"whitespace search ignored", Filter{Search: "   "}, []ID{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []ID
			for _, c := range tt.filter.Apply(courses) {
				got = append(got, c.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"Web Development", "Data Science", "Design"}, Categories(courses))
	assert.False(t, Filter{}.Active())
	assert.True(t, Filter{Category: "Design"}.Active())
}

func TestSortByLastAccessed(t *testing.T) {
	now := time.Now()
	older := now.Add(-time.Hour)
	courses := []EnrolledCourse{
		{ID: "never"},
		{ID: "older", LastAccessed: &older},
		{ID: "recent", LastAccessed: &now},
	}
	SortByLastAccessed(courses)
	assert.Equal(t, ID("recent"), courses[0].ID)
	assert.Equal(t, ID("older"), courses[1].ID)
	assert.Equal(t, ID("never"), courses[2].ID)
}

func TestEnrolledCourse_Decode(t *testing.T) {
	raw := `{"id":7,"title":"Go","description":"d","instructor":{"firstName":"Rob","lastName":"Pike"},
		"progress":40,"totalLessons":10,"completedLessons":4,"lastAccessed":"2024-03-01T10:00:00Z"}`
	var c EnrolledCourse
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, ID("7"), c.ID)
	assert.Equal(t, "Rob Pike", c.Instructor.Name())
	require.NotNil(t, c.LastAccessed)
	assert.Nil(t, c.ThumbnailURL)
	assert.False(t, c.Completed())
}

func TestEnrolledSet(t *testing.T) {
	set := EnrolledSet([]EnrolledCourse{{ID: "1"}, {ID: "3"}})
	assert.True(t, set["1"])
	assert.False(t, set["2"])
}
