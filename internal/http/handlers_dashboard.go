package httpx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	"github.com/learnsphere/learnsphere-ui/internal/domain/course"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
)

const (
	studentDashboardPath = "/student/dashboard"
	maxRecommended       = 6

	noticeEnrolled     = "enrolled"
	noticeEnrollFailed = "enroll_failed"
)

type studentContent struct {
	FirstName     string
	Stats         course.StudentStats
	Courses       []course.EnrolledCourse
	EnrolledError string
	Recommended   []courseCard
	CatalogError  string
}

type instructorContent struct {
	Stats     course.InstructorStats
	Courses   []course.InstructorCourse
	LoadError string
}

// dashboardNotice turns the notice query parameter into flash text.
func dashboardNotice(q url.Values) (notice, errMsg string) {
	switch q.Get("notice") {
	case noticeEnrolled:
		return "You're enrolled! The course is now in My Courses.", ""
	case noticeEnrollFailed:
		return "", "We couldn't complete your enrollment. Please try again."
	default:
		return "", ""
	}
}

func firstNameOf(u *auth.User) string {
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.FirstName); name != "" {
		return name
	}
	return u.DisplayName()
}

// StudentDashboard shows the student's enrollments, their statistics and
// courses they have not joined yet.
// GET /student/dashboard.
func (h *Handlers) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	st, ok := h.requestStateOr500(w, r)
	if !ok {
		return
	}
	sess := st.store.Current()

	sections, _ := fetchCourseSections(r.Context(), st.backend.Courses, true)
	if navigated(w, r) {
		return
	}

	content := studentContent{FirstName: firstNameOf(sess.User)}
	if sections.EnrolledErr != nil {
		h.logger().WarnContext(r.Context(), "load enrolled courses", "error", sections.EnrolledErr)
		content.EnrolledError = apperrors.UserMessage(sections.EnrolledErr)
	} else {
		course.SortByLastAccessed(sections.Enrolled)
		content.Courses = sections.Enrolled
		content.Stats = course.ComputeStudentStats(sections.Enrolled)
	}

	if sections.CatalogErr != nil {
		h.logger().WarnContext(r.Context(), "load catalog", "error", sections.CatalogErr)
		content.CatalogError = apperrors.UserMessage(sections.CatalogErr)
	} else {
		enrolled := course.EnrolledSet(sections.Enrolled)
		var rest []course.Course
		for _, c := range sections.Catalog {
			if !enrolled[c.ID] {
				rest = append(rest, c)
			}
			if len(rest) == maxRecommended {
				break
			}
		}
		content.Recommended = cardsFor(rest, sess, enrolled, GetCSRFToken(r))
	}

	notice, errMsg := dashboardNotice(r.URL.Query())
	h.render(w, r, renderParams{
		Page: "student_dashboard", Title: "My Learning",
		Content: content, Notice: notice, Error: errMsg,
	})
}

// Enroll enrolls the student in a course and returns to the dashboard with
// a notice describing the outcome.
// POST /student/enroll?courseId=<id>.
func (h *Handlers) Enroll(w http.ResponseWriter, r *http.Request) {
	st, ok := h.requestStateOr500(w, r)
	if !ok {
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("courseId"))
	if id == "" {
		id = strings.TrimSpace(r.PostFormValue("courseId"))
	}
	if id == "" {
		h.logger().InfoContext(r.Context(), "enroll without course id")
		http.Redirect(w, r, studentDashboardPath+"?notice="+noticeEnrollFailed, http.StatusSeeOther)
		return
	}

	enrollment, err := st.backend.Courses.Enroll(r.Context(), course.ID(id))
	if navigated(w, r) {
		return
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "enroll failed", "course_id", id, "error", err)
		http.Redirect(w, r, studentDashboardPath+"?notice="+noticeEnrollFailed, http.StatusSeeOther)
		return
	}
	h.logger().InfoContext(r.Context(), "enrolled", "course_id", id, "enrollment_id", enrollment.ID)
	http.Redirect(w, r, studentDashboardPath+"?notice="+noticeEnrolled, http.StatusSeeOther)
}

// InstructorDashboard shows the instructor's courses and totals.
// GET /instructor/dashboard.
func (h *Handlers) InstructorDashboard(w http.ResponseWriter, r *http.Request) {
	st, ok := h.requestStateOr500(w, r)
	if !ok {
		return
	}

	courses, err := st.backend.Courses.InstructorCourses(r.Context())
	if navigated(w, r) {
		return
	}
	var content instructorContent
	if err != nil {
		h.logger().WarnContext(r.Context(), "load instructor courses", "error", err)
		content.LoadError = apperrors.UserMessage(err)
	} else {
		content.Courses = courses
		content.Stats = course.ComputeInstructorStats(courses)
	}

	h.render(w, r, renderParams{Page: "instructor_dashboard", Title: "Instructor Dashboard", Content: content})
}
