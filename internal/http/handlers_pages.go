package httpx

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	"github.com/learnsphere/learnsphere-ui/internal/domain/course"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

type heroStat struct {
	Value string
	Label string
}

var heroStats = []heroStat{
	{Value: "10,000+", Label: "Courses"},
	{Value: "50,000+", Label: "Students"},
	{Value: "1,000+", Label: "Instructors"},
	{Value: "24/7", Label: "Support"},
}

// courseCard is the view model of the course_card partial.
type courseCard struct {
	Course    course.Course
	Enrolled  bool
	CanEnroll bool
	SignedIn  bool
	CSRFToken string
}

type homeContent struct {
	Stats      []heroStat
	Filter     course.Filter
	Categories []string
	Cards      []courseCard
	LoadError  string
}

// courseSections is what a page fetched concurrently. Each section keeps
// its own error so one failing call does not blank the other.
type courseSections struct {
	Catalog     []course.Course
	CatalogErr  error
	Enrolled    []course.EnrolledCourse
	EnrolledErr error
}

// fetchCourseSections loads the catalog and, when asked, the enrolled
// courses in parallel. Only a 401 fails the group, since it ends the session
// for every section.
func fetchCourseSections(ctx context.Context, api ports.CourseAPI, withEnrolled bool) (courseSections, error) {
	var out courseSections
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Catalog, out.CatalogErr = api.Catalog(gctx)
		return unauthorizedOnly(out.CatalogErr)
	})
	if withEnrolled {
		g.Go(func() error {
			out.Enrolled, out.EnrolledErr = api.EnrolledCourses(gctx)
			return unauthorizedOnly(out.EnrolledErr)
		})
	}
	return out, g.Wait()
}

func unauthorizedOnly(err error) error {
	if apperrors.IsUnauthorized(err) {
		return err
	}
	return nil
}

func cardsFor(courses []course.Course, sess auth.Session, enrolled map[course.ID]bool, csrf string) []courseCard {
	student := sess.HasRole(auth.RoleStudent)
	cards := make([]courseCard, 0, len(courses))
	for _, c := range courses {
		cards = append(cards, courseCard{
			Course:    c,
			Enrolled:  enrolled[c.ID],
			CanEnroll: student,
			SignedIn:  sess.Valid(),
			CSRFToken: csrf,
		})
	}
	return cards
}

// Home renders the public catalog with search and category filtering.
// GET /?q=<search>&category=<name>.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	st, ok := h.requestStateOr500(w, r)
	if !ok {
		return
	}
	sess := st.store.Current()
	filter := course.Filter{
		Search:   strings.TrimSpace(r.URL.Query().Get("q")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}

	// A 401 is reported through the navigator; the section errors carry the rest.
	sections, _ := fetchCourseSections(r.Context(), st.backend.Courses, sess.HasRole(auth.RoleStudent))
	if navigated(w, r) {
		return
	}

	content := homeContent{
		Stats:      heroStats,
		Filter:     filter,
		Categories: course.Categories(sections.Catalog),
	}
	if sections.CatalogErr != nil {
		h.logger().WarnContext(r.Context(), "load catalog", "error", sections.CatalogErr)
		content.LoadError = apperrors.UserMessage(sections.CatalogErr)
	}
	if sections.EnrolledErr != nil {
		h.logger().InfoContext(r.Context(), "load enrollments for catalog", "error", sections.EnrolledErr)
	}
	content.Cards = cardsFor(filter.Apply(sections.Catalog), sess,
		course.EnrolledSet(sections.Enrolled), GetCSRFToken(r))

	h.render(w, r, renderParams{Page: "home", Title: "Home", Content: content})
}

// Unauthorized renders the access denied page.
// GET /unauthorized.
func (h *Handlers) Unauthorized(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, renderParams{Status: http.StatusForbidden, Page: "unauthorized", Title: "Access Denied"})
}

// NotFound renders the catch-all page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, renderParams{Status: http.StatusNotFound, Page: "notfound", Title: "Page Not Found"})
}
