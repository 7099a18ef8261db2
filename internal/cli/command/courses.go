package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/learnsphere/learnsphere-ui/internal/domain/course"
)

// CoursesCommand lists the public catalog.
func CoursesCommand() *cli.Command {
	return &cli.Command{
		Name:    "courses",
		Aliases: []string{"catalog"},
		Usage:   "List available courses",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Match title, description or instructor"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Only courses in this category"},
		},
		Action: listCourses,
	}
}

func listCourses(c *cli.Context) error {
	env, err := sessionFrom(c)
	if err != nil {
		return err
	}
	all, err := env.api.Catalog(c.Context)
	if err != nil {
		return cli.Exit(userMessage(err), 1)
	}
	courses := course.Filter{Search: c.String("search"), Category: c.String("category")}.Apply(all)

	if env.output == outputJSON {
		return writeJSON(stdout(c), courses)
	}
	if len(courses) == 0 {
		fmt.Fprintln(stdout(c), "No courses found.")
		return nil
	}
	tw := newTable(stdout(c))
	fmt.Fprintln(tw, "ID\tTITLE\tINSTRUCTOR\tCATEGORY\tPRICE")
	for _, co := range courses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			co.ID, co.Title, co.Instructor.Name(), orDash(co.Category), price(co.Price))
	}
	return tw.Flush()
}

// EnrolledCommand lists the signed-in student's courses.
func EnrolledCommand() *cli.Command {
	return &cli.Command{
		Name:   "enrolled",
		Usage:  "List your enrolled courses and progress",
		Action: listEnrolled,
	}
}

type enrolledOutput struct {
	Stats   course.StudentStats     `json:"stats"`
	Courses []course.EnrolledCourse `json:"courses"`
}

func listEnrolled(c *cli.Context) error {
	env, err := sessionFrom(c)
	if err != nil {
		return err
	}
	if err := requireSignedIn(env); err != nil {
		return err
	}
	courses, err := env.api.EnrolledCourses(c.Context)
	if err != nil {
		return cli.Exit(userMessage(err), 1)
	}
	course.SortByLastAccessed(courses)
	stats := course.ComputeStudentStats(courses)

	if env.output == outputJSON {
		return writeJSON(stdout(c), enrolledOutput{Stats: stats, Courses: courses})
	}
	fmt.Fprintf(stdout(c), "%d courses, %d completed, %s hours, %d%% average progress\n\n",
		stats.TotalCourses, stats.CompletedCourses,
		strconv.FormatFloat(stats.TotalHours, 'f', -1, 64),
		stats.AvgProgress)
	if len(courses) == 0 {
		fmt.Fprintln(stdout(c), "No courses yet. Run `learnsphere-cli courses` to find one.")
		return nil
	}
	tw := newTable(stdout(c))
	fmt.Fprintln(tw, "ID\tTITLE\tPROGRESS\tLESSONS\tLAST ACCESSED")
	for _, co := range courses {
		last := "-"
		if co.LastAccessed != nil {
			last = co.LastAccessed.Local().Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d%%\t%d/%d\t%s\n",
			co.ID, co.Title, co.Progress, co.CompletedLessons, co.TotalLessons, last)
	}
	return tw.Flush()
}

// EnrollCommand enrolls the signed-in student in a course.
func EnrollCommand() *cli.Command {
	return &cli.Command{
		Name:      "enroll",
		Usage:     "Enroll in a course",
		ArgsUsage: "COURSE_ID",
		Action:    enroll,
	}
}

func enroll(c *cli.Context) error {
	env, err := sessionFrom(c)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return cli.Exit("usage: learnsphere-cli enroll COURSE_ID", 2)
	}
	if err := requireSignedIn(env); err != nil {
		return err
	}
	e, err := env.api.Enroll(c.Context, course.ID(id))
	if err != nil {
		return cli.Exit(userMessage(err), 1)
	}
	if env.output == outputJSON {
		return writeJSON(stdout(c), e)
	}
	fmt.Fprintf(stdout(c), "Enrolled in course %s.\n", id)
	return nil
}

// TeachingCommand lists the signed-in instructor's courses.
func TeachingCommand() *cli.Command {
	return &cli.Command{
		Name:   "teaching",
		Usage:  "List the courses you teach with students and revenue",
		Action: listTeaching,
	}
}

type teachingOutput struct {
	Stats   course.InstructorStats    `json:"stats"`
	Courses []course.InstructorCourse `json:"courses"`
}

func listTeaching(c *cli.Context) error {
	env, err := sessionFrom(c)
	if err != nil {
		return err
	}
	if err := requireSignedIn(env); err != nil {
		return err
	}
	courses, err := env.api.InstructorCourses(c.Context)
	if err != nil {
		return cli.Exit(userMessage(err), 1)
	}
	stats := course.ComputeInstructorStats(courses)

	if env.output == outputJSON {
		return writeJSON(stdout(c), teachingOutput{Stats: stats, Courses: courses})
	}
	if len(courses) == 0 {
		fmt.Fprintln(stdout(c), "You have not created any courses yet.")
		return nil
	}
	tw := newTable(stdout(c))
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRICE\tSTUDENTS\tREVENUE")
	for _, co := range courses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			co.ID, co.Title, co.Status, price(co.Price),
			printer.Sprintf("%d", co.StudentsCount), printer.Sprintf("$%.2f", co.Revenue))
	}
	return tw.Flush()
}

func requireSignedIn(env *clientEnv) error {
	if !env.store.IsAuthenticated() {
		return cli.Exit("Not signed in. Run `learnsphere-cli login` first.", 1)
	}
	return nil
}
