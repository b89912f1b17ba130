// Package stats aggregates platform-wide figures from courses and enrollments.
package stats

import (
	"sort"

	"learnhub/internal/progress"

	"github.com/google/uuid"
)

// CourseRef is the part of a course the aggregates need.
type CourseRef struct {
	ID          uuid.UUID
	Title       string
	LessonCount int
}

// EnrollmentRef is one enrollment with its watched lesson count.
type EnrollmentRef struct {
	CourseID uuid.UUID
	Watched  int
}

// CourseCount pairs a course title with its enrollment count.
type CourseCount struct {
	Title string `json:"title"`
	Count int    `json:"enrollmentCount"`
}

// EnrollmentCounts returns the enrollment count of every course, in course order.
func EnrollmentCounts(courses []CourseRef, enrollments []EnrollmentRef) []CourseCount {
	byCourse := make(map[uuid.UUID]int, len(courses))
	for _, e := range enrollments {
		byCourse[e.CourseID]++
	}
	counts := make([]CourseCount, len(courses))
	for i, c := range courses {
		counts[i] = CourseCount{Title: c.Title, Count: byCourse[c.ID]}
	}
	return counts
}

// PopularCourses returns the titles of the n most enrolled courses. Ties keep
// the order in which courses were given.
func PopularCourses(courses []CourseRef, enrollments []EnrollmentRef, n int) []string {
	counts := EnrollmentCounts(courses, enrollments)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if n > len(counts) {
		n = len(counts)
	}
	titles := make([]string, 0, n)
	for _, c := range counts[:n] {
		titles = append(titles, c.Title)
	}
	return titles
}

// CompletionRate averages watched/lessonCount over all enrollments and returns
// it as a percentage with two decimals. Enrollments in courses without lessons,
// or in unknown courses, contribute zero but still count towards the average.
func CompletionRate(courses []CourseRef, enrollments []EnrollmentRef) float64 {
	if len(enrollments) == 0 {
		return 0
	}
	lessons := make(map[uuid.UUID]int, len(courses))
	for _, c := range courses {
		lessons[c.ID] = c.LessonCount
	}
	var sum float64
	for _, e := range enrollments {
		n := lessons[e.CourseID]
		if n == 0 {
			continue
		}
		sum += float64(e.Watched) / float64(n)
	}
	return progress.Round2(sum / float64(len(enrollments)) * 100)
}
