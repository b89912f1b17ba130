package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"learnhub/internal/logger"
	"learnhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 5 << 20

// testEnv wires every service over one in-memory store.
type testEnv struct {
	store    *store
	blobs    *fakeBlobStore
	notifier *fakeNotifier
	mailer   *fakeMailer
	cache    *fakeStatsCache

	auth          AuthService
	courses       CourseService
	lessons       LessonService
	quizzes       QuizService
	progress      ProgressService
	enrollments   EnrollmentService
	assignments   AssignmentService
	notifications NotificationService
	admin         AdminService
	notifRepo     *fakeNotificationRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Nop()
	s := newStore()
	env := &testEnv{
		store:     s,
		blobs:     newFakeBlobStore(),
		notifier:  &fakeNotifier{},
		mailer:    &fakeMailer{},
		cache:     &fakeStatsCache{data: map[string]any{}},
		notifRepo: &fakeNotificationRepo{},
	}
	tx := snapshotTx{s}
	users := fakeUserRepo{s}
	courses := fakeCourseRepo{s}
	lessons := fakeLessonRepo{s}
	quizzes := fakeQuizRepo{s}
	enrollments := fakeEnrollmentRepo{s}
	progressRepo := fakeProgressRepo{s}
	assignments := fakeAssignmentRepo{s}

	env.auth = NewAuthService(users, env.mailer, AuthOptions{JWTSecret: "test-secret", TokenTTL: time.Hour}, log)
	env.courses = NewCourseService(CourseDeps{
		Tx:          tx,
		Courses:     courses,
		Lessons:     lessons,
		Quizzes:     quizzes,
		Enrollments: enrollments,
		Progress:    progressRepo,
		Assignments: assignments,
	}, env.blobs, testMaxUpload, log)
	env.lessons = NewLessonService(tx, courses, lessons, quizzes, progressRepo, env.blobs, testMaxUpload, log)
	env.progress = NewProgressService(tx, lessons, enrollments, progressRepo, log)
	env.quizzes = NewQuizService(courses, lessons, quizzes, enrollments, env.progress, log)
	env.enrollments = NewEnrollmentService(courses, lessons, enrollments, progressRepo, log)
	env.assignments = NewAssignmentService(lessons, enrollments, assignments, env.blobs, env.notifier, testMaxUpload, log)
	env.notifications = NewNotificationService(env.notifRepo, nil, "", log)
	env.admin = NewAdminService(env.courses, courses, users, enrollments, progressRepo, env.notifier, env.cache, log)
	return env
}

func (e *testEnv) addUser(t *testing.T, name string, role model.Role) Actor {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", Role: role, IsVerified: true}
	require.NoError(t, fakeUserRepo{e.store}.CreateUser(context.Background(), u))
	return Actor{ID: u.ID, Role: role}
}

// addCourse stores an approved course with the given number of lessons.
func (e *testEnv) addCourse(t *testing.T, owner Actor, title string, lessons int) (*model.Course, []model.Lesson) {
	t.Helper()
	ctx := context.Background()
	c := &model.Course{Title: title, Status: model.CourseStatusApproved, InstructorID: owner.ID, Slug: strings.ToLower(title)}
	require.NoError(t, fakeCourseRepo{e.store}.CreateCourse(ctx, c))
	out := make([]model.Lesson, 0, lessons)
	for i := range lessons {
		l := &model.Lesson{CourseID: c.ID, Title: title + " lesson", Content: "content", Order: i + 1}
		require.NoError(t, fakeLessonRepo{e.store}.CreateLesson(ctx, l))
		out = append(out, *l)
	}
	return c, out
}

func (e *testEnv) enroll(t *testing.T, student Actor, courseID uuid.UUID) {
	t.Helper()
	_, err := e.enrollments.Enroll(context.Background(), student, courseID)
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }

func pngUpload(name string) *Upload {
	return &Upload{Filename: name, ContentType: "image/png", Size: 4, Body: strings.NewReader("\x89PNG")}
}

func pdfUpload(name string) Upload {
	return Upload{Filename: name, ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF")}
}
