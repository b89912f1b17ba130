package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/storage"

	"github.com/google/uuid"
)

// store backs every fake repository so cascades can be observed across them.
type store struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*model.User
	courses     map[uuid.UUID]*model.Course
	lessons     map[uuid.UUID]*model.Lesson
	quizzes     map[uuid.UUID]*model.Quiz
	enrollments map[uuid.UUID]*model.Enrollment
	progress    map[uuid.UUID]*model.LessonProgress
	assignments map[uuid.UUID]*model.Assignment
	failCreate  error
	failDelete  error
	seq         int
}

func newStore() *store {
	return &store{
		users:       map[uuid.UUID]*model.User{},
		courses:     map[uuid.UUID]*model.Course{},
		lessons:     map[uuid.UUID]*model.Lesson{},
		quizzes:     map[uuid.UUID]*model.Quiz{},
		enrollments: map[uuid.UUID]*model.Enrollment{},
		progress:    map[uuid.UUID]*model.LessonProgress{},
		assignments: map[uuid.UUID]*model.Assignment{},
	}
}

// tick returns strictly increasing timestamps so ordering by creation time is
// deterministic. Callers hold s.mu.
func (s *store) tick() time.Time {
	s.seq++
	return time.Unix(1_700_000_000, 0).Add(time.Duration(s.seq) * time.Second)
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ---- transactor ----

// snapshotTx restores the store when fn fails, so partial cascades roll back.
type snapshotTx struct{ s *store }

func (t snapshotTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.s.mu.Lock()
	saved := t.s.snapshot()
	t.s.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.s.mu.Lock()
		t.s.restore(saved)
		t.s.mu.Unlock()
		return err
	}
	return nil
}

type storeSnapshot struct {
	users       map[uuid.UUID]*model.User
	courses     map[uuid.UUID]*model.Course
	lessons     map[uuid.UUID]*model.Lesson
	quizzes     map[uuid.UUID]*model.Quiz
	enrollments map[uuid.UUID]*model.Enrollment
	progress    map[uuid.UUID]*model.LessonProgress
	assignments map[uuid.UUID]*model.Assignment
}

func cloneMap[T any](m map[uuid.UUID]*T) map[uuid.UUID]*T {
	out := make(map[uuid.UUID]*T, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

// Callers hold s.mu.
func (s *store) snapshot() storeSnapshot {
	return storeSnapshot{
		users:       cloneMap(s.users),
		courses:     cloneMap(s.courses),
		lessons:     cloneMap(s.lessons),
		quizzes:     cloneMap(s.quizzes),
		enrollments: cloneMap(s.enrollments),
		progress:    cloneMap(s.progress),
		assignments: cloneMap(s.assignments),
	}
}

// Callers hold s.mu.
func (s *store) restore(snap storeSnapshot) {
	s.users = snap.users
	s.courses = snap.courses
	s.lessons = snap.lessons
	s.quizzes = snap.quizzes
	s.enrollments = snap.enrollments
	s.progress = snap.progress
	s.assignments = snap.assignments
}

// ---- users ----

type fakeUserRepo struct{ s *store }

func (r fakeUserRepo) CreateUser(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	ensureID(&u.ID)
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) UpdateUser(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r fakeUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r fakeUserRepo) CountUsers(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

// ---- courses ----

type fakeCourseRepo struct{ s *store }

func (r fakeCourseRepo) CreateCourse(_ context.Context, c *model.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCreate != nil {
		return r.s.failCreate
	}
	ensureID(&c.ID)
	c.CreatedAt = r.s.tick()
	cp := *c
	r.s.courses[c.ID] = &cp
	return nil
}

func (r fakeCourseRepo) GetCourseByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r fakeCourseRepo) GetCourseDetails(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c, err := r.GetCourseByID(ctx, id)
	if err != nil || c == nil {
		return c, err
	}
	c.Lessons = r.s.lessonsOf(id)
	return c, nil
}

func (r fakeCourseRepo) UpdateCourse(_ context.Context, c *model.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.courses[c.ID] = &cp
	return nil
}

func (r fakeCourseRepo) DeleteCourse(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.courses, id)
	return nil
}

func (r fakeCourseRepo) ListCourses(ctx context.Context, f repository.CourseFilter) ([]model.Course, error) {
	all, _ := r.ListAllCourses(ctx)
	out := all[:0]
	for _, c := range all {
		if f.IncludeAll || c.Status == model.CourseStatusApproved {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeCourseRepo) GetCoursesByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]model.Course, error) {
	all, _ := r.ListAllCourses(ctx)
	out := all[:0]
	for _, c := range all {
		if c.InstructorID == instructorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeCourseRepo) ListAllCourses(_ context.Context) ([]model.Course, error) {
	r.s.mu.Lock()
	out := make([]model.Course, 0, len(r.s.courses))
	for _, c := range r.s.courses {
		cp := *c
		if u, ok := r.s.users[c.InstructorID]; ok {
			cp.Instructor = *u
		}
		out = append(out, cp)
	}
	r.s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	for i := range out {
		out[i].Lessons = r.s.lessonsOf(out[i].ID)
	}
	return out, nil
}

func (s *store) lessonsOf(courseID uuid.UUID) []model.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Lesson
	for _, l := range s.lessons {
		if l.CourseID == courseID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ---- lessons ----

type fakeLessonRepo struct{ s *store }

func (r fakeLessonRepo) CreateLesson(_ context.Context, l *model.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCreate != nil {
		return r.s.failCreate
	}
	ensureID(&l.ID)
	cp := *l
	r.s.lessons[l.ID] = &cp
	return nil
}

func (r fakeLessonRepo) GetLessonByID(_ context.Context, id uuid.UUID) (*model.Lesson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.lessons[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r fakeLessonRepo) UpdateLesson(_ context.Context, l *model.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.lessons[l.ID] = &cp
	return nil
}

func (r fakeLessonRepo) DeleteLesson(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failDelete != nil {
		return r.s.failDelete
	}
	delete(r.s.lessons, id)
	return nil
}

func (r fakeLessonRepo) GetLessonsByCourseID(_ context.Context, courseID uuid.UUID) ([]model.Lesson, error) {
	return r.s.lessonsOf(courseID), nil
}

func (r fakeLessonRepo) CountLessonsByCourseID(_ context.Context, courseID uuid.UUID) (int, error) {
	return len(r.s.lessonsOf(courseID)), nil
}

func (r fakeLessonRepo) DeleteLessonsByCourseID(_ context.Context, courseID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.lessons {
		if l.CourseID == courseID {
			delete(r.s.lessons, id)
		}
	}
	return nil
}

// ---- quizzes ----

type fakeQuizRepo struct{ s *store }

func (r fakeQuizRepo) CreateQuiz(_ context.Context, q *model.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&q.ID)
	cp := *q
	r.s.quizzes[q.ID] = &cp
	return nil
}

func (r fakeQuizRepo) GetQuizByID(_ context.Context, id uuid.UUID) (*model.Quiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if q, ok := r.s.quizzes[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, nil
}

func (r fakeQuizRepo) UpdateQuiz(_ context.Context, q *model.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *q
	r.s.quizzes[q.ID] = &cp
	return nil
}

func (r fakeQuizRepo) DeleteQuiz(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.quizzes, id)
	return nil
}

func (r fakeQuizRepo) DeleteQuizzesByLessonID(_ context.Context, lessonID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, q := range r.s.quizzes {
		if q.LessonID == lessonID {
			delete(r.s.quizzes, id)
		}
	}
	return nil
}

func (r fakeQuizRepo) DeleteQuizzesByCourseID(_ context.Context, courseID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, q := range r.s.quizzes {
		if q.CourseID == courseID {
			delete(r.s.quizzes, id)
		}
	}
	return nil
}

// ---- enrollments ----

type fakeEnrollmentRepo struct{ s *store }

func (r fakeEnrollmentRepo) CreateEnrollment(_ context.Context, e *model.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.enrollments {
		if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID {
			return repository.ErrDuplicate
		}
	}
	ensureID(&e.ID)
	e.CreatedAt = r.s.tick()
	cp := *e
	r.s.enrollments[e.ID] = &cp
	return nil
}

func (r fakeEnrollmentRepo) GetEnrollment(_ context.Context, studentID, courseID uuid.UUID) (*model.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeEnrollmentRepo) filter(keep func(*model.Enrollment) bool) []model.Enrollment {
	r.s.mu.Lock()
	var out []model.Enrollment
	for _, e := range r.s.enrollments {
		if keep(e) {
			cp := *e
			if c, ok := r.s.courses[e.CourseID]; ok {
				cp.Course = *c
			}
			if u, ok := r.s.users[e.StudentID]; ok {
				cp.Student = *u
			}
			out = append(out, cp)
		}
	}
	r.s.mu.Unlock()
	for i := range out {
		out[i].Course.Lessons = r.s.lessonsOf(out[i].CourseID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r fakeEnrollmentRepo) GetEnrollmentsByStudentID(_ context.Context, studentID uuid.UUID) ([]model.Enrollment, error) {
	return r.filter(func(e *model.Enrollment) bool { return e.StudentID == studentID }), nil
}

func (r fakeEnrollmentRepo) GetEnrollmentsByCourseID(_ context.Context, courseID uuid.UUID) ([]model.Enrollment, error) {
	return r.filter(func(e *model.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (r fakeEnrollmentRepo) ListAllEnrollments(_ context.Context) ([]model.Enrollment, error) {
	return r.filter(func(*model.Enrollment) bool { return true }), nil
}

func (r fakeEnrollmentRepo) DeleteEnrollmentsByCourseID(_ context.Context, courseID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.enrollments {
		if e.CourseID == courseID {
			delete(r.s.enrollments, id)
		}
	}
	return nil
}

// ---- progress ----

type fakeProgressRepo struct{ s *store }

func (r fakeProgressRepo) find(userID, courseID, lessonID uuid.UUID) *model.LessonProgress {
	for _, p := range r.s.progress {
		if p.UserID == userID && p.CourseID == courseID && p.LessonID == lessonID {
			return p
		}
	}
	return nil
}

func (r fakeProgressRepo) GetProgress(_ context.Context, userID, courseID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.find(userID, courseID, lessonID); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r fakeProgressRepo) GetProgressForUpdate(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	return r.GetProgress(ctx, userID, courseID, lessonID)
}

func (r fakeProgressRepo) UpsertProgress(_ context.Context, p *model.LessonProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing := r.find(p.UserID, p.CourseID, p.LessonID); existing != nil {
		p.ID = existing.ID
	}
	ensureID(&p.ID)
	cp := *p
	r.s.progress[p.ID] = &cp
	return nil
}

func (r fakeProgressRepo) list(keep func(*model.LessonProgress) bool) []model.LessonProgress {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.LessonProgress
	for _, p := range r.s.progress {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessonID.String() < out[j].LessonID.String() })
	return out
}

func (r fakeProgressRepo) GetProgressByEnrollment(_ context.Context, userID, courseID uuid.UUID) ([]model.LessonProgress, error) {
	return r.list(func(p *model.LessonProgress) bool { return p.UserID == userID && p.CourseID == courseID }), nil
}

func (r fakeProgressRepo) GetProgressByCourseID(_ context.Context, courseID uuid.UUID) ([]model.LessonProgress, error) {
	return r.list(func(p *model.LessonProgress) bool { return p.CourseID == courseID }), nil
}

func (r fakeProgressRepo) CountWatched(_ context.Context) ([]repository.WatchedCount, error) {
	counts := map[[2]uuid.UUID]int{}
	for _, p := range r.list(func(p *model.LessonProgress) bool { return p.Watched }) {
		counts[[2]uuid.UUID{p.UserID, p.CourseID}]++
	}
	out := make([]repository.WatchedCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, repository.WatchedCount{UserID: k[0], CourseID: k[1], Count: n})
	}
	return out, nil
}

func (r fakeProgressRepo) DeleteProgressByLessonID(_ context.Context, lessonID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, p := range r.s.progress {
		if p.LessonID == lessonID {
			delete(r.s.progress, id)
			n++
		}
	}
	return n, nil
}

func (r fakeProgressRepo) DeleteProgressByCourseID(_ context.Context, courseID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.progress {
		if p.CourseID == courseID {
			delete(r.s.progress, id)
		}
	}
	return nil
}

// ---- assignments ----

type fakeAssignmentRepo struct{ s *store }

func (r fakeAssignmentRepo) CreateAssignment(_ context.Context, a *model.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCreate != nil {
		return r.s.failCreate
	}
	ensureID(&a.ID)
	cp := *a
	r.s.assignments[a.ID] = &cp
	return nil
}

func (r fakeAssignmentRepo) GetAssignmentByID(_ context.Context, id uuid.UUID) (*model.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	if c, ok := r.s.courses[a.CourseID]; ok {
		cp.Course = *c
	}
	if l, ok := r.s.lessons[a.LessonID]; ok {
		cp.Lesson = *l
	}
	return &cp, nil
}

func (r fakeAssignmentRepo) UpdateAssignment(_ context.Context, a *model.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	r.s.assignments[a.ID] = &cp
	return nil
}

func (r fakeAssignmentRepo) GetAssignmentsByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]model.Assignment, error) {
	r.s.mu.Lock()
	var ids []uuid.UUID
	for id, a := range r.s.assignments {
		if c, ok := r.s.courses[a.CourseID]; ok && c.InstructorID == instructorID {
			ids = append(ids, id)
		}
	}
	r.s.mu.Unlock()
	out := make([]model.Assignment, 0, len(ids))
	for _, id := range ids {
		a, _ := r.GetAssignmentByID(ctx, id)
		if u, ok := r.s.users[a.StudentID]; ok {
			a.Student = *u
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r fakeAssignmentRepo) GetAssignmentsByCourseID(_ context.Context, courseID uuid.UUID) ([]model.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Assignment
	for _, a := range r.s.assignments {
		if a.CourseID == courseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r fakeAssignmentRepo) DeleteAssignmentsByCourseID(_ context.Context, courseID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.assignments {
		if a.CourseID == courseID {
			delete(r.s.assignments, id)
		}
	}
	return nil
}

// ---- notifications ----

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []*model.Notification
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&n.ID)
	n.CreatedAt = time.Now()
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNotificationRepo) MarkNotificationRead(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) GetNotificationsByUserID(_ context.Context, userID uuid.UUID) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, *r.items[i])
		}
	}
	return out, nil
}

// ---- collaborators ----

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string]bool
	failPut error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string]bool{}}
}

func (b *fakeBlobStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (storage.Object, error) {
	if b.failPut != nil {
		return storage.Object{}, b.failPut
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return storage.Object{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = true
	return storage.Object{URL: "https://blobs.test/" + key, Key: key}, nil
}

func (b *fakeBlobStore) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *fakeBlobStore) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

type sentNotification struct {
	UserID   uuid.UUID
	Type     model.NotificationType
	Message  string
	LessonID *uuid.UUID
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, userID uuid.UUID, kind model.NotificationType, message string, lessonID *uuid.UUID) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{userID, kind, message, lessonID})
	return nil
}

type sentMail struct{ To, Subject, Body string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakeStatsCache struct {
	data map[string]any
}

func (c *fakeStatsCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*dest.(*AdminStats) = *v.(*AdminStats)
	return true, nil
}

func (c *fakeStatsCache) Set(_ context.Context, key string, v any) error {
	c.data[key] = v
	return nil
}

func (c *fakeStatsCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

var errBoom = errors.New("boom")
