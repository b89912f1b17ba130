package service

import (
	"context"
	"fmt"

	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/stats"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	statsCacheKey     = "admin"
	popularCourseSize = 3
)

// StatsCache stores the computed admin statistics between requests.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

type UserSummary struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	IsBanned bool       `json:"isBanned"`
}

type CourseSummary struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Status      model.CourseStatus `json:"status"`
	Instructor  string             `json:"instructor"`
	LessonCount int                `json:"lessonCount"`
	Enrollments int                `json:"enrollmentCount"`
}

type AdminStats struct {
	TotalUsers     int64           `json:"totalUsers"`
	PopularCourses []string        `json:"popularCourses"`
	CompletionRate float64         `json:"completionRate"`
	Users          []UserSummary   `json:"users"`
	Courses        []CourseSummary `json:"courses"`
}

type UserAction string

const (
	UserActionBan   UserAction = "ban"
	UserActionUnban UserAction = "unban"
)

type AdminService interface {
	ApproveCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	RejectCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	ManageUser(ctx context.Context, actor Actor, userID uuid.UUID, action UserAction) (*model.User, error)
	Stats(ctx context.Context) (*AdminStats, error)
}

type adminService struct {
	courses     CourseService
	courseRepo  repository.CourseRepository
	users       repository.UserRepository
	enrollments repository.EnrollmentRepository
	progress    repository.ProgressRepository
	notifier    Notifier
	cache       StatsCache
	logger      zerolog.Logger
}

// NewAdminService creates an AdminService. cache may be nil to always
// compute statistics.
func NewAdminService(
	courses CourseService,
	courseRepo repository.CourseRepository,
	users repository.UserRepository,
	enrollments repository.EnrollmentRepository,
	progressRepo repository.ProgressRepository,
	notifier Notifier,
	cache StatsCache,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		courses:     courses,
		courseRepo:  courseRepo,
		users:       users,
		enrollments: enrollments,
		progress:    progressRepo,
		notifier:    notifier,
		cache:       cache,
		logger:      logger.With().Str("service", "AdminService").Logger(),
	}
}

func (s *adminService) ApproveCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	return s.review(ctx, courseID, model.CourseStatusApproved)
}

func (s *adminService) RejectCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	return s.review(ctx, courseID, model.CourseStatusRejected)
}

func (s *adminService) review(ctx context.Context, courseID uuid.UUID, status model.CourseStatus) (*model.Course, error) {
	c, err := s.courses.SetStatus(ctx, courseID, status)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Your course %q has been %s", c.Title, status)
	notifyBestEffort(ctx, s.notifier, s.logger, c.InstructorID, model.NotificationCourseUpdate, msg, nil)
	s.invalidateStats(ctx)
	return c, nil
}

func (s *adminService) ManageUser(ctx context.Context, actor Actor, userID uuid.UUID, action UserAction) (*model.User, error) {
	if action != UserActionBan && action != UserActionUnban {
		return nil, validationErr("Invalid action")
	}
	if userID == actor.ID && action == UserActionBan {
		return nil, validationErr("Cannot ban yourself")
	}
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFoundErr("User")
	}
	u.IsBanned = action == UserActionBan
	if err := s.users.UpdateUser(ctx, u); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Str("action", string(action)).Msg("Failed to update user")
		return nil, err
	}
	s.invalidateStats(ctx)
	return u, nil
}

func (s *adminService) Stats(ctx context.Context) (*AdminStats, error) {
	if s.cache != nil {
		var cached AdminStats
		hit, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to read stats cache")
		} else if hit {
			return &cached, nil
		}
	}

	result, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, result); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to write stats cache")
		}
	}
	return result, nil
}

func (s *adminService) computeStats(ctx context.Context) (*AdminStats, error) {
	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.ListAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollments.ListAllEnrollments(ctx)
	if err != nil {
		return nil, err
	}
	watched, err := s.progress.CountWatched(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ user, course uuid.UUID }
	watchedBy := make(map[key]int, len(watched))
	for _, w := range watched {
		watchedBy[key{w.UserID, w.CourseID}] = w.Count
	}

	courseRefs := make([]stats.CourseRef, 0, len(courses))
	for _, c := range courses {
		courseRefs = append(courseRefs, stats.CourseRef{ID: c.ID, Title: c.Title, LessonCount: len(c.Lessons)})
	}
	enrollmentRefs := make([]stats.EnrollmentRef, 0, len(enrollments))
	for _, e := range enrollments {
		enrollmentRefs = append(enrollmentRefs, stats.EnrollmentRef{
			CourseID: e.CourseID,
			Watched:  watchedBy[key{e.StudentID, e.CourseID}],
		})
	}

	counts := stats.EnrollmentCounts(courseRefs, enrollmentRefs)
	out := &AdminStats{
		TotalUsers:     total,
		PopularCourses: stats.PopularCourses(courseRefs, enrollmentRefs, popularCourseSize),
		CompletionRate: stats.CompletionRate(courseRefs, enrollmentRefs),
		Users:          make([]UserSummary, 0, len(users)),
		Courses:        make([]CourseSummary, 0, len(courses)),
	}
	for _, u := range users {
		out.Users = append(out.Users, UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, IsBanned: u.IsBanned})
	}
	for i, c := range courses {
		out.Courses = append(out.Courses, CourseSummary{
			ID:          c.ID,
			Title:       c.Title,
			Status:      c.Status,
			Instructor:  c.Instructor.Username,
			LessonCount: len(c.Lessons),
			Enrollments: counts[i].Count,
		})
	}
	return out, nil
}

func (s *adminService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}
}
