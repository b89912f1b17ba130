package service

import (
	"context"
	"errors"
	"time"

	"learnhub/internal/model"
	"learnhub/internal/progress"
	"learnhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EnrolledCourse is one entry of a student's course list.
type EnrolledCourse struct {
	EnrollmentID uuid.UUID        `json:"enrollmentId"`
	Course       model.Course     `json:"course"`
	Progress     []progress.Entry `json:"progress"`
	Completion   float64          `json:"completionPercentage"`
	EnrolledAt   time.Time        `json:"enrolledAt"`
}

type StudentSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// CourseEnrollment is one student's enrollment as seen by the course owner.
type CourseEnrollment struct {
	EnrollmentID uuid.UUID        `json:"enrollmentId"`
	Student      StudentSummary   `json:"student"`
	Progress     []progress.Entry `json:"progress"`
	Completion   float64          `json:"completionPercentage"`
	EnrolledAt   time.Time        `json:"enrolledAt"`
}

type EnrollmentService interface {
	Enroll(ctx context.Context, actor Actor, courseID uuid.UUID) (*model.Enrollment, error)
	ListMine(ctx context.Context, actor Actor) ([]EnrolledCourse, error)
	ListForCourse(ctx context.Context, actor Actor, courseID uuid.UUID) ([]CourseEnrollment, error)
}

type enrollmentService struct {
	courses     repository.CourseRepository
	lessons     repository.LessonRepository
	enrollments repository.EnrollmentRepository
	progress    repository.ProgressRepository
	logger      zerolog.Logger
}

func NewEnrollmentService(
	courses repository.CourseRepository,
	lessons repository.LessonRepository,
	enrollments repository.EnrollmentRepository,
	progressRepo repository.ProgressRepository,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentService{
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		progress:    progressRepo,
		logger:      logger.With().Str("service", "EnrollmentService").Logger(),
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, actor Actor, courseID uuid.UUID) (*model.Enrollment, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, notFoundErr("Course")
	}
	if course.Status != model.CourseStatusApproved {
		return nil, validationErr("Course is not available for enrollment")
	}

	existing, err := s.enrollments.GetEnrollment(ctx, actor.ID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictErr("Already enrolled")
	}

	e := &model.Enrollment{StudentID: actor.ID, CourseID: courseID}
	if err := s.enrollments.CreateEnrollment(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictErr("Already enrolled")
		}
		s.logger.Error().Err(err).Str("course_id", courseID.String()).Msg("Failed to create enrollment")
		return nil, err
	}
	return e, nil
}

func (s *enrollmentService) ListMine(ctx context.Context, actor Actor) ([]EnrolledCourse, error) {
	enrollments, err := s.enrollments.GetEnrollmentsByStudentID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		rows, err := s.progress.GetProgressByEnrollment(ctx, actor.ID, e.CourseID)
		if err != nil {
			return nil, err
		}
		entries := entriesOf(rows)
		out = append(out, EnrolledCourse{
			EnrollmentID: e.ID,
			Course:       e.Course,
			Progress:     entries,
			Completion:   progress.Completion(entries, len(e.Course.Lessons)),
			EnrolledAt:   e.CreatedAt,
		})
	}
	return out, nil
}

func (s *enrollmentService) ListForCourse(ctx context.Context, actor Actor, courseID uuid.UUID) ([]CourseEnrollment, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, notFoundErr("Course")
	}
	if course.InstructorID != actor.ID && !actor.IsAdmin() {
		return nil, forbiddenErr("Unauthorized to view enrollments for this course")
	}

	lessonCount, err := s.lessons.CountLessonsByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollments.GetEnrollmentsByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	rows, err := s.progress.GetProgressByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[uuid.UUID][]model.LessonProgress)
	for _, r := range rows {
		byStudent[r.UserID] = append(byStudent[r.UserID], r)
	}

	out := make([]CourseEnrollment, 0, len(enrollments))
	for _, e := range enrollments {
		entries := entriesOf(byStudent[e.StudentID])
		out = append(out, CourseEnrollment{
			EnrollmentID: e.ID,
			Student: StudentSummary{
				ID:       e.StudentID,
				Username: e.Student.Username,
				Email:    e.Student.Email,
			},
			Progress:   entries,
			Completion: progress.Completion(entries, lessonCount),
			EnrolledAt: e.CreatedAt,
		})
	}
	return out, nil
}
