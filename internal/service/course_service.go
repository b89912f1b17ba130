package service

import (
	"context"
	"errors"
	"strings"

	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/storage"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
)

const thumbnailFolder = "thumbnails"

type CourseInput struct {
	Title       string
	Description string
	Category    string
}

// CourseUpdate carries the fields an instructor may change. Nil means unchanged.
type CourseUpdate struct {
	Title       *string
	Description *string
	Category    *string
}

// CourseService defines the interface for course operations
type CourseService interface {
	Create(ctx context.Context, actor Actor, in CourseInput, thumbnail *Upload) (*model.Course, error)
	List(ctx context.Context, f repository.CourseFilter) ([]model.Course, error)
	// ListByInstructor returns the caller's courses with lessons and quizzes.
	ListByInstructor(ctx context.Context, actor Actor) ([]model.Course, error)
	Get(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	// Update applies the changes and sends the course back for review.
	Update(ctx context.Context, actor Actor, courseID uuid.UUID, in CourseUpdate, thumbnail *Upload) (*model.Course, error)
	// Delete removes the course and everything that hangs off it.
	Delete(ctx context.Context, actor Actor, courseID uuid.UUID) error
	SetStatus(ctx context.Context, courseID uuid.UUID, status model.CourseStatus) (*model.Course, error)
}

type courseService struct {
	tx             repository.Transactor
	courses        repository.CourseRepository
	lessons        repository.LessonRepository
	quizzes        repository.QuizRepository
	enrollments    repository.EnrollmentRepository
	progress       repository.ProgressRepository
	assignments    repository.AssignmentRepository
	blobs          storage.BlobStore
	maxUploadBytes int64
	logger         zerolog.Logger
}

// CourseDeps groups the repositories the course service cascades over.
type CourseDeps struct {
	Tx          repository.Transactor
	Courses     repository.CourseRepository
	Lessons     repository.LessonRepository
	Quizzes     repository.QuizRepository
	Enrollments repository.EnrollmentRepository
	Progress    repository.ProgressRepository
	Assignments repository.AssignmentRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(deps CourseDeps, blobs storage.BlobStore, maxUploadBytes int64, logger zerolog.Logger) CourseService {
	return &courseService{
		tx:             deps.Tx,
		courses:        deps.Courses,
		lessons:        deps.Lessons,
		quizzes:        deps.Quizzes,
		enrollments:    deps.Enrollments,
		progress:       deps.Progress,
		assignments:    deps.Assignments,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("service", "CourseService").Logger(),
	}
}

func courseSlug(title string) string {
	return slug.Make(title) + "-" + uuid.NewString()[:8]
}

func (s *courseService) Create(ctx context.Context, actor Actor, in CourseInput, thumbnail *Upload) (*model.Course, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationErr("Title is required")
	}
	if thumbnail != nil {
		if err := checkUpload(thumbnail, imageFile, s.maxUploadBytes); err != nil {
			return nil, err
		}
	}

	c := &model.Course{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Category:     strings.TrimSpace(in.Category),
		Slug:         courseSlug(title),
		Status:       model.CourseStatusPending,
		InstructorID: actor.ID,
	}
	if thumbnail != nil {
		obj, err := s.putThumbnail(ctx, thumbnail)
		if err != nil {
			return nil, err
		}
		c.ThumbnailURL, c.ThumbnailKey = obj.URL, obj.Key
	}

	if err := s.courses.CreateCourse(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("Failed to create course")
		storage.DeleteAll(ctx, s.blobs, s.logger, c.ThumbnailKey)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictErr("A course with this slug already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *courseService) List(ctx context.Context, f repository.CourseFilter) ([]model.Course, error) {
	return s.courses.ListCourses(ctx, f)
}

func (s *courseService) ListByInstructor(ctx context.Context, actor Actor) ([]model.Course, error) {
	return s.courses.GetCoursesByInstructorID(ctx, actor.ID)
}

func (s *courseService) Get(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	c, err := s.courses.GetCourseDetails(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFoundErr("Course")
	}
	return c, nil
}

func (s *courseService) Update(ctx context.Context, actor Actor, courseID uuid.UUID, in CourseUpdate, thumbnail *Upload) (*model.Course, error) {
	c, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, validationErr("Title cannot be empty")
		}
		if title != c.Title {
			c.Slug = courseSlug(title)
		}
		c.Title = title
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		c.Category = strings.TrimSpace(*in.Category)
	}

	oldKey := ""
	if thumbnail != nil {
		if err := checkUpload(thumbnail, imageFile, s.maxUploadBytes); err != nil {
			return nil, err
		}
		obj, err := s.putThumbnail(ctx, thumbnail)
		if err != nil {
			return nil, err
		}
		oldKey = c.ThumbnailKey
		c.ThumbnailURL, c.ThumbnailKey = obj.URL, obj.Key
	}
	c.Status = model.CourseStatusPending

	if err := s.courses.UpdateCourse(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID.String()).Msg("Failed to update course")
		if thumbnail != nil {
			storage.DeleteAll(ctx, s.blobs, s.logger, c.ThumbnailKey)
		}
		return nil, err
	}
	storage.DeleteAll(ctx, s.blobs, s.logger, oldKey)
	return c, nil
}

func (s *courseService) Delete(ctx context.Context, actor Actor, courseID uuid.UUID) error {
	c, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return err
	}

	keys := []string{c.ThumbnailKey}
	lessons, err := s.lessons.GetLessonsByCourseID(ctx, courseID)
	if err != nil {
		return err
	}
	for _, l := range lessons {
		for _, r := range l.Resources {
			keys = append(keys, r.Key)
		}
	}
	assignments, err := s.assignments.GetAssignmentsByCourseID(ctx, courseID)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		keys = append(keys, a.FileKey)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.progress.DeleteProgressByCourseID(ctx, courseID); err != nil {
			return err
		}
		if err := s.quizzes.DeleteQuizzesByCourseID(ctx, courseID); err != nil {
			return err
		}
		if err := s.assignments.DeleteAssignmentsByCourseID(ctx, courseID); err != nil {
			return err
		}
		if err := s.lessons.DeleteLessonsByCourseID(ctx, courseID); err != nil {
			return err
		}
		if err := s.enrollments.DeleteEnrollmentsByCourseID(ctx, courseID); err != nil {
			return err
		}
		return s.courses.DeleteCourse(ctx, courseID)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID.String()).Msg("Failed to delete course")
		return err
	}

	storage.DeleteAll(ctx, s.blobs, s.logger, keys...)
	return nil
}

func (s *courseService) SetStatus(ctx context.Context, courseID uuid.UUID, status model.CourseStatus) (*model.Course, error) {
	c, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFoundErr("Course")
	}
	c.Status = status
	if err := s.courses.UpdateCourse(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID.String()).Msg("Failed to update course status")
		return nil, err
	}
	return c, nil
}

func (s *courseService) ownedCourse(ctx context.Context, actor Actor, courseID uuid.UUID) (*model.Course, error) {
	c, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFoundErr("Course")
	}
	if c.InstructorID != actor.ID {
		return nil, forbiddenErr("Unauthorized")
	}
	return c, nil
}

func (s *courseService) putThumbnail(ctx context.Context, thumbnail *Upload) (storage.Object, error) {
	stored, err := uploadAll(ctx, s.blobs, s.logger, thumbnailFolder, []Upload{*thumbnail})
	if err != nil {
		s.logger.Error().Err(err).Str("file", thumbnail.Filename).Msg("Failed to upload thumbnail")
		return storage.Object{}, err
	}
	return stored[0], nil
}
