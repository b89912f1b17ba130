package service

import (
	"context"
	"strings"

	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const resourceFolder = "resources"

type LessonInput struct {
	Title    string
	Content  string
	VideoURL string
	Order    *int
}

// LessonUpdate carries the fields an instructor may change. Nil means unchanged.
type LessonUpdate struct {
	Title    *string
	Content  *string
	VideoURL *string
	Order    *int
}

type LessonService interface {
	Create(ctx context.Context, actor Actor, courseID uuid.UUID, in LessonInput, resources []Upload) (*model.Lesson, error)
	Get(ctx context.Context, lessonID uuid.UUID) (*model.Lesson, error)
	// Update changes lesson fields and appends any new resources.
	Update(ctx context.Context, actor Actor, lessonID uuid.UUID, in LessonUpdate, resources []Upload) (*model.Lesson, error)
	// Delete removes the lesson together with its quizzes and every student's
	// progress on it.
	Delete(ctx context.Context, actor Actor, lessonID uuid.UUID) error
}

type lessonService struct {
	tx             repository.Transactor
	courses        repository.CourseRepository
	lessons        repository.LessonRepository
	quizzes        repository.QuizRepository
	progress       repository.ProgressRepository
	blobs          storage.BlobStore
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewLessonService(
	tx repository.Transactor,
	courses repository.CourseRepository,
	lessons repository.LessonRepository,
	quizzes repository.QuizRepository,
	progressRepo repository.ProgressRepository,
	blobs storage.BlobStore,
	maxUploadBytes int64,
	logger zerolog.Logger,
) LessonService {
	return &lessonService{
		tx:             tx,
		courses:        courses,
		lessons:        lessons,
		quizzes:        quizzes,
		progress:       progressRepo,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("service", "LessonService").Logger(),
	}
}

func (s *lessonService) Create(ctx context.Context, actor Actor, courseID uuid.UUID, in LessonInput, resources []Upload) (*model.Lesson, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, notFoundErr("Course")
	}
	if course.InstructorID != actor.ID {
		return nil, forbiddenErr("Unauthorized to add lessons to this course")
	}

	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" || in.Order == nil {
		return nil, validationErr("Title, content, and order are required")
	}
	if err := s.checkResources(resources); err != nil {
		return nil, err
	}

	stored, err := uploadAll(ctx, s.blobs, s.logger, resourceFolder, resources)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID.String()).Msg("Failed to upload lesson resources")
		return nil, err
	}

	l := &model.Lesson{
		CourseID:  courseID,
		Title:     title,
		Content:   content,
		VideoURL:  strings.TrimSpace(in.VideoURL),
		Resources: blobsOf(stored),
		Order:     *in.Order,
	}
	if err := s.lessons.CreateLesson(ctx, l); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID.String()).Msg("Failed to create lesson")
		storage.DeleteAll(ctx, s.blobs, s.logger, objectKeys(stored)...)
		return nil, err
	}
	return l, nil
}

func (s *lessonService) Get(ctx context.Context, lessonID uuid.UUID) (*model.Lesson, error) {
	l, err := s.lessons.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, notFoundErr("Lesson")
	}
	return l, nil
}

func (s *lessonService) Update(ctx context.Context, actor Actor, lessonID uuid.UUID, in LessonUpdate, resources []Upload) (*model.Lesson, error) {
	l, err := s.ownedLesson(ctx, actor, lessonID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, validationErr("Title cannot be empty")
		}
		l.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, validationErr("Content cannot be empty")
		}
		l.Content = strings.TrimSpace(*in.Content)
	}
	if in.VideoURL != nil {
		l.VideoURL = strings.TrimSpace(*in.VideoURL)
	}
	if in.Order != nil {
		l.Order = *in.Order
	}
	if err := s.checkResources(resources); err != nil {
		return nil, err
	}

	stored, err := uploadAll(ctx, s.blobs, s.logger, resourceFolder, resources)
	if err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lessonID.String()).Msg("Failed to upload lesson resources")
		return nil, err
	}
	l.Resources = append(l.Resources, blobsOf(stored)...)
	if err := s.lessons.UpdateLesson(ctx, l); err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lessonID.String()).Msg("Failed to update lesson")
		storage.DeleteAll(ctx, s.blobs, s.logger, objectKeys(stored)...)
		return nil, err
	}
	return l, nil
}

func (s *lessonService) Delete(ctx context.Context, actor Actor, lessonID uuid.UUID) error {
	l, err := s.ownedLesson(ctx, actor, lessonID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		pruned, err := s.progress.DeleteProgressByLessonID(ctx, lessonID)
		if err != nil {
			return err
		}
		if err := s.quizzes.DeleteQuizzesByLessonID(ctx, lessonID); err != nil {
			return err
		}
		if err := s.lessons.DeleteLesson(ctx, lessonID); err != nil {
			return err
		}
		s.logger.Debug().Str("lesson_id", lessonID.String()).Int64("progress_rows", pruned).Msg("Lesson deleted")
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lessonID.String()).Msg("Failed to delete lesson")
		return err
	}

	keys := make([]string, 0, len(l.Resources))
	for _, r := range l.Resources {
		keys = append(keys, r.Key)
	}
	storage.DeleteAll(ctx, s.blobs, s.logger, keys...)
	return nil
}

func (s *lessonService) ownedLesson(ctx context.Context, actor Actor, lessonID uuid.UUID) (*model.Lesson, error) {
	l, err := s.lessons.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, notFoundErr("Lesson")
	}
	course, err := s.courses.GetCourseByID(ctx, l.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil || course.InstructorID != actor.ID {
		return nil, forbiddenErr("Unauthorized")
	}
	return l, nil
}

func (s *lessonService) checkResources(resources []Upload) error {
	for i := range resources {
		if err := checkUpload(&resources[i], documentFile, s.maxUploadBytes); err != nil {
			return err
		}
	}
	return nil
}

func blobsOf(objs []storage.Object) []model.Blob {
	out := make([]model.Blob, 0, len(objs))
	for _, o := range objs {
		out = append(out, model.Blob{URL: o.URL, Key: o.Key})
	}
	return out
}
