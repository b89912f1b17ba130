package service

import (
	"context"
	"time"

	"learnhub/internal/model"
	"learnhub/internal/progress"
	"learnhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LessonWatch is the watch state of one lesson for one student.
type LessonWatch struct {
	Watched     bool       `json:"watched"`
	WatchedTime *time.Time `json:"watchedTime"`
}

type ProgressService interface {
	// Record merges u into the caller's progress for the lesson.
	Record(ctx context.Context, actor Actor, courseID, lessonID uuid.UUID, u progress.Update) (*model.LessonProgress, error)
	GetLessonProgress(ctx context.Context, actor Actor, courseID, lessonID uuid.UUID) (*LessonWatch, error)
}

type progressService struct {
	tx          repository.Transactor
	lessons     repository.LessonRepository
	enrollments repository.EnrollmentRepository
	progress    repository.ProgressRepository
	now         func() time.Time
	logger      zerolog.Logger
}

func NewProgressService(
	tx repository.Transactor,
	lessons repository.LessonRepository,
	enrollments repository.EnrollmentRepository,
	progressRepo repository.ProgressRepository,
	logger zerolog.Logger,
) ProgressService {
	return &progressService{
		tx:          tx,
		lessons:     lessons,
		enrollments: enrollments,
		progress:    progressRepo,
		now:         time.Now,
		logger:      logger.With().Str("service", "ProgressService").Logger(),
	}
}

func (s *progressService) Record(ctx context.Context, actor Actor, courseID, lessonID uuid.UUID, u progress.Update) (*model.LessonProgress, error) {
	if u.Watched == nil && u.QuizScore == nil {
		return nil, validationErr("watched or quizScore is required")
	}
	if u.QuizScore != nil && (*u.QuizScore < 0 || *u.QuizScore > 100) {
		return nil, validationErr("quizScore must be between 0 and 100")
	}

	lesson, err := s.lessons.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil || lesson.CourseID != courseID {
		return nil, notFoundErr("Lesson")
	}
	enrollment, err := s.enrollments.GetEnrollment(ctx, actor.ID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, notFoundErr("Enrollment")
	}

	var row *model.LessonProgress
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.progress.GetProgressForUpdate(ctx, actor.ID, courseID, lessonID)
		if err != nil {
			return err
		}
		if current == nil {
			current = &model.LessonProgress{UserID: actor.ID, CourseID: courseID, LessonID: lessonID}
		}

		merged := progress.Merge(entryOf(current), u)
		current.Watched = merged.Watched
		current.QuizScore = merged.QuizScore
		if u.Watched != nil && *u.Watched {
			now := s.now()
			current.WatchedAt = &now
		}
		if err := s.progress.UpsertProgress(ctx, current); err != nil {
			return err
		}
		row = current
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", actor.ID.String()).
			Str("lesson_id", lessonID.String()).
			Msg("Failed to record progress")
		return nil, err
	}
	return row, nil
}

func (s *progressService) GetLessonProgress(ctx context.Context, actor Actor, courseID, lessonID uuid.UUID) (*LessonWatch, error) {
	row, err := s.progress.GetProgress(ctx, actor.ID, courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return &LessonWatch{}, nil
	}
	return &LessonWatch{Watched: row.Watched, WatchedTime: row.WatchedAt}, nil
}

func entryOf(p *model.LessonProgress) progress.Entry {
	return progress.Entry{LessonID: p.LessonID, Watched: p.Watched, QuizScore: p.QuizScore}
}

// entriesOf projects stored progress rows into the enrollment progress list.
func entriesOf(rows []model.LessonProgress) []progress.Entry {
	entries := make([]progress.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, entryOf(&rows[i]))
	}
	return entries
}
