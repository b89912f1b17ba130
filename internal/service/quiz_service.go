package service

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"learnhub/internal/grading"
	"learnhub/internal/model"
	"learnhub/internal/progress"
	"learnhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type QuizInput struct {
	Title                  string
	Questions              []model.Question
	ShowResultsImmediately *bool
}

// QuizUpdate carries the fields an instructor may change. Nil means unchanged.
type QuizUpdate struct {
	Title                  *string
	Questions              []model.Question
	ShowResultsImmediately *bool
}

type QuizSubmission struct {
	Score                  float64          `json:"score"`
	Results                []grading.Result `json:"results"`
	ShowResultsImmediately bool             `json:"showResultsImmediately"`
}

type QuizService interface {
	Create(ctx context.Context, actor Actor, courseID, lessonID uuid.UUID, in QuizInput) (*model.Quiz, error)
	Get(ctx context.Context, actor Actor, quizID uuid.UUID) (*model.Quiz, error)
	Update(ctx context.Context, actor Actor, quizID uuid.UUID, in QuizUpdate) (*model.Quiz, error)
	Delete(ctx context.Context, actor Actor, quizID uuid.UUID) error
	// Submit grades answers and stores the score in the caller's progress.
	Submit(ctx context.Context, actor Actor, courseID, lessonID, quizID uuid.UUID, answers []string) (*QuizSubmission, error)
}

type quizService struct {
	courses     repository.CourseRepository
	lessons     repository.LessonRepository
	quizzes     repository.QuizRepository
	enrollments repository.EnrollmentRepository
	progress    ProgressService
	logger      zerolog.Logger
}

func NewQuizService(
	courses repository.CourseRepository,
	lessons repository.LessonRepository,
	quizzes repository.QuizRepository,
	enrollments repository.EnrollmentRepository,
	progressSvc ProgressService,
	logger zerolog.Logger,
) QuizService {
	return &quizService{
		courses:     courses,
		lessons:     lessons,
		quizzes:     quizzes,
		enrollments: enrollments,
		progress:    progressSvc,
		logger:      logger.With().Str("service", "QuizService").Logger(),
	}
}

func (s *quizService) Create(ctx context.Context, actor Actor, courseID, lessonID uuid.UUID, in QuizInput) (*model.Quiz, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, notFoundErr("Course")
	}
	if course.InstructorID != actor.ID {
		return nil, forbiddenErr("Unauthorized to add quizzes to this course")
	}
	lesson, err := s.lessons.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil || lesson.CourseID != courseID {
		return nil, validationErr("Lesson not found in this course")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" || len(in.Questions) == 0 {
		return nil, validationErr("Title and questions are required")
	}
	if err := checkQuestions(in.Questions); err != nil {
		return nil, err
	}

	q := &model.Quiz{
		CourseID:               courseID,
		LessonID:               lessonID,
		Title:                  title,
		Questions:              in.Questions,
		ShowResultsImmediately: true,
	}
	if in.ShowResultsImmediately != nil {
		q.ShowResultsImmediately = *in.ShowResultsImmediately
	}
	if err := s.quizzes.CreateQuiz(ctx, q); err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lessonID.String()).Msg("Failed to create quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) Get(ctx context.Context, actor Actor, quizID uuid.UUID) (*model.Quiz, error) {
	return s.ownedQuiz(ctx, actor, quizID)
}

func (s *quizService) Update(ctx context.Context, actor Actor, quizID uuid.UUID, in QuizUpdate) (*model.Quiz, error) {
	q, err := s.ownedQuiz(ctx, actor, quizID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, validationErr("Title is required")
		}
		q.Title = title
	}
	if in.Questions != nil {
		if err := checkQuestions(in.Questions); err != nil {
			return nil, err
		}
		q.Questions = in.Questions
	}
	if in.ShowResultsImmediately != nil {
		q.ShowResultsImmediately = *in.ShowResultsImmediately
	}
	if err := s.quizzes.UpdateQuiz(ctx, q); err != nil {
		s.logger.Error().Err(err).Str("quiz_id", quizID.String()).Msg("Failed to update quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) Delete(ctx context.Context, actor Actor, quizID uuid.UUID) error {
	if _, err := s.ownedQuiz(ctx, actor, quizID); err != nil {
		return err
	}
	return s.quizzes.DeleteQuiz(ctx, quizID)
}

func (s *quizService) Submit(ctx context.Context, actor Actor, courseID, lessonID, quizID uuid.UUID, answers []string) (*QuizSubmission, error) {
	q, err := s.quizzes.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, notFoundErr("Quiz")
	}
	if q.CourseID != courseID {
		return nil, validationErr("Quiz does not belong to the specified course")
	}
	if q.LessonID != lessonID {
		return nil, validationErr("Quiz does not belong to the specified lesson")
	}
	if err := grading.ValidateAnswers(q.Questions, answers); err != nil {
		return nil, gradingErr(err)
	}

	enrollment, err := s.enrollments.GetEnrollment(ctx, actor.ID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, notFoundErr("Enrollment")
	}

	outcome, err := grading.Score(q.Questions, answers)
	if err != nil {
		return nil, gradingErr(err)
	}
	score := outcome.Score
	if _, err := s.progress.Record(ctx, actor, courseID, lessonID, progress.Update{QuizScore: &score}); err != nil {
		return nil, err
	}

	return &QuizSubmission{
		Score:                  outcome.Score,
		Results:                outcome.Results,
		ShowResultsImmediately: q.ShowResultsImmediately,
	}, nil
}

func (s *quizService) ownedQuiz(ctx context.Context, actor Actor, quizID uuid.UUID) (*model.Quiz, error) {
	q, err := s.quizzes.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, notFoundErr("Quiz")
	}
	course, err := s.courses.GetCourseByID(ctx, q.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil || course.InstructorID != actor.ID {
		return nil, forbiddenErr("Unauthorized")
	}
	return q, nil
}

func checkQuestions(questions []model.Question) error {
	if err := grading.ValidateQuestions(questions); err != nil {
		return gradingErr(err)
	}
	return nil
}

// gradingErr turns a grading failure into a validation error with a
// sentence-case message.
func gradingErr(err error) error {
	var answerErr *grading.AnswerError
	if !errors.As(err, &answerErr) &&
		!errors.Is(err, grading.ErrNoQuestions) &&
		!errors.Is(err, grading.ErrAnswerCount) &&
		!errors.Is(err, grading.ErrInvalidQuestion) {
		return err
	}
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	return validationErr("%s", string(unicode.ToUpper(r))+msg[size:])
}
