package repository

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	CreateQuiz(ctx context.Context, q *model.Quiz) error
	GetQuizByID(ctx context.Context, quizID uuid.UUID) (*model.Quiz, error)
	UpdateQuiz(ctx context.Context, q *model.Quiz) error
	DeleteQuiz(ctx context.Context, quizID uuid.UUID) error
	DeleteQuizzesByLessonID(ctx context.Context, lessonID uuid.UUID) error
	DeleteQuizzesByCourseID(ctx context.Context, courseID uuid.UUID) error
}

type quizRepo struct {
	db *gorm.DB
}

func NewQuizRepo(db *gorm.DB) QuizRepository {
	return &quizRepo{db: db}
}

func (r *quizRepo) CreateQuiz(ctx context.Context, q *model.Quiz) error {
	if err := conn(ctx, r.db).Create(q).Error; err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) GetQuizByID(ctx context.Context, quizID uuid.UUID) (*model.Quiz, error) {
	var q model.Quiz
	if err := conn(ctx, r.db).First(&q, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return &q, nil
}

func (r *quizRepo) UpdateQuiz(ctx context.Context, q *model.Quiz) error {
	if err := conn(ctx, r.db).Save(q).Error; err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) DeleteQuiz(ctx context.Context, quizID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.Quiz{}, "id = ?", quizID).Error; err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) DeleteQuizzesByLessonID(ctx context.Context, lessonID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.Quiz{}, "lesson_id = ?", lessonID).Error; err != nil {
		return fmt.Errorf("failed to delete lesson quizzes: %w", err)
	}
	return nil
}

func (r *quizRepo) DeleteQuizzesByCourseID(ctx context.Context, courseID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.Quiz{}, "course_id = ?", courseID).Error; err != nil {
		return fmt.Errorf("failed to delete course quizzes: %w", err)
	}
	return nil
}
