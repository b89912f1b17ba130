package repository

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonRepository interface {
	CreateLesson(ctx context.Context, l *model.Lesson) error
	GetLessonByID(ctx context.Context, lessonID uuid.UUID) (*model.Lesson, error)
	UpdateLesson(ctx context.Context, l *model.Lesson) error
	DeleteLesson(ctx context.Context, lessonID uuid.UUID) error
	GetLessonsByCourseID(ctx context.Context, courseID uuid.UUID) ([]model.Lesson, error)
	CountLessonsByCourseID(ctx context.Context, courseID uuid.UUID) (int, error)
	DeleteLessonsByCourseID(ctx context.Context, courseID uuid.UUID) error
}

type lessonRepo struct {
	db *gorm.DB
}

func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) CreateLesson(ctx context.Context, l *model.Lesson) error {
	if err := conn(ctx, r.db).Omit("Quizzes").Create(l).Error; err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}
	return nil
}

func (r *lessonRepo) GetLessonByID(ctx context.Context, lessonID uuid.UUID) (*model.Lesson, error) {
	var l model.Lesson
	if err := conn(ctx, r.db).First(&l, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return &l, nil
}

func (r *lessonRepo) UpdateLesson(ctx context.Context, l *model.Lesson) error {
	if err := conn(ctx, r.db).Omit("Quizzes").Save(l).Error; err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}
	return nil
}

func (r *lessonRepo) DeleteLesson(ctx context.Context, lessonID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.Lesson{}, "id = ?", lessonID).Error; err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

func (r *lessonRepo) GetLessonsByCourseID(ctx context.Context, courseID uuid.UUID) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := orderedLessons(conn(ctx, r.db)).Where("course_id = ?", courseID).Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

func (r *lessonRepo) CountLessonsByCourseID(ctx context.Context, courseID uuid.UUID) (int, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return int(n), nil
}

func (r *lessonRepo) DeleteLessonsByCourseID(ctx context.Context, courseID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.Lesson{}, "course_id = ?", courseID).Error; err != nil {
		return fmt.Errorf("failed to delete course lessons: %w", err)
	}
	return nil
}
