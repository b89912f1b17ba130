package repository

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	// GetAssignmentByID loads the assignment with its course and lesson
	GetAssignmentByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	UpdateAssignment(ctx context.Context, a *model.Assignment) error
	// GetAssignmentsByInstructorID lists submissions for the instructor's courses, newest first
	GetAssignmentsByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]model.Assignment, error)
	GetAssignmentsByCourseID(ctx context.Context, courseID uuid.UUID) ([]model.Assignment, error)
	DeleteAssignmentsByCourseID(ctx context.Context, courseID uuid.UUID) error
}

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	if err := conn(ctx, r.db).Omit("Course", "Lesson", "Student").Create(a).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *assignmentRepo) GetAssignmentByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var a model.Assignment
	if err := conn(ctx, r.db).Preload("Course").Preload("Lesson").First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &a, nil
}

func (r *assignmentRepo) UpdateAssignment(ctx context.Context, a *model.Assignment) error {
	if err := conn(ctx, r.db).Omit("Course", "Lesson", "Student").Save(a).Error; err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return nil
}

func (r *assignmentRepo) GetAssignmentsByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := conn(ctx, r.db).
		Preload("Course").
		Preload("Lesson").
		Preload("Student").
		Joins("JOIN courses ON courses.id = assignments.course_id").
		Where("courses.instructor_id = ?", instructorID).
		Order("assignments.created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (r *assignmentRepo) GetAssignmentsByCourseID(ctx context.Context, courseID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := conn(ctx, r.db).Where("course_id = ?", courseID).Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list course assignments: %w", err)
	}
	return assignments, nil
}

func (r *assignmentRepo) DeleteAssignmentsByCourseID(ctx context.Context, courseID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.Assignment{}, "course_id = ?", courseID).Error; err != nil {
		return fmt.Errorf("failed to delete course assignments: %w", err)
	}
	return nil
}
