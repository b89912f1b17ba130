package repository

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	// CreateEnrollment returns ErrDuplicate when the student is already enrolled
	CreateEnrollment(ctx context.Context, e *model.Enrollment) error
	GetEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*model.Enrollment, error)
	// GetEnrollmentsByStudentID loads each enrollment's course with its instructor and lessons
	GetEnrollmentsByStudentID(ctx context.Context, studentID uuid.UUID) ([]model.Enrollment, error)
	// GetEnrollmentsByCourseID loads each enrollment's student
	GetEnrollmentsByCourseID(ctx context.Context, courseID uuid.UUID) ([]model.Enrollment, error)
	ListAllEnrollments(ctx context.Context) ([]model.Enrollment, error)
	DeleteEnrollmentsByCourseID(ctx context.Context, courseID uuid.UUID) error
}

type enrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) CreateEnrollment(ctx context.Context, e *model.Enrollment) error {
	if err := conn(ctx, r.db).Omit("Student", "Course").Create(e).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *enrollmentRepo) GetEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*model.Enrollment, error) {
	var e model.Enrollment
	err := conn(ctx, r.db).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return &e, nil
}

func (r *enrollmentRepo) GetEnrollmentsByStudentID(ctx context.Context, studentID uuid.UUID) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := conn(ctx, r.db).
		Preload("Course").
		Preload("Course.Instructor").
		Preload("Course.Lessons", orderedLessons).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list student enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *enrollmentRepo) GetEnrollmentsByCourseID(ctx context.Context, courseID uuid.UUID) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := conn(ctx, r.db).
		Preload("Student").
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list course enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *enrollmentRepo) ListAllEnrollments(ctx context.Context) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := conn(ctx, r.db).Order("created_at ASC").Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *enrollmentRepo) DeleteEnrollmentsByCourseID(ctx context.Context, courseID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.Enrollment{}, "course_id = ?", courseID).Error; err != nil {
		return fmt.Errorf("failed to delete course enrollments: %w", err)
	}
	return nil
}
