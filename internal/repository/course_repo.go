package repository

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseFilter narrows ListCourses. Only approved courses are returned unless
// IncludeAll is set.
type CourseFilter struct {
	Search     string
	Category   string
	IncludeAll bool
}

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	CreateCourse(ctx context.Context, c *model.Course) error
	// GetCourseByID returns the bare course row
	GetCourseByID(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	// GetCourseDetails also loads the instructor, ordered lessons and quizzes
	GetCourseDetails(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	UpdateCourse(ctx context.Context, c *model.Course) error
	DeleteCourse(ctx context.Context, courseID uuid.UUID) error
	ListCourses(ctx context.Context, f CourseFilter) ([]model.Course, error)
	GetCoursesByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]model.Course, error)
	// ListAllCourses returns every course with instructor and lessons, oldest first
	ListAllCourses(ctx context.Context) ([]model.Course, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func orderedLessons(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, created_at ASC")
}

func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	if err := conn(ctx, r.db).Omit("Instructor", "Lessons", "Quizzes").Create(c).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *courseRepo) GetCourseByID(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	var c model.Course
	if err := conn(ctx, r.db).First(&c, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &c, nil
}

func (r *courseRepo) GetCourseDetails(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	var c model.Course
	err := conn(ctx, r.db).
		Preload("Instructor").
		Preload("Lessons", orderedLessons).
		Preload("Quizzes").
		First(&c, "id = ?", courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course details: %w", err)
	}
	return &c, nil
}

func (r *courseRepo) UpdateCourse(ctx context.Context, c *model.Course) error {
	if err := conn(ctx, r.db).Omit("Instructor", "Lessons", "Quizzes").Save(c).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *courseRepo) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.Course{}, "id = ?", courseID).Error; err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

func (r *courseRepo) ListCourses(ctx context.Context, f CourseFilter) ([]model.Course, error) {
	q := conn(ctx, r.db).Model(&model.Course{}).Preload("Instructor")
	if !f.IncludeAll {
		q = q.Where("courses.status = ?", model.CourseStatusApproved)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Joins("JOIN users ON users.id = courses.instructor_id").
			Where("courses.title ILIKE ? OR users.username ILIKE ?", pattern, pattern)
	}
	if f.Category != "" {
		q = q.Where("courses.category = ?", f.Category)
	}
	var courses []model.Course
	if err := q.Order("courses.created_at DESC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepo) GetCoursesByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]model.Course, error) {
	var courses []model.Course
	err := conn(ctx, r.db).
		Preload("Instructor").
		Preload("Lessons", orderedLessons).
		Preload("Quizzes").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepo) ListAllCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := conn(ctx, r.db).
		Preload("Instructor").
		Preload("Lessons", orderedLessons).
		Order("created_at ASC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all courses: %w", err)
	}
	return courses, nil
}
