package repository

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchedCount is the number of watched lessons of one student in one course.
type WatchedCount struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
	Count    int
}

// ProgressRepository stores the per-user lesson progress records. Enrollment
// progress lists are projected from these rows.
type ProgressRepository interface {
	GetProgress(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*model.LessonProgress, error)
	// GetProgressForUpdate locks the row until the surrounding transaction ends
	GetProgressForUpdate(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*model.LessonProgress, error)
	UpsertProgress(ctx context.Context, p *model.LessonProgress) error
	GetProgressByEnrollment(ctx context.Context, userID, courseID uuid.UUID) ([]model.LessonProgress, error)
	GetProgressByCourseID(ctx context.Context, courseID uuid.UUID) ([]model.LessonProgress, error)
	CountWatched(ctx context.Context) ([]WatchedCount, error)
	DeleteProgressByLessonID(ctx context.Context, lessonID uuid.UUID) (int64, error)
	DeleteProgressByCourseID(ctx context.Context, courseID uuid.UUID) error
}

type progressRepo struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) ProgressRepository {
	return &progressRepo{db: db}
}

func (r *progressRepo) find(q *gorm.DB, userID, courseID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	var p model.LessonProgress
	err := q.Where("user_id = ? AND course_id = ? AND lesson_id = ?", userID, courseID, lessonID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}
	return &p, nil
}

func (r *progressRepo) GetProgress(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	return r.find(conn(ctx, r.db), userID, courseID, lessonID)
}

func (r *progressRepo) GetProgressForUpdate(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	return r.find(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), userID, courseID, lessonID)
}

func (r *progressRepo) UpsertProgress(ctx context.Context, p *model.LessonProgress) error {
	err := conn(ctx, r.db).
		Omit("Lesson").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"watched", "watched_at", "quiz_score", "updated_at"}),
		}).
		Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to upsert lesson progress: %w", err)
	}
	return nil
}

func (r *progressRepo) GetProgressByEnrollment(ctx context.Context, userID, courseID uuid.UUID) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := conn(ctx, r.db).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollment progress: %w", err)
	}
	return rows, nil
}

func (r *progressRepo) GetProgressByCourseID(ctx context.Context, courseID uuid.UUID) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	if err := conn(ctx, r.db).Where("course_id = ?", courseID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list course progress: %w", err)
	}
	return rows, nil
}

func (r *progressRepo) CountWatched(ctx context.Context) ([]WatchedCount, error) {
	var counts []WatchedCount
	err := conn(ctx, r.db).
		Model(&model.LessonProgress{}).
		Select("user_id, course_id, COUNT(*) AS count").
		Where("watched = ?", true).
		Group("user_id, course_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count watched lessons: %w", err)
	}
	return counts, nil
}

func (r *progressRepo) DeleteProgressByLessonID(ctx context.Context, lessonID uuid.UUID) (int64, error) {
	res := conn(ctx, r.db).Delete(&model.LessonProgress{}, "lesson_id = ?", lessonID)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete lesson progress: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *progressRepo) DeleteProgressByCourseID(ctx context.Context, courseID uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.LessonProgress{}, "course_id = ?", courseID).Error; err != nil {
		return fmt.Errorf("failed to delete course progress: %w", err)
	}
	return nil
}
