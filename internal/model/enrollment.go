package model

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment links a student to a course. Progress is not stored on the
// enrollment row; it is projected from the student's LessonProgress records.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_course" json:"studentId"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_course;index" json:"courseId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Student User   `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	Course  Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"-"`
}

// LessonProgress is the per-user watch and quiz record for one lesson.
type LessonProgress struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course_lesson" json:"userId"`
	CourseID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course_lesson;index" json:"courseId"`
	LessonID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course_lesson;index" json:"lessonId"`
	Watched   bool       `gorm:"not null" json:"watched"`
	WatchedAt *time.Time `json:"watchedAt,omitempty"`
	QuizScore *float64   `json:"quizScore,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Lesson Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
