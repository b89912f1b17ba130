package model

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"courseId"`
	LessonID    uuid.UUID `gorm:"type:uuid;not null;index" json:"lessonId"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"studentId"`
	FileURL     string    `gorm:"size:500;not null" json:"fileUrl"`
	FileKey     string    `gorm:"size:500;not null" json:"-"`
	GradeLetter *string   `gorm:"size:2" json:"gradeLetter,omitempty"`
	Grade       *float64  `json:"grade,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Course  Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"-"`
	Lesson  Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"-"`
	Student User   `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
}
