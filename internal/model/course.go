package model

import (
	"time"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	CourseStatusPending  CourseStatus = "pending"
	CourseStatusApproved CourseStatus = "approved"
	CourseStatusRejected CourseStatus = "rejected"
)

// Course is authored by an instructor and owns its lessons and quizzes.
type Course struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Category     string       `gorm:"size:100;index" json:"category"`
	Slug         string       `gorm:"size:300;uniqueIndex" json:"slug"`
	ThumbnailURL string       `gorm:"size:500" json:"thumbnailUrl,omitempty"`
	ThumbnailKey string       `gorm:"size:500" json:"-"`
	Status       CourseStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	InstructorID uuid.UUID    `gorm:"type:uuid;not null;index" json:"instructorId"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`

	Instructor User     `gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE;" json:"instructor,omitzero"`
	Lessons    []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"lessons,omitempty"`
	Quizzes    []Quiz   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"quizzes,omitempty"`
}
