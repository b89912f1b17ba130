package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Question is one multiple choice item of a quiz. CorrectAnswer must be one of Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type Quiz struct {
	ID                     uuid.UUID                     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID               uuid.UUID                     `gorm:"type:uuid;not null;index" json:"courseId"`
	LessonID               uuid.UUID                     `gorm:"type:uuid;not null;index" json:"lessonId"`
	Title                  string                        `gorm:"size:255;not null" json:"title"`
	Questions              datatypes.JSONSlice[Question] `gorm:"type:jsonb;not null" json:"questions"`
	ShowResultsImmediately bool                          `gorm:"not null" json:"showResultsImmediately"`
	CreatedAt              time.Time                     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time                     `gorm:"autoUpdateTime" json:"updatedAt"`
}
