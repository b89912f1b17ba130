package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Blob references an object stored in the blob store.
type Blob struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type Lesson struct {
	ID        uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID  uuid.UUID                 `gorm:"type:uuid;not null;index" json:"courseId"`
	Title     string                    `gorm:"size:255;not null" json:"title"`
	Content   string                    `gorm:"type:text;not null" json:"content"`
	VideoURL  string                    `gorm:"size:500" json:"videoUrl,omitempty"`
	Resources datatypes.JSONSlice[Blob] `gorm:"type:jsonb" json:"resources"`
	Order     int                       `gorm:"column:sort_order;not null" json:"order"`
	CreatedAt time.Time                 `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time                 `gorm:"autoUpdateTime" json:"updatedAt"`

	Quizzes []Quiz `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"-"`
}
