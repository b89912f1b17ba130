package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationCourseUpdate     NotificationType = "course_update"
	NotificationAssignmentGraded NotificationType = "assignment_graded"
	NotificationRecommendation   NotificationType = "recommendation"
)

type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"userId"`
	Type      NotificationType `gorm:"size:30;not null" json:"type"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Read      bool             `gorm:"not null" json:"read"`
	LessonID  *uuid.UUID       `gorm:"type:uuid" json:"lessonId,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"createdAt"`

	Lesson *Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:SET NULL;" json:"-"`
}
