package dto

import "time"

// ProgressUpdateDTO records a lesson watch and/or quiz score
type ProgressUpdateDTO struct {
	Watched   *bool    `json:"watched"`
	QuizScore *float64 `json:"quizScore" validate:"omitempty,gte=0,lte=100"`
}

// WatchDTO records a lesson watch from the lesson player
type WatchDTO struct {
	Watched *bool `json:"watched" validate:"required"`
}

type LessonProgressResponseDTO struct {
	Watched     bool       `json:"watched"`
	WatchedTime *time.Time `json:"watchedTime"`
}

// GradeDTO is used to grade an assignment with a letter
type GradeDTO struct {
	Grade string `json:"grade" validate:"required,len=1"`
}
