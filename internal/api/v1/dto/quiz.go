package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"learnhub/internal/model"
)

// QuestionList accepts questions either as a JSON array or as a JSON string
// holding that array, which is how multipart-minded clients send them.
type QuestionList []model.Question

func (q *QuestionList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		data = []byte(raw)
	}
	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return fmt.Errorf("questions must be an array of questions: %w", err)
	}
	*q = questions
	return nil
}

type QuizCreateDTO struct {
	Title                  string       `json:"title"`
	Questions              QuestionList `json:"questions"`
	ShowResultsImmediately *bool        `json:"showResultsImmediately"`
}

type QuizUpdateDTO struct {
	Title                  *string      `json:"title,omitempty"`
	Questions              QuestionList `json:"questions,omitempty"`
	ShowResultsImmediately *bool        `json:"showResultsImmediately,omitempty"`
}

type QuizSubmitDTO struct {
	Answers []string `json:"answers" validate:"required"`
}
