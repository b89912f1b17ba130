// Package grading validates quiz definitions and scores submitted answers.
package grading

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"learnhub/internal/model"
)

var (
	ErrNoQuestions     = errors.New("quiz must have at least one question")
	ErrAnswerCount     = errors.New("answers array length must match the number of questions")
	ErrInvalidQuestion = errors.New("each question must have a question text, at least two options, and a valid correct answer")
)

// AnswerError identifies the offending question by its 1-based position.
type AnswerError struct {
	Index int
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %d", e.Index)
}

// Result is the outcome for one question.
type Result struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// Outcome is the scored submission. Score is in [0,100] and is not rounded.
type Outcome struct {
	Score   float64  `json:"score"`
	Correct int      `json:"correct"`
	Results []Result `json:"results"`
}

// ValidateQuestions checks a quiz definition before it is stored.
func ValidateQuestions(questions []model.Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) < 2 {
			return ErrInvalidQuestion
		}
		if q.CorrectAnswer == "" || !slices.Contains(q.Options, q.CorrectAnswer) {
			return ErrInvalidQuestion
		}
	}
	return nil
}

// ValidateAnswers checks the shape of a submission: one non-empty answer per
// question, each taken from that question's options.
func ValidateAnswers(questions []model.Question, answers []string) error {
	if len(answers) != len(questions) {
		return ErrAnswerCount
	}
	for i, q := range questions {
		a := answers[i]
		if a == "" || !slices.Contains(q.Options, a) {
			return &AnswerError{Index: i + 1}
		}
	}
	return nil
}

// Score validates answers and grades them by exact match against each
// question's correct answer.
func Score(questions []model.Question, answers []string) (*Outcome, error) {
	if err := ValidateAnswers(questions, answers); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return &Outcome{Results: []Result{}}, nil
	}
	out := &Outcome{Results: make([]Result, 0, len(questions))}
	for i, q := range questions {
		ok := answers[i] == q.CorrectAnswer
		if ok {
			out.Correct++
		}
		out.Results = append(out.Results, Result{
			Question:      q.Question,
			UserAnswer:    answers[i],
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     ok,
		})
	}
	out.Score = float64(out.Correct) / float64(len(questions)) * 100
	return out, nil
}

// LetterGrade maps an assignment letter grade to its numeric value.
func LetterGrade(letter string) (float64, bool) {
	switch strings.ToUpper(strings.TrimSpace(letter)) {
	case "A":
		return 95, true
	case "B":
		return 85, true
	case "C":
		return 75, true
	case "D":
		return 65, true
	case "F":
		return 50, true
	}
	return 0, false
}
