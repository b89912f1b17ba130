// Package progress computes enrollment completion and applies the per-lesson
// progress upsert rule.
package progress

import (
	"math"

	"github.com/google/uuid"
)

// Entry is the progress of one lesson inside an enrollment.
type Entry struct {
	LessonID  uuid.UUID `json:"lessonId"`
	Watched   bool      `json:"watched"`
	QuizScore *float64  `json:"quizScore,omitempty"`
}

// Update carries the fields supplied by a caller. Nil fields are left as they are.
type Update struct {
	Watched   *bool
	QuizScore *float64
}

// Completion returns the percentage of watched lessons, rounded to two decimals.
// A course without lessons is treated as having one.
func Completion(entries []Entry, lessonCount int) float64 {
	if lessonCount <= 0 {
		lessonCount = 1
	}
	share := 100 / float64(lessonCount)
	var total float64
	for _, e := range entries {
		if e.Watched {
			total += share
		}
	}
	return Round2(total)
}

// Merge applies u on top of e.
func Merge(e Entry, u Update) Entry {
	if u.Watched != nil {
		e.Watched = *u.Watched
	}
	if u.QuizScore != nil {
		score := *u.QuizScore
		e.QuizScore = &score
	}
	return e
}

// Upsert merges u into the entry for lessonID, appending a new entry when the
// lesson has none yet. The input slice is not modified.
func Upsert(entries []Entry, lessonID uuid.UUID, u Update) []Entry {
	out := make([]Entry, len(entries), len(entries)+1)
	copy(out, entries)
	for i := range out {
		if out[i].LessonID == lessonID {
			out[i] = Merge(out[i], u)
			return out
		}
	}
	return append(out, Merge(Entry{LessonID: lessonID}, u))
}

// WatchedCount returns the number of watched entries.
func WatchedCount(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Watched {
			n++
		}
	}
	return n
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
