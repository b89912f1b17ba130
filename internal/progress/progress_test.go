package progress

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func floatPtr(f float64) *float64 { return &f }

func watchedEntries(n, watched int) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{LessonID: uuid.New(), Watched: i < watched})
	}
	return entries
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		name     string
		lessons  int
		watched  int
		expected float64
	}{
		{"none watched", 4, 0, 0},
		{"half watched", 2, 1, 50},
		{"all watched", 2, 2, 100},
		{"one of three", 3, 1, 33.33},
		{"two of three", 3, 2, 66.67},
		{"one of seven", 7, 1, 14.29},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Completion(watchedEntries(tc.lessons, tc.watched), tc.lessons)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCompletionZeroLessonsFallsBackToOne(t *testing.T) {
	entries := []Entry{{LessonID: uuid.New(), Watched: true}}
	assert.Equal(t, 100.0, Completion(entries, 0))
	assert.Equal(t, 0.0, Completion(nil, 0))
}

func TestCompletionTwoLessonScenario(t *testing.T) {
	l1, l2 := uuid.New(), uuid.New()
	var entries []Entry

	entries = Upsert(entries, l1, Update{Watched: boolPtr(true)})
	assert.Equal(t, 50.0, Completion(entries, 2))

	entries = Upsert(entries, l2, Update{Watched: boolPtr(true)})
	assert.Equal(t, 100.0, Completion(entries, 2))
}

func TestUpsertAppendsWithDefaults(t *testing.T) {
	lessonID := uuid.New()
	entries := Upsert(nil, lessonID, Update{QuizScore: floatPtr(80)})

	require.Len(t, entries, 1)
	assert.Equal(t, lessonID, entries[0].LessonID)
	assert.False(t, entries[0].Watched)
	require.NotNil(t, entries[0].QuizScore)
	assert.Equal(t, 80.0, *entries[0].QuizScore)

	entries = Upsert(nil, lessonID, Update{})
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Watched)
	assert.Nil(t, entries[0].QuizScore)
}

func TestUpsertMergesOnlySuppliedFields(t *testing.T) {
	lessonID := uuid.New()
	entries := []Entry{{LessonID: lessonID, Watched: true}}

	entries = Upsert(entries, lessonID, Update{QuizScore: floatPtr(50)})
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Watched, "watched must survive a score-only update")
	assert.Equal(t, 50.0, *entries[0].QuizScore)

	entries = Upsert(entries, lessonID, Update{Watched: boolPtr(false)})
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Watched)
	assert.Equal(t, 50.0, *entries[0].QuizScore, "score must survive a watch-only update")
}

func TestUpsertDoesNotModifyInput(t *testing.T) {
	lessonID := uuid.New()
	original := []Entry{{LessonID: lessonID}}

	_ = Upsert(original, lessonID, Update{Watched: boolPtr(true)})
	assert.False(t, original[0].Watched)
}

func TestUpsertKeepsOneEntryPerLesson(t *testing.T) {
	lessonID := uuid.New()
	var entries []Entry
	for i := 0; i < 5; i++ {
		entries = Upsert(entries, lessonID, Update{Watched: boolPtr(i%2 == 0)})
	}
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, WatchedCount(entries))
}
