package service

import (
	"context"
	"testing"

	"learnhub/internal/model"
	"learnhub/internal/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll(t *testing.T) {
	ctx := context.Background()

	t.Run("second enrollment conflicts", func(t *testing.T) {
		env := newTestEnv(t)
		teacher := env.addUser(t, "teacher", model.RoleInstructor)
		student := env.addUser(t, "student", model.RoleStudent)
		course, _ := env.addCourse(t, teacher, "Go", 2)

		env.enroll(t, student, course.ID)
		_, err := env.enrollments.Enroll(ctx, student, course.ID)
		require.ErrorIs(t, err, ErrConflict)
		assert.EqualError(t, err, "Already enrolled")

		mine, err := env.enrollments.ListMine(ctx, student)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})

	t.Run("course must be approved", func(t *testing.T) {
		env := newTestEnv(t)
		teacher := env.addUser(t, "teacher", model.RoleInstructor)
		student := env.addUser(t, "student", model.RoleStudent)
		course, _ := env.addCourse(t, teacher, "Go", 1)
		_, err := env.courses.SetStatus(ctx, course.ID, model.CourseStatusPending)
		require.NoError(t, err)

		_, err = env.enrollments.Enroll(ctx, student, course.ID)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown course", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.addUser(t, "student", model.RoleStudent)
		_, err := env.enrollments.Enroll(ctx, student, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListMineCompletion(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	teacher := env.addUser(t, "teacher", model.RoleInstructor)
	student := env.addUser(t, "student", model.RoleStudent)
	course, lessons := env.addCourse(t, teacher, "Go", 2)
	env.enroll(t, student, course.ID)

	completion := func() float64 {
		mine, err := env.enrollments.ListMine(ctx, student)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		return mine[0].Completion
	}

	assert.Equal(t, 0.0, completion())

	_, err := env.progress.Record(ctx, student, course.ID, lessons[0].ID, progress.Update{Watched: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, completion())

	_, err = env.progress.Record(ctx, student, course.ID, lessons[1].ID, progress.Update{Watched: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 100.0, completion())
}

func TestListForCourse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	teacher := env.addUser(t, "teacher", model.RoleInstructor)
	other := env.addUser(t, "other", model.RoleInstructor)
	admin := env.addUser(t, "admin", model.RoleAdmin)
	student := env.addUser(t, "student", model.RoleStudent)
	course, lessons := env.addCourse(t, teacher, "Go", 3)
	env.enroll(t, student, course.ID)
	_, err := env.progress.Record(ctx, student, course.ID, lessons[0].ID, progress.Update{Watched: ptr(true)})
	require.NoError(t, err)

	_, err = env.enrollments.ListForCourse(ctx, other, course.ID)
	require.ErrorIs(t, err, ErrForbidden)

	for _, viewer := range []Actor{teacher, admin} {
		got, err := env.enrollments.ListForCourse(ctx, viewer, course.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "student", got[0].Student.Username)
		assert.Equal(t, 33.33, got[0].Completion)
		assert.Len(t, got[0].Progress, 1)
	}
}
