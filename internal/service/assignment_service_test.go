package service

import (
	"context"
	"testing"

	"learnhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentSubmitAndGrade(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	teacher := env.addUser(t, "teacher", model.RoleInstructor)
	other := env.addUser(t, "other", model.RoleInstructor)
	student := env.addUser(t, "student", model.RoleStudent)
	course, lessons := env.addCourse(t, teacher, "Go", 1)

	doc := pdfUpload("essay.pdf")
	_, err := env.assignments.Submit(ctx, student, course.ID, lessons[0].ID, &doc)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, env.blobs.count())

	_, err = env.assignments.Submit(ctx, student, course.ID, lessons[0].ID, nil)
	assert.EqualError(t, err, "File is required")

	env.enroll(t, student, course.ID)
	img := *pngUpload("essay.png")
	_, err = env.assignments.Submit(ctx, student, course.ID, lessons[0].ID, &img)
	assert.EqualError(t, err, "PDF or DOCX only")

	doc = pdfUpload("essay.pdf")
	a, err := env.assignments.Submit(ctx, student, course.ID, lessons[0].ID, &doc)
	require.NoError(t, err)
	assert.Contains(t, a.FileKey, "assignments/essay-")

	_, err = env.assignments.Grade(ctx, other, a.ID, "A")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = env.assignments.Grade(ctx, teacher, a.ID, "E")
	assert.ErrorIs(t, err, ErrValidation)

	graded, err := env.assignments.Grade(ctx, teacher, a.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, "B", *graded.GradeLetter)
	assert.Equal(t, 85.0, *graded.Grade)

	require.Len(t, env.notifier.sent, 1)
	n := env.notifier.sent[0]
	assert.Equal(t, student.ID, n.UserID)
	assert.Equal(t, model.NotificationAssignmentGraded, n.Type)
	assert.Equal(t, lessons[0].ID, *n.LessonID)
	assert.Equal(t, "Your assignment for lesson Go lesson has been graded: B", n.Message)

	list, err := env.assignments.List(ctx, teacher)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "student", list[0].StudentName)
	assert.Equal(t, "Go", list[0].CourseTitle)
}

func TestAssignmentUploadCleanedUpOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	teacher := env.addUser(t, "teacher", model.RoleInstructor)
	student := env.addUser(t, "student", model.RoleStudent)
	course, lessons := env.addCourse(t, teacher, "Go", 1)
	env.enroll(t, student, course.ID)

	env.store.failCreate = errBoom
	doc := pdfUpload("essay.pdf")
	_, err := env.assignments.Submit(ctx, student, course.ID, lessons[0].ID, &doc)
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, env.blobs.count())
}
