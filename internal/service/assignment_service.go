package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnhub/internal/grading"
	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const assignmentFolder = "assignments"

// AssignmentView is an assignment as listed for its instructor.
type AssignmentView struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	LessonID    uuid.UUID `json:"lessonId"`
	LessonTitle string    `json:"lessonTitle"`
	StudentID   uuid.UUID `json:"studentId"`
	StudentName string    `json:"studentName"`
	FileURL     string    `json:"fileUrl"`
	GradeLetter *string   `json:"gradeLetter,omitempty"`
	Grade       *float64  `json:"grade,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type AssignmentService interface {
	Submit(ctx context.Context, actor Actor, courseID, lessonID uuid.UUID, file *Upload) (*model.Assignment, error)
	// Grade stores a letter grade and notifies the student.
	Grade(ctx context.Context, actor Actor, assignmentID uuid.UUID, letter string) (*model.Assignment, error)
	List(ctx context.Context, actor Actor) ([]AssignmentView, error)
}

type assignmentService struct {
	lessons        repository.LessonRepository
	enrollments    repository.EnrollmentRepository
	assignments    repository.AssignmentRepository
	blobs          storage.BlobStore
	notifier       Notifier
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewAssignmentService(
	lessons repository.LessonRepository,
	enrollments repository.EnrollmentRepository,
	assignments repository.AssignmentRepository,
	blobs storage.BlobStore,
	notifier Notifier,
	maxUploadBytes int64,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		lessons:        lessons,
		enrollments:    enrollments,
		assignments:    assignments,
		blobs:          blobs,
		notifier:       notifier,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("service", "AssignmentService").Logger(),
	}
}

func (s *assignmentService) Submit(ctx context.Context, actor Actor, courseID, lessonID uuid.UUID, file *Upload) (*model.Assignment, error) {
	if file == nil {
		return nil, validationErr("File is required")
	}
	if err := checkUpload(file, documentFile, s.maxUploadBytes); err != nil {
		return nil, err
	}
	lesson, err := s.lessons.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil || lesson.CourseID != courseID {
		return nil, notFoundErr("Lesson")
	}
	enrollment, err := s.enrollments.GetEnrollment(ctx, actor.ID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, notFoundErr("Enrollment")
	}

	stored, err := uploadAll(ctx, s.blobs, s.logger, assignmentFolder, []Upload{*file})
	if err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lessonID.String()).Msg("Failed to upload assignment")
		return nil, err
	}
	a := &model.Assignment{
		CourseID:  courseID,
		LessonID:  lessonID,
		StudentID: actor.ID,
		FileURL:   stored[0].URL,
		FileKey:   stored[0].Key,
	}
	if err := s.assignments.CreateAssignment(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lessonID.String()).Msg("Failed to create assignment")
		storage.DeleteAll(ctx, s.blobs, s.logger, a.FileKey)
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) Grade(ctx context.Context, actor Actor, assignmentID uuid.UUID, letter string) (*model.Assignment, error) {
	a, err := s.assignments.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, notFoundErr("Assignment")
	}
	if a.Course.InstructorID != actor.ID {
		return nil, forbiddenErr("Unauthorized")
	}
	grade, ok := grading.LetterGrade(letter)
	if !ok {
		return nil, validationErr("Grade must be one of A, B, C, D, F")
	}

	normalized := strings.ToUpper(strings.TrimSpace(letter))
	a.GradeLetter = &normalized
	a.Grade = &grade
	if err := s.assignments.UpdateAssignment(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("assignment_id", assignmentID.String()).Msg("Failed to grade assignment")
		return nil, err
	}

	lessonID := a.LessonID
	msg := fmt.Sprintf("Your assignment for lesson %s has been graded: %s", a.Lesson.Title, normalized)
	notifyBestEffort(ctx, s.notifier, s.logger, a.StudentID, model.NotificationAssignmentGraded, msg, &lessonID)
	return a, nil
}

func (s *assignmentService) List(ctx context.Context, actor Actor) ([]AssignmentView, error) {
	rows, err := s.assignments.GetAssignmentsByInstructorID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]AssignmentView, 0, len(rows))
	for _, a := range rows {
		out = append(out, AssignmentView{
			ID:          a.ID,
			CourseID:    a.CourseID,
			CourseTitle: a.Course.Title,
			LessonID:    a.LessonID,
			LessonTitle: a.Lesson.Title,
			StudentID:   a.StudentID,
			StudentName: a.Student.Username,
			FileURL:     a.FileURL,
			GradeLetter: a.GradeLetter,
			Grade:       a.Grade,
			SubmittedAt: a.CreatedAt,
		})
	}
	return out, nil
}
