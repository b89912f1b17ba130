package handler

import (
	"net/http"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/middleware"
	"learnhub/internal/model"
	"learnhub/internal/progress"
	"learnhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
	progressService   service.ProgressService
	validate          *validator.Validate
	logger            zerolog.Logger
}

func NewEnrollmentHandler(enrollmentService service.EnrollmentService, progressService service.ProgressService, validate *validator.Validate, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		progressService:   progressService,
		validate:          validate,
		logger:            logger,
	}
}

func (h *EnrollmentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	owners := middleware.RequireRoles(model.RoleInstructor, model.RoleAdmin)
	mux.Handle("POST /enrollments/{courseId}", chain(http.HandlerFunc(h.enroll), authMw))
	mux.Handle("GET /enrollments", chain(http.HandlerFunc(h.listMine), authMw))
	mux.Handle("GET /enrollments/{courseId}", chain(http.HandlerFunc(h.listForCourse), authMw, owners))
	mux.Handle("PUT /enrollments/progress/{courseId}/{lessonId}", chain(http.HandlerFunc(h.updateProgress), authMw))
}

// enroll godoc
// @Summary Enroll in a course
// @Tags enrollments
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 201 {object} model.Enrollment
// @Failure 400 {object} dto.MessageDTO "Course is not approved"
// @Failure 404 {object} dto.MessageDTO
// @Failure 409 {object} dto.MessageDTO "Already enrolled"
// @Router /enrollments/{courseId} [post]
func (h *EnrollmentHandler) enroll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId")
	if !ok {
		return
	}
	enrollment, err := h.enrollmentService.Enroll(r.Context(), actor, ids[0])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, enrollment)
}

// listMine godoc
// @Summary List enrolled courses
// @Description Lists the caller's courses with progress and completion percentage.
// @Tags enrollments
// @Produce json
// @Success 200 {array} service.EnrolledCourse
// @Router /enrollments [get]
func (h *EnrollmentHandler) listMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	courses, err := h.enrollmentService.ListMine(r.Context(), actor)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// listForCourse godoc
// @Summary List a course's enrollments
// @Tags enrollments
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {array} service.CourseEnrollment
// @Failure 403 {object} dto.MessageDTO
// @Router /enrollments/{courseId} [get]
func (h *EnrollmentHandler) listForCourse(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId")
	if !ok {
		return
	}
	enrollments, err := h.enrollmentService.ListForCourse(r.Context(), actor, ids[0])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollments)
}

// updateProgress godoc
// @Summary Record lesson progress
// @Tags enrollments
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Param body body dto.ProgressUpdateDTO true "Progress"
// @Success 200 {object} model.LessonProgress
// @Failure 404 {object} dto.MessageDTO
// @Router /enrollments/progress/{courseId}/{lessonId} [put]
func (h *EnrollmentHandler) updateProgress(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId", "lessonId")
	if !ok {
		return
	}
	var req dto.ProgressUpdateDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	row, err := h.progressService.Record(r.Context(), actor, ids[0], ids[1], progress.Update{
		Watched:   req.Watched,
		QuizScore: req.QuizScore,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
