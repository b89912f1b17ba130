package handler

import (
	"net/http"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/middleware"
	"learnhub/internal/model"
	"learnhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type AssignmentHandler struct {
	assignmentService service.AssignmentService
	validate          *validator.Validate
	maxUploadBytes    int64
	logger            zerolog.Logger
}

func NewAssignmentHandler(assignmentService service.AssignmentService, validate *validator.Validate, maxUploadBytes int64, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		validate:          validate,
		maxUploadBytes:    maxUploadBytes,
		logger:            logger,
	}
}

func (h *AssignmentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	instructor := middleware.RequireRoles(model.RoleInstructor)
	mux.Handle("POST /assignments/{courseId}/{lessonId}", chain(http.HandlerFunc(h.submit), authMw))
	mux.Handle("PUT /assignments/{id}", chain(http.HandlerFunc(h.grade), authMw, instructor))
	mux.Handle("GET /assignments", chain(http.HandlerFunc(h.list), authMw, instructor))
}

// submit godoc
// @Summary Submit an assignment
// @Tags assignments
// @Accept multipart/form-data
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Param file formData file true "PDF or DOCX"
// @Success 201 {object} model.Assignment
// @Failure 400 {object} dto.MessageDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /assignments/{courseId}/{lessonId} [post]
func (h *AssignmentHandler) submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId", "lessonId")
	if !ok || !parseMultipart(w, r, h.maxUploadBytes+formOverhead) {
		return
	}
	uploads, closeFiles, err := openUploads(r, "file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	defer closeFiles()

	var file *service.Upload
	if len(uploads) > 0 {
		file = &uploads[0]
	}
	assignment, err := h.assignmentService.Submit(r.Context(), actor, ids[0], ids[1], file)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

// grade godoc
// @Summary Grade an assignment
// @Description Stores a letter grade (A, B, C, D or F) and notifies the student.
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param body body dto.GradeDTO true "Grade"
// @Success 200 {object} model.Assignment
// @Failure 400 {object} dto.MessageDTO
// @Failure 403 {object} dto.MessageDTO
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) grade(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	var req dto.GradeDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	assignment, err := h.assignmentService.Grade(r.Context(), actor, ids[0], req.Grade)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

// list godoc
// @Summary List submitted assignments
// @Description Lists assignments in the instructor's courses with course, lesson and student names.
// @Tags assignments
// @Produce json
// @Success 200 {array} service.AssignmentView
// @Router /assignments [get]
func (h *AssignmentHandler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	assignments, err := h.assignmentService.List(r.Context(), actor)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}
