package handler

import (
	"net/http"
	"strconv"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/middleware"
	"learnhub/internal/model"
	"learnhub/internal/progress"
	"learnhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// maxResources bounds the number of files in one lesson request.
const maxResources = 10

// LessonHandler handles lesson and lesson-watch endpoints
type LessonHandler struct {
	lessonService   service.LessonService
	courseService   service.CourseService
	progressService service.ProgressService
	validate        *validator.Validate
	maxUploadBytes  int64
	logger          zerolog.Logger
}

func NewLessonHandler(
	lessonService service.LessonService,
	courseService service.CourseService,
	progressService service.ProgressService,
	validate *validator.Validate,
	maxUploadBytes int64,
	logger zerolog.Logger,
) *LessonHandler {
	return &LessonHandler{
		lessonService:   lessonService,
		courseService:   courseService,
		progressService: progressService,
		validate:        validate,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// RegisterRoutes mounts lesson routes
func (h *LessonHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	instructor := middleware.RequireRoles(model.RoleInstructor)
	mux.Handle("POST /lessons/{courseId}", chain(http.HandlerFunc(h.createLesson), authMw, instructor))
	mux.Handle("GET /lessons/instructor", chain(http.HandlerFunc(h.listInstructorLessons), authMw, instructor))
	mux.Handle("GET /lessons/{lessonId}", chain(http.HandlerFunc(h.getLesson), authMw, instructor))
	mux.Handle("PUT /lessons/{lessonId}", chain(http.HandlerFunc(h.updateLesson), authMw, instructor))
	mux.Handle("DELETE /lessons/{lessonId}", chain(http.HandlerFunc(h.deleteLesson), authMw, instructor))
	mux.Handle("GET /lessons/progress/{courseId}/{lessonId}", chain(http.HandlerFunc(h.getWatch), authMw))
	mux.Handle("PUT /lessons/progress/{courseId}/{lessonId}", chain(http.HandlerFunc(h.recordWatch), authMw))
}

// createLesson godoc
// @Summary Create a lesson
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Param courseId path string true "Course ID"
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param videoUrl formData string false "Video URL"
// @Param order formData int true "Position in the course"
// @Param resources formData file false "PDF or DOCX resources"
// @Success 201 {object} model.Lesson
// @Failure 400 {object} dto.MessageDTO
// @Failure 403 {object} dto.MessageDTO
// @Router /lessons/{courseId} [post]
func (h *LessonHandler) createLesson(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId")
	if !ok || !parseMultipart(w, r, h.maxUploadBytes*maxResources+formOverhead) {
		return
	}
	order, ok := formInt(w, r, "order")
	if !ok {
		return
	}
	req := dto.LessonCreateDTO{
		Title:    deref(formValue(r, "title")),
		Content:  deref(formValue(r, "content")),
		VideoURL: deref(formValue(r, "videoUrl")),
		Order:    order,
	}
	if !validateStruct(w, h.validate, &req) {
		return
	}
	resources, closeFiles, ok := h.resources(w, r)
	if !ok {
		return
	}
	defer closeFiles()

	lesson, err := h.lessonService.Create(r.Context(), actor, ids[0], service.LessonInput{
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Order:    req.Order,
	}, resources)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, lesson)
}

// listInstructorLessons godoc
// @Summary List own courses with lessons
// @Tags lessons
// @Produce json
// @Success 200 {array} model.Course
// @Router /lessons/instructor [get]
func (h *LessonHandler) listInstructorLessons(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	courses, err := h.courseService.ListByInstructor(r.Context(), actor)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// getLesson godoc
// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} model.Lesson
// @Failure 404 {object} dto.MessageDTO
// @Router /lessons/{lessonId} [get]
func (h *LessonHandler) getLesson(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "lessonId")
	if !ok {
		return
	}
	lesson, err := h.lessonService.Get(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

// updateLesson godoc
// @Summary Update a lesson
// @Description Updates lesson fields. Uploaded resources are appended.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} model.Lesson
// @Failure 403 {object} dto.MessageDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /lessons/{lessonId} [put]
func (h *LessonHandler) updateLesson(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "lessonId")
	if !ok || !parseMultipart(w, r, h.maxUploadBytes*maxResources+formOverhead) {
		return
	}
	order, ok := formInt(w, r, "order")
	if !ok {
		return
	}
	req := dto.LessonUpdateDTO{
		Title:    formValue(r, "title"),
		Content:  formValue(r, "content"),
		VideoURL: formValue(r, "videoUrl"),
		Order:    order,
	}
	if !validateStruct(w, h.validate, &req) {
		return
	}
	resources, closeFiles, ok := h.resources(w, r)
	if !ok {
		return
	}
	defer closeFiles()

	lesson, err := h.lessonService.Update(r.Context(), actor, ids[0], service.LessonUpdate{
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Order:    req.Order,
	}, resources)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

// deleteLesson godoc
// @Summary Delete a lesson
// @Description Deletes the lesson, its quizzes and all student progress on it.
// @Tags lessons
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.MessageDTO
// @Failure 403 {object} dto.MessageDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /lessons/{lessonId} [delete]
func (h *LessonHandler) deleteLesson(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "lessonId")
	if !ok {
		return
	}
	if err := h.lessonService.Delete(r.Context(), actor, ids[0]); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Lesson deleted")
}

// getWatch godoc
// @Summary Get lesson watch state
// @Tags lessons
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.LessonProgressResponseDTO
// @Router /lessons/progress/{courseId}/{lessonId} [get]
func (h *LessonHandler) getWatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId", "lessonId")
	if !ok {
		return
	}
	watch, err := h.progressService.GetLessonProgress(r.Context(), actor, ids[0], ids[1])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.LessonProgressResponseDTO{Watched: watch.Watched, WatchedTime: watch.WatchedTime})
}

// recordWatch godoc
// @Summary Record a lesson watch
// @Tags lessons
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Param body body dto.WatchDTO true "Watch state"
// @Success 200 {object} dto.LessonProgressResponseDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /lessons/progress/{courseId}/{lessonId} [put]
func (h *LessonHandler) recordWatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId", "lessonId")
	if !ok {
		return
	}
	var req dto.WatchDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	row, err := h.progressService.Record(r.Context(), actor, ids[0], ids[1], progress.Update{Watched: req.Watched})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.LessonProgressResponseDTO{Watched: row.Watched, WatchedTime: row.WatchedAt})
}

func (h *LessonHandler) resources(w http.ResponseWriter, r *http.Request) ([]service.Upload, func(), bool) {
	uploads, closeFiles, err := openUploads(r, "resources", "resources[]")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read resources")
		return nil, nil, false
	}
	if len(uploads) > maxResources {
		closeFiles()
		writeMessage(w, http.StatusBadRequest, "Too many resources")
		return nil, nil, false
	}
	return uploads, closeFiles, true
}

func formInt(w http.ResponseWriter, r *http.Request, key string) (*int, bool) {
	v := formValue(r, key)
	if v == nil || *v == "" {
		return nil, true
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid "+key)
		return nil, false
	}
	return &n, true
}
