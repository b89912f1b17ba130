package handler

import (
	"net/http"
	"strconv"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/middleware"
	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// formOverhead is the room left for text fields in a multipart request.
const formOverhead = 1 << 20

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService  service.CourseService
	validate       *validator.Validate
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, maxUploadBytes int64, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, validate: validate, maxUploadBytes: maxUploadBytes, logger: logger}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	instructor := middleware.RequireRoles(model.RoleInstructor)
	mux.Handle("POST /courses", chain(http.HandlerFunc(h.createCourse), authMw, instructor))
	mux.Handle("GET /courses", chain(http.HandlerFunc(h.listCourses), authMw))
	mux.Handle("GET /courses/instructor", chain(http.HandlerFunc(h.listInstructorCourses), authMw, instructor))
	mux.Handle("GET /courses/{id}", chain(http.HandlerFunc(h.getCourse), authMw))
	mux.Handle("PUT /courses/{id}", chain(http.HandlerFunc(h.updateCourse), authMw, instructor))
	mux.Handle("DELETE /courses/{id}", chain(http.HandlerFunc(h.deleteCourse), authMw, instructor))
}

// createCourse godoc
// @Summary Create a new course
// @Description Creates a pending course owned by the authenticated instructor.
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param thumbnail formData file false "JPEG or PNG thumbnail"
// @Success 201 {object} model.Course
// @Failure 400 {object} dto.MessageDTO
// @Failure 403 {object} dto.MessageDTO
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok || !parseMultipart(w, r, h.maxUploadBytes+formOverhead) {
		return
	}
	req := dto.CourseCreateDTO{
		Title:       deref(formValue(r, "title")),
		Description: deref(formValue(r, "description")),
		Category:    deref(formValue(r, "category")),
	}
	if !validateStruct(w, h.validate, &req) {
		return
	}
	thumbnail, closeFiles, ok := h.thumbnail(w, r)
	if !ok {
		return
	}
	defer closeFiles()

	course, err := h.courseService.Create(r.Context(), actor, service.CourseInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}, thumbnail)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

// listCourses godoc
// @Summary List courses
// @Description Lists approved courses. Admins may pass all=true to include every status.
// @Tags courses
// @Produce json
// @Param search query string false "Matches title or instructor name"
// @Param category query string false "Category"
// @Param all query bool false "Include pending and rejected (admin only)"
// @Success 200 {array} model.Course
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	all, _ := strconv.ParseBool(q.Get("all"))
	courses, err := h.courseService.List(r.Context(), repository.CourseFilter{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		IncludeAll: all && actor.IsAdmin(),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// listInstructorCourses godoc
// @Summary List own courses
// @Description Lists the instructor's courses with lessons and quizzes.
// @Tags courses
// @Produce json
// @Success 200 {array} model.Course
// @Router /courses/instructor [get]
func (h *CourseHandler) listInstructorCourses(w http.ResponseWriter, r *http.Request) {
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

// getCourse godoc
// @Summary Get a course
// @Description Retrieves a course with its lessons and quizzes.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} dto.MessageDTO "Course not found"
// @Router /courses/{id} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	course, err := h.courseService.Get(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// updateCourse godoc
// @Summary Update a course
// @Description Updates the course and sends it back for review.
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Course ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param thumbnail formData file false "JPEG or PNG thumbnail"
// @Success 200 {object} model.Course
// @Failure 403 {object} dto.MessageDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /courses/{id} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "id")
	if !ok || !parseMultipart(w, r, h.maxUploadBytes+formOverhead) {
		return
	}
	req := dto.CourseUpdateDTO{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Category:    formValue(r, "category"),
	}
	if !validateStruct(w, h.validate, &req) {
		return
	}
	thumbnail, closeFiles, ok := h.thumbnail(w, r)
	if !ok {
		return
	}
	defer closeFiles()

	course, err := h.courseService.Update(r.Context(), actor, ids[0], service.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}, thumbnail)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Deletes the course with its lessons, quizzes, enrollments and files.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.MessageDTO
// @Failure 403 {object} dto.MessageDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /courses/{id} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	if err := h.courseService.Delete(r.Context(), actor, ids[0]); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Course deleted")
}

func (h *CourseHandler) thumbnail(w http.ResponseWriter, r *http.Request) (*service.Upload, func(), bool) {
	uploads, closeFiles, err := openUploads(r, "thumbnail")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read thumbnail")
		return nil, nil, false
	}
	if len(uploads) == 0 {
		return nil, closeFiles, true
	}
	return &uploads[0], closeFiles, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
