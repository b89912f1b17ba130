package handler

import (
	"net/http"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/middleware"
	"learnhub/internal/model"
	"learnhub/internal/service"

	"github.com/rs/zerolog"
)

type AdminHandler struct {
	adminService service.AdminService
	logger       zerolog.Logger
}

func NewAdminHandler(adminService service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, logger: logger}
}

func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	admin := middleware.RequireRoles(model.RoleAdmin)
	mux.Handle("PUT /admin/courses/approve/{id}", chain(http.HandlerFunc(h.approveCourse), authMw, admin))
	mux.Handle("PUT /admin/courses/reject/{id}", chain(http.HandlerFunc(h.rejectCourse), authMw, admin))
	mux.Handle("GET /admin/stats", chain(http.HandlerFunc(h.stats), authMw, admin))
	mux.Handle("PUT /admin/users/{id}/{action}", chain(http.HandlerFunc(h.manageUser), authMw, admin))
}

// approveCourse godoc
// @Summary Approve a course
// @Tags admin
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} dto.MessageDTO
// @Router /admin/courses/approve/{id} [put]
func (h *AdminHandler) approveCourse(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	course, err := h.adminService.ApproveCourse(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// rejectCourse godoc
// @Summary Reject a course
// @Tags admin
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} dto.MessageDTO
// @Router /admin/courses/reject/{id} [put]
func (h *AdminHandler) rejectCourse(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	course, err := h.adminService.RejectCourse(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// stats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Success 200 {object} service.AdminStats
// @Router /admin/stats [get]
func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// manageUser godoc
// @Summary Ban or unban a user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Param action path string true "ban or unban"
// @Success 200 {object} dto.UserResponseDTO
// @Failure 400 {object} dto.MessageDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /admin/users/{id}/{action} [put]
func (h *AdminHandler) manageUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	user, err := h.adminService.ManageUser(r.Context(), actor, ids[0], service.UserAction(r.PathValue("action")))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserResponse(user))
}
