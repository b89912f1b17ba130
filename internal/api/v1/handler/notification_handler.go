package handler

import (
	"net/http"

	"learnhub/internal/service"

	"github.com/rs/zerolog"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	logger              zerolog.Logger
}

func NewNotificationHandler(notificationService service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

func (h *NotificationHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /notifications", chain(http.HandlerFunc(h.list), authMw))
	mux.Handle("PUT /notifications/{id}", chain(http.HandlerFunc(h.markRead), authMw))
}

// list godoc
// @Summary List notifications
// @Description Lists the caller's notifications, newest first.
// @Tags notifications
// @Produce json
// @Success 200 {array} service.NotificationItem
// @Router /notifications [get]
func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	items, err := h.notificationService.List(r.Context(), actor)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.MessageDTO
// @Failure 403 {object} dto.MessageDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /notifications/{id} [put]
func (h *NotificationHandler) markRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(r.Context(), actor, ids[0]); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Notification marked as read")
}
