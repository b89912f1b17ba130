package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/middleware"
	"learnhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxMemory is the part of a multipart body kept in memory; the rest spills to disk.
const maxMemory = 8 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.MessageDTO{Message: msg})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error to its status. Unexpected errors are
// logged and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		writeMessage(w, status, "Internal server error")
		return
	}
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		writeMessage(w, status, svcErr.Message)
		return
	}
	writeMessage(w, status, err.Error())
}

// decodeJSON reads the body into dst and runs struct validation on it.
func decodeJSON(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return false
	}
	return validateStruct(w, validate, dst)
}

func validateStruct(w http.ResponseWriter, validate *validator.Validate, v any) bool {
	if err := validate.Struct(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

func actorFrom(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	}
	return actor, ok
}

// pathIDs parses the named path values as UUIDs, in order.
func pathIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, err := uuid.Parse(r.PathValue(name))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// parseMultipart bounds the body to limit bytes and parses the form.
func parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeMessage(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return false
	}
	return true
}

// formValue returns the trimmed value of a multipart field, or nil when absent.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := strings.TrimSpace(values[0])
	return &v
}

// openUploads opens every file part under the given keys. The returned closer
// releases them.
func openUploads(r *http.Request, keys ...string) ([]service.Upload, func(), error) {
	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		for _, key := range keys {
			headers = append(headers, r.MultipartForm.File[key]...)
		}
	}
	files := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads = append(uploads, service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return uploads, closeAll, nil
}

// chain applies middlewares so the first one listed runs first.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
