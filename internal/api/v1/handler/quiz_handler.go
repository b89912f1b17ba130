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

type QuizHandler struct {
	quizService service.QuizService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewQuizHandler(quizService service.QuizService, validate *validator.Validate, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{quizService: quizService, validate: validate, logger: logger}
}

func (h *QuizHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	instructor := middleware.RequireRoles(model.RoleInstructor)
	mux.Handle("POST /quiz/{courseId}/{lessonId}", chain(http.HandlerFunc(h.createQuiz), authMw, instructor))
	mux.Handle("GET /quiz/{quizId}", chain(http.HandlerFunc(h.getQuiz), authMw, instructor))
	mux.Handle("PUT /quiz/{quizId}", chain(http.HandlerFunc(h.updateQuiz), authMw, instructor))
	mux.Handle("DELETE /quiz/{quizId}", chain(http.HandlerFunc(h.deleteQuiz), authMw, instructor))
	mux.Handle("POST /quiz/submit/{courseId}/{lessonId}/{quizId}", chain(http.HandlerFunc(h.submitQuiz), authMw))
}

// createQuiz godoc
// @Summary Create a quiz
// @Description Questions may be sent as an array or as a JSON string holding the array.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Param quiz body dto.QuizCreateDTO true "Quiz"
// @Success 201 {object} model.Quiz
// @Failure 400 {object} dto.MessageDTO
// @Failure 403 {object} dto.MessageDTO
// @Router /quiz/{courseId}/{lessonId} [post]
func (h *QuizHandler) createQuiz(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId", "lessonId")
	if !ok {
		return
	}
	var req dto.QuizCreateDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	quiz, err := h.quizService.Create(r.Context(), actor, ids[0], ids[1], service.QuizInput{
		Title:                  req.Title,
		Questions:              req.Questions,
		ShowResultsImmediately: req.ShowResultsImmediately,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

// getQuiz godoc
// @Summary Get a quiz
// @Tags quizzes
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} model.Quiz
// @Failure 404 {object} dto.MessageDTO
// @Router /quiz/{quizId} [get]
func (h *QuizHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "quizId")
	if !ok {
		return
	}
	quiz, err := h.quizService.Get(r.Context(), actor, ids[0])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// updateQuiz godoc
// @Summary Update a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param quiz body dto.QuizUpdateDTO true "Changes"
// @Success 200 {object} model.Quiz
// @Router /quiz/{quizId} [put]
func (h *QuizHandler) updateQuiz(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "quizId")
	if !ok {
		return
	}
	var req dto.QuizUpdateDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	quiz, err := h.quizService.Update(r.Context(), actor, ids[0], service.QuizUpdate{
		Title:                  req.Title,
		Questions:              req.Questions,
		ShowResultsImmediately: req.ShowResultsImmediately,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// deleteQuiz godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.MessageDTO
// @Router /quiz/{quizId} [delete]
func (h *QuizHandler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "quizId")
	if !ok {
		return
	}
	if err := h.quizService.Delete(r.Context(), actor, ids[0]); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Quiz deleted")
}

// submitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades the answers and stores the score in the caller's lesson progress.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Param quizId path string true "Quiz ID"
// @Param body body dto.QuizSubmitDTO true "Answers in question order"
// @Success 200 {object} service.QuizSubmission
// @Failure 400 {object} dto.MessageDTO
// @Failure 404 {object} dto.MessageDTO
// @Router /quiz/submit/{courseId}/{lessonId}/{quizId} [post]
func (h *QuizHandler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "courseId", "lessonId", "quizId")
	if !ok {
		return
	}
	var req dto.QuizSubmitDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	result, err := h.quizService.Submit(r.Context(), actor, ids[0], ids[1], ids[2], req.Answers)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
