package handler

import (
	"net/http"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AuthHandler handles sign-up, login and email verification
type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewAuthHandler(authService service.AuthService, validate *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate, logger: logger}
}

// RegisterRoutes mounts the public auth routes
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.HandleFunc("POST /auth/verify-email", h.verifyEmail)
	mux.HandleFunc("POST /auth/resend-code", h.resendCode)
}

// register godoc
// @Summary Register a user
// @Description Creates an account. Students receive a verification code by email.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterDTO true "Registration request"
// @Success 201 {object} dto.RegisterResponseDTO
// @Failure 400 {object} dto.MessageDTO
// @Failure 409 {object} dto.MessageDTO "User already exists"
// @Router /auth/register [post]
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	res, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	msg := "User registered successfully"
	if res.NeedsVerification {
		msg = "User registered. Please check your email for the verification code."
	}
	writeJSON(w, http.StatusCreated, dto.RegisterResponseDTO{Message: msg, User: dto.NewUserResponse(res.User)})
}

// login godoc
// @Summary Log in
// @Description Exchanges credentials for a JWT. The role must match the account.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Login request"
// @Success 200 {object} dto.AuthResponseDTO
// @Failure 400 {object} dto.MessageDTO "Invalid credentials"
// @Failure 403 {object} dto.MessageDTO "User is banned"
// @Router /auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	res, err := h.authService.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponseDTO{Token: res.Token, User: dto.NewUserResponse(res.User)})
}

// verifyEmail godoc
// @Summary Verify email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerifyEmailDTO true "Email and code"
// @Success 200 {object} dto.MessageDTO
// @Failure 400 {object} dto.MessageDTO
// @Router /auth/verify-email [post]
func (h *AuthHandler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	if err := h.authService.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Email verified successfully")
}

// resendCode godoc
// @Summary Resend verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResendCodeDTO true "Email"
// @Success 200 {object} dto.MessageDTO
// @Failure 400 {object} dto.MessageDTO
// @Router /auth/resend-code [post]
func (h *AuthHandler) resendCode(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendCodeDTO
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	if err := h.authService.ResendCode(r.Context(), req.Email); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Verification code sent")
}
