package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub/internal/mailer"
	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/util"

	"github.com/rs/zerolog"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     model.Role
}

// RegisterResult tells the caller whether a verification email was sent.
type RegisterResult struct {
	User              *model.User
	NeedsVerification bool
}

type LoginResult struct {
	Token string
	User  *model.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string, role model.Role) (*LoginResult, error)
	VerifyEmail(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
}

// AuthOptions holds the token settings taken from config.
type AuthOptions struct {
	JWTSecret        string
	TokenTTL         time.Duration
	AllowAdminSignup bool
}

type authService struct {
	users  repository.UserRepository
	mail   mailer.Mailer
	opts   AuthOptions
	logger zerolog.Logger
}

func NewAuthService(users repository.UserRepository, mail mailer.Mailer, opts AuthOptions, logger zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		mail:   mail,
		opts:   opts,
		logger: logger.With().Str("service", "AuthService").Logger(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if username == "" || email == "" || in.Password == "" {
		return nil, validationErr("Username, email and password are required")
	}
	if in.Role == "" {
		in.Role = model.RoleStudent
	}
	if !in.Role.Valid() || (in.Role == model.RoleAdmin && !s.opts.AllowAdminSignup) {
		return nil, validationErr("Invalid role")
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictErr("User already exists")
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		IsVerified:   in.Role != model.RoleStudent,
	}
	if in.Role == model.RoleStudent {
		code, err := util.VerificationCode()
		if err != nil {
			return nil, err
		}
		u.VerificationCode = &code
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictErr("User already exists")
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if u.VerificationCode == nil {
		return &RegisterResult{User: u}, nil
	}
	if err := s.sendCode(ctx, u.Email, *u.VerificationCode, "Your verification code is"); err != nil {
		return nil, err
	}
	return &RegisterResult{User: u, NeedsVerification: true}, nil
}

func (s *authService) Login(ctx context.Context, email, password string, role model.Role) (*LoginResult, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || u.Role != role {
		return nil, validationErr("Invalid credentials")
	}
	if !u.IsVerified {
		return nil, validationErr("Email not verified")
	}
	if !util.CheckPassword(u.PasswordHash, password) {
		return nil, validationErr("Invalid credentials")
	}
	if u.IsBanned {
		return nil, forbiddenErr("User is banned")
	}

	token, err := util.IssueJWT(u.ID.String(), string(u.Role), s.opts.JWTSecret, s.opts.TokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("Failed to issue token")
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return validationErr("Email and verification code are required")
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil || u.VerificationCode == nil || *u.VerificationCode != code {
		return validationErr("Invalid email or verification code")
	}
	u.IsVerified = true
	u.VerificationCode = nil
	return s.users.UpdateUser(ctx, u)
}

func (s *authService) ResendCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return validationErr("Email is required")
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return validationErr("User not found")
	}
	if u.IsVerified {
		return validationErr("Email already verified")
	}
	if u.Role != model.RoleStudent {
		return validationErr("Only students need email verification")
	}

	code, err := util.VerificationCode()
	if err != nil {
		return err
	}
	u.VerificationCode = &code
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return err
	}
	return s.sendCode(ctx, u.Email, code, "Your new verification code is")
}

func (s *authService) sendCode(ctx context.Context, to, code, lead string) error {
	body := fmt.Sprintf("<p>%s <strong>%s</strong>. Enter this code to verify your email.</p>", lead, code)
	if err := s.mail.Send(ctx, to, "Verify Your Email - LearnHub", body); err != nil {
		s.logger.Error().Err(err).Str("email", to).Msg("Failed to send verification email")
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
