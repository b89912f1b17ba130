package dto

import (
	"time"

	"learnhub/internal/model"

	"github.com/google/uuid"
)

// RegisterDTO is used for incoming sign-up requests
type RegisterDTO struct {
	Username string     `json:"username" validate:"required,min=3,max=100"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"omitempty,oneof=student instructor admin"`
}

type LoginDTO struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=student instructor admin"`
}

type VerifyEmailDTO struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResendCodeDTO struct {
	Email string `json:"email"`
}

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	ID         uuid.UUID  `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Role       model.Role `json:"role"`
	IsVerified bool       `json:"isVerified"`
	IsBanned   bool       `json:"isBanned"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func NewUserResponse(u *model.User) UserResponseDTO {
	return UserResponseDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		IsBanned:   u.IsBanned,
		CreatedAt:  u.CreatedAt,
	}
}

// AuthResponseDTO is returned by a successful login
type AuthResponseDTO struct {
	Token string          `json:"token"`
	User  UserResponseDTO `json:"user"`
}

// RegisterResponseDTO is returned after sign-up
type RegisterResponseDTO struct {
	Message string          `json:"message"`
	User    UserResponseDTO `json:"user"`
}

type MessageDTO struct {
	Message string `json:"message"`
}
