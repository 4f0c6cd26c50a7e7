package auth

import "foodgram/internal/domain"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required" validate:"required,email"`
	Username  string `json:"username" binding:"required" validate:"required,min=3,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" binding:"required" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string       `json:"auth_token"`
	User  *domain.User `json:"user"`
}
