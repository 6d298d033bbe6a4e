package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type VerifyRequest struct {
	Identifier       string `json:"identifier"`
	VerificationCode string `json:"verificationCode"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type PasswordResetRequest struct {
	Identifier string `json:"identifier"`
}

type ResetPasswordRequest struct {
	Identifier  string `json:"identifier"`
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Identifier string    `json:"identifier"`
	IsAdmin    bool      `json:"isAdmin"`
	IsBanned   bool      `json:"isBanned"`
	IsVerified bool      `json:"isVerified"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
