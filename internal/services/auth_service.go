package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/fardinbaf/scamguard-backend/internal/config"
	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/fardinbaf/scamguard-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrIdentifierTaken    = errors.New("identifier already registered")
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotVerified        = errors.New("account not verified")
	ErrInvalidCode        = errors.New("invalid or expired code")
)

const resetCodeTTL = time.Hour

type AuthService struct {
	users  store.UserStore
	tokens store.TokenStore
	mailer *Mailer
	cfg    *config.Config
}

func NewAuthService(users store.UserStore, tokens store.TokenStore, mailer *Mailer, cfg *config.Config) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer, cfg: cfg}
}

// Register creates an unverified profile and sends a verification code. The
// caller must confirm the code through Verify before logging in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if req.Identifier == "" || len(req.Password) < 8 {
		return nil, errors.New("identifier required and password must be at least 8 characters")
	}

	existing, err := s.users.ProfileByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if existing != nil {
		return nil, ErrIdentifierTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:               uuid.New(),
		Identifier:       req.Identifier,
		Password:         string(hash),
		VerificationCode: randomCode(),
	}

	if err := s.users.CreateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.mailer.Send(user.Identifier, "Verify your ScamGuard account",
		"Your verification code is: "+user.VerificationCode)

	return user, nil
}

// Verify confirms the signup code and issues the first session. Verification
// is one-shot: once an account is verified its code is gone and sessions come
// only from Login, so Verify must never be a password-less way in.
func (s *AuthService) Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.AuthResponse, error) {
	user, err := s.users.ProfileByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.IsVerified {
		return nil, ErrInvalidCode
	}
	if user.VerificationCode == "" || req.VerificationCode != user.VerificationCode {
		return nil, ErrInvalidCode
	}
	user.IsVerified = true
	user.VerificationCode = ""
	if err := s.users.SaveProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return s.generateTokenPair(ctx, user)
}

// Login verifies credentials and issues a session. Banned accounts can still
// log in; the access policy treats them as anonymous everywhere.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.ProfileByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.tokens.RefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}
	if stored == nil {
		return nil, ErrInvalidToken
	}

	// Refresh tokens are single use.
	if err := s.tokens.RevokeRefreshToken(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.ProfileByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.tokens.RevokeRefreshToken(ctx, hashToken(req.RefreshToken))
}

// RequestPasswordReset sends a reset code. It reports success for unknown
// identifiers so account existence does not leak.
func (s *AuthService) RequestPasswordReset(ctx context.Context, identifier string) error {
	user, err := s.users.ProfileByIdentifier(ctx, identifier)
	if err != nil {
		return fmt.Errorf("lookup profile: %w", err)
	}
	if user == nil {
		return nil
	}

	expires := time.Now().Add(resetCodeTTL)
	user.ResetCode = randomCode()
	user.ResetExpiresAt = &expires
	if err := s.users.SaveProfile(ctx, user); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.mailer.Send(user.Identifier, "ScamGuard password reset",
		"Your password reset code is: "+user.ResetCode)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	user, err := s.users.ProfileByIdentifier(ctx, req.Identifier)
	if err != nil {
		return fmt.Errorf("lookup profile: %w", err)
	}
	if user == nil {
		return ErrInvalidCode
	}
	if user.ResetCode == "" || req.ResetCode != user.ResetCode {
		return ErrInvalidCode
	}
	if user.ResetExpiresAt == nil || time.Now().After(*user.ResetExpiresAt) {
		return ErrInvalidCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hash)
	user.ResetCode = ""
	user.ResetExpiresAt = nil
	return s.users.SaveProfile(ctx, user)
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:         user.ID,
			Identifier: user.Identifier,
			IsAdmin:    user.IsAdmin || (s.cfg.AdminIdentifier != "" && user.Identifier == s.cfg.AdminIdentifier),
			IsBanned:   user.IsBanned,
			IsVerified: user.IsVerified,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID.String(),
		"identifier": user.Identifier,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.tokens.CreateRefreshToken(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

// randomCode returns a 6-digit numeric code.
func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failing means the process is in serious trouble anyway.
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
