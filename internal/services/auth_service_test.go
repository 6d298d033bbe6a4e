package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fardinbaf/scamguard-backend/internal/config"
	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
		AdminIdentifier:  "root@example.com",
		SenderEmail:      "noreply@example.com",
	}
}

func newAuthService(fs *fakeStore) *services.AuthService {
	return services.NewAuthService(fs, fs, services.NewMailer("noreply@example.com"), testConfig())
}

// register and verify a fresh account, returning the initial session.
func registerAndVerify(t *testing.T, svc *services.AuthService, fs *fakeStore, identifier string) *dto.AuthResponse {
	t.Helper()
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{Identifier: identifier, Password: "hunter2hunter2"})
	require.NoError(t, err)

	resp, err := svc.Verify(ctx, &dto.VerifyRequest{
		Identifier:       identifier,
		VerificationCode: fs.users[user.ID].VerificationCode,
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	fs := newFakeStore()
	svc := newAuthService(fs)
	ctx := context.Background()

	t.Run("short_password_rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{Identifier: "a@b.com", Password: "short"})
		assert.Error(t, err)
	})

	t.Run("creates_unverified_profile", func(t *testing.T) {
		user, err := svc.Register(ctx, &dto.RegisterRequest{Identifier: "new@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)

		stored := fs.users[user.ID]
		require.NotNil(t, stored)
		assert.False(t, stored.IsVerified)
		assert.Len(t, stored.VerificationCode, 6)
		assert.NotEqual(t, "hunter2hunter2", stored.Password, "password must be hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2hunter2")))
	})

	t.Run("duplicate_identifier", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{Identifier: "new@example.com", Password: "hunter2hunter2"})
		assert.ErrorIs(t, err, services.ErrIdentifierTaken)
	})
}

func TestVerify(t *testing.T) {
	fs := newFakeStore()
	svc := newAuthService(fs)
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{Identifier: "v@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	code := fs.users[user.ID].VerificationCode

	t.Run("unknown_identifier", func(t *testing.T) {
		_, err := svc.Verify(ctx, &dto.VerifyRequest{Identifier: "nobody@example.com", VerificationCode: code})
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})

	t.Run("wrong_code", func(t *testing.T) {
		_, err := svc.Verify(ctx, &dto.VerifyRequest{Identifier: "v@example.com", VerificationCode: "000000x"})
		assert.ErrorIs(t, err, services.ErrInvalidCode)
		assert.False(t, fs.users[user.ID].IsVerified)
	})

	t.Run("correct_code_issues_session", func(t *testing.T) {
		resp, err := svc.Verify(ctx, &dto.VerifyRequest{Identifier: "v@example.com", VerificationCode: code})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.True(t, fs.users[user.ID].IsVerified)
		assert.Empty(t, fs.users[user.ID].VerificationCode, "code cleared after use")
	})

	// Verification is one-shot. Once the account is verified, knowing the
	// identifier must not be enough to mint a session through Verify.
	t.Run("already_verified_never_issues_session", func(t *testing.T) {
		_, err := svc.Verify(ctx, &dto.VerifyRequest{Identifier: "v@example.com", VerificationCode: "attacker-guess"})
		assert.ErrorIs(t, err, services.ErrInvalidCode)

		// Even the original code is dead after use.
		_, err = svc.Verify(ctx, &dto.VerifyRequest{Identifier: "v@example.com", VerificationCode: code})
		assert.ErrorIs(t, err, services.ErrInvalidCode)
	})
}

func TestLogin(t *testing.T) {
	fs := newFakeStore()
	svc := newAuthService(fs)
	ctx := context.Background()

	t.Run("unknown_identifier", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "ghost@example.com", Password: "whatever123"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unverified_account", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{Identifier: "fresh@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)

		_, err = svc.Login(ctx, &dto.LoginRequest{Identifier: "fresh@example.com", Password: "hunter2hunter2"})
		assert.ErrorIs(t, err, services.ErrNotVerified)
	})

	t.Run("wrong_password", func(t *testing.T) {
		registerAndVerify(t, svc, fs, "login@example.com")
		_, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "login@example.com", Password: "not-the-password"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "login@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.Equal(t, "login@example.com", resp.User.Identifier)
		assert.False(t, resp.User.IsAdmin)

		token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, resp.User.ID.String(), claims["sub"])
		assert.Equal(t, "login@example.com", claims["identifier"])
	})

	t.Run("designated_admin_flag", func(t *testing.T) {
		registerAndVerify(t, svc, fs, "root@example.com")
		resp, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "root@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.True(t, resp.User.IsAdmin)
	})

	t.Run("banned_can_still_log_in", func(t *testing.T) {
		session := registerAndVerify(t, svc, fs, "banned@example.com")
		fs.users[session.User.ID].IsBanned = true

		resp, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "banned@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.True(t, resp.User.IsBanned)
	})
}

func TestRefreshIsSingleUse(t *testing.T) {
	fs := newFakeStore()
	svc := newAuthService(fs)
	ctx := context.Background()

	session := registerAndVerify(t, svc, fs, "refresh@example.com")

	resp, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: session.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, resp.RefreshToken, "rotation issues a new token")

	// The consumed token cannot be replayed.
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: session.RefreshToken})
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// The rotated token still works.
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.NoError(t, err)
}

func TestRefreshRejectsGarbageAndExpired(t *testing.T) {
	fs := newFakeStore()
	svc := newAuthService(fs)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	session := registerAndVerify(t, svc, fs, "expired@example.com")
	for _, tok := range fs.tokens {
		tok.ExpiresAt = time.Now().Add(-time.Minute)
	}
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: session.RefreshToken})
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	fs := newFakeStore()
	svc := newAuthService(fs)
	ctx := context.Background()

	session := registerAndVerify(t, svc, fs, "logout@example.com")
	require.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: session.RefreshToken}))

	_, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: session.RefreshToken})
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Logging out an unknown token is a silent no-op.
	assert.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: "gone"}))
}

func TestPasswordResetFlow(t *testing.T) {
	fs := newFakeStore()
	svc := newAuthService(fs)
	ctx := context.Background()

	session := registerAndVerify(t, svc, fs, "reset@example.com")

	t.Run("unknown_identifier_does_not_leak", func(t *testing.T) {
		saves := fs.profileSaves
		assert.NoError(t, svc.RequestPasswordReset(ctx, "ghost@example.com"))
		assert.Equal(t, saves, fs.profileSaves, "nothing persisted for unknown accounts")
	})

	t.Run("full_flow", func(t *testing.T) {
		require.NoError(t, svc.RequestPasswordReset(ctx, "reset@example.com"))
		code := fs.users[session.User.ID].ResetCode
		require.Len(t, code, 6)

		err := svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Identifier: "reset@example.com", ResetCode: "999999x", NewPassword: "brandnewpass1",
		})
		assert.ErrorIs(t, err, services.ErrInvalidCode)

		err = svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Identifier: "reset@example.com", ResetCode: code, NewPassword: "brandnewpass1",
		})
		require.NoError(t, err)
		assert.Empty(t, fs.users[session.User.ID].ResetCode, "code is single use")

		_, err = svc.Login(ctx, &dto.LoginRequest{Identifier: "reset@example.com", Password: "hunter2hunter2"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		_, err = svc.Login(ctx, &dto.LoginRequest{Identifier: "reset@example.com", Password: "brandnewpass1"})
		assert.NoError(t, err)
	})

	t.Run("expired_code", func(t *testing.T) {
		require.NoError(t, svc.RequestPasswordReset(ctx, "reset@example.com"))
		user := fs.users[session.User.ID]
		past := time.Now().Add(-time.Minute)
		user.ResetExpiresAt = &past

		err := svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
			Identifier: "reset@example.com", ResetCode: user.ResetCode, NewPassword: "anotherpass12",
		})
		assert.ErrorIs(t, err, services.ErrInvalidCode)
	})
}
