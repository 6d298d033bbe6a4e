package middleware

import (
	"strings"

	"github.com/fardinbaf/scamguard-backend/internal/config"
	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTProtected rejects requests without a valid access token. Routes that
// also work for anonymous callers rely on ResolveIdentity alone instead.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// ResolveIdentity runs on every request. If a valid bearer token is present
// it reconciles the session into an application identity and stores it in
// the context; otherwise the request proceeds as anonymous. It never rejects
// a request itself.
func ResolveIdentity(cfg *config.Config, rec *identity.Reconciler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := parseBearer(c.Get(fiber.HeaderAuthorization), cfg.JWTSecret)
		if claims == nil {
			return c.Next()
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			return c.Next()
		}
		identifier, _ := claims["identifier"].(string)

		identity.Set(c, rec.Resolve(c.UserContext(), userID, identifier))
		return c.Next()
	}
}

// RequireAuth rejects callers the policy treats as anonymous, banned
// sessions included. The response is a generic 401 either way.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !identity.FromCtx(c).Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Next()
	}
}

func parseBearer(header, secret string) jwt.MapClaims {
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header || raw == "" {
		return nil
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}
