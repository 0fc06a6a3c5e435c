package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"medhasmind/internal/domain/profile"
	"medhasmind/internal/pkg/token"

	"github.com/gofiber/fiber/v3"
)

const CtxClaimsKey = "claims"

// RevocationChecker reports whether a token id was logged out early.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddleware struct {
	tokens  token.Service
	revoked RevocationChecker
	logger  *log.Logger
}

func NewAuthMiddleware(tokens token.Service, revoked RevocationChecker, logger *log.Logger) *AuthMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthMiddleware{tokens: tokens, revoked: revoked, logger: logger}
}

// Middleware validates the bearer token and stores the decoded claims in
// the request locals. This is the sole gate in front of every
// authenticated route.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tok, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.tokens.Validate(tok)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if m.revoked != nil && claims.ID != "" {
			revoked, err := m.revoked.IsRevoked(c.Context(), claims.ID)
			if err != nil {
				// Best-effort check: an unreachable revocation store never
				// blocks authentication, the token just stays valid until
				// its expiry.
				m.logger.Printf("[Auth] revocation check failed: %v", err)
			} else if revoked {
				return NewAppError(fiber.StatusUnauthorized, "Token revoked", nil, nil)
			}
		}

		c.Locals(CtxClaimsKey, claims)
		return c.Next()
	}
}

// RequireRole gates a route on an exact role match of already-validated
// claims. The role comes from the token, not a live lookup, so a role
// change applies only after re-issuance.
func RequireRole(role profile.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if claims.Role != role {
			return NewAppError(fiber.StatusForbidden, "Insufficient permissions", nil, nil)
		}
		return c.Next()
	}
}

func ClaimsFromCtx(c fiber.Ctx) (token.Claims, bool) {
	claims, ok := c.Locals(CtxClaimsKey).(token.Claims)
	return claims, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", false
	}

	return tok, true
}
