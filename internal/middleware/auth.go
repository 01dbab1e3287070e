package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/httperr"
	"github.com/khata-app/khata/internal/token"
)

const (
	callerLocal = "caller_identity"
	tokenCookie = "token"
)

// Caller returns the identity resolved by RequireAuth for this request.
func Caller(c *fiber.Ctx) (token.Identity, bool) {
	id, ok := c.Locals(callerLocal).(token.Identity)
	return id, ok
}

// RequireAuth is the authorization gate: it resolves the bearer credential to
// an identity before any protected operation runs. The token is read from the
// Authorization header first, falling back to the session cookie. Missing,
// malformed, expired, and tampered credentials are all rejected identically.
func RequireAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			raw = c.Cookies(tokenCookie)
		}
		if raw == "" {
			return httperr.Unauthenticated("authorization token required")
		}

		identity, err := tokens.Verify(raw)
		if err != nil {
			return httperr.Unauthenticated("invalid or expired token")
		}

		c.Locals(callerLocal, identity)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[len("bearer "):])
}
