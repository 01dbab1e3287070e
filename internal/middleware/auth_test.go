package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/httperr"
	"github.com/khata-app/khata/internal/logging"
	"github.com/khata-app/khata/internal/token"
)

func setupAuthApp(t *testing.T, tokens *token.Manager) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: httperr.Handler(logging.Discard())})
	app.Get("/protected", RequireAuth(tokens), func(c *fiber.Ctx) error {
		caller, ok := Caller(c)
		if !ok {
			return httperr.Internal(nil)
		}
		return c.JSON(fiber.Map{"user_id": caller.UserID, "name": caller.Name})
	})
	return app
}

func TestRequireAuthMissingToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := setupAuthApp(t, tokens)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected %d got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestRequireAuthBearerHeader(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := setupAuthApp(t, tokens)

	signed, err := tokens.Issue("user-1", "Asha")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, resp.StatusCode)
	}
}

func TestRequireAuthCookieFallback(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := setupAuthApp(t, tokens)

	signed, err := tokens.Issue("user-1", "Asha")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signed})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, resp.StatusCode)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := token.NewManager("test-secret", -time.Minute)
	app := setupAuthApp(t, expired)

	signed, err := expired.Issue("user-1", "Asha")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected %d got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := setupAuthApp(t, tokens)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected %d got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}
