package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/config"
	"github.com/khata-app/khata/internal/httperr"
	"github.com/khata-app/khata/internal/token"
)

const tokenCookie = "token"

// Handler exposes signup/signin/signout endpoints.
type Handler struct {
	users    *Service
	tokens   *token.Manager
	validate *validator.Validate
	cfg      config.Config
}

// NewHandler builds the auth HTTP handler.
func NewHandler(users *Service, tokens *token.Manager, validate *validator.Validate, cfg config.Config) *Handler {
	return &Handler{users: users, tokens: tokens, validate: validate, cfg: cfg}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Signup registers a user and issues a session token.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Validation(err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return httperr.Validation(err.Error())
	}

	created, err := h.users.Register(c.UserContext(), RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return httperr.Validation("user already exists")
		}
		return httperr.Internal(err)
	}

	signed, err := h.tokens.Issue(created.ID, created.Name)
	if err != nil {
		return httperr.Internal(err)
	}
	h.setTokenCookie(c, signed)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "user created successfully",
		"token":   signed,
	})
}

// Signin validates credentials and issues a session token.
func (h *Handler) Signin(c *fiber.Ctx) error {
	var req signinRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Validation(err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return httperr.Validation(err.Error())
	}

	authed, err := h.users.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return httperr.NotFound("user not found")
		case errors.Is(err, ErrInvalidCredentials):
			return httperr.Unauthenticated("invalid email or password")
		default:
			return httperr.Internal(err)
		}
	}

	signed, err := h.tokens.Issue(authed.ID, authed.Name)
	if err != nil {
		return httperr.Internal(err)
	}
	h.setTokenCookie(c, signed)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "signin successful",
		"token":   signed,
	})
}

// Signout clears the session cookie. Tokens themselves remain valid until
// expiry; there is no server-side revocation in this scope.
func (h *Handler) Signout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "signout successful"})
}

func (h *Handler) setTokenCookie(c *fiber.Ctx, signed string) {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    signed,
		Expires:  time.Now().Add(h.cfg.TokenTTL),
		HTTPOnly: true,
		Secure:   !h.cfg.IsDev(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
