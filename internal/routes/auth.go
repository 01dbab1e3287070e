package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/user"
)

// RegisterAuthRoutes wires signup/signin/signout endpoints.
func RegisterAuthRoutes(r fiber.Router, h *user.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/signup", rateLimiter, h.Signup)
		group.Post("/signin", rateLimiter, h.Signin)
	} else {
		group.Post("/signup", h.Signup)
		group.Post("/signin", h.Signin)
	}
	group.Post("/signout", h.Signout)
}
