package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/project"
)

// RegisterUserRoutes wires per-caller query endpoints.
func RegisterUserRoutes(r fiber.Router, projects *project.Handler) {
	r.Get("/users/projects", projects.ListForCaller)
}
