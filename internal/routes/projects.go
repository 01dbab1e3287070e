package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/project"
	"github.com/khata-app/khata/internal/transaction"
)

// RegisterProjectRoutes wires project lifecycle, membership, and the
// project-scoped transaction endpoints.
func RegisterProjectRoutes(r fiber.Router, projects *project.Handler, transactions *transaction.Handler) {
	group := r.Group("/projects")
	group.Post("/", projects.Create)
	group.Patch("/:projectId", projects.Edit)
	group.Delete("/:projectId", projects.Delete)
	group.Patch("/:projectId/members", projects.AddMember)
	group.Get("/:projectId/members", projects.Members)
	group.Post("/:projectId/transactions", transactions.Create)
	group.Get("/:projectId/transactions", transactions.ListByProject)
}
