package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/transaction"
)

// RegisterTransactionRoutes wires transaction endpoints addressed by id.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler) {
	r.Delete("/transactions/:transactionId", h.Delete)
}
