package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/httperr"
	"github.com/khata-app/khata/internal/integrity"
	"github.com/khata-app/khata/internal/middleware"
	"github.com/khata-app/khata/internal/project"
)

// Handler exposes transaction HTTP endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(service *Service, validate *validator.Validate) *Handler {
	return &Handler{service: service, validate: validate}
}

type createRequest struct {
	Amount      int64      `json:"amount" validate:"required,gt=0"`
	Mode        string     `json:"mode" validate:"required,oneof=cash card upi"`
	Direction   string     `json:"direction" validate:"required,oneof=incoming outgoing"`
	Description string     `json:"description" validate:"required,min=1"`
	PaidBy      string     `json:"paid_by" validate:"required"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

type transactionResponse struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Mode        string    `json:"mode"`
	Direction   string    `json:"direction"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
	AddedBy     string    `json:"added_by"`
	PaidBy      string    `json:"paid_by"`
	ProjectID   string    `json:"project_id"`
}

func toResponse(t Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Amount:      t.Amount,
		Mode:        string(t.Mode),
		Direction:   string(t.Direction),
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
		AddedBy:     t.AddedBy,
		PaidBy:      t.PaidBy,
		ProjectID:   t.ProjectID,
	}
}

// Create records a transaction against the project in the route.
func (h *Handler) Create(c *fiber.Ctx) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return httperr.Unauthenticated("authorization token required")
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Validation(err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return httperr.Validation(err.Error())
	}

	input := CreateInput{
		Amount:      req.Amount,
		Mode:        req.Mode,
		Direction:   req.Direction,
		Description: req.Description,
		PaidBy:      req.PaidBy,
	}
	if req.OccurredAt != nil {
		input.OccurredAt = *req.OccurredAt
	}

	created, err := h.service.Create(c.UserContext(), caller.UserID, c.Params("projectId"), input)
	if err != nil {
		switch {
		case errors.Is(err, integrity.ErrPayerNotParticipant):
			return httperr.Integrity("payer must be a member of the project")
		case errors.Is(err, project.ErrNotFound):
			return httperr.NotFound("project not found")
		case errors.Is(err, ErrInvalidInput):
			return httperr.Validation(err.Error())
		default:
			return httperr.Internal(err)
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "transaction added successfully",
		"transaction": toResponse(created),
	})
}

// Delete removes a transaction by identifier.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("transactionId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httperr.NotFound("transaction not found")
		}
		return httperr.Internal(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "transaction deleted successfully"})
}

// ListByProject returns all transactions for the project in the route.
func (h *Handler) ListByProject(c *fiber.Ctx) error {
	transactions, err := h.service.ListByProject(c.UserContext(), c.Params("projectId"))
	if err != nil {
		return httperr.Internal(err)
	}

	out := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toResponse(t))
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":      "transactions fetched successfully",
		"transactions": out,
	})
}
