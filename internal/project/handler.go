package project

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/khata-app/khata/internal/httperr"
	"github.com/khata-app/khata/internal/middleware"
)

// Handler exposes project HTTP endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a project HTTP handler.
func NewHandler(service *Service, validate *validator.Validate) *Handler {
	return &Handler{service: service, validate: validate}
}

type projectRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

type memberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	MemberIDs   []string  `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(p Project) projectResponse {
	members := p.MemberIDs
	if members == nil {
		members = []string{}
	}
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		MemberIDs:   members,
		CreatedAt:   p.CreatedAt,
	}
}

// Create provisions a project owned by the caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return httperr.Unauthenticated("authorization token required")
	}

	var req projectRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Validation(err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return httperr.Validation(err.Error())
	}

	created, err := h.service.Create(c.UserContext(), caller.UserID, CreateInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return httperr.Internal(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "project created successfully",
		"project": toResponse(created),
	})
}

// Edit updates project name and description. Owner only.
func (h *Handler) Edit(c *fiber.Ctx) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return httperr.Unauthenticated("authorization token required")
	}

	var req projectRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Validation(err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return httperr.Validation(err.Error())
	}

	updated, err := h.service.Edit(c.UserContext(), caller.UserID, c.Params("projectId"), EditInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return mapProjectErr(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "project updated successfully",
		"project": toResponse(updated),
	})
}

// Delete removes a project. Owner only.
func (h *Handler) Delete(c *fiber.Ctx) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return httperr.Unauthenticated("authorization token required")
	}

	if err := h.service.Delete(c.UserContext(), caller.UserID, c.Params("projectId")); err != nil {
		return mapProjectErr(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "project deleted successfully"})
}

// AddMember adds a user to the project's member set.
func (h *Handler) AddMember(c *fiber.Ctx) error {
	var req memberRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Validation(err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return httperr.Validation(err.Error())
	}

	updated, err := h.service.AddMember(c.UserContext(), c.Params("projectId"), req.UserID)
	if err != nil {
		return mapProjectErr(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "user added to project successfully",
		"project": toResponse(updated),
	})
}

// Members lists participant user ids of a project, owner first.
func (h *Handler) Members(c *fiber.Ctx) error {
	members, err := h.service.Members(c.UserContext(), c.Params("projectId"))
	if err != nil {
		return mapProjectErr(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"members": members})
}

// ListForCaller returns the caller's owned and member projects as two
// disjoint sets.
func (h *Handler) ListForCaller(c *fiber.Ctx) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return httperr.Unauthenticated("authorization token required")
	}

	owned, memberOf, err := h.service.ListForUser(c.UserContext(), caller.UserID)
	if err != nil {
		return httperr.Internal(err)
	}

	ownedOut := make([]projectResponse, 0, len(owned))
	for _, p := range owned {
		ownedOut = append(ownedOut, toResponse(p))
	}
	memberOut := make([]projectResponse, 0, len(memberOf))
	for _, p := range memberOf {
		memberOut = append(memberOut, toResponse(p))
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"owned_projects":  ownedOut,
		"member_projects": memberOut,
	})
}

func mapProjectErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httperr.NotFound("project not found")
	case errors.Is(err, ErrNotOwner):
		return httperr.Forbidden("only the project owner may perform this action")
	default:
		return httperr.Internal(err)
	}
}
