package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khata-app/khata/internal/integrity"
	"github.com/khata-app/khata/internal/notification"
	"github.com/khata-app/khata/internal/project"
)

// ErrInvalidInput indicates a transaction field failed domain validation.
var ErrInvalidInput = errors.New("invalid transaction input")

// Service orchestrates the ledger operations on transactions.
type Service struct {
	repo     Repository
	projects *project.Service
	notifier notification.Notifier
}

// NewService builds a transaction service. notifier may be nil.
func NewService(repo Repository, projects *project.Service, notifier notification.Notifier) *Service {
	return &Service{repo: repo, projects: projects, notifier: notifier}
}

// CreateInput captures the client-supplied transaction fields. AddedBy and
// the project are taken from the caller and the route, never from here.
type CreateInput struct {
	Amount      int64
	Mode        string
	Direction   string
	Description string
	PaidBy      string
	OccurredAt  time.Time
}

// Create records a transaction against a project. The payer-membership
// invariant is re-checked here against a fresh project read; a violation
// blocks the write entirely, so no partial record is ever persisted.
func (s *Service) Create(ctx context.Context, callerID, projectID string, input CreateInput) (Transaction, error) {
	if input.Amount <= 0 {
		return Transaction{}, errors.Join(ErrInvalidInput, errors.New("amount must be positive"))
	}
	mode, err := ParseMode(input.Mode)
	if err != nil {
		return Transaction{}, errors.Join(ErrInvalidInput, err)
	}
	direction, err := ParseDirection(input.Direction)
	if err != nil {
		return Transaction{}, errors.Join(ErrInvalidInput, err)
	}
	if input.Description == "" {
		return Transaction{}, errors.Join(ErrInvalidInput, errors.New("description is required"))
	}
	if input.PaidBy == "" {
		return Transaction{}, errors.Join(ErrInvalidInput, errors.New("paid_by is required"))
	}

	// Fresh read; membership may have changed since the caller last looked.
	target, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return Transaction{}, err
	}
	if err := integrity.ValidatePayer(target, input.PaidBy); err != nil {
		return Transaction{}, err
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	t := Transaction{
		ID:          uuid.New().String(),
		Amount:      input.Amount,
		Mode:        mode,
		Direction:   direction,
		Description: input.Description,
		OccurredAt:  occurredAt,
		AddedBy:     callerID,
		PaidBy:      input.PaidBy,
		ProjectID:   projectID,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Transaction{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransactionAdded,
			Destination: target.OwnerID,
			Body:        fmt.Sprintf("%s of %d recorded on project %s", direction, t.Amount, target.Name),
		})
	}

	return t, nil
}

// Delete removes a transaction by identifier. Callers only need a valid
// credential; membership is not re-checked here.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListByProject returns all transactions recorded against a project.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Transaction, error) {
	return s.repo.ListByProject(ctx, projectID)
}
