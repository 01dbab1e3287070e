package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khata-app/khata/internal/notification"
)

// ErrNotOwner indicates the caller is authenticated but does not own the
// project, which is required for edit and delete.
var ErrNotOwner = errors.New("only the project owner may perform this action")

// Service orchestrates project lifecycle and the membership model.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService creates a project service. notifier may be nil.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// CreateInput captures data required to create a project.
type CreateInput struct {
	Name        string
	Description string
}

// Create provisions a project owned by the calling identity. Ownership is
// assigned exactly once here and is never reassignable.
func (s *Service) Create(ctx context.Context, ownerID string, input CreateInput) (Project, error) {
	p := Project{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     ownerID,
		MemberIDs:   []string{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Get fetches a project by identifier.
func (s *Service) Get(ctx context.Context, id string) (Project, error) {
	return s.repo.Get(ctx, id)
}

// EditInput captures the mutable project fields.
type EditInput struct {
	Name        string
	Description string
}

// Edit updates name and description. Owner only.
func (s *Service) Edit(ctx context.Context, callerID, projectID string, input EditInput) (Project, error) {
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return Project{}, err
	}
	if p.RoleOf(callerID) != RoleOwner {
		return Project{}, ErrNotOwner
	}
	p.Name = input.Name
	p.Description = input.Description
	if err := s.repo.Update(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Delete removes a project. Owner only.
func (s *Service) Delete(ctx context.Context, callerID, projectID string) error {
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if p.RoleOf(callerID) != RoleOwner {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, projectID)
}

// AddMember adds a user to the project's member set. The union is idempotent:
// adding an existing member, or the owner, is a no-op rather than an error.
// Any authenticated caller may add members; this mirrors the looser tier the
// product currently ships with.
func (s *Service) AddMember(ctx context.Context, projectID, userID string) (Project, error) {
	if err := s.repo.AddMember(ctx, projectID, userID); err != nil {
		return Project{}, err
	}
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return Project{}, err
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindMemberAdded,
			Destination: p.OwnerID,
			Body:        fmt.Sprintf("user %s added to project %s", userID, p.Name),
		})
	}
	return p, nil
}

// ListForUser returns the caller's projects split into owned and
// member-of-but-not-owned. The sets are disjoint by construction because the
// owner is never stored in the member set.
func (s *Service) ListForUser(ctx context.Context, userID string) (owned, memberOf []Project, err error) {
	owned, err = s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	memberOf, err = s.repo.ListByMember(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return owned, memberOf, nil
}

// Members returns all participant user ids of a project, owner first.
func (s *Service) Members(ctx context.Context, projectID string) ([]string, error) {
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return p.Participants(), nil
}
