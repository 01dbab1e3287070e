package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/khata-app/khata/internal/integrity"
	"github.com/khata-app/khata/internal/notification"
	"github.com/khata-app/khata/internal/project"
)

type testNotifier struct {
	last notification.Message
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.last = msg
	return nil
}

func setupService(t *testing.T) (*Service, *project.Service) {
	t.Helper()
	projects := project.NewService(project.NewMemoryRepository(), nil)
	return NewService(NewMemoryRepository(), projects, nil), projects
}

func TestCreateRejectsNonParticipantPayer(t *testing.T) {
	svc, projects := setupService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()
	strangerID := uuid.NewString()

	p, err := projects.Create(ctx, ownerID, project.CreateInput{Name: "Goa Trip"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	_, err = svc.Create(ctx, strangerID, p.ID, CreateInput{
		Amount:      4_500,
		Mode:        "upi",
		Direction:   "outgoing",
		Description: "hotel booking",
		PaidBy:      strangerID,
	})
	if !errors.Is(err, integrity.ErrPayerNotParticipant) {
		t.Fatalf("expected ErrPayerNotParticipant, got %v", err)
	}

	// The rejected write must leave nothing behind.
	stored, err := svc.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected no persisted transactions, got %v", stored)
	}
}

func TestCreateAcceptsMemberPayerAfterAdd(t *testing.T) {
	svc, projects := setupService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()
	memberID := uuid.NewString()

	p, err := projects.Create(ctx, ownerID, project.CreateInput{Name: "Goa Trip"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := projects.AddMember(ctx, p.ID, memberID); err != nil {
		t.Fatalf("add member: %v", err)
	}

	created, err := svc.Create(ctx, memberID, p.ID, CreateInput{
		Amount:      4_500,
		Mode:        "upi",
		Direction:   "outgoing",
		Description: "hotel booking",
		PaidBy:      memberID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if created.AddedBy != memberID {
		t.Fatalf("expected added_by %s, got %s", memberID, created.AddedBy)
	}
	if created.ProjectID != p.ID {
		t.Fatalf("expected project %s, got %s", p.ID, created.ProjectID)
	}
	if created.OccurredAt.IsZero() {
		t.Fatal("expected occurred_at to default to now")
	}
}

func TestCreateAcceptsOwnerPayer(t *testing.T) {
	svc, projects := setupService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()

	p, err := projects.Create(ctx, ownerID, project.CreateInput{Name: "Goa Trip"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	occurred := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, ownerID, p.ID, CreateInput{
		Amount:      1_200,
		Mode:        "cash",
		Direction:   "incoming",
		Description: "advance from Ravi",
		PaidBy:      ownerID,
		OccurredAt:  occurred,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if !created.OccurredAt.Equal(occurred) {
		t.Fatalf("expected occurred_at %v, got %v", occurred, created.OccurredAt)
	}
}

func TestCreateUnknownProject(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	callerID := uuid.NewString()

	_, err := svc.Create(ctx, callerID, uuid.NewString(), CreateInput{
		Amount:      100,
		Mode:        "cash",
		Direction:   "outgoing",
		Description: "chai",
		PaidBy:      callerID,
	})
	if !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("expected project.ErrNotFound, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, projects := setupService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()

	p, err := projects.Create(ctx, ownerID, project.CreateInput{Name: "Goa Trip"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"zero amount", CreateInput{Amount: 0, Mode: "cash", Direction: "outgoing", Description: "x", PaidBy: ownerID}},
		{"negative amount", CreateInput{Amount: -5, Mode: "cash", Direction: "outgoing", Description: "x", PaidBy: ownerID}},
		{"bad mode", CreateInput{Amount: 10, Mode: "cheque", Direction: "outgoing", Description: "x", PaidBy: ownerID}},
		{"bad direction", CreateInput{Amount: 10, Mode: "cash", Direction: "sideways", Description: "x", PaidBy: ownerID}},
		{"empty description", CreateInput{Amount: 10, Mode: "cash", Direction: "outgoing", Description: "", PaidBy: ownerID}},
		{"missing payer", CreateInput{Amount: 10, Mode: "cash", Direction: "outgoing", Description: "x", PaidBy: ""}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, ownerID, p.ID, tc.input); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreateNotifiesOwner(t *testing.T) {
	projects := project.NewService(project.NewMemoryRepository(), nil)
	notifier := &testNotifier{}
	svc := NewService(NewMemoryRepository(), projects, notifier)
	ctx := context.Background()
	ownerID := uuid.NewString()
	memberID := uuid.NewString()

	p, err := projects.Create(ctx, ownerID, project.CreateInput{Name: "Goa Trip"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := projects.AddMember(ctx, p.ID, memberID); err != nil {
		t.Fatalf("add member: %v", err)
	}

	if _, err := svc.Create(ctx, memberID, p.ID, CreateInput{
		Amount:      250,
		Mode:        "cash",
		Direction:   "outgoing",
		Description: "snacks",
		PaidBy:      memberID,
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if notifier.last.Kind != notification.KindTransactionAdded {
		t.Fatalf("expected transaction_added notification, got %+v", notifier.last)
	}
	if notifier.last.Destination != ownerID {
		t.Fatalf("expected notification to owner %s, got %s", ownerID, notifier.last.Destination)
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc, projects := setupService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()

	p, err := projects.Create(ctx, ownerID, project.CreateInput{Name: "Goa Trip"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	created, err := svc.Create(ctx, ownerID, p.ID, CreateInput{
		Amount:      500,
		Mode:        "card",
		Direction:   "outgoing",
		Description: "fuel",
		PaidBy:      ownerID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMembershipCheckedAtWriteTime(t *testing.T) {
	svc, projects := setupService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()
	lateMemberID := uuid.NewString()

	p, err := projects.Create(ctx, ownerID, project.CreateInput{Name: "Goa Trip"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	input := CreateInput{Amount: 900, Mode: "upi", Direction: "outgoing", Description: "dinner", PaidBy: lateMemberID}

	if _, err := svc.Create(ctx, ownerID, p.ID, input); !errors.Is(err, integrity.ErrPayerNotParticipant) {
		t.Fatalf("expected rejection before membership, got %v", err)
	}

	if _, err := projects.AddMember(ctx, p.ID, lateMemberID); err != nil {
		t.Fatalf("add member: %v", err)
	}

	// The same input succeeds once membership exists: the check runs against
	// current project state, not a cached snapshot.
	if _, err := svc.Create(ctx, ownerID, p.ID, input); err != nil {
		t.Fatalf("expected acceptance after membership, got %v", err)
	}
}
