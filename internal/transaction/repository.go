package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the referenced transaction does not exist.
var ErrNotFound = errors.New("transaction not found")

// Repository persists transactions. Each write is atomic for a single row
// only; there is no multi-entity transaction boundary.
type Repository interface {
	Create(ctx context.Context, t Transaction) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]Transaction, error)
}

// PostgresRepository stores transactions in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed transaction repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a transaction record.
func (r *PostgresRepository) Create(ctx context.Context, t Transaction) error {
	txID, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	addedBy, err := uuid.Parse(t.AddedBy)
	if err != nil {
		return err
	}
	paidBy, err := uuid.Parse(t.PaidBy)
	if err != nil {
		return err
	}
	projectID, err := uuid.Parse(t.ProjectID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO transactions
        (id, amount, mode, direction, description, occurred_at, added_by, paid_by, project_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		txID, t.Amount, string(t.Mode), string(t.Direction), t.Description,
		t.OccurredAt.UTC(), addedBy, paidBy, projectID)
	return err
}

// Delete removes a transaction by identifier.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	txID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, txID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByProject returns all transactions recorded against a project.
func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]Transaction, error) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, amount, mode, direction, description, occurred_at, added_by, paid_by, project_id
        FROM transactions WHERE project_id = $1 ORDER BY occurred_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		id         uuid.UUID
		addedBy    uuid.UUID
		paidBy     uuid.UUID
		projectID  uuid.UUID
		occurredAt time.Time
		mode       string
		direction  string
		t          Transaction
	)
	if err := row.Scan(&id, &t.Amount, &mode, &direction, &t.Description, &occurredAt, &addedBy, &paidBy, &projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, err
	}
	t.ID = id.String()
	t.Mode = Mode(mode)
	t.Direction = Direction(direction)
	t.OccurredAt = occurredAt.UTC()
	t.AddedBy = addedBy.String()
	t.PaidBy = paidBy.String()
	t.ProjectID = projectID.String()
	return t, nil
}
