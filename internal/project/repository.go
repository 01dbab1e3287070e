package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the referenced project does not exist.
var ErrNotFound = errors.New("project not found")

// Repository persists projects. AddMember is the only member-set mutation and
// must be an idempotent set-union at the storage level.
type Repository interface {
	Create(ctx context.Context, p Project) error
	Get(ctx context.Context, id string) (Project, error)
	Update(ctx context.Context, p Project) error
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, projectID, userID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Project, error)
	ListByMember(ctx context.Context, userID string) ([]Project, error)
}

// PostgresRepository stores projects in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed project repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a project record.
func (r *PostgresRepository) Create(ctx context.Context, p Project) error {
	projectID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return err
	}
	members := p.MemberIDs
	if members == nil {
		members = []string{}
	}
	_, err = r.db.Exec(ctx, `INSERT INTO projects (id, name, description, owner_id, member_ids, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, projectID, p.Name, p.Description, ownerID, members, p.CreatedAt.UTC())
	return err
}

// Get fetches a project by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return Project{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, description, owner_id, member_ids, created_at
        FROM projects WHERE id = $1`, projectID)
	return scanProject(row)
}

// Update rewrites the mutable project fields.
func (r *PostgresRepository) Update(ctx context.Context, p Project) error {
	projectID, err := uuid.Parse(p.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE projects SET name = $1, description = $2 WHERE id = $3`,
		p.Name, p.Description, projectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMember appends userID to the member set unless already present. The
// guarded update keeps the operation a set-union even under concurrent calls.
func (r *PostgresRepository) AddMember(ctx context.Context, projectID, userID string) error {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE projects SET member_ids = array_append(member_ids, $1)
        WHERE id = $2 AND $1 <> ALL (member_ids) AND owner_id <> $3`,
		userID, id, mustParseOrNil(userID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		// Either already a member (or the owner), or the project is gone.
		if _, err := r.Get(ctx, projectID); err != nil {
			return err
		}
	}
	return nil
}

// ListByOwner returns projects owned by the given user.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Project, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, name, description, owner_id, member_ids, created_at
        FROM projects WHERE owner_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

// ListByMember returns projects where the given user appears in the member
// set. Owned projects never match because the owner is not stored there.
func (r *PostgresRepository) ListByMember(ctx context.Context, userID string) ([]Project, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, owner_id, member_ids, created_at
        FROM projects WHERE $1 = ANY (member_ids) ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func scanProject(row pgx.Row) (Project, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		createdAt time.Time
		p         Project
	)
	if err := row.Scan(&id, &p.Name, &p.Description, &ownerID, &p.MemberIDs, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	p.ID = id.String()
	p.OwnerID = ownerID.String()
	p.CreatedAt = createdAt.UTC()
	return p, nil
}

func collectProjects(rows pgx.Rows) ([]Project, error) {
	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func mustParseOrNil(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
