package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// ActorRepository handles persistence for actors.
type ActorRepository interface {
	Create(ctx context.Context, actor *domain.Actor) error
	Update(ctx context.Context, actor *domain.Actor) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Actor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Actor, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Actor, error)
	List(ctx context.Context, filter ActorFilter) ([]domain.Actor, error)
}

// ActorFilter defines query params for actor listing.
type ActorFilter struct {
	Role      *domain.Role
	ManagerID *string
	OrgUnitID *string
	Active    *bool
	Limit     int
	Offset    int
}

type actorRepository struct {
	pool *pgxpool.Pool
}

// NewActorRepository returns a Postgres-backed implementation.
func NewActorRepository(pool *pgxpool.Pool) ActorRepository {
	return &actorRepository{pool: pool}
}

const actorColumns = `id, name, phone, email, password_hash, role, manager_actor_id, org_unit_id, active_flag, created_at, updated_at`

func (r *actorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	const query = `
        INSERT INTO actors (name, phone, email, password_hash, role, manager_actor_id, org_unit_id, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		actor.Name,
		actor.Phone,
		actor.Email,
		actor.PasswordHash,
		actor.Role,
		actor.ManagerID,
		actor.OrgUnitID,
		actor.Active,
	).Scan(&actor.ID, &actor.CreatedAt, &actor.UpdatedAt)
}

func (r *actorRepository) Update(ctx context.Context, actor *domain.Actor) error {
	const query = `
        UPDATE actors
        SET name=$1, phone=$2, email=$3, password_hash=$4, role=$5, manager_actor_id=$6, org_unit_id=$7, active_flag=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		actor.Name,
		actor.Phone,
		actor.Email,
		actor.PasswordHash,
		actor.Role,
		actor.ManagerID,
		actor.OrgUnitID,
		actor.Active,
		actor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *actorRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM actors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *actorRepository) GetByID(ctx context.Context, id string) (*domain.Actor, error) {
	return r.fetchSingle(ctx, `SELECT `+actorColumns+` FROM actors WHERE id=$1`, id)
}

func (r *actorRepository) GetByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	return r.fetchSingle(ctx, `SELECT `+actorColumns+` FROM actors WHERE email=$1`, email)
}

func (r *actorRepository) GetByPhone(ctx context.Context, phone string) (*domain.Actor, error) {
	return r.fetchSingle(ctx, `SELECT `+actorColumns+` FROM actors WHERE phone=$1`, phone)
}

func (r *actorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Actor, error) {
	actor, err := scanActor(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	return actor, nil
}

func (r *actorRepository) List(ctx context.Context, filter ActorFilter) ([]domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors`
	args := []any{}
	clauses := []string{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.ManagerID != nil {
		args = append(args, *filter.ManagerID)
		clauses = append(clauses, fmt.Sprintf("manager_actor_id=$%d", len(args)))
	}
	if filter.OrgUnitID != nil {
		args = append(args, *filter.OrgUnitID)
		clauses = append(clauses, fmt.Sprintf("org_unit_id=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active_flag=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at ASC"
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Actor
	for rows.Next() {
		actor, err := scanActor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *actor)
	}
	return result, rows.Err()
}

// scanActor reads one actor row, normalizing legacy role strings so the
// rest of the system only ever sees the three canonical tiers.
func scanActor(row pgx.Row) (*domain.Actor, error) {
	var actor domain.Actor
	var rawRole string
	if err := row.Scan(
		&actor.ID,
		&actor.Name,
		&actor.Phone,
		&actor.Email,
		&actor.PasswordHash,
		&rawRole,
		&actor.ManagerID,
		&actor.OrgUnitID,
		&actor.Active,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	role, ok := domain.NormalizeRole(rawRole)
	if !ok {
		return nil, fmt.Errorf("actor %s has unknown role %q", actor.ID, rawRole)
	}
	actor.Role = role
	return &actor, nil
}
