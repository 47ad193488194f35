package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// OrgUnitRepository manages persistence for organizational units.
type OrgUnitRepository interface {
	Create(ctx context.Context, unit *domain.OrgUnit) error
	Update(ctx context.Context, unit *domain.OrgUnit) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.OrgUnit, error)
	List(ctx context.Context) ([]domain.OrgUnit, error)
}

type orgUnitRepository struct {
	pool *pgxpool.Pool
}

// NewOrgUnitRepository constructs repository.
func NewOrgUnitRepository(pool *pgxpool.Pool) OrgUnitRepository {
	return &orgUnitRepository{pool: pool}
}

func (r *orgUnitRepository) Create(ctx context.Context, unit *domain.OrgUnit) error {
	const query = `
        INSERT INTO org_units (name, level, parent_unit_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		unit.Name,
		unit.Level,
		unit.ParentID,
	).Scan(&unit.ID, &unit.CreatedAt, &unit.UpdatedAt)
}

func (r *orgUnitRepository) Update(ctx context.Context, unit *domain.OrgUnit) error {
	const query = `
        UPDATE org_units SET name=$1, level=$2, parent_unit_id=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		unit.Name,
		unit.Level,
		unit.ParentID,
		unit.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orgUnitRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM org_units WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orgUnitRepository) GetByID(ctx context.Context, id string) (*domain.OrgUnit, error) {
	const query = `
        SELECT id, name, level, parent_unit_id, created_at, updated_at
        FROM org_units WHERE id=$1`
	var unit domain.OrgUnit
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&unit.ID,
		&unit.Name,
		&unit.Level,
		&unit.ParentID,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *orgUnitRepository) List(ctx context.Context) ([]domain.OrgUnit, error) {
	const query = `
        SELECT id, name, level, parent_unit_id, created_at, updated_at
        FROM org_units ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrgUnit
	for rows.Next() {
		var unit domain.OrgUnit
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.Level, &unit.ParentID, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, unit)
	}
	return result, rows.Err()
}
