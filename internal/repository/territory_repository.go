package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// TerritoryRepository manages persistence for territory boundaries.
// List returns territories in created_at ASC, id ASC order; point
// assignment depends on that ordering for its tie-break rule.
type TerritoryRepository interface {
	Create(ctx context.Context, territory *domain.Territory) error
	Update(ctx context.Context, territory *domain.Territory) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Territory, error)
	List(ctx context.Context) ([]domain.Territory, error)
}

type territoryRepository struct {
	pool *pgxpool.Pool
}

// NewTerritoryRepository constructs repository.
func NewTerritoryRepository(pool *pgxpool.Pool) TerritoryRepository {
	return &territoryRepository{pool: pool}
}

func (r *territoryRepository) Create(ctx context.Context, territory *domain.Territory) error {
	points, err := json.Marshal(territory.Points)
	if err != nil {
		return fmt.Errorf("encode territory points: %w", err)
	}
	const query = `
        INSERT INTO territories (name, points, assigned_rep, color)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		territory.Name,
		points,
		territory.AssignedRep,
		territory.Color,
	).Scan(&territory.ID, &territory.CreatedAt, &territory.UpdatedAt)
}

// Update replaces the point set wholesale; boundaries are never patched
// incrementally.
func (r *territoryRepository) Update(ctx context.Context, territory *domain.Territory) error {
	points, err := json.Marshal(territory.Points)
	if err != nil {
		return fmt.Errorf("encode territory points: %w", err)
	}
	const query = `
        UPDATE territories SET name=$1, points=$2, assigned_rep=$3, color=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		territory.Name,
		points,
		territory.AssignedRep,
		territory.Color,
		territory.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *territoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM territories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *territoryRepository) GetByID(ctx context.Context, id string) (*domain.Territory, error) {
	const query = `
        SELECT id, name, points, assigned_rep, color, created_at, updated_at
        FROM territories WHERE id=$1`
	territory, err := scanTerritory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return territory, nil
}

func (r *territoryRepository) List(ctx context.Context) ([]domain.Territory, error) {
	const query = `
        SELECT id, name, points, assigned_rep, color, created_at, updated_at
        FROM territories ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Territory
	for rows.Next() {
		territory, err := scanTerritory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *territory)
	}
	return result, rows.Err()
}

func scanTerritory(row pgx.Row) (*domain.Territory, error) {
	var territory domain.Territory
	var points []byte
	if err := row.Scan(
		&territory.ID,
		&territory.Name,
		&points,
		&territory.AssignedRep,
		&territory.Color,
		&territory.CreatedAt,
		&territory.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(points, &territory.Points); err != nil {
		return nil, fmt.Errorf("decode territory points: %w", err)
	}
	return &territory, nil
}
