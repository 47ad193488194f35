package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

// LeadFilter captures lead listing parameters. OwnerIDs narrows to leads
// owned by any of the given actors; an empty slice matches nothing.
// Limit <= 0 means no paging (rollups need the full visible set).
type LeadFilter struct {
	OwnerIDs []string
	Statuses []domain.LeadStatus
	Limit    int
	Offset   int
}

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, lead *domain.Lead) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	ListWithFilter(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	Reassign(ctx context.Context, id, newOwnerID string) error
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

const leadColumns = `id, external_key, owner_actor_id, status, latitude, longitude, address, notes, visited_at, created_at, updated_at`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (external_key, owner_actor_id, status, latitude, longitude, address, notes, visited_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		lead.ExternalKey,
		lead.OwnerID,
		lead.Status,
		lead.Latitude,
		lead.Longitude,
		lead.Address,
		lead.Notes,
		lead.VisitedAt,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	const query = `
        UPDATE leads SET status=$1, latitude=$2, longitude=$3, address=$4, notes=$5, visited_at=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		lead.Status,
		lead.Latitude,
		lead.Longitude,
		lead.Address,
		lead.Notes,
		lead.VisitedAt,
		lead.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1`
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.ExternalKey,
		&lead.OwnerID,
		&lead.Status,
		&lead.Latitude,
		&lead.Longitude,
		&lead.Address,
		&lead.Notes,
		&lead.VisitedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) ListWithFilter(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	if filter.OwnerIDs != nil && len(filter.OwnerIDs) == 0 {
		return []domain.Lead{}, nil
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []any{}
	clauses := []string{}

	if filter.OwnerIDs != nil {
		args = append(args, filter.OwnerIDs)
		clauses = append(clauses, fmt.Sprintf("owner_actor_id = ANY($%d)", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY updated_at DESC"
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
	return scanLeads(rows)
}

func (r *leadRepository) Reassign(ctx context.Context, id, newOwnerID string) error {
	const query = `
        UPDATE leads SET owner_actor_id=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, newOwnerID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.ExternalKey,
			&lead.OwnerID,
			&lead.Status,
			&lead.Latitude,
			&lead.Longitude,
			&lead.Address,
			&lead.Notes,
			&lead.VisitedAt,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
