package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/repository"
	"github.com/spec-kit/doorknock-service/pkg/geo"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// TerritoryService manages polygonal sales boundaries and answers
// point-to-territory assignment queries.
type TerritoryService struct {
	territories repository.TerritoryRepository
	logger      *zap.Logger
}

// NewTerritoryService constructs the service.
func NewTerritoryService(territories repository.TerritoryRepository, logger *zap.Logger) *TerritoryService {
	return &TerritoryService{territories: territories, logger: logger}
}

// TerritoryCreateInput describes territory creation payload.
type TerritoryCreateInput struct {
	Name        string
	Points      []domain.Coordinate
	AssignedRep string
	Color       string
}

// TerritoryUpdateInput carries the editable fields; nil means keep. Points,
// when present, replace the boundary wholesale.
type TerritoryUpdateInput struct {
	Name        *string
	Points      []domain.Coordinate
	AssignedRep *string
	Color       *string
}

// CreateTerritory saves a new boundary. A boundary with fewer than three
// points is accepted but will never match any coordinate, so it is logged
// for the operator to notice.
func (s *TerritoryService) CreateTerritory(ctx context.Context, actor *domain.Actor, input TerritoryCreateInput) (*domain.Territory, error) {
	if err := requireTerritoryAdmin(actor); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}

	territory := &domain.Territory{
		Name:        name,
		Points:      input.Points,
		AssignedRep: strings.TrimSpace(input.AssignedRep),
		Color:       strings.TrimSpace(input.Color),
	}
	if err := s.territories.Create(ctx, territory); err != nil {
		return nil, apperrors.MapError(err)
	}
	if territory.Degenerate() {
		s.logger.Warn("territory saved with degenerate boundary",
			zap.String("territory_id", territory.ID),
			zap.Int("points", len(territory.Points)),
		)
	}
	return territory, nil
}

// ListTerritories returns all territories in creation order.
func (s *TerritoryService) ListTerritories(ctx context.Context, actor *domain.Actor) ([]domain.Territory, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	territories, err := s.territories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return territories, nil
}

// GetTerritory fetches one territory.
func (s *TerritoryService) GetTerritory(ctx context.Context, actor *domain.Actor, territoryID string) (*domain.Territory, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	return s.fetchTerritory(ctx, territoryID)
}

// UpdateTerritory applies edits, replacing the point set wholesale when a
// new boundary is supplied.
func (s *TerritoryService) UpdateTerritory(ctx context.Context, actor *domain.Actor, territoryID string, input TerritoryUpdateInput) (*domain.Territory, error) {
	if err := requireTerritoryAdmin(actor); err != nil {
		return nil, err
	}
	territory, err := s.fetchTerritory(ctx, territoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name is required", nil)
		}
		territory.Name = name
	}
	if input.Points != nil {
		territory.Points = input.Points
	}
	if input.AssignedRep != nil {
		territory.AssignedRep = strings.TrimSpace(*input.AssignedRep)
	}
	if input.Color != nil {
		territory.Color = strings.TrimSpace(*input.Color)
	}

	if err := s.territories.Update(ctx, territory); err != nil {
		return nil, apperrors.MapError(err)
	}
	if territory.Degenerate() {
		s.logger.Warn("territory saved with degenerate boundary",
			zap.String("territory_id", territory.ID),
			zap.Int("points", len(territory.Points)),
		)
	}
	return territory, nil
}

// DeleteTerritory removes a boundary.
func (s *TerritoryService) DeleteTerritory(ctx context.Context, actor *domain.Actor, territoryID string) error {
	if err := requireTerritoryAdmin(actor); err != nil {
		return err
	}
	if _, err := s.fetchTerritory(ctx, territoryID); err != nil {
		return err
	}
	if err := s.territories.Delete(ctx, territoryID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Assign resolves a coordinate to the territory containing it. Territories
// are tested in creation order and the first match wins, so overlapping
// boundaries resolve deterministically to the earliest created one. A nil
// result with nil error means no territory contains the point.
func (s *TerritoryService) Assign(ctx context.Context, actor *domain.Actor, point domain.Coordinate) (*domain.Territory, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	territories, err := s.territories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range territories {
		if geo.Contains(geo.Point{Lat: point.Lat, Lng: point.Lng}, boundary(territories[i].Points)) {
			return &territories[i], nil
		}
	}
	return nil, nil
}

func boundary(points []domain.Coordinate) []geo.Point {
	result := make([]geo.Point, len(points))
	for i, p := range points {
		result[i] = geo.Point{Lat: p.Lat, Lng: p.Lng}
	}
	return result
}

func requireTerritoryAdmin(actor *domain.Actor) error {
	if actor == nil {
		return apperrors.NewUnauthorized("acting identity required")
	}
	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleManager {
		return apperrors.NewForbidden("insufficient role for territory administration")
	}
	return nil
}

func (s *TerritoryService) fetchTerritory(ctx context.Context, territoryID string) (*domain.Territory, error) {
	territory, err := s.territories.GetByID(ctx, territoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("territory", map[string]any{"territory_id": territoryID})
		}
		return nil, apperrors.MapError(err)
	}
	return territory, nil
}
