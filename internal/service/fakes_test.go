package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/repository"
)

// In-memory repository doubles. They mirror the Postgres implementations'
// contracts: pgx.ErrNoRows for missing records, created_at ASC list order,
// and the lead filter's nil/empty owner distinction.

type fakeActorRepo struct {
	seq    int
	actors map[string]*domain.Actor
}

func newFakeActorRepo() *fakeActorRepo {
	return &fakeActorRepo{actors: make(map[string]*domain.Actor)}
}

func (r *fakeActorRepo) Create(_ context.Context, actor *domain.Actor) error {
	r.seq++
	actor.ID = fmt.Sprintf("actor-%d", r.seq)
	actor.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	actor.UpdatedAt = actor.CreatedAt
	clone := *actor
	r.actors[actor.ID] = &clone
	return nil
}

func (r *fakeActorRepo) Update(_ context.Context, actor *domain.Actor) error {
	if _, ok := r.actors[actor.ID]; !ok {
		return pgx.ErrNoRows
	}
	actor.UpdatedAt = time.Now()
	clone := *actor
	r.actors[actor.ID] = &clone
	return nil
}

func (r *fakeActorRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.actors[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.actors, id)
	return nil
}

func (r *fakeActorRepo) GetByID(_ context.Context, id string) (*domain.Actor, error) {
	actor, ok := r.actors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *actor
	return &clone, nil
}

func (r *fakeActorRepo) GetByEmail(_ context.Context, email string) (*domain.Actor, error) {
	for _, actor := range r.actors {
		if actor.Email == email {
			clone := *actor
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeActorRepo) GetByPhone(_ context.Context, phone string) (*domain.Actor, error) {
	for _, actor := range r.actors {
		if actor.Phone == phone {
			clone := *actor
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeActorRepo) List(_ context.Context, filter repository.ActorFilter) ([]domain.Actor, error) {
	var result []domain.Actor
	for _, actor := range r.actors {
		if filter.Role != nil && actor.Role != *filter.Role {
			continue
		}
		if filter.ManagerID != nil {
			if actor.ManagerID == nil || *actor.ManagerID != *filter.ManagerID {
				continue
			}
		}
		if filter.OrgUnitID != nil {
			if actor.OrgUnitID == nil || *actor.OrgUnitID != *filter.OrgUnitID {
				continue
			}
		}
		if filter.Active != nil && actor.Active != *filter.Active {
			continue
		}
		result = append(result, *actor)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

type fakeLeadRepo struct {
	seq   int
	leads map[string]*domain.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]*domain.Lead)}
}

func (r *fakeLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	r.seq++
	lead.ID = fmt.Sprintf("lead-%d", r.seq)
	lead.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	lead.UpdatedAt = lead.CreatedAt
	clone := *lead
	r.leads[lead.ID] = &clone
	return nil
}

func (r *fakeLeadRepo) Update(_ context.Context, lead *domain.Lead) error {
	if _, ok := r.leads[lead.ID]; !ok {
		return pgx.ErrNoRows
	}
	lead.UpdatedAt = time.Now()
	clone := *lead
	r.leads[lead.ID] = &clone
	return nil
}

func (r *fakeLeadRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.leads[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.leads, id)
	return nil
}

func (r *fakeLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *lead
	return &clone, nil
}

func (r *fakeLeadRepo) ListWithFilter(_ context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	if filter.OwnerIDs != nil && len(filter.OwnerIDs) == 0 {
		return []domain.Lead{}, nil
	}
	owners := map[string]struct{}{}
	for _, id := range filter.OwnerIDs {
		owners[id] = struct{}{}
	}
	statuses := map[domain.LeadStatus]struct{}{}
	for _, status := range filter.Statuses {
		statuses[status] = struct{}{}
	}

	var result []domain.Lead
	for _, lead := range r.leads {
		if filter.OwnerIDs != nil {
			if _, ok := owners[lead.OwnerID]; !ok {
				continue
			}
		}
		if len(statuses) > 0 {
			if _, ok := statuses[lead.Status]; !ok {
				continue
			}
		}
		result = append(result, *lead)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		if offset >= len(result) {
			return []domain.Lead{}, nil
		}
		end := offset + filter.Limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	}
	return result, nil
}

func (r *fakeLeadRepo) Reassign(_ context.Context, id, newOwnerID string) error {
	lead, ok := r.leads[id]
	if !ok {
		return pgx.ErrNoRows
	}
	lead.OwnerID = newOwnerID
	lead.UpdatedAt = time.Now()
	return nil
}

type fakeOrgUnitRepo struct {
	seq   int
	units map[string]*domain.OrgUnit
}

func newFakeOrgUnitRepo() *fakeOrgUnitRepo {
	return &fakeOrgUnitRepo{units: make(map[string]*domain.OrgUnit)}
}

func (r *fakeOrgUnitRepo) Create(_ context.Context, unit *domain.OrgUnit) error {
	r.seq++
	if unit.ID == "" {
		unit.ID = fmt.Sprintf("unit-%d", r.seq)
	}
	unit.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	unit.UpdatedAt = unit.CreatedAt
	clone := *unit
	r.units[unit.ID] = &clone
	return nil
}

func (r *fakeOrgUnitRepo) Update(_ context.Context, unit *domain.OrgUnit) error {
	if _, ok := r.units[unit.ID]; !ok {
		return pgx.ErrNoRows
	}
	unit.UpdatedAt = time.Now()
	clone := *unit
	r.units[unit.ID] = &clone
	return nil
}

func (r *fakeOrgUnitRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.units[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.units, id)
	return nil
}

func (r *fakeOrgUnitRepo) GetByID(_ context.Context, id string) (*domain.OrgUnit, error) {
	unit, ok := r.units[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *unit
	return &clone, nil
}

func (r *fakeOrgUnitRepo) List(_ context.Context) ([]domain.OrgUnit, error) {
	var result []domain.OrgUnit
	for _, unit := range r.units {
		result = append(result, *unit)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

type fakeTerritoryRepo struct {
	seq         int
	territories map[string]*domain.Territory
}

func newFakeTerritoryRepo() *fakeTerritoryRepo {
	return &fakeTerritoryRepo{territories: make(map[string]*domain.Territory)}
}

func (r *fakeTerritoryRepo) Create(_ context.Context, territory *domain.Territory) error {
	r.seq++
	territory.ID = fmt.Sprintf("territory-%d", r.seq)
	territory.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	territory.UpdatedAt = territory.CreatedAt
	clone := *territory
	r.territories[territory.ID] = &clone
	return nil
}

func (r *fakeTerritoryRepo) Update(_ context.Context, territory *domain.Territory) error {
	if _, ok := r.territories[territory.ID]; !ok {
		return pgx.ErrNoRows
	}
	territory.UpdatedAt = time.Now()
	clone := *territory
	r.territories[territory.ID] = &clone
	return nil
}

func (r *fakeTerritoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.territories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.territories, id)
	return nil
}

func (r *fakeTerritoryRepo) GetByID(_ context.Context, id string) (*domain.Territory, error) {
	territory, ok := r.territories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *territory
	return &clone, nil
}

func (r *fakeTerritoryRepo) List(_ context.Context) ([]domain.Territory, error) {
	var result []domain.Territory
	for _, territory := range r.territories {
		result = append(result, *territory)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type fakePasscodeStore struct {
	codes map[string]string
}

func newFakePasscodeStore() *fakePasscodeStore {
	return &fakePasscodeStore{codes: make(map[string]string)}
}

func (s *fakePasscodeStore) Save(_ context.Context, phone, code string, _ time.Duration) error {
	s.codes[phone] = code
	return nil
}

func (s *fakePasscodeStore) Get(_ context.Context, phone string) (string, error) {
	code, ok := s.codes[phone]
	if !ok {
		return "", repository.ErrPasscodeNotFound
	}
	return code, nil
}

func (s *fakePasscodeStore) Delete(_ context.Context, phone string) error {
	delete(s.codes, phone)
	return nil
}

// seedActor inserts an actor directly, bypassing service validation.
func seedActor(repo *fakeActorRepo, actor domain.Actor) *domain.Actor {
	_ = repo.Create(context.Background(), &actor)
	return &actor
}

func seedLead(repo *fakeLeadRepo, lead domain.Lead) *domain.Lead {
	_ = repo.Create(context.Background(), &lead)
	return &lead
}

func seedUnit(repo *fakeOrgUnitRepo, unit domain.OrgUnit) *domain.OrgUnit {
	_ = repo.Create(context.Background(), &unit)
	return &unit
}

func strPtr(s string) *string { return &s }
