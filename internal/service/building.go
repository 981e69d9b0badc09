package service

import (
	"context"
	"errors"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
)

// ListBuildings returns every building with its places and the number of
// active tasks in each place.
func (s *Service) ListBuildings(ctx context.Context) ([]model.BuildingDetail, error) {
	buildings, err := s.buildings.List(ctx)
	if err != nil {
		return nil, internal("list buildings", err)
	}
	places, err := s.placeSummaries(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]model.BuildingDetail, 0, len(buildings))
	for _, b := range buildings {
		ps := places[b.ID]
		if ps == nil {
			ps = []model.PlaceSummary{}
		}
		details = append(details, model.BuildingDetail{Building: b, Places: ps})
	}
	return details, nil
}

func (s *Service) GetBuilding(ctx context.Context, id int64) (*model.BuildingDetail, error) {
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return nil, internal("get building", err)
	}
	if b == nil {
		return nil, notFound("building")
	}
	places, err := s.placeSummaries(ctx)
	if err != nil {
		return nil, err
	}
	ps := places[b.ID]
	if ps == nil {
		ps = []model.PlaceSummary{}
	}
	return &model.BuildingDetail{Building: *b, Places: ps}, nil
}

// placeSummaries groups every place by building id, annotated with its active
// task count.
func (s *Service) placeSummaries(ctx context.Context) (map[int64][]model.PlaceSummary, error) {
	places, err := s.places.List(ctx)
	if err != nil {
		return nil, internal("list places", err)
	}
	counts, err := s.tasks.CountActiveByPlace(ctx)
	if err != nil {
		return nil, internal("count tasks", err)
	}

	byBuilding := make(map[int64][]model.PlaceSummary)
	for _, p := range places {
		byBuilding[p.BuildingID] = append(byBuilding[p.BuildingID], model.PlaceSummary{
			Place:     p,
			TaskCount: counts[p.ID],
		})
	}
	return byBuilding, nil
}

func (s *Service) CreateBuilding(ctx context.Context, name, description string) (*model.Building, error) {
	name, err := requireName("name", name)
	if err != nil {
		return nil, err
	}

	b, err := s.buildings.Create(ctx, name, description)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("a building with this name already exists", err)
	}
	if err != nil {
		return nil, internal("create building", err)
	}
	return b, nil
}

// DeleteBuilding removes a building and all of its places. It is refused
// while any place of the building still owns a task, soft-deleted or not.
func (s *Service) DeleteBuilding(ctx context.Context, id int64) error {
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return internal("get building", err)
	}
	if b == nil {
		return notFound("building")
	}

	n, err := s.tasks.CountByBuilding(ctx, id)
	if err != nil {
		return internal("count tasks", err)
	}
	if n > 0 {
		return inUse("building has places with tasks; delete the tasks first")
	}

	err = s.buildings.Delete(ctx, id)
	if errors.Is(err, store.ErrReference) {
		return inUse("building has places with tasks; delete the tasks first")
	}
	if err != nil {
		return internal("delete building", err)
	}
	return nil
}
