package service

import (
	"context"
	"errors"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
)

// ListPlaces returns every place with its building and active tasks.
func (s *Service) ListPlaces(ctx context.Context) ([]model.PlaceDetail, error) {
	places, err := s.places.List(ctx)
	if err != nil {
		return nil, internal("list places", err)
	}
	return s.placeDetails(ctx, places)
}

// ListPlacesByBuilding returns the places of one building.
func (s *Service) ListPlacesByBuilding(ctx context.Context, buildingID int64) ([]model.PlaceDetail, error) {
	b, err := s.buildings.GetByID(ctx, buildingID)
	if err != nil {
		return nil, internal("get building", err)
	}
	if b == nil {
		return nil, notFound("building")
	}

	places, err := s.places.ListByBuilding(ctx, buildingID)
	if err != nil {
		return nil, internal("list places", err)
	}
	return s.placeDetails(ctx, places)
}

func (s *Service) GetPlace(ctx context.Context, id int64) (*model.PlaceDetail, error) {
	p, err := s.places.GetByID(ctx, id)
	if err != nil {
		return nil, internal("get place", err)
	}
	if p == nil {
		return nil, notFound("place")
	}
	details, err := s.placeDetails(ctx, []model.Place{*p})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *Service) placeDetails(ctx context.Context, places []model.Place) ([]model.PlaceDetail, error) {
	buildings, err := s.buildings.List(ctx)
	if err != nil {
		return nil, internal("list buildings", err)
	}
	byID := make(map[int64]model.Building, len(buildings))
	for _, b := range buildings {
		byID[b.ID] = b
	}

	tasks, err := s.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	byPlace := make(map[int64][]model.TaskDetail)
	for _, t := range tasks {
		byPlace[t.PlaceID] = append(byPlace[t.PlaceID], t)
	}

	details := make([]model.PlaceDetail, 0, len(places))
	for _, p := range places {
		ts := byPlace[p.ID]
		if ts == nil {
			ts = []model.TaskDetail{}
		}
		details = append(details, model.PlaceDetail{Place: p, Building: byID[p.BuildingID], Tasks: ts})
	}
	return details, nil
}

func (s *Service) CreatePlace(ctx context.Context, buildingID int64, name, description string) (*model.Place, error) {
	if err := requireID("building_id", buildingID); err != nil {
		return nil, err
	}
	name, err := requireName("name", name)
	if err != nil {
		return nil, err
	}

	b, err := s.buildings.GetByID(ctx, buildingID)
	if err != nil {
		return nil, internal("get building", err)
	}
	if b == nil {
		return nil, notFound("building")
	}

	p, err := s.places.Create(ctx, buildingID, name, description)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return nil, conflict("a place with this name already exists in the building", err)
	case errors.Is(err, store.ErrReference):
		return nil, notFound("building")
	case err != nil:
		return nil, internal("create place", err)
	}
	return p, nil
}

// DeletePlace removes a place that owns no tasks. Soft-deleted tasks still
// count, since they anchor completion history.
func (s *Service) DeletePlace(ctx context.Context, id int64) error {
	p, err := s.places.GetByID(ctx, id)
	if err != nil {
		return internal("get place", err)
	}
	if p == nil {
		return notFound("place")
	}

	n, err := s.tasks.CountByPlace(ctx, id)
	if err != nil {
		return internal("count tasks", err)
	}
	if n > 0 {
		return inUse("place has tasks; delete the tasks first")
	}

	err = s.places.Delete(ctx, id)
	if errors.Is(err, store.ErrReference) {
		return inUse("place has tasks; delete the tasks first")
	}
	if err != nil {
		return internal("delete place", err)
	}
	return nil
}
