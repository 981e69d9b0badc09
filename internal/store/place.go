package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
)

type PlaceStore struct {
	db *database.DB
}

func NewPlaceStore(db *database.DB) *PlaceStore {
	return &PlaceStore{db: db}
}

const placeCols = `id, building_id, name, description, created_at`

func scanPlace(s scanner) (*model.Place, error) {
	var p model.Place
	if err := s.Scan(&p.ID, &p.BuildingID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlaceStore) list(ctx context.Context, query string, args ...any) ([]model.Place, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()

	var places []model.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, *p)
	}
	return places, rows.Err()
}

func (s *PlaceStore) List(ctx context.Context) ([]model.Place, error) {
	return s.list(ctx, `SELECT `+placeCols+` FROM places ORDER BY building_id ASC, name ASC`)
}

func (s *PlaceStore) ListByBuilding(ctx context.Context, buildingID int64) ([]model.Place, error) {
	return s.list(ctx,
		`SELECT `+placeCols+` FROM places WHERE building_id = ? ORDER BY name ASC`,
		buildingID,
	)
}

func (s *PlaceStore) GetByID(ctx context.Context, id int64) (*model.Place, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+placeCols+` FROM places WHERE id = ?`, id)
	p, err := scanPlace(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}
	return p, nil
}

// Create inserts a place. A name already used in the same building returns an
// error wrapping ErrDuplicate.
func (s *PlaceStore) Create(ctx context.Context, buildingID int64, name, description string) (*model.Place, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO places (building_id, name, description, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		buildingID, name, description, utc(time.Now()),
	).Scan(&id)
	if err != nil {
		return nil, wrap("insert place", err)
	}
	return s.GetByID(ctx, id)
}

func (s *PlaceStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, id); err != nil {
		return wrap("delete place", err)
	}
	return nil
}
