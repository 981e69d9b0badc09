package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
)

type BuildingStore struct {
	db *database.DB
}

func NewBuildingStore(db *database.DB) *BuildingStore {
	return &BuildingStore{db: db}
}

const buildingCols = `id, name, description, created_at`

func scanBuilding(s scanner) (*model.Building, error) {
	var b model.Building
	if err := s.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BuildingStore) List(ctx context.Context) ([]model.Building, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+buildingCols+` FROM buildings ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	var buildings []model.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		buildings = append(buildings, *b)
	}
	return buildings, rows.Err()
}

func (s *BuildingStore) GetByID(ctx context.Context, id int64) (*model.Building, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+buildingCols+` FROM buildings WHERE id = ?`, id)
	b, err := scanBuilding(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get building: %w", err)
	}
	return b, nil
}

// Create inserts a building. A taken name returns an error wrapping ErrDuplicate.
func (s *BuildingStore) Create(ctx context.Context, name, description string) (*model.Building, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO buildings (name, description, created_at) VALUES (?, ?, ?) RETURNING id`,
		name, description, utc(time.Now()),
	).Scan(&id)
	if err != nil {
		return nil, wrap("insert building", err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a building and its places in one transaction. Places that
// still own tasks make the delete fail with ErrReference.
func (s *BuildingStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM places WHERE building_id = ?`, id); err != nil {
		return wrap("delete places", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM buildings WHERE id = ?`, id); err != nil {
		return wrap("delete building", err)
	}
	return tx.Commit()
}
