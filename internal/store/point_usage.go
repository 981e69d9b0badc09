package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
)

// PointUsageStore holds the point debit ledger. Usages are append-only.
type PointUsageStore struct {
	db *database.DB
}

func NewPointUsageStore(db *database.DB) *PointUsageStore {
	return &PointUsageStore{db: db}
}

const pointUsageCols = `pu.id, pu.user_id, pu.points_used, pu.description, pu.used_at`

func scanPointUsage(s scanner) (*model.PointUsage, error) {
	var u model.PointUsage
	if err := s.Scan(&u.ID, &u.UserID, &u.PointsUsed, &u.Description, &u.UsedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanPointUsageDetail(s scanner) (*model.PointUsageDetail, error) {
	var d model.PointUsageDetail
	if err := s.Scan(&d.ID, &d.UserID, &d.PointsUsed, &d.Description, &d.UsedAt, &d.UserName); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *PointUsageStore) listDetails(ctx context.Context, query string, args ...any) ([]model.PointUsageDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list point usages: %w", err)
	}
	defer rows.Close()

	var usages []model.PointUsageDetail
	for rows.Next() {
		d, err := scanPointUsageDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan point usage: %w", err)
		}
		usages = append(usages, *d)
	}
	return usages, rows.Err()
}

const pointUsageDetailSelect = `SELECT ` + pointUsageCols + `, u.name
	FROM point_usages pu
	JOIN users u ON u.id = pu.user_id`

// List returns every usage, newest first.
func (s *PointUsageStore) List(ctx context.Context) ([]model.PointUsageDetail, error) {
	return s.listDetails(ctx, pointUsageDetailSelect+` ORDER BY pu.used_at DESC, pu.id DESC`)
}

// Recent returns the newest limit usages.
func (s *PointUsageStore) Recent(ctx context.Context, limit int) ([]model.PointUsageDetail, error) {
	return s.listDetails(ctx, pointUsageDetailSelect+` ORDER BY pu.used_at DESC, pu.id DESC LIMIT ?`, limit)
}

func (s *PointUsageStore) list(ctx context.Context, query string, args ...any) ([]model.PointUsage, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list point usages: %w", err)
	}
	defer rows.Close()

	var usages []model.PointUsage
	for rows.Next() {
		u, err := scanPointUsage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan point usage: %w", err)
		}
		usages = append(usages, *u)
	}
	return usages, rows.Err()
}

// ListAll returns every usage in insertion order.
func (s *PointUsageStore) ListAll(ctx context.Context) ([]model.PointUsage, error) {
	return s.list(ctx, `SELECT `+pointUsageCols+` FROM point_usages pu ORDER BY pu.id ASC`)
}

func (s *PointUsageStore) ListByUser(ctx context.Context, userID int64) ([]model.PointUsage, error) {
	return s.list(ctx,
		`SELECT `+pointUsageCols+` FROM point_usages pu WHERE pu.user_id = ? ORDER BY pu.used_at DESC, pu.id DESC`,
		userID,
	)
}

func (s *PointUsageStore) Create(ctx context.Context, userID int64, pointsUsed int, description string, usedAt time.Time) (*model.PointUsageDetail, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO point_usages (user_id, points_used, description, used_at) VALUES (?, ?, ?, ?) RETURNING id`,
		userID, pointsUsed, description, utc(usedAt),
	).Scan(&id)
	if err != nil {
		return nil, wrap("insert point usage", err)
	}

	row := s.db.QueryRowContext(ctx, pointUsageDetailSelect+` WHERE pu.id = ?`, id)
	d, err := scanPointUsageDetail(row)
	if err != nil {
		return nil, fmt.Errorf("get point usage: %w", err)
	}
	return d, nil
}

func (s *PointUsageStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM point_usages WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count point usages: %w", err)
	}
	return n, nil
}
