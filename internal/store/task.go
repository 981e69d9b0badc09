package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
)

// activeTask is the one place the soft-delete predicate lives. Every query
// that reads tasks for display or evaluation joins tasks as t and filters on it.
const activeTask = `t.deleted_at IS NULL`

type TaskStore struct {
	db *database.DB
}

func NewTaskStore(db *database.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `t.id, t.place_id, t.name, t.point, t.cycle_days, t.created_at, t.updated_at, t.deleted_at`

const taskDetailSelect = `SELECT ` + taskCols + `, p.name, b.id, b.name
	FROM tasks t
	JOIN places p ON p.id = t.place_id
	JOIN buildings b ON b.id = p.building_id`

const taskDetailOrder = ` ORDER BY b.name ASC, p.name ASC, t.name ASC, t.id ASC`

func scanTask(s scanner) (*model.Task, error) {
	var t model.Task
	var deletedAt sql.NullTime
	if err := s.Scan(&t.ID, &t.PlaceID, &t.Name, &t.Point, &t.CycleDays, &t.CreatedAt, &t.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.Time
	}
	return &t, nil
}

func scanTaskDetail(s scanner) (*model.TaskDetail, error) {
	var d model.TaskDetail
	var deletedAt sql.NullTime
	err := s.Scan(
		&d.ID, &d.PlaceID, &d.Name, &d.Point, &d.CycleDays, &d.CreatedAt, &d.UpdatedAt, &deletedAt,
		&d.PlaceName, &d.BuildingID, &d.BuildingName,
	)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		d.DeletedAt = &deletedAt.Time
	}
	return &d, nil
}

func (s *TaskStore) listDetails(ctx context.Context, query string, args ...any) ([]model.TaskDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.TaskDetail
	for rows.Next() {
		d, err := scanTaskDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *d)
	}
	return tasks, rows.Err()
}

// ListActive returns all tasks that have not been soft-deleted, ordered by
// building, place and task name.
func (s *TaskStore) ListActive(ctx context.Context) ([]model.TaskDetail, error) {
	return s.listDetails(ctx, taskDetailSelect+` WHERE `+activeTask+taskDetailOrder)
}

// ListActiveByPlace returns the active tasks of one place.
func (s *TaskStore) ListActiveByPlace(ctx context.Context, placeID int64) ([]model.TaskDetail, error) {
	return s.listDetails(ctx, taskDetailSelect+` WHERE t.place_id = ? AND `+activeTask+taskDetailOrder, placeID)
}

// GetActive returns the task with the given id, or nil if it does not exist
// or has been soft-deleted.
func (s *TaskStore) GetActive(ctx context.Context, id int64) (*model.TaskDetail, error) {
	row := s.db.QueryRowContext(ctx, taskDetailSelect+` WHERE t.id = ? AND `+activeTask, id)
	d, err := scanTaskDetail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return d, nil
}

// GetByID returns the task regardless of its soft-delete state.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskCols+` FROM tasks t WHERE t.id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) Create(ctx context.Context, placeID int64, name string, point, cycleDays int) (*model.Task, error) {
	now := utc(time.Now())
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (place_id, name, point, cycle_days, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		placeID, name, point, cycleDays, now, now,
	).Scan(&id)
	if err != nil {
		return nil, wrap("insert task", err)
	}
	return s.GetByID(ctx, id)
}

// Update edits an active task. It returns nil if the task does not exist or
// has been soft-deleted.
func (s *TaskStore) Update(ctx context.Context, id, placeID int64, name string, point, cycleDays int) (*model.Task, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET place_id = ?, name = ?, point = ?, cycle_days = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		placeID, name, point, cycleDays, utc(time.Now()), id,
	)
	if err != nil {
		return nil, wrap("update task", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetByID(ctx, id)
}

// SoftDelete marks an active task as deleted and removes its assignments in
// the same transaction. It reports false if no active task had that id.
func (s *TaskStore) SoftDelete(ctx context.Context, id int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := utc(time.Now())
	result, err := tx.ExecContext(ctx,
		`UPDATE tasks SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return false, fmt.Errorf("soft delete task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE task_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete task assignments: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// CountActiveByPlace returns the number of active tasks per place id.
func (s *TaskStore) CountActiveByPlace(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.place_id, COUNT(*) FROM tasks t WHERE `+activeTask+` GROUP BY t.place_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("count tasks by place: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var placeID int64
		var n int
		if err := rows.Scan(&placeID, &n); err != nil {
			return nil, fmt.Errorf("scan task count: %w", err)
		}
		counts[placeID] = n
	}
	return counts, rows.Err()
}

// CountByPlace counts every task row owned by a place, soft-deleted ones included.
func (s *TaskStore) CountByPlace(ctx context.Context, placeID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE place_id = ?`, placeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks by place: %w", err)
	}
	return n, nil
}

// CountByBuilding counts every task row owned by any place of a building,
// soft-deleted ones included.
func (s *TaskStore) CountByBuilding(ctx context.Context, buildingID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks t JOIN places p ON p.id = t.place_id WHERE p.building_id = ?`,
		buildingID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks by building: %w", err)
	}
	return n, nil
}

// Points returns the current point value of every task, soft-deleted ones
// included, keyed by task id.
func (s *TaskStore) Points(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, point FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("list task points: %w", err)
	}
	defer rows.Close()

	points := make(map[int64]int)
	for rows.Next() {
		var id int64
		var p int
		if err := rows.Scan(&id, &p); err != nil {
			return nil, fmt.Errorf("scan task points: %w", err)
		}
		points[id] = p
	}
	return points, rows.Err()
}
