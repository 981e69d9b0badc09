package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
)

// TaskLogStore holds completion records. Logs are append-only: there is no
// update or delete.
type TaskLogStore struct {
	db *database.DB
}

func NewTaskLogStore(db *database.DB) *TaskLogStore {
	return &TaskLogStore{db: db}
}

const taskLogCols = `l.id, l.task_id, l.user_id, l.date_done, l.created_at`

const taskLogDetailSelect = `SELECT ` + taskLogCols + `, t.name, t.point, p.name, b.name, u.name
	FROM task_logs l
	JOIN tasks t ON t.id = l.task_id
	JOIN places p ON p.id = t.place_id
	JOIN buildings b ON b.id = p.building_id
	JOIN users u ON u.id = l.user_id`

func scanTaskLog(s scanner) (*model.TaskLog, error) {
	var l model.TaskLog
	if err := s.Scan(&l.ID, &l.TaskID, &l.UserID, &l.DateDone, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanTaskLogDetail(s scanner) (*model.TaskLogDetail, error) {
	var d model.TaskLogDetail
	err := s.Scan(
		&d.ID, &d.TaskID, &d.UserID, &d.DateDone, &d.CreatedAt,
		&d.TaskName, &d.Point, &d.PlaceName, &d.BuildingName, &d.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *TaskLogStore) listDetails(ctx context.Context, query string, args ...any) ([]model.TaskLogDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list task logs: %w", err)
	}
	defer rows.Close()

	var logs []model.TaskLogDetail
	for rows.Next() {
		d, err := scanTaskLogDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task log: %w", err)
		}
		logs = append(logs, *d)
	}
	return logs, rows.Err()
}

// List returns every completion, newest first.
func (s *TaskLogStore) List(ctx context.Context) ([]model.TaskLogDetail, error) {
	return s.listDetails(ctx, taskLogDetailSelect+` ORDER BY l.date_done DESC, l.id DESC`)
}

// ListSince returns completions done at or after since, newest first.
func (s *TaskLogStore) ListSince(ctx context.Context, since time.Time) ([]model.TaskLogDetail, error) {
	return s.listDetails(ctx,
		taskLogDetailSelect+` WHERE l.date_done >= ? ORDER BY l.date_done DESC, l.id DESC`,
		utc(since),
	)
}

func (s *TaskLogStore) ListByUser(ctx context.Context, userID int64) ([]model.TaskLogDetail, error) {
	return s.listDetails(ctx,
		taskLogDetailSelect+` WHERE l.user_id = ? ORDER BY l.date_done DESC, l.id DESC`,
		userID,
	)
}

// ListAll returns the bare completion records used by the point ledger.
func (s *TaskLogStore) ListAll(ctx context.Context) ([]model.TaskLog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskLogCols+` FROM task_logs l ORDER BY l.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list task logs: %w", err)
	}
	defer rows.Close()

	var logs []model.TaskLog
	for rows.Next() {
		l, err := scanTaskLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (s *TaskLogStore) GetDetail(ctx context.Context, id int64) (*model.TaskLogDetail, error) {
	row := s.db.QueryRowContext(ctx, taskLogDetailSelect+` WHERE l.id = ?`, id)
	d, err := scanTaskLogDetail(row)
	if err != nil {
		return nil, fmt.Errorf("get task log: %w", err)
	}
	return d, nil
}

func (s *TaskLogStore) Create(ctx context.Context, taskID, userID int64, dateDone time.Time) (*model.TaskLogDetail, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO task_logs (task_id, user_id, date_done, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		taskID, userID, utc(dateDone), utc(time.Now()),
	).Scan(&id)
	if err != nil {
		return nil, wrap("insert task log", err)
	}
	return s.GetDetail(ctx, id)
}

// LatestByTask returns the most recent completion time of every active task
// that has been completed at least once.
func (s *TaskLogStore) LatestByTask(ctx context.Context) (map[int64]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.task_id, l.date_done
		 FROM task_logs l
		 JOIN tasks t ON t.id = l.task_id
		 WHERE `+activeTask+`
		   AND l.id = (
		     SELECT l2.id FROM task_logs l2
		     WHERE l2.task_id = l.task_id
		     ORDER BY l2.date_done DESC, l2.id DESC
		     LIMIT 1
		   )`,
	)
	if err != nil {
		return nil, fmt.Errorf("latest task logs: %w", err)
	}
	defer rows.Close()

	latest := make(map[int64]time.Time)
	for rows.Next() {
		var taskID int64
		var done time.Time
		if err := rows.Scan(&taskID, &done); err != nil {
			return nil, fmt.Errorf("scan latest task log: %w", err)
		}
		latest[taskID] = done
	}
	return latest, rows.Err()
}

func (s *TaskLogStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM task_logs WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count task logs: %w", err)
	}
	return n, nil
}
