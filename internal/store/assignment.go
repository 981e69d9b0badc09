package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
)

type AssignmentStore struct {
	db *database.DB
}

func NewAssignmentStore(db *database.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

const assignmentCols = `a.id, a.task_id, a.user_id, a.created_at`

const assignmentDetailSelect = `SELECT ` + assignmentCols + `, u.name, t.name, p.name, b.name
	FROM assignments a
	JOIN users u ON u.id = a.user_id
	JOIN tasks t ON t.id = a.task_id
	JOIN places p ON p.id = t.place_id
	JOIN buildings b ON b.id = p.building_id`

func scanAssignment(s scanner) (*model.Assignment, error) {
	var a model.Assignment
	if err := s.Scan(&a.ID, &a.TaskID, &a.UserID, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAssignmentDetail(s scanner) (*model.AssignmentDetail, error) {
	var d model.AssignmentDetail
	err := s.Scan(&d.ID, &d.TaskID, &d.UserID, &d.CreatedAt, &d.UserName, &d.TaskName, &d.PlaceName, &d.BuildingName)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *AssignmentStore) listDetails(ctx context.Context, query string, args ...any) ([]model.AssignmentDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.AssignmentDetail
	for rows.Next() {
		d, err := scanAssignmentDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, *d)
	}
	return assignments, rows.Err()
}

// List returns the assignments of all active tasks.
func (s *AssignmentStore) List(ctx context.Context) ([]model.AssignmentDetail, error) {
	return s.listDetails(ctx, assignmentDetailSelect+` WHERE `+activeTask+` ORDER BY a.id ASC`)
}

func (s *AssignmentStore) ListByTask(ctx context.Context, taskID int64) ([]model.AssignmentDetail, error) {
	return s.listDetails(ctx, assignmentDetailSelect+` WHERE a.task_id = ? AND `+activeTask+` ORDER BY a.id ASC`, taskID)
}

// ListByUser returns a user's assignments to active tasks.
func (s *AssignmentStore) ListByUser(ctx context.Context, userID int64) ([]model.AssignmentDetail, error) {
	return s.listDetails(ctx, assignmentDetailSelect+` WHERE a.user_id = ? AND `+activeTask+` ORDER BY a.id ASC`, userID)
}

// Assignees returns the assignees of every active task keyed by task id.
func (s *AssignmentStore) Assignees(ctx context.Context) (map[int64][]model.Assignee, error) {
	assignments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	byTask := make(map[int64][]model.Assignee)
	for _, a := range assignments {
		byTask[a.TaskID] = append(byTask[a.TaskID], model.Assignee{
			AssignmentID: a.ID,
			UserID:       a.UserID,
			Name:         a.UserName,
		})
	}
	return byTask, nil
}

func (s *AssignmentStore) GetByID(ctx context.Context, id int64) (*model.Assignment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+assignmentCols+` FROM assignments a WHERE a.id = ?`, id)
	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

func (s *AssignmentStore) GetDetail(ctx context.Context, id int64) (*model.AssignmentDetail, error) {
	row := s.db.QueryRowContext(ctx, assignmentDetailSelect+` WHERE a.id = ?`, id)
	d, err := scanAssignmentDetail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return d, nil
}

// Create assigns a user to a task. Assigning the same pair twice returns an
// error wrapping ErrDuplicate.
func (s *AssignmentStore) Create(ctx context.Context, taskID, userID int64) (*model.AssignmentDetail, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO assignments (task_id, user_id, created_at) VALUES (?, ?, ?) RETURNING id`,
		taskID, userID, utc(time.Now()),
	).Scan(&id)
	if err != nil {
		return nil, wrap("insert assignment", err)
	}
	return s.GetDetail(ctx, id)
}

func (s *AssignmentStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// CountByUser counts every assignment of a user, including those to
// soft-deleted tasks.
func (s *AssignmentStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignments WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return n, nil
}
