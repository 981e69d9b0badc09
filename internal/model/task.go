package model

import "time"

type Task struct {
	ID        int64      `json:"id"`
	PlaceID   int64      `json:"place_id"`
	Name      string     `json:"name"`
	Point     int        `json:"point"`
	CycleDays int        `json:"cycle_days"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Active reports whether the task has not been soft-deleted.
func (t Task) Active() bool {
	return t.DeletedAt == nil
}

// Assignee is a user assigned to a task, as shown alongside the task.
type Assignee struct {
	AssignmentID int64  `json:"assignment_id"`
	UserID       int64  `json:"user_id"`
	Name         string `json:"name"`
}

// TaskDetail is a task with its place, building and assignees expanded.
type TaskDetail struct {
	Task
	PlaceName    string     `json:"place_name"`
	BuildingID   int64      `json:"building_id"`
	BuildingName string     `json:"building_name"`
	Assignees    []Assignee `json:"assignees"`
}
