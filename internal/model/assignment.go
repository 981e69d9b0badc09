package model

import "time"

type Assignment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentDetail is an assignment with its user and task location expanded.
type AssignmentDetail struct {
	Assignment
	UserName     string `json:"user_name"`
	TaskName     string `json:"task_name"`
	PlaceName    string `json:"place_name"`
	BuildingName string `json:"building_name"`
}
