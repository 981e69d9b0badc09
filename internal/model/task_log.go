package model

import "time"

// TaskLog records that a user completed a task. Logs are never updated or deleted.
type TaskLog struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	DateDone  time.Time `json:"date_done"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskLogDetail struct {
	TaskLog
	TaskName     string `json:"task_name"`
	Point        int    `json:"point"`
	PlaceName    string `json:"place_name"`
	BuildingName string `json:"building_name"`
	UserName     string `json:"user_name"`
}
