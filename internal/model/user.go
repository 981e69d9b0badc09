package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserDetail is a user with everything that references them.
type UserDetail struct {
	User
	Assignments []AssignmentDetail `json:"assignments"`
	TaskLogs    []TaskLogDetail    `json:"task_logs"`
	PointUsages []PointUsage       `json:"point_usages"`
	Points      UserRanking        `json:"points"`
}
