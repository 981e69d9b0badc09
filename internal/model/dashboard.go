package model

import "time"

type DueStatus string

const (
	DueStatusDue     DueStatus = "due"
	DueStatusOverdue DueStatus = "overdue"
	DueStatusNotDue  DueStatus = "not_due"
)

// DueTask is an active task annotated with its completion state for a given day.
type DueTask struct {
	TaskDetail
	Status     DueStatus  `json:"status"`
	LastDoneAt *time.Time `json:"last_done_at,omitempty"`
	NextDueAt  *time.Time `json:"next_due_at,omitempty"`
}

type Dashboard struct {
	Today             time.Time          `json:"today"`
	WeekStart         time.Time          `json:"week_start"`
	TodayTasks        []DueTask          `json:"today_tasks"`
	WeeklyTaskLogs    []TaskLogDetail    `json:"weekly_task_logs"`
	UserRankings      []UserRanking      `json:"user_rankings"`
	RecentPointUsages []PointUsageDetail `json:"recent_point_usages"`
}
