package model

import "time"

// PointUsage is a debit against a user's earned points.
type PointUsage struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	PointsUsed  int       `json:"points_used"`
	Description string    `json:"description"`
	UsedAt      time.Time `json:"used_at"`
}

type PointUsageDetail struct {
	PointUsage
	UserName string `json:"user_name"`
}

// UserRanking is one row of the point ledger.
type UserRanking struct {
	UserID          int64  `json:"user_id"`
	Name            string `json:"name"`
	EarnedPoints    int    `json:"earned_points"`
	UsedPoints      int    `json:"used_points"`
	RemainingPoints int    `json:"remaining_points"`
	TaskCount       int    `json:"task_count"`
}
