package model

import "time"

type Place struct {
	ID          int64     `json:"id"`
	BuildingID  int64     `json:"building_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlaceSummary is a place with the number of active tasks it owns.
type PlaceSummary struct {
	Place
	TaskCount int `json:"task_count"`
}

// PlaceDetail is a place with its building and active tasks expanded.
type PlaceDetail struct {
	Place
	Building Building     `json:"building"`
	Tasks    []TaskDetail `json:"tasks"`
}
