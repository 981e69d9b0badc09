package model

import "time"

type Building struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// BuildingDetail is a building with its places expanded.
type BuildingDetail struct {
	Building
	Places []PlaceSummary `json:"places"`
}
