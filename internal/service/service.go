// Package service is the CRUD layer between the transport and the stores. It
// validates input, resolves references, enforces delete preconditions and
// turns every failure into an *Error.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/store"
)

// MaxPoints bounds task point values and point usages. It matches the 32-bit
// INTEGER columns in PostgreSQL, so both dialects accept the same range.
const MaxPoints = math.MaxInt32

type Service struct {
	db          *database.DB
	buildings   *store.BuildingStore
	places      *store.PlaceStore
	tasks       *store.TaskStore
	users       *store.UserStore
	assignments *store.AssignmentStore
	taskLogs    *store.TaskLogStore
	pointUsages *store.PointUsageStore

	loc *time.Location
	now func() time.Time
}

// New builds a Service over db. Due dates and the dashboard's "today" are
// evaluated in loc; a nil loc means time.Local.
func New(db *database.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		db:          db,
		buildings:   store.NewBuildingStore(db),
		places:      store.NewPlaceStore(db),
		tasks:       store.NewTaskStore(db),
		users:       store.NewUserStore(db),
		assignments: store.NewAssignmentStore(db),
		taskLogs:    store.NewTaskLogStore(db),
		pointUsages: store.NewPointUsageStore(db),
		loc:         loc,
		now:         time.Now,
	}
}

// Location returns the time zone used for day boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the current time in the service's location.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Ping checks that the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func requireName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, field+" is required")
	}
	return value, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return invalid(field, field+" is required")
	}
	return nil
}

// requirePoints checks that n is between 1 and MaxPoints.
func requirePoints(field string, n int) error {
	if n < 1 {
		return invalid(field, field+" must be at least 1")
	}
	if n > MaxPoints {
		return invalid(field, fmt.Sprintf("%s must be at most %d", field, MaxPoints))
	}
	return nil
}
