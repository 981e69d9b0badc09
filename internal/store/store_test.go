package store

import (
	"context"
	"testing"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixture is a building with one place, one task and one user.
type fixture struct {
	db       *database.DB
	building *model.Building
	place    *model.Place
	task     *model.Task
	user     *model.User
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t)

	b, err := NewBuildingStore(db).Create(ctx, "Main House", "")
	if err != nil {
		t.Fatalf("create building: %v", err)
	}
	p, err := NewPlaceStore(db).Create(ctx, b.ID, "Kitchen", "")
	if err != nil {
		t.Fatalf("create place: %v", err)
	}
	task, err := NewTaskStore(db).Create(ctx, p.ID, "Wipe counters", 10, 7)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	u, err := NewUserStore(db).Create(ctx, "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return fixture{db: db, building: b, place: p, task: task, user: u}
}
