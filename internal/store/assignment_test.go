package store

import (
	"context"
	"errors"
	"testing"
)

func TestAssignmentCreateDetail(t *testing.T) {
	f := setupFixture(t)
	as := NewAssignmentStore(f.db)

	a, err := as.Create(context.Background(), f.task.ID, f.user.ID)
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if a.UserName != "Alice" || a.TaskName != "Wipe counters" {
		t.Errorf("user/task = %q/%q", a.UserName, a.TaskName)
	}
	if a.PlaceName != "Kitchen" || a.BuildingName != "Main House" {
		t.Errorf("place/building = %q/%q", a.PlaceName, a.BuildingName)
	}
}

func TestAssignmentDuplicatePair(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	as := NewAssignmentStore(f.db)

	if _, err := as.Create(ctx, f.task.ID, f.user.ID); err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if _, err := as.Create(ctx, f.task.ID, f.user.ID); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestAssignmentListsAndAssignees(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	as := NewAssignmentStore(f.db)
	bob, _ := NewUserStore(f.db).Create(ctx, "Bob")

	as.Create(ctx, f.task.ID, f.user.ID)
	as.Create(ctx, f.task.ID, bob.ID)

	byTask, err := as.ListByTask(ctx, f.task.ID)
	if err != nil {
		t.Fatalf("list by task: %v", err)
	}
	if len(byTask) != 2 {
		t.Fatalf("by task = %d, want 2", len(byTask))
	}

	byUser, _ := as.ListByUser(ctx, bob.ID)
	if len(byUser) != 1 || byUser[0].UserName != "Bob" {
		t.Errorf("by user = %+v", byUser)
	}

	assignees, err := as.Assignees(ctx)
	if err != nil {
		t.Fatalf("assignees: %v", err)
	}
	got := assignees[f.task.ID]
	if len(got) != 2 || got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Errorf("assignees = %+v", got)
	}
}

func TestAssignmentDelete(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	as := NewAssignmentStore(f.db)

	a, _ := as.Create(ctx, f.task.ID, f.user.ID)
	if err := as.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete assignment: %v", err)
	}
	if got, _ := as.GetByID(ctx, a.ID); got != nil {
		t.Error("assignment still exists")
	}
	if n, _ := as.CountByUser(ctx, f.user.ID); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}
