package service

import (
	"context"
	"testing"
)

func TestDuplicateAssignmentScenario(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, _, task, u := seed(t, s)

	if _, err := s.CreateAssignment(ctx, task.ID, u.ID); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	_, err := s.CreateAssignment(ctx, task.ID, u.ID)
	wantKind(t, err, KindConflict)

	list, err := s.ListTaskAssignments(ctx, task.ID)
	if err != nil {
		t.Fatalf("list task assignments: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("assignments = %d, want 1", len(list))
	}
}

func TestCreateAssignmentReferences(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, _, task, u := seed(t, s)

	_, err := s.CreateAssignment(ctx, 0, u.ID)
	wantKind(t, err, KindValidation)
	_, err = s.CreateAssignment(ctx, task.ID, 0)
	wantKind(t, err, KindValidation)
	_, err = s.CreateAssignment(ctx, 999, u.ID)
	wantKind(t, err, KindNotFound)
	_, err = s.CreateAssignment(ctx, task.ID, 999)
	wantKind(t, err, KindNotFound)
	_, err = s.ListTaskAssignments(ctx, 999)
	wantKind(t, err, KindNotFound)
}

func TestDeleteAssignments(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, p, task, u := seed(t, s)
	other, _ := s.CreateTask(ctx, TaskInput{PlaceID: p.ID, Name: "Mop", Point: 3, CycleDays: 3})

	a, _ := s.CreateAssignment(ctx, task.ID, u.ID)
	b, _ := s.CreateAssignment(ctx, other.ID, u.ID)

	// The assignment exists but belongs to another task.
	wantKind(t, s.DeleteTaskAssignment(ctx, other.ID, a.ID), KindNotFound)

	if err := s.DeleteTaskAssignment(ctx, task.ID, a.ID); err != nil {
		t.Fatalf("delete task assignment: %v", err)
	}
	if err := s.DeleteAssignment(ctx, b.ID); err != nil {
		t.Fatalf("delete assignment: %v", err)
	}
	wantKind(t, s.DeleteAssignment(ctx, b.ID), KindNotFound)

	list, _ := s.ListAssignments(ctx)
	if len(list) != 0 {
		t.Errorf("assignments = %d, want 0", len(list))
	}
}
