package service

import (
	"context"
	"testing"
	"time"
)

func TestMomPointsScenario(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, _, task, mom := seed(t, s)

	a := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)
	s.CreateTaskLog(ctx, task.ID, mom.ID, &a)
	s.CreateTaskLog(ctx, task.ID, mom.ID, &b)
	if _, err := s.CreatePointUsage(ctx, mom.ID, 5, "Ice cream"); err != nil {
		t.Fatalf("create point usage: %v", err)
	}

	rankings, err := s.Rankings(ctx)
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if len(rankings) != 1 {
		t.Fatalf("rankings = %d, want 1", len(rankings))
	}
	r := rankings[0]
	if r.EarnedPoints != 20 || r.UsedPoints != 5 || r.RemainingPoints != 15 || r.TaskCount != 2 {
		t.Errorf("mom = %+v, want earned 20 used 5 remaining 15 count 2", r)
	}
}

func TestPointChangeIsRetroactive(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, p, task, mom := seed(t, s)
	s.CreateTaskLog(ctx, task.ID, mom.ID, nil)

	if _, err := s.UpdateTask(ctx, task.ID, TaskInput{PlaceID: p.ID, Name: task.Name, Point: 25, CycleDays: 7}); err != nil {
		t.Fatalf("update task: %v", err)
	}
	rankings, _ := s.Rankings(ctx)
	if rankings[0].EarnedPoints != 25 {
		t.Errorf("earned = %d, want 25", rankings[0].EarnedPoints)
	}

	// Completions of deleted tasks keep counting.
	s.DeleteTask(ctx, task.ID)
	rankings, _ = s.Rankings(ctx)
	if rankings[0].EarnedPoints != 25 {
		t.Errorf("earned after delete = %d, want 25", rankings[0].EarnedPoints)
	}
}

func TestRankingTiesKeepUserOrder(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	for _, name := range []string{"Zoe", "Adam", "Mia"} {
		s.CreateUser(ctx, name)
	}

	rankings, _ := s.Rankings(ctx)
	want := []string{"Zoe", "Adam", "Mia"}
	for i, name := range want {
		if rankings[i].Name != name {
			t.Errorf("rankings[%d] = %q, want %q", i, rankings[i].Name, name)
		}
	}
}

func TestCreatePointUsageValidation(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, _, _, u := seed(t, s)

	_, err := s.CreatePointUsage(ctx, u.ID, 0, "Nothing")
	wantKind(t, err, KindValidation)
	_, err = s.CreatePointUsage(ctx, u.ID, 3, "  ")
	wantKind(t, err, KindValidation)
	_, err = s.CreatePointUsage(ctx, 999, 3, "Snack")
	wantKind(t, err, KindNotFound)

	// Overspending is allowed.
	if _, err := s.CreatePointUsage(ctx, u.ID, 50, "Video game"); err != nil {
		t.Fatalf("create point usage: %v", err)
	}
	rankings, _ := s.Rankings(ctx)
	if rankings[0].RemainingPoints != -50 {
		t.Errorf("remaining = %d, want -50", rankings[0].RemainingPoints)
	}
}

func TestCreateTaskLogDefaultsToNow(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, _, task, u := seed(t, s)
	now := time.Date(2026, 2, 4, 15, 30, 0, 0, time.UTC)
	setClock(s, now)

	l, err := s.CreateTaskLog(ctx, task.ID, u.ID, nil)
	if err != nil {
		t.Fatalf("create task log: %v", err)
	}
	if !l.DateDone.Equal(now) {
		t.Errorf("date_done = %v, want %v", l.DateDone, now)
	}

	_, err = s.CreateTaskLog(ctx, task.ID, 999, nil)
	wantKind(t, err, KindNotFound)
	_, err = s.CreateTaskLog(ctx, 0, u.ID, nil)
	wantKind(t, err, KindValidation)

	logs, _ := s.ListTaskLogs(ctx)
	if len(logs) != 1 {
		t.Errorf("logs = %d, want 1", len(logs))
	}
}

func TestPointsUpperBound(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, p, task, mom := seed(t, s)

	_, err := s.CreateTask(ctx, TaskInput{PlaceID: p.ID, Name: "Paint house", Point: MaxPoints + 1, CycleDays: 365})
	wantKind(t, err, KindValidation)
	if err.(*Error).Field != "point" {
		t.Errorf("field = %q, want point", err.(*Error).Field)
	}
	_, err = s.UpdateTask(ctx, task.ID, TaskInput{PlaceID: p.ID, Name: task.Name, Point: MaxPoints + 1, CycleDays: 7})
	wantKind(t, err, KindValidation)

	_, err = s.CreatePointUsage(ctx, mom.ID, MaxPoints+1, "Everything")
	wantKind(t, err, KindValidation)
	if err.(*Error).Field != "points_used" {
		t.Errorf("field = %q, want points_used", err.(*Error).Field)
	}

	big, err := s.CreateTask(ctx, TaskInput{PlaceID: p.ID, Name: "Paint house", Point: MaxPoints, CycleDays: 365})
	if err != nil {
		t.Fatalf("create task at the limit: %v", err)
	}
	s.CreateTaskLog(ctx, big.ID, mom.ID, nil)
	s.CreateTaskLog(ctx, big.ID, mom.ID, nil)
	if _, err := s.CreatePointUsage(ctx, mom.ID, MaxPoints, "Vacation"); err != nil {
		t.Fatalf("create point usage at the limit: %v", err)
	}

	rankings, err := s.Rankings(ctx)
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	r := rankings[0]
	if r.EarnedPoints != 2*MaxPoints || r.RemainingPoints != MaxPoints {
		t.Errorf("mom = %+v, want earned %d remaining %d", r, 2*MaxPoints, MaxPoints)
	}
}
