package service

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	_, p, task, u := seed(t, s)
	fresh, _ := s.CreateTask(ctx, TaskInput{PlaceID: p.ID, Name: "Windows", Point: 5, CycleDays: 30})

	// Thursday 2026-02-05; the week started Sunday 2026-02-01.
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	setClock(s, now)

	lastWeek := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	thisWeek := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	s.CreateTaskLog(ctx, task.ID, u.ID, &lastWeek)
	s.CreateTaskLog(ctx, fresh.ID, u.ID, &thisWeek)

	for i := range 12 {
		if _, err := s.CreatePointUsage(ctx, u.ID, 1, fmt.Sprintf("treat %d", i)); err != nil {
			t.Fatalf("create point usage: %v", err)
		}
	}

	d, err := s.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if !d.WeekStart.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start = %v", d.WeekStart)
	}
	// The weekly task was last done eight days ago; the monthly one three days ago.
	if len(d.TodayTasks) != 1 || d.TodayTasks[0].ID != task.ID {
		t.Fatalf("today tasks = %+v", d.TodayTasks)
	}
	if len(d.WeeklyTaskLogs) != 1 || d.WeeklyTaskLogs[0].TaskID != fresh.ID {
		t.Errorf("weekly logs = %+v", d.WeeklyTaskLogs)
	}
	if len(d.RecentPointUsages) != 10 {
		t.Errorf("recent usages = %d, want 10", len(d.RecentPointUsages))
	}
	if len(d.UserRankings) != 1 || d.UserRankings[0].EarnedPoints != 15 {
		t.Errorf("rankings = %+v", d.UserRankings)
	}
}

func TestDashboardEmpty(t *testing.T) {
	s := setupService(t)

	d, err := s.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.TodayTasks == nil || d.WeeklyTaskLogs == nil || d.UserRankings == nil || d.RecentPointUsages == nil {
		t.Errorf("empty dashboard should have non-nil lists: %+v", d)
	}
}
