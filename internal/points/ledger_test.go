package points

import (
	"testing"

	"github.com/dukerupert/choreboard/internal/model"
)

func TestSummarizeScenario(t *testing.T) {
	mom := model.User{ID: 1, Name: "Mom"}
	logs := []model.TaskLog{
		{ID: 1, TaskID: 10, UserID: 1},
		{ID: 2, TaskID: 10, UserID: 1},
	}
	usages := []model.PointUsage{{ID: 1, UserID: 1, PointsUsed: 5}}
	taskPoints := map[int64]int{10: 10}

	got := Summarize(mom, logs, usages, taskPoints)

	if got.EarnedPoints != 20 {
		t.Errorf("earned = %d, want 20", got.EarnedPoints)
	}
	if got.UsedPoints != 5 {
		t.Errorf("used = %d, want 5", got.UsedPoints)
	}
	if got.RemainingPoints != 15 {
		t.Errorf("remaining = %d, want 15", got.RemainingPoints)
	}
	if got.TaskCount != 2 {
		t.Errorf("task count = %d, want 2", got.TaskCount)
	}
	if got.Name != "Mom" || got.UserID != 1 {
		t.Errorf("user = %d %q, want 1 %q", got.UserID, got.Name, "Mom")
	}
}

func TestRankOrdersByRemainingDescending(t *testing.T) {
	users := []model.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Carol"},
	}
	logs := []model.TaskLog{
		{TaskID: 10, UserID: 1},
		{TaskID: 20, UserID: 2},
		{TaskID: 20, UserID: 3},
		{TaskID: 10, UserID: 3},
	}
	usages := []model.PointUsage{
		{UserID: 3, PointsUsed: 40},
	}
	taskPoints := map[int64]int{10: 5, 20: 30}

	got := Rank(users, logs, usages, taskPoints)

	wantOrder := []string{"Bob", "Alice", "Carol"}
	wantRemaining := []int{30, 5, -5}
	for i := range wantOrder {
		if got[i].Name != wantOrder[i] {
			t.Errorf("rank[%d] = %q, want %q", i, got[i].Name, wantOrder[i])
		}
		if got[i].RemainingPoints != wantRemaining[i] {
			t.Errorf("rank[%d] remaining = %d, want %d", i, got[i].RemainingPoints, wantRemaining[i])
		}
		if got[i].RemainingPoints != got[i].EarnedPoints-got[i].UsedPoints {
			t.Errorf("rank[%d] remaining != earned - used", i)
		}
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	users := []model.User{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
		{ID: 4, Name: "D"},
	}
	logs := []model.TaskLog{{TaskID: 1, UserID: 3}}
	taskPoints := map[int64]int{1: 3}

	got := Rank(users, logs, nil, taskPoints)

	want := []int64{3, 1, 2, 4}
	for i, id := range want {
		if got[i].UserID != id {
			t.Errorf("rank[%d] = %d, want %d", i, got[i].UserID, id)
		}
	}
}

func TestRankUsesCurrentTaskPoints(t *testing.T) {
	users := []model.User{{ID: 1, Name: "Mom"}}
	logs := []model.TaskLog{{TaskID: 10, UserID: 1}}

	before := Rank(users, logs, nil, map[int64]int{10: 10})
	after := Rank(users, logs, nil, map[int64]int{10: 25})

	if before[0].EarnedPoints != 10 || after[0].EarnedPoints != 25 {
		t.Errorf("earned before/after = %d/%d, want 10/25", before[0].EarnedPoints, after[0].EarnedPoints)
	}
}

func TestRankIgnoresUnknownUsers(t *testing.T) {
	users := []model.User{{ID: 1, Name: "Mom"}}
	logs := []model.TaskLog{{TaskID: 10, UserID: 99}}
	usages := []model.PointUsage{{UserID: 99, PointsUsed: 3}}

	got := Rank(users, logs, usages, map[int64]int{10: 10})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].EarnedPoints != 0 || got[0].UsedPoints != 0 || got[0].TaskCount != 0 {
		t.Errorf("got %+v, want zero totals", got[0])
	}
}

func TestRankNoUsers(t *testing.T) {
	got := Rank(nil, nil, nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}
