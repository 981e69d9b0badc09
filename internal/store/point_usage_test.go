package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPointUsageCreateAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	ps := NewPointUsageStore(f.db)

	first := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	u, err := ps.Create(ctx, f.user.ID, 5, "Ice cream", first)
	if err != nil {
		t.Fatalf("create usage: %v", err)
	}
	if u.UserName != "Alice" || u.PointsUsed != 5 {
		t.Errorf("usage = %+v", u)
	}
	ps.Create(ctx, f.user.ID, 3, "Movie", second)

	list, err := ps.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Description != "Movie" {
		t.Errorf("list = %+v", list)
	}

	recent, _ := ps.Recent(ctx, 1)
	if len(recent) != 1 || recent[0].Description != "Movie" {
		t.Errorf("recent = %+v", recent)
	}

	all, _ := ps.ListAll(ctx)
	if len(all) != 2 || all[0].Description != "Ice cream" {
		t.Errorf("all = %+v", all)
	}

	byUser, _ := ps.ListByUser(ctx, f.user.ID)
	if len(byUser) != 2 {
		t.Errorf("by user = %d, want 2", len(byUser))
	}
	if n, _ := ps.CountByUser(ctx, f.user.ID); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestPointUsageUnknownUser(t *testing.T) {
	ps := NewPointUsageStore(setupTestDB(t))

	_, err := ps.Create(context.Background(), 999, 1, "x", time.Now())
	if !errors.Is(err, ErrReference) {
		t.Fatalf("err = %v, want ErrReference", err)
	}
}
