package store

import (
	"context"
	"errors"
	"testing"
)

func TestPlaceNameUniquePerBuilding(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	bs := NewBuildingStore(db)
	ps := NewPlaceStore(db)

	house, _ := bs.Create(ctx, "Main House", "")
	shed, _ := bs.Create(ctx, "Shed", "")

	if _, err := ps.Create(ctx, house.ID, "Storage", ""); err != nil {
		t.Fatalf("create place: %v", err)
	}
	if _, err := ps.Create(ctx, shed.ID, "Storage", ""); err != nil {
		t.Fatalf("same name in another building: %v", err)
	}
	_, err := ps.Create(ctx, house.ID, "Storage", "")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestPlaceUnknownBuilding(t *testing.T) {
	ps := NewPlaceStore(setupTestDB(t))

	_, err := ps.Create(context.Background(), 999, "Attic", "")
	if !errors.Is(err, ErrReference) {
		t.Fatalf("err = %v, want ErrReference", err)
	}
}

func TestPlaceListByBuilding(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	bs := NewBuildingStore(db)
	ps := NewPlaceStore(db)

	house, _ := bs.Create(ctx, "Main House", "")
	shed, _ := bs.Create(ctx, "Shed", "")
	ps.Create(ctx, house.ID, "Kitchen", "")
	ps.Create(ctx, house.ID, "Bathroom", "")
	ps.Create(ctx, shed.ID, "Workbench", "")

	places, err := ps.ListByBuilding(ctx, house.ID)
	if err != nil {
		t.Fatalf("list places: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("len = %d, want 2", len(places))
	}
	if places[0].Name != "Bathroom" || places[1].Name != "Kitchen" {
		t.Errorf("places = %q, %q; want Bathroom, Kitchen", places[0].Name, places[1].Name)
	}

	all, _ := ps.List(ctx)
	if len(all) != 3 {
		t.Errorf("all places = %d, want 3", len(all))
	}
}

func TestPlaceDeleteWithTaskFails(t *testing.T) {
	f := setupFixture(t)
	ps := NewPlaceStore(f.db)

	err := ps.Delete(context.Background(), f.place.ID)
	if !errors.Is(err, ErrReference) {
		t.Fatalf("err = %v, want ErrReference", err)
	}
}
