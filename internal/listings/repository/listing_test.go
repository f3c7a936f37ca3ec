package repository

import (
	"strings"
	"testing"
	"time"

	"resourcehub/pkg/model"
)

func baseListing() *model.Listing {
	return &model.Listing{
		ID:              "id-1",
		Revision:        "3-aabbccddeeff",
		Name:            "ABC Pharmacy",
		OwnerID:         "u1",
		ContactNo:       "555",
		Category:        "Food",
		SubCategory:     "medical_stores",
		ServingCapacity: 10,
		InQueue:         2,
		InStore:         4,
		Marker:          model.MarkerGreen,
		Location:        "12.9,77.6",
		Password:        "hashed",
		CreatedAt:       time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMergeListing_EmptyUpdatePreservesEverything(t *testing.T) {
	current := baseListing()
	next := mergeListing(current, &model.ListingUpdate{}, OccupancyUnchanged)

	if *next != *current {
		t.Errorf("empty update changed the document:\n got %+v\nwant %+v", next, current)
	}
}

func TestMergeListing_PresentFieldsOverwrite(t *testing.T) {
	current := baseListing()
	capacity := 25
	next := mergeListing(current, &model.ListingUpdate{
		Name:            "XYZ Pharmacy",
		ServingCapacity: &capacity,
	}, OccupancyUnchanged)

	if next.Name != "XYZ Pharmacy" {
		t.Errorf("Name = %s, want XYZ Pharmacy", next.Name)
	}
	if next.ServingCapacity != 25 {
		t.Errorf("ServingCapacity = %d, want 25", next.ServingCapacity)
	}
	// Absent fields carry over verbatim.
	if next.ContactNo != current.ContactNo || next.Location != current.Location {
		t.Error("absent fields should carry over unchanged")
	}
	if next.InStore != current.InStore {
		t.Errorf("InStore = %d, want %d (unchanged)", next.InStore, current.InStore)
	}
}

func TestMergeListing_Occupancy(t *testing.T) {
	current := baseListing()

	in := mergeListing(current, &model.ListingUpdate{}, OccupancyIncrement)
	if in.InStore != 5 {
		t.Errorf("check-in: InStore = %d, want 5", in.InStore)
	}

	out := mergeListing(in, &model.ListingUpdate{}, OccupancyDecrement)
	if out.InStore != current.InStore {
		t.Errorf("check-in then check-out should restore InStore, got %d want %d", out.InStore, current.InStore)
	}
}

func TestMergeListing_DecrementFloorsAtZero(t *testing.T) {
	current := baseListing()
	current.InStore = 0

	next := mergeListing(current, &model.ListingUpdate{}, OccupancyDecrement)
	if next.InStore != 0 {
		t.Errorf("InStore = %d, want 0 (never negative)", next.InStore)
	}
}

func TestMergeListing_ExplicitInStoreWinsOverOccupancy(t *testing.T) {
	current := baseListing()
	inStore := 7

	next := mergeListing(current, &model.ListingUpdate{InStore: &inStore}, OccupancyIncrement)
	if next.InStore != 7 {
		t.Errorf("InStore = %d, want explicit 7", next.InStore)
	}
}

func TestRevisionTokens(t *testing.T) {
	first := firstRevision()
	if !strings.HasPrefix(first, "1-") {
		t.Errorf("first revision should start at generation 1, got %s", first)
	}

	second := nextRevision(first)
	if !strings.HasPrefix(second, "2-") {
		t.Errorf("next revision should bump the generation, got %s", second)
	}
	if second == first {
		t.Error("revision must change on every write")
	}

	// Unparseable tokens still produce a fresh, different token.
	recovered := nextRevision("garbage")
	if recovered == "garbage" || recovered == "" {
		t.Errorf("nextRevision on a malformed token = %q", recovered)
	}
}

func TestNextRevision_Unique(t *testing.T) {
	a := nextRevision("1-aaa")
	b := nextRevision("1-aaa")
	if a == b {
		t.Error("two writes from the same base revision must not collide")
	}
}
