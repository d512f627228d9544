package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pinky890114/Xianluo/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	// One in-memory connection, or the pool would see separate databases.
	s.DB.SetMaxOpenConns(1)
	if err := s.Migrate("../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertListRoundTrip(t *testing.T) {
	s := testStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	older := &models.Commission{
		ClientName: "Ben", Title: "Dragon plush", Status: "Queued",
		CreatedAt: now.Add(-time.Hour), LastUpdated: now.Add(-time.Hour),
	}
	if _, err := s.InsertCommission(older); err != nil {
		t.Fatalf("insert: %v", err)
	}

	newer := &models.Commission{
		ClientName: "Mina", Contact: "@mina", Title: "Tiger charm",
		Description: "orange, small", Type: "Badge", Price: 120,
		Status: "Applying", CreatedAt: now, LastUpdated: now,
		ImageURLs: []string{"/u/a.jpg", "/u/b.jpg"}, Source: "nocy",
	}
	id, err := s.InsertCommission(newer)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatal("empty id assigned")
	}

	list, err := s.ListCommissions()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d records, want 2", len(list))
	}
	// Creation-descending order.
	if list[0].ClientName != "Mina" || list[1].ClientName != "Ben" {
		t.Fatalf("order wrong: %s, %s", list[0].ClientName, list[1].ClientName)
	}
	got := list[0]
	if got.ID != id || got.Price != 120 || got.Source != "nocy" || got.Contact != "@mina" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.ImageURLs) != 2 || got.ImageURLs[1] != "/u/b.jpg" {
		t.Fatalf("image urls mismatch: %v", got.ImageURLs)
	}
}

func TestPatchCommission(t *testing.T) {
	s := testStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	id, err := s.InsertCommission(&models.Commission{
		ClientName: "Mina", Title: "Tiger charm", Status: "Applying",
		CreatedAt: now, LastUpdated: now,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	newStatus := "Discussion"
	price := 150.0
	progress := []string{"/u/wip.jpg"}
	later := now.Add(time.Hour)
	err = s.PatchCommission(id, models.CommissionPatch{
		Status: &newStatus, Price: &price, ProgressImages: &progress,
	}, later)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	list, err := s.ListCommissions()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := list[0]
	if got.Status != "Discussion" || got.Price != 150 {
		t.Fatalf("patch not applied: %+v", got)
	}
	if len(got.ProgressImages) != 1 || got.ProgressImages[0] != "/u/wip.jpg" {
		t.Fatalf("progress images = %v", got.ProgressImages)
	}
	if !got.LastUpdated.Equal(later) {
		t.Fatalf("last updated = %v, want %v", got.LastUpdated, later)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created at moved to %v", got.CreatedAt)
	}
	if got.ClientName != "Mina" || got.Title != "Tiger charm" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestPatchAndDeleteMissing(t *testing.T) {
	s := testStore(t)
	title := "x"
	if err := s.PatchCommission("ghost", models.CommissionPatch{Title: &title}, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("patch missing: %v, want ErrNotFound", err)
	}
	if err := s.DeleteCommission("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing: %v, want ErrNotFound", err)
	}
}

func TestWatchSignalsOnWrite(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx, CollectionCommissions)

	now := time.Now().UTC()
	if _, err := s.InsertCommission(&models.Commission{Title: "t", CreatedAt: now, LastUpdated: now}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no change notification after insert")
	}
}

func TestShowcaseRoundTrip(t *testing.T) {
	s := testStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	id, err := s.InsertShowcaseItem("/u/gallery.jpg", now)
	if err != nil {
		t.Fatalf("insert showcase: %v", err)
	}
	items, err := s.ListShowcase()
	if err != nil {
		t.Fatalf("list showcase: %v", err)
	}
	if len(items) != 1 || items[0].URL != "/u/gallery.jpg" || items[0].ID != id {
		t.Fatalf("showcase round trip: %+v", items)
	}

	if err := s.DeleteShowcaseItem(id); err != nil {
		t.Fatalf("delete showcase: %v", err)
	}
	if err := s.DeleteShowcaseItem(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v, want ErrNotFound", err)
	}
}

func TestUsers(t *testing.T) {
	s := testStore(t)
	if err := s.CreateUser("siam", "hash", "nocy"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	u, err := s.GetUserByUsername("siam")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u == nil || u.Scope != "nocy" {
		t.Fatalf("user = %+v", u)
	}
	missing, err := s.GetUserByUsername("ghost")
	if err != nil || missing != nil {
		t.Fatalf("missing user: %+v, %v", missing, err)
	}
}
