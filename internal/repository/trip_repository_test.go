package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"trip_ledger/internal/config"
	"trip_ledger/internal/models"
)

// setupTestDB opens a throwaway SQLite database with the trip tables migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.InitDB(config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to open sqlite DB: %v", err)
	}
	return db
}

func newTrip(plate string, date models.Date, status string) *models.TripRecord {
	return &models.TripRecord{
		Date:                    date,
		PlateNumber:             plate,
		Origin:                  "Jakarta",
		Destination:             "Bandung",
		Cost:                    40,
		Price:                   100,
		Status:                  status,
		DeliveryStatus:          models.DeliveryStatusDefault,
		DeliveryStatusUpdatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestCreateRejectsSamePlateSameDay(t *testing.T) {
	repo := NewTripRepository(setupTestDB(t))
	ctx := context.Background()
	day := models.NewDate(2025, time.March, 14)

	if err := repo.Create(ctx, newTrip("B 1234 XY", day, models.StatusPending)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := repo.Create(ctx, newTrip("B 1234 XY", day, models.StatusConfirmed))
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}

	// other plate same day, same plate other day
	if err := repo.Create(ctx, newTrip("D 9 AB", day, models.StatusPending)); err != nil {
		t.Fatalf("other plate rejected: %v", err)
	}
	if err := repo.Create(ctx, newTrip("B 1234 XY", models.NewDate(2025, time.March, 15), models.StatusPending)); err != nil {
		t.Fatalf("next day rejected: %v", err)
	}
}

func TestFindSaveDelete(t *testing.T) {
	repo := NewTripRepository(setupTestDB(t))
	ctx := context.Background()

	rec := newTrip("B 1", models.NewDate(2025, time.March, 1), models.StatusPending)
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Date.String() != "2025-03-01" || got.PlateNumber != "B 1" {
		t.Fatalf("unexpected record %+v", got)
	}
	if !got.DeliveryStatusUpdatedAt.Equal(rec.DeliveryStatusUpdatedAt) {
		t.Fatalf("timestamp round trip: got %v want %v", got.DeliveryStatusUpdatedAt, rec.DeliveryStatusUpdatedAt)
	}

	got.Status = models.StatusConfirmed
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, _ := repo.FindByID(ctx, rec.ID)
	if again.Status != models.StatusConfirmed {
		t.Fatalf("status not saved: %s", again.Status)
	}

	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestListDatedAndBetween(t *testing.T) {
	repo := NewTripRepository(setupTestDB(t))
	ctx := context.Background()

	dates := []models.Date{
		models.NewDate(2025, time.February, 28),
		models.NewDate(2025, time.March, 1),
		models.NewDate(2025, time.March, 31),
		models.NewDate(2025, time.April, 1),
	}
	for i, d := range dates {
		if err := repo.Create(ctx, newTrip(string(rune('A'+i)), d, models.StatusPending)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := repo.ListDated(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 || all[0].Date.String() != "2025-04-01" || all[3].Date.String() != "2025-02-28" {
		t.Fatalf("unexpected order %v", all)
	}

	march, err := repo.ListBetween(ctx, models.NewDate(2025, time.March, 1), models.NewDate(2025, time.March, 31))
	if err != nil {
		t.Fatalf("between: %v", err)
	}
	if len(march) != 2 || march[0].Date.String() != "2025-03-01" || march[1].Date.String() != "2025-03-31" {
		t.Fatalf("unexpected march records %v", march)
	}
}
