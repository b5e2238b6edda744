package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"trip_ledger/internal/models"
)

func TestGroupByMonth(t *testing.T) {
	recs := []models.TripRecord{
		trip(1, models.NewDate(2025, time.March, 3), models.StatusPending, 1, 1),
		trip(2, models.NewDate(2025, time.January, 9), models.StatusPending, 1, 1),
		trip(3, models.NewDate(2025, time.March, 20), models.StatusConfirmed, 1, 1),
		trip(4, models.NewDate(2024, time.March, 20), models.StatusConfirmed, 1, 1),
		trip(5, models.NewDate(2025, time.January, 1), models.StatusCanceled, 1, 1),
		{ID: 6, PlateNumber: "no date"},
	}

	groups := GroupByMonth(recs)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	wantLabels := []string{"March 2025", "January 2025", "March 2024"}
	wantCounts := []int{2, 2, 1}
	for i, g := range groups {
		if g.Label != wantLabels[i] {
			t.Fatalf("group %d label = %s, want %s", i, g.Label, wantLabels[i])
		}
		if g.Count != wantCounts[i] || g.Count != len(g.Data) {
			t.Fatalf("group %s count = %d (data %d), want %d", g.Label, g.Count, len(g.Data), wantCounts[i])
		}
	}
	// newest first within a month
	if groups[0].Data[0].ID != 3 || groups[0].Data[1].ID != 1 {
		t.Fatalf("unexpected order in March 2025: %+v", groups[0].Data)
	}
}

func TestGroupedListingJSON(t *testing.T) {
	groups := GroupByMonth([]models.TripRecord{
		trip(1, models.NewDate(2025, time.March, 3), models.StatusPending, 1, 1),
		trip(2, models.NewDate(2025, time.April, 3), models.StatusPending, 1, 1),
	})
	b, err := json.Marshal(groups)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if strings.Index(s, "April 2025") > strings.Index(s, "March 2025") {
		t.Fatalf("expected newest month first: %s", s)
	}
	var decoded map[string]struct {
		Count int                 `json:"count"`
		Data  []models.TripRecord `json:"data"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["March 2025"].Count != 1 || decoded["March 2025"].Data[0].Date.String() != "2025-03-03" {
		t.Fatalf("unexpected group %+v", decoded["March 2025"])
	}
}
