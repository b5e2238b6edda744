package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"trip_ledger/internal/models"
)

func trip(id uint, date models.Date, status string, price, cost int64) models.TripRecord {
	return models.TripRecord{ID: id, Date: date, PlateNumber: "B 1234 XY", Status: status, Price: price, Cost: cost}
}

func TestSummarizeMarch(t *testing.T) {
	march := models.NewDate(2025, time.March, 10)
	recs := []models.TripRecord{
		trip(1, march, models.StatusConfirmed, 100, 40),
		trip(2, march, models.StatusConfirmed, 50, 60),
		trip(3, march, models.StatusPending, 500, 1),
		trip(4, march, models.StatusCanceled, 700, 1),
	}

	rep := Summarize(recs)
	got, ok := rep.Get("March 2025")
	if !ok {
		t.Fatalf("March 2025 missing from %+v", rep)
	}
	want := MonthSummary{
		Label: "March 2025", MonthYear: "2025-03", Result: Profit, MarginSum: 50,
		CountConfirmed: 2, CountPending: 1, CountCanceled: 1,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSummarizeSkipsEmptyMonths(t *testing.T) {
	recs := []models.TripRecord{
		trip(1, models.NewDate(2024, time.January, 5), models.StatusConfirmed, 10, 5),
		trip(2, models.NewDate(2024, time.April, 5), models.StatusPending, 10, 5),
		// unknown statuses never count
		trip(3, models.NewDate(2024, time.June, 5), "archived", 10, 5),
	}
	rep := Summarize(recs)
	if len(rep) != 2 {
		t.Fatalf("expected 2 months, got %d: %+v", len(rep), rep)
	}
	for _, label := range []string{"February 2024", "March 2024", "June 2024"} {
		if _, ok := rep.Get(label); ok {
			t.Fatalf("%s should be absent", label)
		}
	}
}

func TestSummarizeZeroMarginIsProfit(t *testing.T) {
	recs := []models.TripRecord{
		trip(1, models.NewDate(2025, time.May, 1), models.StatusPending, 10, 50),
		trip(2, models.NewDate(2025, time.May, 2), models.StatusCanceled, 10, 50),
		trip(3, models.NewDate(2025, time.June, 2), models.StatusConfirmed, 80, 80),
	}
	rep := Summarize(recs)
	for _, label := range []string{"May 2025", "June 2025"} {
		s, ok := rep.Get(label)
		if !ok {
			t.Fatalf("%s missing", label)
		}
		if s.MarginSum != 0 || s.Result != Profit {
			t.Fatalf("%s: got margin=%d result=%s, want 0 PROFIT", label, s.MarginSum, s.Result)
		}
	}
}

func TestSummarizeLoss(t *testing.T) {
	rep := Summarize([]models.TripRecord{
		trip(1, models.NewDate(2025, time.July, 1), models.StatusConfirmed, 10, 11),
	})
	if rep[0].Result != Loss || rep[0].MarginSum != -1 {
		t.Fatalf("got %+v", rep[0])
	}
}

func TestMonthlyReportJSONIsChronological(t *testing.T) {
	recs := []models.TripRecord{
		trip(1, models.NewDate(2025, time.February, 1), models.StatusConfirmed, 10, 5),
		trip(2, models.NewDate(2024, time.December, 1), models.StatusConfirmed, 10, 5),
		trip(3, models.NewDate(2025, time.January, 1), models.StatusPending, 10, 5),
	}
	b, err := json.Marshal(Summarize(recs))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	dec, jan, feb := strings.Index(s, "December 2024"), strings.Index(s, "January 2025"), strings.Index(s, "February 2025")
	if dec < 0 || !(dec < jan && jan < feb) {
		t.Fatalf("keys out of order: %s", s)
	}

	var decoded map[string]map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("report json does not decode: %v", err)
	}
	if decoded["January 2025"]["untungrugi"] != Profit || decoded["January 2025"]["countPending"] != float64(1) {
		t.Fatalf("unexpected entry %+v", decoded["January 2025"])
	}
}

func TestEmptyReportEncodesAsObject(t *testing.T) {
	b, _ := json.Marshal(Summarize(nil))
	if string(b) != "{}" {
		t.Fatalf("got %s", b)
	}
}
