package report

import (
	"fmt"
	"sort"
	"time"

	"trip_ledger/internal/models"
)

// Result labels.
const (
	Profit = "PROFIT"
	Loss   = "LOSS"
)

// MonthSummary is the profit/loss line for one calendar month.
type MonthSummary struct {
	Label          string `json:"-"`
	MonthYear      string `json:"monthYear"`
	Result         string `json:"untungrugi"`
	MarginSum      int64  `json:"marginSum"`
	CountConfirmed int    `json:"countSukses"`
	CountPending   int    `json:"countPending"`
	CountCanceled  int    `json:"countGagal"`
}

// MonthlyReport is ordered oldest month first and encodes as an object keyed by Label.
type MonthlyReport []MonthSummary

func (r MonthlyReport) MarshalJSON() ([]byte, error) {
	labels := make([]string, len(r))
	values := make([]interface{}, len(r))
	for i, s := range r {
		labels[i] = s.Label
		values[i] = s
	}
	return writeOrderedObject(labels, values)
}

// Get returns the summary for label, e.g. "March 2025".
func (r MonthlyReport) Get(label string) (MonthSummary, bool) {
	for _, s := range r {
		if s.Label == label {
			return s, true
		}
	}
	return MonthSummary{}, false
}

type yearMonth struct {
	year  int
	month time.Month
}

// Summarize buckets records by the calendar month of their date and reports,
// per month, the status counts and the margin of confirmed trips.
// Months where none of the records is confirmed, pending or canceled are omitted.
func Summarize(records []models.TripRecord) MonthlyReport {
	buckets := map[yearMonth][]models.TripRecord{}
	for _, rec := range records {
		if rec.Date.IsZero() {
			continue
		}
		key := yearMonth{rec.Date.Year(), rec.Date.Month()}
		buckets[key] = append(buckets[key], rec)
	}

	keys := make([]yearMonth, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := MonthlyReport{}
	for _, k := range keys {
		s := summarizeMonth(buckets[k])
		if s.CountConfirmed == 0 && s.CountPending == 0 && s.CountCanceled == 0 {
			continue
		}
		s.Label = MonthLabel(k.year, k.month)
		s.MonthYear = fmt.Sprintf("%d-%02d", k.year, int(k.month))
		out = append(out, s)
	}
	return out
}

func summarizeMonth(records []models.TripRecord) MonthSummary {
	var s MonthSummary
	for _, rec := range records {
		switch rec.Status {
		case models.StatusConfirmed:
			s.CountConfirmed++
			s.MarginSum += rec.Margin()
		case models.StatusPending:
			s.CountPending++
		case models.StatusCanceled:
			s.CountCanceled++
		}
	}
	// zero is reported as profit
	s.Result = Profit
	if s.MarginSum < 0 {
		s.Result = Loss
	}
	return s
}
