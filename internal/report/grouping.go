package report

import (
	"sort"

	"trip_ledger/internal/models"
)

// MonthGroup holds the trips of one calendar month.
type MonthGroup struct {
	Label string              `json:"-"`
	Count int                 `json:"count"`
	Data  []models.TripRecord `json:"data"`
}

// GroupedListing encodes as an object keyed by month label, newest month first.
type GroupedListing []MonthGroup

func (g GroupedListing) MarshalJSON() ([]byte, error) {
	labels := make([]string, len(g))
	values := make([]interface{}, len(g))
	for i, grp := range g {
		labels[i] = grp.Label
		values[i] = grp
	}
	return writeOrderedObject(labels, values)
}

// GroupByMonth sorts dated records newest first and splits them by calendar month.
// Undated records are skipped.
func GroupByMonth(records []models.TripRecord) GroupedListing {
	dated := make([]models.TripRecord, 0, len(records))
	for _, rec := range records {
		if !rec.Date.IsZero() {
			dated = append(dated, rec)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if !dated[i].Date.Equal(dated[j].Date.Time) {
			return dated[i].Date.After(dated[j].Date.Time)
		}
		return dated[i].ID > dated[j].ID
	})

	out := GroupedListing{}
	for _, rec := range dated {
		label := MonthLabel(rec.Date.Year(), rec.Date.Month())
		if n := len(out); n > 0 && out[n-1].Label == label {
			out[n-1].Data = append(out[n-1].Data, rec)
			out[n-1].Count++
			continue
		}
		out = append(out, MonthGroup{Label: label, Count: 1, Data: []models.TripRecord{rec}})
	}
	return out
}
