package domain

// ExportRow is a single row in a trip's itinerary export.
// It is a flat, denormalized view: one row per activity, with day fields
// repeated for every activity on that day. Days with no activities yield
// one row with empty activity fields, so every itinerary day appears in
// the export.
type ExportRow struct {
	// Day fields — repeated for every activity on the day.
	DayNumber int
	Date      string // "2006-01-02" formatted, empty for date-less trips
	Theme     string

	// Activity fields — zero values when the day has no activities.
	Time        string
	EndTime     string
	PlaceName   string
	Description string
	Notes       string
}

// ExportItinerary flattens a trip's itinerary into export rows.
func ExportItinerary(t Trip) []ExportRow {
	rows := make([]ExportRow, 0, len(t.Itinerary))
	for _, day := range t.Itinerary {
		if len(day.Activities) == 0 {
			rows = append(rows, ExportRow{DayNumber: day.DayNumber, Date: day.Date, Theme: day.Theme})
			continue
		}
		for _, a := range day.Activities {
			rows = append(rows, ExportRow{
				DayNumber:   day.DayNumber,
				Date:        day.Date,
				Theme:       day.Theme,
				Time:        a.Time,
				EndTime:     a.EndTime,
				PlaceName:   a.PlaceName,
				Description: a.Description,
				Notes:       a.Notes,
			})
		}
	}
	return rows
}
