package domain

import (
	"time"

	"github.com/google/uuid"
)

// dateLayout is the wire and storage format for per-day display dates.
const dateLayout = "2006-01-02"

// Activity is a single itinerary entry within a day. PlaceName is always
// present for display, even when no catalog place is linked — it is either
// entered manually or copied from the linked place when the activity is
// added. Time fields are free-form strings ("09:30"), not parsed.
type Activity struct {
	Time        string     `json:"time,omitempty"`
	EndTime     string     `json:"endTime,omitempty"`
	PlaceID     *uuid.UUID `json:"place,omitempty"`
	PlaceName   string     `json:"placeName"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// Day is one itinerary day. DayNumber is 1-based and unique within a trip;
// when the trip has both dates set, day numbers are contiguous and Date is
// derived from the start date. Date is a "YYYY-MM-DD" string, empty for
// date-less trips.
type Day struct {
	DayNumber  int        `json:"dayNumber"`
	Theme      string     `json:"theme,omitempty"`
	Date       string     `json:"date,omitempty"`
	Activities []Activity `json:"activities"`
}

// DayCount returns the canonical number of itinerary days for a date range:
// floor((end-start)/24h)+1, never negative. Same-day trips count one day.
func DayCount(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// DateForDay returns the display date of the 1-based dayNumber as a
// "YYYY-MM-DD" string.
func DateForDay(start time.Time, dayNumber int) string {
	return start.AddDate(0, 0, dayNumber-1).Format(dateLayout)
}

// ReconcileItinerary derives the canonical day list for a date range while
// preserving user-entered content.
//
// When both dates are set, the result has exactly DayCount days numbered
// 1..n. A day keeps its theme and activities if a day with that exact
// dayNumber exists in existing; otherwise an empty day is synthesized.
// Shrinking the range truncates trailing days together with their
// activities. Growing the range appends empty days without touching
// existing ones.
//
// When either date is absent, existing is returned as stored: no synthesis
// and no date computation, which supports date-less trips with manually
// numbered days.
func ReconcileItinerary(start, end *time.Time, existing []Day) []Day {
	if start == nil || end == nil {
		if existing == nil {
			return []Day{}
		}
		return existing
	}

	byNumber := make(map[int]Day, len(existing))
	for _, d := range existing {
		byNumber[d.DayNumber] = d
	}

	count := DayCount(*start, *end)
	days := make([]Day, 0, count)
	for n := 1; n <= count; n++ {
		day := Day{DayNumber: n, Activities: []Activity{}}
		if prev, ok := byNumber[n]; ok {
			day.Theme = prev.Theme
			if prev.Activities != nil {
				day.Activities = prev.Activities
			}
		}
		day.Date = DateForDay(*start, n)
		days = append(days, day)
	}
	return days
}
