package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmate/backend/internal/domain"
)

func TestExportItinerary(t *testing.T) {
	trip := domain.Trip{
		Itinerary: []domain.Day{
			{
				DayNumber: 1,
				Theme:     "Arrival",
				Date:      "2025-07-01",
				Activities: []domain.Activity{
					{Time: "10:00", PlaceName: "Airport pickup"},
					{Time: "14:00", EndTime: "16:00", PlaceName: "Hotel check-in", Notes: "early check-in booked"},
				},
			},
			{DayNumber: 2, Date: "2025-07-02"}, // no activities
		},
	}

	rows := domain.ExportItinerary(trip)

	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].DayNumber)
	assert.Equal(t, "Arrival", rows[0].Theme)
	assert.Equal(t, "Airport pickup", rows[0].PlaceName)

	// Day fields repeat on every activity row.
	assert.Equal(t, "2025-07-01", rows[1].Date)
	assert.Equal(t, "Arrival", rows[1].Theme)
	assert.Equal(t, "early check-in booked", rows[1].Notes)

	// An empty day still yields one row so the export shows every day.
	assert.Equal(t, 2, rows[2].DayNumber)
	assert.Empty(t, rows[2].PlaceName)
}

func TestExportItinerary_EmptyTrip(t *testing.T) {
	rows := domain.ExportItinerary(domain.Trip{})

	require.NotNil(t, rows)
	assert.Empty(t, rows)
}
