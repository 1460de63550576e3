package domain_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmate/backend/internal/domain"
)

// ---- AddPlaceRef -----------------------------------------------------------

func TestTrip_AddPlaceRef(t *testing.T) {
	trip := domain.Trip{}
	placeID := uuid.New()

	added := trip.AddPlaceRef(placeID)

	assert.True(t, added)
	require.Len(t, trip.Places, 1)
	assert.Equal(t, placeID, trip.Places[0].ID())
}

func TestTrip_AddPlaceRef_Idempotent(t *testing.T) {
	trip := domain.Trip{}
	placeID := uuid.New()

	require.True(t, trip.AddPlaceRef(placeID))
	added := trip.AddPlaceRef(placeID)

	assert.False(t, added, "second add must report already present")
	assert.Len(t, trip.Places, 1, "list must not grow")
}

func TestTrip_AddPlaceRef_MatchesCustomIDs(t *testing.T) {
	trip := domain.Trip{}
	custom, err := trip.AddCustomPlace(domain.CustomPlaceInput{
		Name:         "Aunt's house",
		GoogleMapURL: "https://maps.example/abc",
	})
	require.NoError(t, err)

	// A catalog ref colliding with a custom entry's local id is a dup.
	assert.False(t, trip.AddPlaceRef(custom.ID))
	assert.Len(t, trip.Places, 1)
}

// ---- AddCustomPlace --------------------------------------------------------

func TestTrip_AddCustomPlace(t *testing.T) {
	trip := domain.Trip{}

	custom, err := trip.AddCustomPlace(domain.CustomPlaceInput{
		Name:         "  Rooftop bar  ",
		City:         "Lisbon",
		GoogleMapURL: "https://maps.example/xyz",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, custom.ID, "a local id is minted")
	assert.Equal(t, "Rooftop bar", custom.Name, "fields are trimmed")
	assert.True(t, custom.Custom)
	require.Len(t, trip.Places, 1)
	assert.Equal(t, custom.ID, trip.Places[0].ID())
}

func TestTrip_AddCustomPlace_RequiredFields(t *testing.T) {
	trip := domain.Trip{}

	_, err := trip.AddCustomPlace(domain.CustomPlaceInput{GoogleMapURL: "https://maps.example/x"})
	assert.ErrorIs(t, err, domain.ErrValidation, "name is required")

	_, err = trip.AddCustomPlace(domain.CustomPlaceInput{Name: "Somewhere"})
	assert.ErrorIs(t, err, domain.ErrValidation, "googleMapUrl is required")

	assert.Empty(t, trip.Places, "failed adds leave the list untouched")
}

// ---- RemovePlace -----------------------------------------------------------

func TestTrip_RemovePlace(t *testing.T) {
	trip := domain.Trip{}
	keep, drop := uuid.New(), uuid.New()
	trip.AddPlaceRef(keep)
	trip.AddPlaceRef(drop)

	trip.RemovePlace(drop)

	require.Len(t, trip.Places, 1)
	assert.Equal(t, keep, trip.Places[0].ID())
}

func TestTrip_RemovePlace_Absent(t *testing.T) {
	trip := domain.Trip{}
	trip.AddPlaceRef(uuid.New())

	trip.RemovePlace(uuid.New()) // not in the list: no-op

	assert.Len(t, trip.Places, 1)
}

func TestTrip_RemovePlace_CustomEntry(t *testing.T) {
	trip := domain.Trip{}
	custom, err := trip.AddCustomPlace(domain.CustomPlaceInput{
		Name:         "Pop-up market",
		GoogleMapURL: "https://maps.example/m",
	})
	require.NoError(t, err)

	trip.RemovePlace(custom.ID)

	assert.Empty(t, trip.Places)
}

// ---- JSON encoding ---------------------------------------------------------

func TestTripPlace_JSON_Reference(t *testing.T) {
	placeID := uuid.New()
	entry := domain.TripPlace{PlaceID: placeID}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf("%q", placeID.String()), string(data), "references are stored as bare id strings")

	var decoded domain.TripPlace
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entry, decoded)
}

func TestTripPlace_JSON_Custom(t *testing.T) {
	entry := domain.TripPlace{Custom: &domain.CustomPlace{
		ID:           uuid.New(),
		Name:         "Hidden beach",
		Country:      "Portugal",
		GoogleMapURL: "https://maps.example/b",
		Custom:       true,
	}}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"custom":true`)

	var decoded domain.TripPlace
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Custom)
	assert.Equal(t, *entry.Custom, *decoded.Custom)
}

func TestTripPlace_JSON_MixedList(t *testing.T) {
	trip := domain.Trip{}
	ref := uuid.New()
	trip.AddPlaceRef(ref)
	_, err := trip.AddCustomPlace(domain.CustomPlaceInput{
		Name:         "Grandma's",
		GoogleMapURL: "https://maps.example/g",
	})
	require.NoError(t, err)

	data, err := json.Marshal(trip.Places)
	require.NoError(t, err)

	var decoded []domain.TripPlace
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, ref, decoded[0].ID())
	require.NotNil(t, decoded[1].Custom)
	assert.Equal(t, "Grandma's", decoded[1].Custom.Name)
}

func TestTripPlace_JSON_BadID(t *testing.T) {
	var entry domain.TripPlace
	err := json.Unmarshal([]byte(`"not-a-uuid"`), &entry)
	assert.Error(t, err)
}
