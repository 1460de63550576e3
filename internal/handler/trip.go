package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripmate/backend/internal/domain"
)

// tripRequest is the JSON body for trip create and update. All fields are
// optional on update; Title is required on create. There is no owner field:
// the owner is always the authenticated actor on create and immutable after.
type tripRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Destination *string            `json:"destination"`
	StartDate   *string            `json:"start_date"`
	EndDate     *string            `json:"end_date"`
	Notes       *string            `json:"notes"`
	Status      *domain.TripStatus `json:"status"`
	Itinerary   []domain.Day       `json:"itinerary"`
	Documents   []domain.Document  `json:"documents"`
}

// handleCreateTrip implements POST /api/trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	in := domain.TripInput{StartDate: req.StartDate, EndDate: req.EndDate}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Destination != nil {
		in.Destination = *req.Destination
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}

	trip, err := s.trips.Create(r.Context(), actorID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripBody(trip))
}

// handleListTrips implements GET /api/trips: all trips the actor owns or
// is a member of, most recently updated first.
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	trips, err := s.trips.List(r.Context(), actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(trips), "trips": trips})
}

// handleGetTrip implements GET /api/trips/{id}. Members only.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	trip, err := s.trips.Get(r.Context(), tripID, actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripBody(trip))
}

// handleUpdateTrip implements PUT /api/trips/{id}. Editors only.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	trip, err := s.trips.Update(r.Context(), tripID, actorID, domain.TripPatch{
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
		Status:      req.Status,
		Itinerary:   req.Itinerary,
		Documents:   req.Documents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripBody(trip))
}

// handleDeleteTrip implements DELETE /api/trips/{id}. Owner only.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), tripID, actorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddMember implements POST /api/trips/{id}/members. Owner only.
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		UserID string            `json:"userId"`
		Role   domain.MemberRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		badRequest(w, "invalid userId")
		return
	}

	trip, err := s.trips.AddMember(r.Context(), tripID, actorID, userID, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripBody(trip))
}

// handleRemoveMember implements DELETE /api/trips/{id}/members/{userId}.
// Owner only; removing a non-member is a no-op success.
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	trip, err := s.trips.RemoveMember(r.Context(), tripID, actorID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripBody(trip))
}

// handleAddTripPlace implements POST /api/trips/{id}/places: add a catalog
// place by reference. Adding a place already in the list reports success
// without duplicating it.
func (s *Server) handleAddTripPlace(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		PlaceID string `json:"placeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.PlaceID == "" {
		badRequest(w, "placeId is required")
		return
	}
	placeID, err := uuid.Parse(req.PlaceID)
	if err != nil {
		badRequest(w, "invalid placeId")
		return
	}

	trip, alreadyPresent, err := s.trips.AddPlace(r.Context(), tripID, actorID, placeID)
	if err != nil {
		writeError(w, err)
		return
	}
	body := map[string]any{"trip": trip}
	if alreadyPresent {
		body["message"] = "place already in list"
	}
	writeJSON(w, http.StatusOK, body)
}

// handleAddCustomTripPlace implements POST /api/trips/{id}/places/custom:
// add a trip-local place with no catalog entry.
func (s *Server) handleAddCustomTripPlace(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Name         string `json:"name"`
		City         string `json:"city"`
		Country      string `json:"country"`
		Type         string `json:"type"`
		Notes        string `json:"notes"`
		GoogleMapURL string `json:"googleMapUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	trip, err := s.trips.AddCustomPlace(r.Context(), tripID, actorID, domain.CustomPlaceInput{
		Name:         req.Name,
		City:         req.City,
		Country:      req.Country,
		Type:         req.Type,
		Notes:        req.Notes,
		GoogleMapURL: req.GoogleMapURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripBody(trip))
}

// handleRemoveTripPlace implements DELETE /api/trips/{id}/places/{placeId}.
func (s *Server) handleRemoveTripPlace(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	placeID, ok := pathUUID(w, r, "placeId")
	if !ok {
		return
	}

	trip, err := s.trips.RemovePlace(r.Context(), tripID, actorID, placeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripBody(trip))
}

// activityRequest is the JSON body for adding or replacing an activity.
type activityRequest struct {
	Time        string `json:"time"`
	EndTime     string `json:"endTime"`
	Place       string `json:"place"`
	PlaceName   string `json:"placeName"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

func (req activityRequest) toInput(w http.ResponseWriter) (domain.ActivityInput, bool) {
	in := domain.ActivityInput{
		Time:        req.Time,
		EndTime:     req.EndTime,
		PlaceName:   req.PlaceName,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if req.Place != "" {
		id, err := uuid.Parse(req.Place)
		if err != nil {
			badRequest(w, "invalid place id")
			return domain.ActivityInput{}, false
		}
		in.PlaceID = &id
	}
	return in, true
}

// handleAddActivity implements POST /api/trips/{id}/days/{dayNumber}/activities.
func (s *Server) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	dayNumber, ok := pathInt(w, r, "dayNumber")
	if !ok {
		return
	}
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	in, ok := req.toInput(w)
	if !ok {
		return
	}

	trip, err := s.trips.AddActivity(r.Context(), tripID, actorID, dayNumber, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripBody(trip))
}

// handleUpdateActivity implements PUT /api/trips/{id}/days/{dayNumber}/activities/{index}.
func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	dayNumber, ok := pathInt(w, r, "dayNumber")
	if !ok {
		return
	}
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	in, ok := req.toInput(w)
	if !ok {
		return
	}

	trip, err := s.trips.UpdateActivity(r.Context(), tripID, actorID, dayNumber, index, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripBody(trip))
}

// handleRemoveActivity implements DELETE /api/trips/{id}/days/{dayNumber}/activities/{index}.
func (s *Server) handleRemoveActivity(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	dayNumber, ok := pathInt(w, r, "dayNumber")
	if !ok {
		return
	}
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}

	trip, err := s.trips.RemoveActivity(r.Context(), tripID, actorID, dayNumber, index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripBody(trip))
}

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{
	"day_number", "date", "theme",
	"time", "end_time", "place_name", "description", "notes",
}

// handleExportTrip implements GET /api/trips/{id}/export: the itinerary as
// a flat table. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) handleExportTrip(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	rows, err := s.export.Export(r.Context(), tripID, actorID)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") != "csv" {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	//nolint:errcheck
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write([]string{
			strconv.Itoa(row.DayNumber), row.Date, row.Theme,
			row.Time, row.EndTime, row.PlaceName, row.Description, row.Notes,
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// tripBody wraps a trip view in the standard response envelope.
func tripBody(trip domain.TripView) map[string]domain.TripView {
	return map[string]domain.TripView{"trip": trip}
}

// pathInt parses the named chi URL parameter as a non-negative integer.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 0 {
		badRequest(w, "invalid "+name)
		return 0, false
	}
	return n, true
}
