package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tripmate/backend/internal/domain"
)

// placeRequest is the JSON body for catalog create and update.
type placeRequest struct {
	Name         string `json:"name"`
	Country      string `json:"country"`
	City         string `json:"city"`
	Type         string `json:"type"`
	Fee          string `json:"fee"`
	GoogleMapURL string `json:"googleMapUrl"`
	Timing       string `json:"timing"`
	TimeToCover  string `json:"timeToCover"`
	Highlight    string `json:"highlight"`
	Notes        string `json:"notes"`
	ImageURL     string `json:"imageUrl"`
}

func (req placeRequest) toPlace() domain.Place {
	return domain.Place{
		Name:         req.Name,
		Country:      req.Country,
		City:         req.City,
		Type:         req.Type,
		Fee:          req.Fee,
		GoogleMapURL: req.GoogleMapURL,
		Timing:       req.Timing,
		TimeToCover:  req.TimeToCover,
		Highlight:    req.Highlight,
		Notes:        req.Notes,
		ImageURL:     req.ImageURL,
	}
}

// handleListPlaces implements GET /api/places. Public. Supports country,
// city, type, and search filters plus ?page= and ?limit= pagination.
func (s *Server) handleListPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PlaceFilter{
		Country: q.Get("country"),
		City:    q.Get("city"),
		Type:    q.Get("type"),
		Search:  q.Get("search"),
	}
	page := domain.NewPaginationParams(queryInt(q.Get("page")), queryInt(q.Get("limit")))

	places, total, err := s.places.List(r.Context(), filter, page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(places),
		"total":  total,
		"page":   page.Page,
		"places": places,
	})
}

// handleGetPlace implements GET /api/places/{id}. Public.
func (s *Server) handleGetPlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	place, err := s.places.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Place{"place": place})
}

// handleCreatePlace implements POST /api/places. Admin only.
func (s *Server) handleCreatePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	place, err := s.places.Create(r.Context(), req.toPlace())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]domain.Place{"place": place})
}

// handleUpdatePlace implements PUT /api/places/{id}. Admin only.
func (s *Server) handleUpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	place := req.toPlace()
	place.ID = id
	updated, err := s.places.Update(r.Context(), place)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Place{"place": updated})
}

// handleDeletePlace implements DELETE /api/places/{id}. Admin only.
// Trips referencing the place keep their stored references; display
// resolution prunes them.
func (s *Server) handleDeletePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.places.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an optional numeric query parameter, returning nil when
// absent or malformed so pagination falls back to its defaults.
func queryInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
