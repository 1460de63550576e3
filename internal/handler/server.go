// Package handler implements the HTTP layer of the Tripmate API: request
// decoding, actor extraction, service dispatch, and error mapping. All
// handlers are methods on Server, split into domain-specific files
// (auth.go, trip.go, place.go, user.go) that share its dependencies.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripmate/backend/internal/domain"
	"github.com/tripmate/backend/internal/middleware"
	"github.com/tripmate/backend/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, in domain.TripInput) (domain.TripView, error)
	Get(ctx context.Context, tripID, actorID uuid.UUID) (domain.TripView, error)
	List(ctx context.Context, actorID uuid.UUID) ([]domain.TripView, error)
	Update(ctx context.Context, tripID, actorID uuid.UUID, patch domain.TripPatch) (domain.TripView, error)
	Delete(ctx context.Context, tripID, actorID uuid.UUID) error
	AddMember(ctx context.Context, tripID, actorID, userID uuid.UUID, role domain.MemberRole) (domain.TripView, error)
	RemoveMember(ctx context.Context, tripID, actorID, userID uuid.UUID) (domain.TripView, error)
	AddPlace(ctx context.Context, tripID, actorID, placeID uuid.UUID) (domain.TripView, bool, error)
	AddCustomPlace(ctx context.Context, tripID, actorID uuid.UUID, in domain.CustomPlaceInput) (domain.TripView, error)
	RemovePlace(ctx context.Context, tripID, actorID, placeID uuid.UUID) (domain.TripView, error)
	AddActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber int, in domain.ActivityInput) (domain.TripView, error)
	UpdateActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber, index int, in domain.ActivityInput) (domain.TripView, error)
	RemoveActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber, index int) (domain.TripView, error)
}

// UserServicer defines the identity operations the handlers depend on.
type UserServicer interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.User, error)
	Authenticate(ctx context.Context, in service.LoginInput) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	Search(ctx context.Context, q string) ([]domain.UserSummary, error)
	List(ctx context.Context) ([]domain.User, error)
}

// PlaceServicer defines the catalog operations the handlers depend on.
type PlaceServicer interface {
	Create(ctx context.Context, place domain.Place) (domain.Place, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error)
	List(ctx context.Context, filter domain.PlaceFilter, page domain.PaginationParams) ([]domain.Place, int64, error)
	Update(ctx context.Context, place domain.Place) (domain.Place, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExportServicer defines the itinerary export operation.
type ExportServicer interface {
	Export(ctx context.Context, tripID, actorID uuid.UUID) ([]domain.ExportRow, error)
}

// TokenIssuer is the slice of auth.TokenManager the auth handlers need.
type TokenIssuer interface {
	Generate(userID uuid.UUID) (string, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips  TripServicer
	users  UserServicer
	places PlaceServicer
	export ExportServicer
	tokens TokenIssuer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, users UserServicer, places PlaceServicer, export ExportServicer, tokens TokenIssuer) *Server {
	return &Server{trips: trips, users: users, places: places, export: export, tokens: tokens}
}

// Routes mounts every endpoint on a fresh router. authn is the bearer-token
// middleware from the middleware package; public routes (health, auth,
// catalog reads) are mounted outside it.
func (s *Server) Routes(authn func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/places", s.handleListPlaces)
		r.Get("/places/{id}", s.handleGetPlace)

		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Get("/auth/me", s.handleMe)
			r.Put("/auth/password", s.handleChangePassword)

			r.Get("/users/search", s.handleSearchUsers)
			r.With(s.requireAdmin).Get("/users", s.handleListUsers)

			r.With(s.requireAdmin).Post("/places", s.handleCreatePlace)
			r.With(s.requireAdmin).Put("/places/{id}", s.handleUpdatePlace)
			r.With(s.requireAdmin).Delete("/places/{id}", s.handleDeletePlace)

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", s.handleListTrips)
				r.Post("/", s.handleCreateTrip)
				r.Get("/{id}", s.handleGetTrip)
				r.Put("/{id}", s.handleUpdateTrip)
				r.Delete("/{id}", s.handleDeleteTrip)
				r.Get("/{id}/export", s.handleExportTrip)

				r.Post("/{id}/members", s.handleAddMember)
				r.Delete("/{id}/members/{userId}", s.handleRemoveMember)

				r.Post("/{id}/places", s.handleAddTripPlace)
				r.Post("/{id}/places/custom", s.handleAddCustomTripPlace)
				r.Delete("/{id}/places/{placeId}", s.handleRemoveTripPlace)

				r.Post("/{id}/days/{dayNumber}/activities", s.handleAddActivity)
				r.Put("/{id}/days/{dayNumber}/activities/{index}", s.handleUpdateActivity)
				r.Delete("/{id}/days/{dayNumber}/activities/{index}", s.handleRemoveActivity)
			})
		})
	})

	return r
}

// requireAdmin allows the request through only when the authenticated
// actor has the admin role.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := middleware.ActorID(r.Context())
		if !ok {
			writeError(w, domain.ErrUnauthorized)
			return
		}
		user, err := s.users.GetByID(r.Context(), actorID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, domain.ErrUnauthorized)
				return
			}
			writeError(w, err)
			return
		}
		if user.Role != domain.RoleAdmin {
			writeErrorBody(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// actor pulls the authenticated user ID out of the request context. Routes
// behind the authenticator always have one; the ok guard protects against
// misconfigured route wiring.
func actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.ActorID(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		badRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
