package handler_test

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tripmate/backend/internal/domain"
	"github.com/tripmate/backend/internal/handler"
	"github.com/tripmate/backend/internal/middleware"
	"github.com/tripmate/backend/internal/service"
)

// Hand-written test doubles for the handler-side service interfaces.
// Each method is a function field — set only the ones your test needs.

type mockTripServicer struct {
	create         func(ctx context.Context, ownerID uuid.UUID, in domain.TripInput) (domain.TripView, error)
	get            func(ctx context.Context, tripID, actorID uuid.UUID) (domain.TripView, error)
	list           func(ctx context.Context, actorID uuid.UUID) ([]domain.TripView, error)
	update         func(ctx context.Context, tripID, actorID uuid.UUID, patch domain.TripPatch) (domain.TripView, error)
	delete         func(ctx context.Context, tripID, actorID uuid.UUID) error
	addMember      func(ctx context.Context, tripID, actorID, userID uuid.UUID, role domain.MemberRole) (domain.TripView, error)
	removeMember   func(ctx context.Context, tripID, actorID, userID uuid.UUID) (domain.TripView, error)
	addPlace       func(ctx context.Context, tripID, actorID, placeID uuid.UUID) (domain.TripView, bool, error)
	addCustomPlace func(ctx context.Context, tripID, actorID uuid.UUID, in domain.CustomPlaceInput) (domain.TripView, error)
	removePlace    func(ctx context.Context, tripID, actorID, placeID uuid.UUID) (domain.TripView, error)
	addActivity    func(ctx context.Context, tripID, actorID uuid.UUID, dayNumber int, in domain.ActivityInput) (domain.TripView, error)
	updateActivity func(ctx context.Context, tripID, actorID uuid.UUID, dayNumber, index int, in domain.ActivityInput) (domain.TripView, error)
	removeActivity func(ctx context.Context, tripID, actorID uuid.UUID, dayNumber, index int) (domain.TripView, error)
}

func (m *mockTripServicer) Create(ctx context.Context, ownerID uuid.UUID, in domain.TripInput) (domain.TripView, error) {
	return m.create(ctx, ownerID, in)
}
func (m *mockTripServicer) Get(ctx context.Context, tripID, actorID uuid.UUID) (domain.TripView, error) {
	return m.get(ctx, tripID, actorID)
}
func (m *mockTripServicer) List(ctx context.Context, actorID uuid.UUID) ([]domain.TripView, error) {
	return m.list(ctx, actorID)
}
func (m *mockTripServicer) Update(ctx context.Context, tripID, actorID uuid.UUID, patch domain.TripPatch) (domain.TripView, error) {
	return m.update(ctx, tripID, actorID, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, tripID, actorID uuid.UUID) error {
	return m.delete(ctx, tripID, actorID)
}
func (m *mockTripServicer) AddMember(ctx context.Context, tripID, actorID, userID uuid.UUID, role domain.MemberRole) (domain.TripView, error) {
	return m.addMember(ctx, tripID, actorID, userID, role)
}
func (m *mockTripServicer) RemoveMember(ctx context.Context, tripID, actorID, userID uuid.UUID) (domain.TripView, error) {
	return m.removeMember(ctx, tripID, actorID, userID)
}
func (m *mockTripServicer) AddPlace(ctx context.Context, tripID, actorID, placeID uuid.UUID) (domain.TripView, bool, error) {
	return m.addPlace(ctx, tripID, actorID, placeID)
}
func (m *mockTripServicer) AddCustomPlace(ctx context.Context, tripID, actorID uuid.UUID, in domain.CustomPlaceInput) (domain.TripView, error) {
	return m.addCustomPlace(ctx, tripID, actorID, in)
}
func (m *mockTripServicer) RemovePlace(ctx context.Context, tripID, actorID, placeID uuid.UUID) (domain.TripView, error) {
	return m.removePlace(ctx, tripID, actorID, placeID)
}
func (m *mockTripServicer) AddActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber int, in domain.ActivityInput) (domain.TripView, error) {
	return m.addActivity(ctx, tripID, actorID, dayNumber, in)
}
func (m *mockTripServicer) UpdateActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber, index int, in domain.ActivityInput) (domain.TripView, error) {
	return m.updateActivity(ctx, tripID, actorID, dayNumber, index, in)
}
func (m *mockTripServicer) RemoveActivity(ctx context.Context, tripID, actorID uuid.UUID, dayNumber, index int) (domain.TripView, error) {
	return m.removeActivity(ctx, tripID, actorID, dayNumber, index)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockUserServicer struct {
	register       func(ctx context.Context, in service.RegisterInput) (domain.User, error)
	authenticate   func(ctx context.Context, in service.LoginInput) (domain.User, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.User, error)
	changePassword func(ctx context.Context, userID uuid.UUID, current, next string) error
	search         func(ctx context.Context, q string) ([]domain.UserSummary, error)
	list           func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserServicer) Register(ctx context.Context, in service.RegisterInput) (domain.User, error) {
	return m.register(ctx, in)
}
func (m *mockUserServicer) Authenticate(ctx context.Context, in service.LoginInput) (domain.User, error) {
	return m.authenticate(ctx, in)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	return m.changePassword(ctx, userID, current, next)
}
func (m *mockUserServicer) Search(ctx context.Context, q string) ([]domain.UserSummary, error) {
	return m.search(ctx, q)
}
func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockPlaceServicer struct {
	create  func(ctx context.Context, place domain.Place) (domain.Place, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Place, error)
	list    func(ctx context.Context, filter domain.PlaceFilter, page domain.PaginationParams) ([]domain.Place, int64, error)
	update  func(ctx context.Context, place domain.Place) (domain.Place, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlaceServicer) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	return m.create(ctx, place)
}
func (m *mockPlaceServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlaceServicer) List(ctx context.Context, filter domain.PlaceFilter, page domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.list(ctx, filter, page)
}
func (m *mockPlaceServicer) Update(ctx context.Context, place domain.Place) (domain.Place, error) {
	return m.update(ctx, place)
}
func (m *mockPlaceServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.PlaceServicer = (*mockPlaceServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, tripID, actorID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID, actorID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID, actorID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type mockTokenIssuer struct {
	generate func(userID uuid.UUID) (string, error)
}

func (m *mockTokenIssuer) Generate(userID uuid.UUID) (string, error) {
	return m.generate(userID)
}

var _ handler.TokenIssuer = (*mockTokenIssuer)(nil)

// staticToken is a TokenIssuer that always issues the same token.
func staticToken(token string) *mockTokenIssuer {
	return &mockTokenIssuer{generate: func(_ uuid.UUID) (string, error) { return token, nil }}
}

// actorAs is a stand-in for the bearer-token authenticator: every request
// through it carries the given actor ID, as if a valid token was presented.
func actorAs(actorID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithActor(r.Context(), actorID)))
		})
	}
}

// serverDeps bundles the mock set a test can customize before building the
// router. Zero-value fields are fine as long as the test never hits them.
type serverDeps struct {
	trips  *mockTripServicer
	users  *mockUserServicer
	places *mockPlaceServicer
	export *mockExportServicer
	tokens *mockTokenIssuer
	actor  uuid.UUID
}

func newTestRouter(d serverDeps) http.Handler {
	if d.trips == nil {
		d.trips = &mockTripServicer{}
	}
	if d.users == nil {
		d.users = &mockUserServicer{}
	}
	if d.places == nil {
		d.places = &mockPlaceServicer{}
	}
	if d.export == nil {
		d.export = &mockExportServicer{}
	}
	if d.tokens == nil {
		d.tokens = staticToken("test-token")
	}
	srv := handler.NewServer(d.trips, d.users, d.places, d.export, d.tokens)
	return srv.Routes(actorAs(d.actor))
}
