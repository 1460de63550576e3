package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/tripmate/backend/internal/domain"
	"github.com/tripmate/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs. This is idiomatic Go:
// no mock generation library required for simple cases.

type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listForUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	save        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listForUser(ctx, userID)
}
func (m *mockTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.save(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockUserRepo struct {
	create         func(ctx context.Context, user domain.User) (domain.User, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail     func(ctx context.Context, email string) (domain.User, error)
	getByPhone     func(ctx context.Context, phone string) (domain.User, error)
	getByIDs       func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error)
	search         func(ctx context.Context, q string, limit int) ([]domain.User, error)
	list           func(ctx context.Context) ([]domain.User, error)
	updatePassword func(ctx context.Context, id uuid.UUID, passwordHash string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	return m.getByPhone(ctx, phone)
}
func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error) {
	return m.getByIDs(ctx, ids)
}
func (m *mockUserRepo) Search(ctx context.Context, q string, limit int) ([]domain.User, error) {
	return m.search(ctx, q, limit)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.updatePassword(ctx, id, passwordHash)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockPlaceRepo struct {
	create   func(ctx context.Context, place domain.Place) (domain.Place, error)
	getByID  func(ctx context.Context, id uuid.UUID) (domain.Place, error)
	getByIDs func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Place, error)
	list     func(ctx context.Context, filter domain.PlaceFilter, page domain.PaginationParams) ([]domain.Place, int64, error)
	update   func(ctx context.Context, place domain.Place) (domain.Place, error)
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlaceRepo) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	return m.create(ctx, place)
}
func (m *mockPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlaceRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Place, error) {
	return m.getByIDs(ctx, ids)
}
func (m *mockPlaceRepo) List(ctx context.Context, filter domain.PlaceFilter, page domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.list(ctx, filter, page)
}
func (m *mockPlaceRepo) Update(ctx context.Context, place domain.Place) (domain.Place, error) {
	return m.update(ctx, place)
}
func (m *mockPlaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.PlaceRepo = (*mockPlaceRepo)(nil)

// ---- shared lenient doubles ------------------------------------------------

// emptyUserRepo resolves no users; fine for tests that only exercise trip
// content.
func emptyUserRepo() *mockUserRepo {
	return &mockUserRepo{
		getByIDs: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]domain.User, error) {
			return map[uuid.UUID]domain.User{}, nil
		},
	}
}

// emptyPlaceRepo resolves no catalog places.
func emptyPlaceRepo() *mockPlaceRepo {
	return &mockPlaceRepo{
		getByIDs: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]domain.Place, error) {
			return map[uuid.UUID]domain.Place{}, nil
		},
	}
}
