package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmate/backend/internal/domain"
	"github.com/tripmate/backend/internal/service"
)

func echoPlaceRepo() *mockPlaceRepo {
	return &mockPlaceRepo{
		create: func(_ context.Context, p domain.Place) (domain.Place, error) {
			p.ID = uuid.New()
			return p, nil
		},
		update: func(_ context.Context, p domain.Place) (domain.Place, error) { return p, nil },
	}
}

func TestPlaceService_Create(t *testing.T) {
	svc := service.NewPlaceService(echoPlaceRepo())

	got, err := svc.Create(context.Background(), domain.Place{
		Name:    "  Belém Tower  ",
		Country: "Portugal",
	})

	require.NoError(t, err)
	assert.Equal(t, "Belém Tower", got.Name, "fields are trimmed")
	assert.Equal(t, "other", got.Type, "type defaults")
	assert.Equal(t, "Free", got.Fee, "fee defaults")
}

func TestPlaceService_Create_Validation(t *testing.T) {
	svc := service.NewPlaceService(echoPlaceRepo())

	_, err := svc.Create(context.Background(), domain.Place{Country: "Portugal"})
	assert.ErrorIs(t, err, domain.ErrValidation, "name is required")

	_, err = svc.Create(context.Background(), domain.Place{Name: "Belém Tower"})
	assert.ErrorIs(t, err, domain.ErrValidation, "country is required")
}

func TestPlaceService_Update_KeepsExplicitValues(t *testing.T) {
	svc := service.NewPlaceService(echoPlaceRepo())

	got, err := svc.Update(context.Background(), domain.Place{
		ID:      uuid.New(),
		Name:    "Oceanarium",
		Country: "Portugal",
		Type:    "museum",
		Fee:     "€25",
	})

	require.NoError(t, err)
	assert.Equal(t, "museum", got.Type)
	assert.Equal(t, "€25", got.Fee)
}

func TestPlaceService_List_NonNilSlice(t *testing.T) {
	places := echoPlaceRepo()
	places.list = func(_ context.Context, _ domain.PlaceFilter, _ domain.PaginationParams) ([]domain.Place, int64, error) {
		return nil, 0, nil
	}
	svc := service.NewPlaceService(places)

	got, total, err := svc.List(context.Background(), domain.PlaceFilter{}, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}
