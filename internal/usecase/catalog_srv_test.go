package usecase

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/seathold"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type catalogFixture struct {
	options *mockTravelOptionRepo
	images  *mockTravelImageRepo
	details *mockTravelDetailRepo
	repo    *repository.Repository
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		options: &mockTravelOptionRepo{},
		images:  &mockTravelImageRepo{},
		details: &mockTravelDetailRepo{},
	}
	f.repo = &repository.Repository{
		TravelOption: f.options,
		TravelImage:  f.images,
		TravelDetail: f.details,
	}
	return f
}

func travelOption(travelID string, typ entity.TravelType, price float64) *entity.TravelOption {
	departure := time.Now().Add(48 * time.Hour)
	return &entity.TravelOption{
		Base:           entity.Base{ID: uuid.New()},
		TravelID:       travelID,
		TravelType:     typ,
		Source:         "Delhi",
		Destination:    "goa",
		DepartureAt:    departure,
		ArrivalAt:      departure.Add(2 * time.Hour),
		PricePerSeat:   price,
		TotalSeats:     40,
		AvailableSeats: 40,
		OperatorName:   "Operator",
		IsActive:       true,
	}
}

func TestFeaturedDestinations_LimitsToSix(t *testing.T) {
	f := newCatalogFixture()
	img := "https://img.example.com/goa.jpg"
	f.options.On("ListDestinations", mock.Anything, 6).Return([]*entity.Destination{
		{Name: "Goa", MinPrice: 1200, TravelTypes: []string{"bus", "flight"}, ImageURL: &img},
		{Name: "Jaipur", MinPrice: 800},
	}, nil)

	svc := NewCatalogService(f.repo, seathold.NopHolder{}, zap.NewNop())
	out, err := svc.FeaturedDestinations(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "Goa", out[0].Name)
	assert.Equal(t, &img, out[0].ImageURL)
	assert.Equal(t, []string{}, out[1].TravelTypes)
	f.options.AssertExpectations(t)
}

func TestDestinations_Unlimited(t *testing.T) {
	f := newCatalogFixture()
	f.options.On("ListDestinations", mock.Anything, 0).Return([]*entity.Destination{}, nil)

	svc := NewCatalogService(f.repo, seathold.NopHolder{}, zap.NewNop())
	out, err := svc.Destinations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDestinationDetail_GroupsByTypeAndFilters(t *testing.T) {
	f := newCatalogFixture()
	flight := travelOption("FL00000001", entity.TravelTypeFlight, 4500)
	bus := travelOption("BU00000001", entity.TravelTypeBus, 900)
	f.options.On("FindByDestination", mock.Anything, "goa", repository.TravelOptionFilter{}).
		Return([]*entity.TravelOption{flight, bus}, nil)
	f.options.On("FindByDestination", mock.Anything, "goa", mock.MatchedBy(func(filter repository.TravelOptionFilter) bool {
		return filter.TravelType != nil && *filter.TravelType == entity.TravelTypeBus && filter.Date == nil
	})).Return([]*entity.TravelOption{bus}, nil)
	f.images.On("FindByTravelOption", mock.Anything, flight.ID).Return([]*entity.TravelImage{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, ImageURL: "https://img.example.com/1.jpg", IsPrimary: true},
	}, nil)
	f.details.On("FindByTravelOption", mock.Anything, flight.ID).Return(&entity.TravelDetail{Description: "Beaches"}, nil)

	svc := NewCatalogService(f.repo, seathold.NopHolder{}, zap.NewNop())
	resp, err := svc.DestinationDetail(context.Background(), "goa", request.DestinationFilter{Type: "BUS", Date: "not-a-date"})
	require.NoError(t, err)

	assert.Equal(t, "Goa", resp.Destination)
	assert.Equal(t, "Beaches", resp.Description)
	assert.Len(t, resp.Images, 1)
	assert.Len(t, resp.OptionsByType["flight"], 1)
	assert.Len(t, resp.OptionsByType["bus"], 1)
	require.Len(t, resp.TravelOptions, 1)
	assert.Equal(t, "BU00000001", resp.TravelOptions[0].TravelID)
	assert.Equal(t, "bus", resp.SelectedType)
	assert.Empty(t, resp.SelectedDate)
}

func TestDestinationDetail_UnknownDestination(t *testing.T) {
	f := newCatalogFixture()
	f.options.On("FindByDestination", mock.Anything, "atlantis", repository.TravelOptionFilter{}).
		Return([]*entity.TravelOption{}, nil)

	svc := NewCatalogService(f.repo, seathold.NopHolder{}, zap.NewNop())
	_, err := svc.DestinationDetail(context.Background(), "atlantis", request.DestinationFilter{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DestinationDetail(context.Background(), "  ", request.DestinationFilter{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTravelOption_SubtractsHeldSeats(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	holder := seathold.NewRedisHolder(client, 15*time.Minute, zap.NewNop())

	f := newCatalogFixture()
	option := travelOption("FL00000001", entity.TravelTypeFlight, 4500)
	option.AvailableSeats = 10
	f.options.On("FindByTravelID", mock.Anything, "FL00000001").Return(option, nil)
	f.images.On("FindByTravelOption", mock.Anything, option.ID).Return(nil, nil)
	f.details.On("FindByTravelOption", mock.Anything, option.ID).Return(nil, nil)

	require.NoError(t, holder.Hold(context.Background(), option.ID.String(), "BK0000000001", 4, 10))

	svc := NewCatalogService(f.repo, holder, zap.NewNop())
	resp, err := svc.GetTravelOption(context.Background(), "FL00000001")
	require.NoError(t, err)
	assert.Equal(t, 6, resp.AvailableSeats)
	assert.Equal(t, 120, resp.DurationMinutes)
}

func TestGetTravelOption_InactiveIsNotFound(t *testing.T) {
	f := newCatalogFixture()
	option := travelOption("FL00000001", entity.TravelTypeFlight, 4500)
	option.IsActive = false
	f.options.On("FindByTravelID", mock.Anything, "FL00000001").Return(option, nil)

	svc := NewCatalogService(f.repo, seathold.NopHolder{}, zap.NewNop())
	_, err := svc.GetTravelOption(context.Background(), "FL00000001")
	assert.ErrorIs(t, err, ErrNotFound)
}
