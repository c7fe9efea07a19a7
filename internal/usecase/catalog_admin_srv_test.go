package usecase

import (
	"context"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func optionRequest() *request.TravelOptionRequest {
	return &request.TravelOptionRequest{
		TravelType:   "train",
		Source:       "Mumbai",
		Destination:  "Pune",
		DepartureAt:  "2026-12-01T08:00:00+05:30",
		ArrivalAt:    "2026-12-01T11:30:00+05:30",
		PricePerSeat: 450.499,
		TotalSeats:   60,
		OperatorName: "Deccan Queen",
	}
}

func TestCreateTravelOption_DefaultsAndTravelID(t *testing.T) {
	f := newCatalogFixture()
	f.options.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewCatalogAdminService(f.repo, zap.NewNop())
	resp, err := svc.CreateTravelOption(context.Background(), optionRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^TR\d{8}$`, resp.TravelID)
	assert.Equal(t, 60, resp.AvailableSeats)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 450.5, resp.PricePerSeat)
	assert.Equal(t, 210, resp.DurationMinutes)
}

func TestCreateTravelOption_RejectsFreeSeats(t *testing.T) {
	f := newCatalogFixture()
	svc := NewCatalogAdminService(f.repo, zap.NewNop())

	for _, price := range []float64{0, 0.004, -10} {
		req := optionRequest()
		req.PricePerSeat = price

		_, err := svc.CreateTravelOption(context.Background(), req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "price %v", price)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "price_per_seat", verr.Fields[0].Field)
	}
	f.options.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTravelOption_RetriesTravelIDCollision(t *testing.T) {
	f := newCatalogFixture()
	f.options.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Twice()
	f.options.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewCatalogAdminService(f.repo, zap.NewNop())
	_, err := svc.CreateTravelOption(context.Background(), optionRequest())
	require.NoError(t, err)
	f.options.AssertNumberOfCalls(t, "Create", 3)
}

func TestCreateTravelOption_Validation(t *testing.T) {
	f := newCatalogFixture()
	svc := NewCatalogAdminService(f.repo, zap.NewNop())

	req := optionRequest()
	req.ArrivalAt = req.DepartureAt
	over := 61
	req.AvailableSeats = &over

	_, err := svc.CreateTravelOption(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"available_seats", "arrival_at"}, fields)
	f.options.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateTravelOption_PreservesSoldSeats(t *testing.T) {
	f := newCatalogFixture()
	existing := travelOption("TR12345678", entity.TravelTypeTrain, 400)
	existing.TotalSeats = 50
	existing.AvailableSeats = 30
	f.options.On("FindByTravelID", mock.Anything, "TR12345678").Return(existing, nil)
	// the store recomputes from the locked row, where sales moved on since the read
	f.options.On("Update", mock.Anything, mock.Anything, true).Run(func(args mock.Arguments) {
		option := args.Get(1).(*entity.TravelOption)
		option.AvailableSeats = option.TotalSeats - 23
	}).Return(nil).Once()
	f.options.On("Update", mock.Anything, mock.Anything, true).Return(repository.ErrBelowSold).Once()

	svc := NewCatalogAdminService(f.repo, zap.NewNop())
	resp, err := svc.UpdateTravelOption(context.Background(), "TR12345678", optionRequest())
	require.NoError(t, err)
	assert.Equal(t, 60, resp.TotalSeats)
	assert.Equal(t, 37, resp.AvailableSeats)
	assert.Equal(t, "TR12345678", resp.TravelID)

	req := optionRequest()
	req.TotalSeats = 10
	_, err = svc.UpdateTravelOption(context.Background(), "TR12345678", req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "total_seats", verr.Fields[0].Field)
}

func TestUpdateTravelOption_ExplicitAvailableSeats(t *testing.T) {
	f := newCatalogFixture()
	existing := travelOption("TR12345678", entity.TravelTypeTrain, 400)
	f.options.On("FindByTravelID", mock.Anything, "TR12345678").Return(existing, nil)
	f.options.On("Update", mock.Anything, mock.MatchedBy(func(o *entity.TravelOption) bool {
		return o.AvailableSeats == 12
	}), false).Return(nil)

	req := optionRequest()
	twelve := 12
	req.AvailableSeats = &twelve

	svc := NewCatalogAdminService(f.repo, zap.NewNop())
	resp, err := svc.UpdateTravelOption(context.Background(), "TR12345678", req)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.AvailableSeats)
}

func TestSaveImage(t *testing.T) {
	f := newCatalogFixture()
	option := travelOption("FL00000001", entity.TravelTypeFlight, 4500)
	f.options.On("FindByTravelID", mock.Anything, "FL00000001").Return(option, nil)
	f.images.On("Save", mock.Anything, mock.MatchedBy(func(img *entity.TravelImage) bool {
		return img.TravelOptionID == option.ID && img.ID == uuid.Nil
	})).Run(func(args mock.Arguments) {
		img := args.Get(1).(*entity.TravelImage)
		img.ID = uuid.New()
		img.IsPrimary = true
	}).Return(nil)

	svc := NewCatalogAdminService(f.repo, zap.NewNop())
	resp, err := svc.SaveImage(context.Background(), "FL00000001", nil, &request.TravelImageRequest{
		ImageURL: "https://img.example.com/a.jpg",
	})
	require.NoError(t, err)
	assert.True(t, resp.IsPrimary)
	assert.NotEmpty(t, resp.ID)
}

func TestSaveImage_ImageOfAnotherOption(t *testing.T) {
	f := newCatalogFixture()
	option := travelOption("FL00000001", entity.TravelTypeFlight, 4500)
	imageID := uuid.New()
	f.options.On("FindByTravelID", mock.Anything, "FL00000001").Return(option, nil)
	f.images.On("FindByID", mock.Anything, imageID).Return(&entity.TravelImage{
		BaseSimple:     entity.BaseSimple{ID: imageID},
		TravelOptionID: uuid.New(),
	}, nil)

	svc := NewCatalogAdminService(f.repo, zap.NewNop())
	_, err := svc.SaveImage(context.Background(), "FL00000001", &imageID, &request.TravelImageRequest{
		ImageURL: "https://img.example.com/a.jpg",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	f.images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteImage_NotFound(t *testing.T) {
	f := newCatalogFixture()
	option := travelOption("FL00000001", entity.TravelTypeFlight, 4500)
	imageID := uuid.New()
	f.options.On("FindByTravelID", mock.Anything, "FL00000001").Return(option, nil)
	f.images.On("Delete", mock.Anything, option.ID, imageID).Return(repository.ErrNotFound)

	svc := NewCatalogAdminService(f.repo, zap.NewNop())
	err := svc.DeleteImage(context.Background(), "FL00000001", imageID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertDetail(t *testing.T) {
	f := newCatalogFixture()
	option := travelOption("FL00000001", entity.TravelTypeFlight, 4500)
	f.options.On("FindByTravelID", mock.Anything, "FL00000001").Return(option, nil)
	f.details.On("Upsert", mock.Anything, mock.MatchedBy(func(d *entity.TravelDetail) bool {
		return d.TravelOptionID == option.ID && d.Description == "Window seats"
	})).Return(nil)

	svc := NewCatalogAdminService(f.repo, zap.NewNop())
	require.NoError(t, svc.UpsertDetail(context.Background(), "FL00000001", &request.TravelDetailRequest{Description: "Window seats"}))

	var verr *ValidationError
	assert.ErrorAs(t, svc.UpsertDetail(context.Background(), "FL00000001", &request.TravelDetailRequest{}), &verr)
}
