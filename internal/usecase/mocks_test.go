package usecase

import (
	"context"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, *entity.User, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*entity.Session)
	user, _ := args.Get(1).(*entity.User)
	return session, user, args.Error(2)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) Ensure(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*entity.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*entity.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileRepo) Upsert(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

type mockTravelOptionRepo struct{ mock.Mock }

func (m *mockTravelOptionRepo) Create(ctx context.Context, option *entity.TravelOption) error {
	return m.Called(ctx, option).Error(0)
}

func (m *mockTravelOptionRepo) Update(ctx context.Context, option *entity.TravelOption, keepSold bool) error {
	return m.Called(ctx, option, keepSold).Error(0)
}

func (m *mockTravelOptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelOption, error) {
	args := m.Called(ctx, id)
	option, _ := args.Get(0).(*entity.TravelOption)
	return option, args.Error(1)
}

func (m *mockTravelOptionRepo) FindByTravelID(ctx context.Context, travelID string) (*entity.TravelOption, error) {
	args := m.Called(ctx, travelID)
	option, _ := args.Get(0).(*entity.TravelOption)
	return option, args.Error(1)
}

func (m *mockTravelOptionRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.TravelOption, error) {
	args := m.Called(ctx, limit, offset)
	options, _ := args.Get(0).([]*entity.TravelOption)
	return options, args.Error(1)
}

func (m *mockTravelOptionRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTravelOptionRepo) FindByDestination(ctx context.Context, destination string, filter repository.TravelOptionFilter) ([]*entity.TravelOption, error) {
	args := m.Called(ctx, destination, filter)
	options, _ := args.Get(0).([]*entity.TravelOption)
	return options, args.Error(1)
}

func (m *mockTravelOptionRepo) ListDestinations(ctx context.Context, limit int) ([]*entity.Destination, error) {
	args := m.Called(ctx, limit)
	destinations, _ := args.Get(0).([]*entity.Destination)
	return destinations, args.Error(1)
}

type mockTravelImageRepo struct{ mock.Mock }

func (m *mockTravelImageRepo) Save(ctx context.Context, image *entity.TravelImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *mockTravelImageRepo) Delete(ctx context.Context, travelOptionID, imageID uuid.UUID) error {
	return m.Called(ctx, travelOptionID, imageID).Error(0)
}

func (m *mockTravelImageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelImage, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*entity.TravelImage)
	return image, args.Error(1)
}

func (m *mockTravelImageRepo) FindByTravelOption(ctx context.Context, travelOptionID uuid.UUID) ([]*entity.TravelImage, error) {
	args := m.Called(ctx, travelOptionID)
	images, _ := args.Get(0).([]*entity.TravelImage)
	return images, args.Error(1)
}

type mockTravelDetailRepo struct{ mock.Mock }

func (m *mockTravelDetailRepo) FindByTravelOption(ctx context.Context, travelOptionID uuid.UUID) (*entity.TravelDetail, error) {
	args := m.Called(ctx, travelOptionID)
	detail, _ := args.Get(0).(*entity.TravelDetail)
	return detail, args.Error(1)
}

func (m *mockTravelDetailRepo) Upsert(ctx context.Context, detail *entity.TravelDetail) error {
	return m.Called(ctx, detail).Error(0)
}
