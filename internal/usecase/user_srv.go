package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.ProfileResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

// GetProfile returns the user with their profile, creating an empty profile
// on first access.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.Profile.Ensure(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	resp := response.ProfileToResponse(user, profile)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.ProfileResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs...)
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(time.DateOnly, req.DateOfBirth)
		if err != nil {
			return nil, newValidationError(utils.FieldError{Field: "date_of_birth", Message: "Must be a date in 2006-01-02 format"})
		}
		if parsed.After(time.Now()) {
			return nil, newValidationError(utils.FieldError{Field: "date_of_birth", Message: "Must not be in the future"})
		}
		dob = &parsed
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &entity.Profile{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userID,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		DateOfBirth:   dob,
		StreetAddress: strings.TrimSpace(req.StreetAddress),
		City:          strings.TrimSpace(req.City),
		PinCode:       strings.TrimSpace(req.PinCode),
		Country:       strings.TrimSpace(req.Country),
	}

	if err := s.repo.Profile.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.ProfileToResponse(user, profile)
	return &resp, nil
}

func (s *userService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrNotFound)
	}
	return user, nil
}
