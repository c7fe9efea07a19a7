package usecase

import (
	"context"
	"errors"
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

type CatalogAdminService interface {
	ListTravelOptions(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.TravelOptionResponse], error)
	CreateTravelOption(ctx context.Context, req *request.TravelOptionRequest) (*response.TravelOptionResponse, error)
	UpdateTravelOption(ctx context.Context, travelID string, req *request.TravelOptionRequest) (*response.TravelOptionResponse, error)
	SaveImage(ctx context.Context, travelID string, imageID *uuid.UUID, req *request.TravelImageRequest) (*response.TravelImageResponse, error)
	DeleteImage(ctx context.Context, travelID string, imageID uuid.UUID) error
	UpsertDetail(ctx context.Context, travelID string, req *request.TravelDetailRequest) error
}

type catalogAdminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogAdminService(repo *repository.Repository, log *zap.Logger) CatalogAdminService {
	return &catalogAdminService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog_admin")),
	}
}

func (s *catalogAdminService) ListTravelOptions(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.TravelOptionResponse], error) {
	p := request.NewPage(page, perPage)

	options, err := s.repo.TravelOption.FindAll(ctx, p.Size, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list travel options: %w", err)
	}

	total, err := s.repo.TravelOption.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count travel options: %w", err)
	}

	data := make([]response.TravelOptionResponse, 0, len(options))
	for _, option := range options {
		data = append(data, response.TravelOptionToResponse(option))
	}

	return response.NewPaginatedResponse(data, p.Number, p.Size, total), nil
}

// CreateTravelOption generates the public travel id. Available seats default
// to the total.
func (s *catalogAdminService) CreateTravelOption(ctx context.Context, req *request.TravelOptionRequest) (*response.TravelOptionResponse, error) {
	departure, arrival, err := validateTravelOption(req)
	if err != nil {
		s.log.Warn("Travel option validation failed", zap.Error(err))
		return nil, err
	}

	available := req.TotalSeats
	if req.AvailableSeats != nil {
		available = *req.AvailableSeats
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now()
	option := &entity.TravelOption{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TravelType:     entity.TravelType(req.TravelType),
		Source:         strings.TrimSpace(req.Source),
		Destination:    strings.TrimSpace(req.Destination),
		DepartureAt:    departure,
		ArrivalAt:      arrival,
		PricePerSeat:   roundMoney(req.PricePerSeat),
		TotalSeats:     req.TotalSeats,
		AvailableSeats: available,
		OperatorName:   strings.TrimSpace(req.OperatorName),
		IsActive:       active,
	}

	// retry on the unlikely public id collision
	for attempt := 0; ; attempt++ {
		option.TravelID = utils.GenerateTravelID(req.TravelType)
		err = s.repo.TravelOption.Create(ctx, option)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) || attempt == 2 {
			return nil, fmt.Errorf("create travel option: %w", err)
		}
	}

	s.log.Info("Travel option created",
		zap.String("travel_id", option.TravelID),
		zap.String("destination", option.Destination))

	resp := response.TravelOptionToResponse(option)
	return &resp, nil
}

// UpdateTravelOption keeps the travel id. When available seats are omitted
// the seats already sold are preserved against the new total.
func (s *catalogAdminService) UpdateTravelOption(ctx context.Context, travelID string, req *request.TravelOptionRequest) (*response.TravelOptionResponse, error) {
	departure, arrival, err := validateTravelOption(req)
	if err != nil {
		return nil, err
	}

	option, err := s.repo.TravelOption.FindByTravelID(ctx, travelID)
	if err != nil {
		return nil, fmt.Errorf("find travel option: %w", err)
	}
	if option == nil {
		return nil, fmt.Errorf("travel option %s: %w", travelID, ErrNotFound)
	}

	keepSold := req.AvailableSeats == nil
	if !keepSold {
		option.AvailableSeats = *req.AvailableSeats
	}

	option.TravelType = entity.TravelType(req.TravelType)
	option.Source = strings.TrimSpace(req.Source)
	option.Destination = strings.TrimSpace(req.Destination)
	option.DepartureAt = departure
	option.ArrivalAt = arrival
	option.PricePerSeat = roundMoney(req.PricePerSeat)
	option.TotalSeats = req.TotalSeats
	option.OperatorName = strings.TrimSpace(req.OperatorName)
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}
	option.UpdatedAt = time.Now()

	err = s.repo.TravelOption.Update(ctx, option, keepSold)
	switch {
	case errors.Is(err, repository.ErrBelowSold):
		return nil, newValidationError(utils.FieldError{
			Field:   "total_seats",
			Message: "Must not be below the seats already sold",
		})
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("travel option %s: %w", travelID, ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("update travel option: %w", err)
	}

	s.log.Info("Travel option updated", zap.String("travel_id", travelID))

	resp := response.TravelOptionToResponse(option)
	return &resp, nil
}

// SaveImage adds an image when imageID is nil and updates it otherwise.
func (s *catalogAdminService) SaveImage(ctx context.Context, travelID string, imageID *uuid.UUID, req *request.TravelImageRequest) (*response.TravelImageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs...)
	}

	option, err := s.repo.TravelOption.FindByTravelID(ctx, travelID)
	if err != nil {
		return nil, fmt.Errorf("find travel option: %w", err)
	}
	if option == nil {
		return nil, fmt.Errorf("travel option %s: %w", travelID, ErrNotFound)
	}

	image := &entity.TravelImage{
		TravelOptionID: option.ID,
		ImageURL:       req.ImageURL,
		ImageTitle:     strings.TrimSpace(req.ImageTitle),
		IsPrimary:      req.IsPrimary,
		DisplayOrder:   req.DisplayOrder,
	}
	if imageID != nil {
		existing, err := s.repo.TravelImage.FindByID(ctx, *imageID)
		if err != nil {
			return nil, fmt.Errorf("find image: %w", err)
		}
		if existing == nil || existing.TravelOptionID != option.ID {
			return nil, fmt.Errorf("image %s: %w", imageID.String(), ErrNotFound)
		}
		image.ID = existing.ID
		image.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.TravelImage.Save(ctx, image); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("save image: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("save image: %w", err)
	}

	s.log.Info("Travel image saved",
		zap.String("travel_id", travelID),
		zap.String("image_id", image.ID.String()),
		zap.Bool("primary", image.IsPrimary))

	resp := response.TravelImageToResponse(image)
	return &resp, nil
}

func (s *catalogAdminService) DeleteImage(ctx context.Context, travelID string, imageID uuid.UUID) error {
	option, err := s.repo.TravelOption.FindByTravelID(ctx, travelID)
	if err != nil {
		return fmt.Errorf("find travel option: %w", err)
	}
	if option == nil {
		return fmt.Errorf("travel option %s: %w", travelID, ErrNotFound)
	}

	if err := s.repo.TravelImage.Delete(ctx, option.ID, imageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("image %s: %w", imageID.String(), ErrNotFound)
		}
		return fmt.Errorf("delete image: %w", err)
	}

	s.log.Info("Travel image deleted",
		zap.String("travel_id", travelID),
		zap.String("image_id", imageID.String()))
	return nil
}

func (s *catalogAdminService) UpsertDetail(ctx context.Context, travelID string, req *request.TravelDetailRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(errs...)
	}

	option, err := s.repo.TravelOption.FindByTravelID(ctx, travelID)
	if err != nil {
		return fmt.Errorf("find travel option: %w", err)
	}
	if option == nil {
		return fmt.Errorf("travel option %s: %w", travelID, ErrNotFound)
	}

	now := time.Now()
	detail := &entity.TravelDetail{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TravelOptionID: option.ID,
		Description:    req.Description,
	}

	if err := s.repo.TravelDetail.Upsert(ctx, detail); err != nil {
		return fmt.Errorf("save description: %w", err)
	}
	return nil
}

// validateTravelOption runs the struct rules plus the checks that span
// fields, and parses the schedule.
func validateTravelOption(req *request.TravelOptionRequest) (time.Time, time.Time, error) {
	errs := utils.ValidateStruct(req)

	departure, depErr := time.Parse(time.RFC3339, req.DepartureAt)
	arrival, arrErr := time.Parse(time.RFC3339, req.ArrivalAt)
	if depErr == nil && arrErr == nil && !arrival.After(departure) {
		errs = append(errs, utils.FieldError{Field: "arrival_at", Message: "Must be after departure_at"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, newValidationError(errs...)
	}
	return departure, arrival, nil
}
