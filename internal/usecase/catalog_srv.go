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
	"travel-booking/internal/seathold"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const featuredDestinations = 6

type CatalogService interface {
	FeaturedDestinations(ctx context.Context) ([]response.DestinationResponse, error)
	Destinations(ctx context.Context) ([]response.DestinationResponse, error)
	DestinationDetail(ctx context.Context, name string, filter request.DestinationFilter) (*response.DestinationDetailResponse, error)
	GetTravelOption(ctx context.Context, travelID string) (*response.TravelOptionDetailResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	holder seathold.Holder
	log    *zap.Logger
}

func NewCatalogService(repo *repository.Repository, holder seathold.Holder, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		holder: holder,
		log:    log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) FeaturedDestinations(ctx context.Context) ([]response.DestinationResponse, error) {
	return s.listDestinations(ctx, featuredDestinations)
}

func (s *catalogService) Destinations(ctx context.Context) ([]response.DestinationResponse, error) {
	return s.listDestinations(ctx, 0)
}

func (s *catalogService) listDestinations(ctx context.Context, limit int) ([]response.DestinationResponse, error) {
	destinations, err := s.repo.TravelOption.ListDestinations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}

	out := make([]response.DestinationResponse, 0, len(destinations))
	for _, d := range destinations {
		out = append(out, response.DestinationToResponse(d))
	}
	return out, nil
}

// DestinationDetail lists the bookable options of a destination. Images,
// description and the per-type grouping describe the destination as a whole;
// the date and type filters only narrow TravelOptions.
func (s *catalogService) DestinationDetail(ctx context.Context, name string, filter request.DestinationFilter) (*response.DestinationDetailResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("destination: %w", ErrNotFound)
	}

	all, err := s.repo.TravelOption.FindByDestination(ctx, name, repository.TravelOptionFilter{})
	if err != nil {
		return nil, fmt.Errorf("find travel options: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no travel options for %s: %w", name, ErrNotFound)
	}

	resp := &response.DestinationDetailResponse{
		Destination:   cases.Title(language.Und).String(name),
		OptionsByType: make(map[string][]response.TravelOptionResponse),
	}

	for _, option := range all {
		key := string(option.TravelType)
		resp.OptionsByType[key] = append(resp.OptionsByType[key], response.TravelOptionToResponse(option))
	}

	first := all[0]
	images, err := s.repo.TravelImage.FindByTravelOption(ctx, first.ID)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	resp.Images = response.TravelImagesToResponse(images)

	detail, err := s.repo.TravelDetail.FindByTravelOption(ctx, first.ID)
	if err != nil {
		return nil, fmt.Errorf("find description: %w", err)
	}
	if detail != nil {
		resp.Description = detail.Description
	}

	var narrowed repository.TravelOptionFilter
	if filter.Date != "" {
		if date, err := time.Parse(time.DateOnly, filter.Date); err == nil {
			narrowed.Date = &date
			resp.SelectedDate = filter.Date
		}
	}
	if filter.Type != "" {
		travelType := entity.TravelType(strings.ToLower(filter.Type))
		narrowed.TravelType = &travelType
		resp.SelectedType = string(travelType)
	}

	options := all
	if narrowed.Date != nil || narrowed.TravelType != nil {
		options, err = s.repo.TravelOption.FindByDestination(ctx, name, narrowed)
		if err != nil {
			return nil, fmt.Errorf("find filtered travel options: %w", err)
		}
	}

	resp.TravelOptions = make([]response.TravelOptionResponse, 0, len(options))
	for _, option := range options {
		resp.TravelOptions = append(resp.TravelOptions, response.TravelOptionToResponse(option))
	}

	return resp, nil
}

func (s *catalogService) GetTravelOption(ctx context.Context, travelID string) (*response.TravelOptionDetailResponse, error) {
	option, err := findActiveTravelOption(ctx, s.repo, travelID)
	if err != nil {
		return nil, err
	}

	images, err := s.repo.TravelImage.FindByTravelOption(ctx, option.ID)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}

	detail, err := s.repo.TravelDetail.FindByTravelOption(ctx, option.ID)
	if err != nil {
		return nil, fmt.Errorf("find description: %w", err)
	}

	resp := &response.TravelOptionDetailResponse{
		TravelOptionResponse: response.TravelOptionToResponse(option),
		Images:               response.TravelImagesToResponse(images),
	}
	if detail != nil {
		resp.Description = detail.Description
	}

	// show what can still be booked right now
	if held, err := s.holder.Held(ctx, option.ID.String()); err == nil {
		resp.AvailableSeats = max(option.AvailableSeats-held, 0)
	} else {
		s.log.Warn("Failed to read seat holds", zap.Error(err), zap.String("travel_id", travelID))
	}

	return resp, nil
}

func findActiveTravelOption(ctx context.Context, repo *repository.Repository, travelID string) (*entity.TravelOption, error) {
	option, err := repo.TravelOption.FindByTravelID(ctx, travelID)
	if err != nil {
		return nil, fmt.Errorf("find travel option: %w", err)
	}
	if option == nil || !option.IsActive {
		return nil, fmt.Errorf("travel option %s: %w", travelID, ErrNotFound)
	}
	return option, nil
}
