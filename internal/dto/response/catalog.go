package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type DestinationResponse struct {
	Name        string   `json:"name"`
	MinPrice    float64  `json:"min_price"`
	TravelTypes []string `json:"travel_types"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

type TravelOptionResponse struct {
	ID              string    `json:"id"`
	TravelID        string    `json:"travel_id"`
	TravelType      string    `json:"travel_type"`
	Source          string    `json:"source"`
	Destination     string    `json:"destination"`
	DepartureAt     time.Time `json:"departure_at"`
	ArrivalAt       time.Time `json:"arrival_at"`
	DurationMinutes int       `json:"duration_minutes"`
	PricePerSeat    float64   `json:"price_per_seat"`
	TotalSeats      int       `json:"total_seats"`
	AvailableSeats  int       `json:"available_seats"`
	OperatorName    string    `json:"operator_name"`
	IsActive        bool      `json:"is_active"`
}

type TravelImageResponse struct {
	ID           string `json:"id"`
	ImageURL     string `json:"image_url"`
	ImageTitle   string `json:"image_title"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

type TravelOptionDetailResponse struct {
	TravelOptionResponse
	Description string                `json:"description"`
	Images      []TravelImageResponse `json:"images"`
}

type DestinationDetailResponse struct {
	Destination   string                            `json:"destination"`
	TravelOptions []TravelOptionResponse            `json:"travel_options"`
	OptionsByType map[string][]TravelOptionResponse `json:"options_by_type"`
	Images        []TravelImageResponse             `json:"images"`
	Description   string                            `json:"description,omitempty"`
	SelectedDate  string                            `json:"selected_date,omitempty"`
	SelectedType  string                            `json:"selected_type,omitempty"`
}

func DestinationToResponse(d *entity.Destination) DestinationResponse {
	types := d.TravelTypes
	if types == nil {
		types = []string{}
	}
	return DestinationResponse{
		Name:        d.Name,
		MinPrice:    d.MinPrice,
		TravelTypes: types,
		ImageURL:    d.ImageURL,
	}
}

func TravelOptionToResponse(t *entity.TravelOption) TravelOptionResponse {
	return TravelOptionResponse{
		ID:              t.ID.String(),
		TravelID:        t.TravelID,
		TravelType:      string(t.TravelType),
		Source:          t.Source,
		Destination:     t.Destination,
		DepartureAt:     t.DepartureAt,
		ArrivalAt:       t.ArrivalAt,
		DurationMinutes: int(t.Duration().Minutes()),
		PricePerSeat:    t.PricePerSeat,
		TotalSeats:      t.TotalSeats,
		AvailableSeats:  t.AvailableSeats,
		OperatorName:    t.OperatorName,
		IsActive:        t.IsActive,
	}
}

func TravelImageToResponse(img *entity.TravelImage) TravelImageResponse {
	return TravelImageResponse{
		ID:           img.ID.String(),
		ImageURL:     img.ImageURL,
		ImageTitle:   img.ImageTitle,
		IsPrimary:    img.IsPrimary,
		DisplayOrder: img.DisplayOrder,
	}
}

func TravelImagesToResponse(images []*entity.TravelImage) []TravelImageResponse {
	out := make([]TravelImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, TravelImageToResponse(img))
	}
	return out
}
