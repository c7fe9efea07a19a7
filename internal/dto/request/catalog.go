package request

// DestinationFilter holds the raw query filters of a destination page.
// Values that do not parse are ignored.
type DestinationFilter struct {
	Date string
	Type string
}

type TravelOptionRequest struct {
	TravelType     string  `json:"travel_type" validate:"required,oneof=flight train bus"`
	Source         string  `json:"source" validate:"required,max=100"`
	Destination    string  `json:"destination" validate:"required,max=100"`
	DepartureAt    string  `json:"departure_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ArrivalAt      string  `json:"arrival_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	PricePerSeat   float64 `json:"price_per_seat" validate:"gte=0.01"`
	TotalSeats     int     `json:"total_seats" validate:"min=1"`
	AvailableSeats *int    `json:"available_seats" validate:"omitempty,min=0,ltefield=TotalSeats"`
	OperatorName   string  `json:"operator_name" validate:"required,max=100"`
	IsActive       *bool   `json:"is_active"`
}

type TravelImageRequest struct {
	ImageURL     string `json:"image_url" validate:"required,url,max=500"`
	ImageTitle   string `json:"image_title" validate:"max=100"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

type TravelDetailRequest struct {
	Description string `json:"description" validate:"required"`
}
