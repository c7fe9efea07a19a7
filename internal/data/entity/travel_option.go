package entity

import (
	"time"

	"github.com/google/uuid"
)

type TravelType string

const (
	TravelTypeFlight TravelType = "flight"
	TravelTypeTrain  TravelType = "train"
	TravelTypeBus    TravelType = "bus"
)

func (t TravelType) Valid() bool {
	switch t {
	case TravelTypeFlight, TravelTypeTrain, TravelTypeBus:
		return true
	}
	return false
}

type TravelOption struct {
	Base
	TravelID       string     `db:"travel_id"`
	TravelType     TravelType `db:"travel_type"`
	Source         string     `db:"source"`
	Destination    string     `db:"destination"`
	DepartureAt    time.Time  `db:"departure_at"`
	ArrivalAt      time.Time  `db:"arrival_at"`
	PricePerSeat   float64    `db:"price_per_seat"`
	TotalSeats     int        `db:"total_seats"`
	AvailableSeats int        `db:"available_seats"`
	OperatorName   string     `db:"operator_name"`
	IsActive       bool       `db:"is_active"`
}

// Duration is the scheduled travel time.
func (t *TravelOption) Duration() time.Duration {
	return t.ArrivalAt.Sub(t.DepartureAt)
}

type TravelImage struct {
	BaseSimple
	TravelOptionID uuid.UUID `db:"travel_option_id"`
	ImageURL       string    `db:"image_url"`
	ImageTitle     string    `db:"image_title"`
	IsPrimary      bool      `db:"is_primary"`
	DisplayOrder   int       `db:"display_order"`
}

type TravelDetail struct {
	Base
	TravelOptionID uuid.UUID `db:"travel_option_id"`
	Description    string    `db:"description"`
}

// Destination is an aggregate over active future travel options sharing
// a destination name.
type Destination struct {
	Name        string
	MinPrice    float64
	TravelTypes []string
	ImageURL    *string
}
