package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

const PaymentMethodGateway = "gateway"

type Booking struct {
	Base
	BookingID      string        `db:"booking_id"`
	UserID         uuid.UUID     `db:"user_id"`
	TravelOptionID uuid.UUID     `db:"travel_option_id"`
	NumberOfSeats  int           `db:"number_of_seats"`
	TotalPrice     float64       `db:"total_price"`
	Status         BookingStatus `db:"status"`
	PaymentStatus  PaymentStatus `db:"payment_status"`
	PaymentMethod  string        `db:"payment_method"`
	GatewayOrderID string        `db:"gateway_order_id"`
	TransactionID  string        `db:"transaction_id"`
	PaymentDate    *time.Time    `db:"payment_date"`
	Billing        Billing
}

// Billing is the address snapshot taken when the booking is made.
type Billing struct {
	Name          string `db:"billing_name"`
	StreetAddress string `db:"billing_street_address"`
	City          string `db:"billing_city"`
	PinCode       string `db:"billing_pin_code"`
	Country       string `db:"billing_country"`
}

func (b *Booking) IsPaid() bool {
	return b.Status == BookingStatusConfirmed && b.PaymentStatus == PaymentStatusCompleted
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Passenger struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	Position   int       `db:"position"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Age        int       `db:"age"`
	Gender     Gender    `db:"gender"`
	SeatNumber string    `db:"seat_number"`
}
