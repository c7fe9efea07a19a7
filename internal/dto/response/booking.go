package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string                `json:"id"`
	BookingID     string                `json:"booking_id"`
	TravelOption  *TravelOptionResponse `json:"travel_option,omitempty"`
	NumberOfSeats int                   `json:"number_of_seats"`
	TotalPrice    float64               `json:"total_price"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"payment_status"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	TransactionID string                `json:"transaction_id,omitempty"`
	PaymentDate   *time.Time            `json:"payment_date,omitempty"`
	Billing       BillingResponse       `json:"billing"`
	CreatedAt     time.Time             `json:"created_at"`
}

type BillingResponse struct {
	Name          string `json:"name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PinCode       string `json:"pin_code"`
	Country       string `json:"country"`
}

type PassengerResponse struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	SeatNumber string `json:"seat_number,omitempty"`
}

type BookingDetailResponse struct {
	BookingResponse
	Passengers []PassengerResponse `json:"passengers"`
}

// BookingFormResponse prefills the booking form of a travel option.
type BookingFormResponse struct {
	TravelOption  TravelOptionResponse `json:"travel_option"`
	MaxSeats      int                  `json:"max_seats"`
	BookableSeats int                  `json:"bookable_seats"`
	Billing       BillingResponse      `json:"billing"`
	GenderChoices []string             `json:"gender_choices"`
}

// CheckoutResponse holds the parameters the gateway checkout widget needs.
type CheckoutResponse struct {
	KeyID       string          `json:"key_id"`
	OrderID     string          `json:"order_id"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	BookingID   string          `json:"booking_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Prefill     CheckoutPrefill `json:"prefill"`
	CallbackURL string          `json:"callback_url"`
	Booking     BookingResponse `json:"booking"`
}

type CheckoutPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// PaymentResultResponse tells the client where to go after a callback.
type PaymentResultResponse struct {
	BookingID string `json:"booking_id,omitempty"`
	Redirect  string `json:"redirect"`
}

func BookingToResponse(b *entity.Booking, option *entity.TravelOption) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		BookingID:     b.BookingID,
		NumberOfSeats: b.NumberOfSeats,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		PaymentMethod: b.PaymentMethod,
		TransactionID: b.TransactionID,
		PaymentDate:   b.PaymentDate,
		Billing: BillingResponse{
			Name:          b.Billing.Name,
			StreetAddress: b.Billing.StreetAddress,
			City:          b.Billing.City,
			PinCode:       b.Billing.PinCode,
			Country:       b.Billing.Country,
		},
		CreatedAt: b.CreatedAt,
	}
	if option != nil {
		t := TravelOptionToResponse(option)
		resp.TravelOption = &t
	}
	return resp
}

func PassengersToResponse(passengers []*entity.Passenger) []PassengerResponse {
	out := make([]PassengerResponse, 0, len(passengers))
	for _, p := range passengers {
		out = append(out, PassengerResponse{
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Age:        p.Age,
			Gender:     string(p.Gender),
			SeatNumber: p.SeatNumber,
		})
	}
	return out
}
