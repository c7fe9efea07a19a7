package request

const MaxSeatsPerBooking = 10

// CreateBookingRequest is the booking form. The billing snapshot is optional.
type CreateBookingRequest struct {
	NumberOfSeats        int                `json:"number_of_seats" validate:"min=1,max=10"`
	Passengers           []PassengerRequest `json:"passengers" validate:"required,min=1,max=10,dive"`
	BillingName          string             `json:"billing_name" validate:"max=100"`
	BillingStreetAddress string             `json:"billing_street_address" validate:"max=255"`
	BillingCity          string             `json:"billing_city" validate:"max=100"`
	BillingPinCode       string             `json:"billing_pin_code" validate:"max=10"`
	BillingCountry       string             `json:"billing_country" validate:"max=100"`
}

type PassengerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Age       int    `json:"age" validate:"min=1,max=120"`
	Gender    string `json:"gender" validate:"required,oneof=male female other"`
}

// PaymentCallbackRequest carries the form fields posted by the gateway
// checkout after a payment.
type PaymentCallbackRequest struct {
	PaymentID string
	OrderID   string
	Signature string
	BookingID string
}
