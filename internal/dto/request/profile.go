package request

type UpdateProfileRequest struct {
	PhoneNumber   string `json:"phone_number" validate:"omitempty,max=15"`
	DateOfBirth   string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	StreetAddress string `json:"street_address" validate:"omitempty,max=255"`
	City          string `json:"city" validate:"omitempty,max=100"`
	PinCode       string `json:"pin_code" validate:"omitempty,max=10"`
	Country       string `json:"country" validate:"omitempty,max=100"`
}
