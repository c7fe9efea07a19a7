package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type ProfileResponse struct {
	User          UserResponse `json:"user"`
	PhoneNumber   string       `json:"phone_number"`
	DateOfBirth   string       `json:"date_of_birth,omitempty"`
	StreetAddress string       `json:"street_address"`
	City          string       `json:"city"`
	PinCode       string       `json:"pin_code"`
	Country       string       `json:"country"`
}

func ProfileToResponse(user *entity.User, profile *entity.Profile) ProfileResponse {
	resp := ProfileResponse{
		User:          UserToResponse(user),
		PhoneNumber:   profile.PhoneNumber,
		StreetAddress: profile.StreetAddress,
		City:          profile.City,
		PinCode:       profile.PinCode,
		Country:       profile.Country,
	}
	if profile.DateOfBirth != nil {
		resp.DateOfBirth = profile.DateOfBirth.Format(time.DateOnly)
	}
	return resp
}
