package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}

func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// Profile holds the contact and address data of a user, one per user.
type Profile struct {
	Base
	UserID        uuid.UUID  `db:"user_id"`
	PhoneNumber   string     `db:"phone_number"`
	DateOfBirth   *time.Time `db:"date_of_birth"`
	StreetAddress string     `db:"street_address"`
	City          string     `db:"city"`
	PinCode       string     `db:"pin_code"`
	Country       string     `db:"country"`
}
