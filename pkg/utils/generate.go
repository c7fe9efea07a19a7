package utils

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== PUBLIC IDS ====================

// GenerateTravelID returns the public id of a travel option: the first two
// letters of its type upper-cased followed by 8 digits, e.g. FL12345678.
func GenerateTravelID(travelType string) string {
	prefix := "TR"
	if len(travelType) >= 2 {
		prefix = strings.ToUpper(travelType[:2])
	}
	return prefix + randomDigits(8)
}

// GenerateBookingID returns the public id of a booking, e.g. BK1234567890.
func GenerateBookingID() string {
	return "BK" + randomDigits(10)
}

// randomDigits takes the trailing n decimal digits of a random uuid.
func randomDigits(n int) string {
	digits := ""
	for len(digits) < n {
		id := uuid.New()
		digits += new(big.Int).SetBytes(id[:]).String()
	}
	return digits[len(digits)-n:]
}
