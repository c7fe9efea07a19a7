package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a login issued to a traveller. The token travels as the session
// cookie; a session is usable while RevokedAt is nil and ExpiresAt is ahead.
type Session struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Token     uuid.UUID `db:"token"`
	UserAgent *string   `db:"user_agent"`
	IPAddress *string   `db:"ip_address"`
	ExpiresAt time.Time `db:"expires_at"`
	// RevokedAt is stamped by logout, and on every open session of a
	// deactivated account when it next tries to sign in.
	RevokedAt *time.Time `db:"revoked_at"`
}

// Active reports whether the session can still authenticate at now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
