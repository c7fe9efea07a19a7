package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionActive(t *testing.T) {
	now := time.Now()
	revokedAt := now.Add(-time.Minute)

	assert.True(t, (&Session{ExpiresAt: now.Add(time.Hour)}).Active(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(-time.Second)}).Active(now))
	assert.False(t, (&Session{ExpiresAt: now}).Active(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}).Active(now))
}
