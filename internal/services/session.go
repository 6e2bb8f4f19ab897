package services

import (
	"time"

	"github.com/dmitrijs2005/hybridauth/internal/models"
	"github.com/google/uuid"
)

// Session is the authenticated state produced by a successful login. It holds
// a copy of the user row, so later store changes do not leak into it.
type Session struct {
	ID        string
	User      models.User
	StartedAt time.Time
}

func newSession(u *models.User, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		User:      *u,
		StartedAt: now,
	}
}
