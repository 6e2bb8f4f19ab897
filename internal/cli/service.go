package cli

import (
	"context"

	"github.com/dmitrijs2005/hybridauth/internal/services"
)

// AuthService is the subset of *services.AuthService the CLI drives.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*services.RegistrationResult, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Logout(ctx context.Context, session *services.Session) error
	Profile(ctx context.Context, session *services.Session) (*services.Profile, error)
	EditProfile(ctx context.Context, session *services.Session, newEmail string) error
	RequestPasswordRecovery(ctx context.Context, email string) error
}

var _ AuthService = (*services.AuthService)(nil)
