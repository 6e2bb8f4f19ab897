package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hybridauth/internal/common"
)

// Info prints the session user joined with its mirror record.
func (a *App) Info(ctx context.Context) error {
	p, err := a.authService.Profile(ctx, a.session)
	if err != nil {
		a.println(userMessage(err))
		return err
	}

	a.println("--- Your information ---")
	a.printf("ID:         %d\n", p.User.ID)
	a.printf("Username:   %s\n", p.User.Username)
	a.printf("Email:      %s\n", p.User.Email)
	a.printf("Registered: %s\n", p.User.RegisteredAt.Format(time.DateTime))

	switch {
	case p.MirrorFound:
		a.printf("Role:       %s\n", p.Mirror.Role)
	case p.MirrorErr != nil:
		a.println(msgMirrorUnavailable)
	default:
		a.println(msgNoMirror)
	}
	return nil
}

// EditProfile runs the simulated email change. An empty email cancels.
func (a *App) EditProfile(ctx context.Context) error {
	if a.session == nil {
		a.println(userMessage(common.ErrNoSession))
		return common.ErrNoSession
	}

	a.println("--- Edit profile (simulated) ---")
	a.printf("Current email: %s\n", a.session.User.Email)

	email, err := getSimpleText(a.reader, "New email (empty to cancel)", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		a.println(msgCancelled)
		return nil
	}

	if err := a.authService.EditProfile(ctx, a.session, email); err != nil {
		a.println(userMessage(err))
		return err
	}

	a.printf("%s %s.\n", msgEditSimulated, email)
	return nil
}

// Logout ends the session. The session is dropped even if recording the
// logout fails.
func (a *App) Logout(ctx context.Context) error {
	if a.session == nil {
		a.println(userMessage(common.ErrNoSession))
		return common.ErrNoSession
	}

	username := a.session.User.Username
	err := a.authService.Logout(ctx, a.session)
	a.session = nil
	if err != nil {
		return err
	}

	a.printf("Goodbye, %s. Session closed.\n", username)
	return nil
}
