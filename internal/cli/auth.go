package cli

import (
	"context"

	"github.com/dmitrijs2005/hybridauth/internal/common"
	"github.com/dmitrijs2005/hybridauth/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for username, email and password and creates the account.
// A degraded registration is reported as a success with a warning. The
// password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	a.println("--- Register ---")

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if username == "" || email == "" || len(password) == 0 {
		a.println(userMessage(common.ErrEmptyField))
		return common.ErrEmptyField
	}

	res, err := a.authService.Register(ctx, username, email, string(password))
	if err != nil {
		a.println(userMessage(err))
		return err
	}

	if res.Status == services.RegistrationDegraded {
		a.println(msgRegisteredDegraded)
		return nil
	}

	a.println(msgRegistered)
	return nil
}

// Login prompts for email and password and, on success, holds the session.
// Unknown email and wrong password print the same message.
func (a *App) Login(ctx context.Context) error {
	a.println("--- Login ---")

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if email == "" || len(password) == 0 {
		a.println(userMessage(common.ErrEmptyField))
		return common.ErrEmptyField
	}

	session, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.println(userMessage(err))
		return err
	}

	a.session = session
	a.printf("Welcome, %s!\n", session.User.Username)
	return nil
}

// Recover runs the simulated password recovery. An empty email cancels.
func (a *App) Recover(ctx context.Context) error {
	a.println("--- Recover password (simulated) ---")

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		a.println(msgCancelled)
		return nil
	}

	if err := a.authService.RequestPasswordRecovery(ctx, email); err != nil {
		a.println(userMessage(err))
		return err
	}

	a.println(msgRecoverySent)
	return nil
}
