package cli

import (
	"errors"

	"github.com/dmitrijs2005/hybridauth/internal/common"
)

const (
	msgRegistered         = "Account created."
	msgRegisteredDegraded = "Account created, but your profile copy could not be saved. Some profile details may be missing."
	msgRecoverySent       = "(Simulated) If an account exists for that email, a recovery link has been sent."
	msgEditSimulated      = "(Simulated) Your email would now be"
	msgCancelled          = "Cancelled."
	msgNoMirror           = "No extended profile record was found."
	msgMirrorUnavailable  = "Extended profile details are unavailable right now."
)

// userMessage maps an error to the fixed text shown to the user. Wrapped
// driver errors never reach the terminal.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrEmptyField):
		return "All fields are required."
	case errors.Is(err, common.ErrPasswordTooLong):
		return "That password is too long. Please choose a shorter one."
	case errors.Is(err, common.ErrDuplicateIdentity):
		return "That username or email is already registered."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrStoreUnavailable):
		return "The user database is unavailable. Please try again later."
	case errors.Is(err, common.ErrNoSession):
		return "You are not logged in."
	default:
		return "Something went wrong. Please try again."
	}
}
