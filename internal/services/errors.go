package services

import (
	"fmt"

	"github.com/dmitrijs2005/hybridauth/internal/common"
)

// DuplicateIdentityError reports a registration rejected by the relational
// store's uniqueness constraints. It matches common.ErrDuplicateIdentity.
type DuplicateIdentityError struct {
	Username string
	Email    string
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("username %q or email %q is already registered", e.Username, e.Email)
}

func (e *DuplicateIdentityError) Unwrap() error {
	return common.ErrDuplicateIdentity
}

// MirrorWriteError is the warning attached to a degraded registration: the
// relational row with RelationalID is committed but its mirror is missing.
// It matches common.ErrMirrorWriteFailed and the underlying store error.
type MirrorWriteError struct {
	RelationalID int64
	Err          error
}

func (e *MirrorWriteError) Error() string {
	return fmt.Sprintf("user %d registered without mirror: %v", e.RelationalID, e.Err)
}

func (e *MirrorWriteError) Unwrap() []error {
	return []error{common.ErrMirrorWriteFailed, e.Err}
}
