package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/hybridauth/internal/common"
)

// BcryptHasher produces "$2a$<cost>$..." encodings.
type BcryptHasher struct {
	cost int
}

var _ Hasher = (*BcryptHasher)(nil)

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns common.ErrPasswordTooLong for passwords over 72 bytes, which
// bcrypt cannot represent.
func (h *BcryptHasher) Hash(password []byte) (string, error) {
	out, err := bcrypt.GenerateFromPassword(password, h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.ErrPasswordTooLong
		}
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(out), nil
}

func (h *BcryptHasher) Verify(password []byte, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", common.ErrMalformedHash, err)
	}
}
