// Package cryptox implements password hashing with self-describing encodings.
//
// Every encoded hash carries its algorithm, cost parameters and salt, so a
// stored value can be verified without any side configuration:
//
//	$2b$10$<salt+digest>                          bcrypt
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>  argon2id (PHC string)
package cryptox

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hybridauth/internal/common"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Hasher hashes and verifies passwords.
//
// Hash never returns the same encoding twice for one password. Verify returns
// (false, nil) on a well-formed mismatch and an error wrapping
// common.ErrMalformedHash only when the encoding cannot be parsed.
type Hasher interface {
	Hash(password []byte) (string, error)
	Verify(password []byte, encoded string) (bool, error)
}

// MultiHasher hashes with one configured algorithm and verifies any supported
// encoding by looking at its prefix.
type MultiHasher struct {
	primary Hasher
	bcrypt  *BcryptHasher
	argon2  *Argon2Hasher
}

var _ Hasher = (*MultiHasher)(nil)

// NewHasher returns a MultiHasher producing algorithm-encoded hashes.
// bcryptCost only matters when algorithm is "bcrypt".
func NewHasher(algorithm string, bcryptCost int) (*MultiHasher, error) {
	h := &MultiHasher{
		bcrypt: NewBcryptHasher(bcryptCost),
		argon2: NewArgon2Hasher(DefaultArgon2Params),
	}

	switch algorithm {
	case AlgorithmBcrypt:
		h.primary = h.bcrypt
	case AlgorithmArgon2id:
		h.primary = h.argon2
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", algorithm)
	}
	return h, nil
}

func (h *MultiHasher) Hash(password []byte) (string, error) {
	return h.primary.Hash(password)
}

func (h *MultiHasher) Verify(password []byte, encoded string) (bool, error) {
	switch {
	case isBcrypt(encoded):
		return h.bcrypt.Verify(password, encoded)
	case strings.HasPrefix(encoded, argon2Prefix):
		return h.argon2.Verify(password, encoded)
	default:
		return false, fmt.Errorf("%w: unknown encoding", common.ErrMalformedHash)
	}
}

func isBcrypt(encoded string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, p) {
			return true
		}
	}
	return false
}
