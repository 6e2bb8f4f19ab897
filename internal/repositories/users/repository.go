// Package users stores the authoritative identity rows in the relational
// store. PostgresRepository and SQLiteRepository implement the same
// Repository contract and translate driver errors into common sentinels.
package users

import (
	"context"

	"github.com/dmitrijs2005/hybridauth/internal/models"
)

type Repository interface {
	// Create inserts user and returns it with ID populated. A username or
	// email collision yields common.ErrDuplicate.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetActiveByEmail yields common.ErrorNotFound when no active row matches.
	GetActiveByEmail(ctx context.Context, email string) (*models.User, error)
}
