// Package repomanager selects the relational dialect: it vends the matching
// users.Repository, the database/sql driver name and the goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/hybridauth/internal/dbx"
	"github.com/dmitrijs2005/hybridauth/internal/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	// DriverName is the database/sql driver to open the DSN with.
	DriverName() string
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// New returns the manager for the named driver ("postgres" or "sqlite").
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case "postgres":
		return NewPostgresRepositoryManager(), nil
	case "sqlite":
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", driver)
	}
}
