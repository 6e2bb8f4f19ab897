package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hybridauth/internal/common"
	"github.com/dmitrijs2005/hybridauth/internal/dbx"
	"github.com/dmitrijs2005/hybridauth/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository keeps registered_at as unix microseconds and active as 0/1.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, active, registered_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.Username, user.Email, user.PasswordHash, boolToInt(user.Active), user.RegisteredAt.UnixMicro())
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) && liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return nil, fmt.Errorf("%w: %s", common.ErrDuplicate, liteErr.Error())
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	return user, nil
}

func (r *SQLiteRepository) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	var (
		user         models.User
		active       int64
		registeredAt int64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, active, registered_at
		FROM users WHERE email = ? AND active = 1
	`, email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &active, &registeredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	user.Active = active != 0
	user.RegisteredAt = time.UnixMicro(registeredAt).UTC()

	return &user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
