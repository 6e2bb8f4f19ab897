package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/hybridauth/internal/common"
	"github.com/dmitrijs2005/hybridauth/internal/models"
	"github.com/dmitrijs2005/hybridauth/internal/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestNew(t *testing.T) {
	m, err := New("postgres")
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)
	assert.Equal(t, "pgx", m.DriverName())

	m, err = New("sqlite")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)
	assert.Equal(t, "sqlite", m.DriverName())

	_, err = New("oracle")
	require.Error(t, err)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	assert.IsType(t, &users.PostgresRepository{}, NewPostgresRepositoryManager().Users(db))
	assert.IsType(t, &users.SQLiteRepository{}, NewSQLiteRepositoryManager().Users(db))
}

func TestRunMigrations_PassesDialectDir(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var gotDir string
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	})

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, "postgres", gotDir)

	require.NoError(t, NewSQLiteRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, "sqlite", gotDir)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestSQLiteMigrations_CreateUsableSchema(t *testing.T) {
	m := NewSQLiteRepositoryManager()
	db, err := sql.Open(m.DriverName(), ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx, db))
	// idempotent
	require.NoError(t, m.RunMigrations(ctx, db))

	repo := m.Users(db)
	u, err := repo.Create(ctx, &models.User{
		Username: "alice", Email: "a@x.io", PasswordHash: "h", Active: true, RegisteredAt: time.Now(),
	})
	require.NoError(t, err)

	got, err := repo.GetActiveByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.Create(ctx, &models.User{
		Username: "alice", Email: "b@x.io", PasswordHash: "h", Active: true, RegisteredAt: time.Now(),
	})
	require.ErrorIs(t, err, common.ErrDuplicate)
}
