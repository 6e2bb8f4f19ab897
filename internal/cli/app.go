package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/hybridauth/internal/config"
	"github.com/dmitrijs2005/hybridauth/internal/cryptox"
	"github.com/dmitrijs2005/hybridauth/internal/filex"
	"github.com/dmitrijs2005/hybridauth/internal/logging"
	"github.com/dmitrijs2005/hybridauth/internal/repositories/documents"
	"github.com/dmitrijs2005/hybridauth/internal/repositories/repomanager"
	"github.com/dmitrijs2005/hybridauth/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type App struct {
	authService AuthService
	session     *services.Session
	reader      *bufio.Reader
	out         io.Writer
	logger      logging.Logger
	closers     []func(context.Context) error
}

func newApp(s AuthService, in io.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{
		authService: s,
		reader:      bufio.NewReader(in),
		out:         out,
		logger:      logger,
	}
}

// NewApp connects both stores, applies the relational migrations, ensures
// the document indexes and builds the auth service. Connect, ping, migrate
// and index creation share cfg.Document.ConnectTimeout. On error everything
// opened so far is closed.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (_ *App, err error) {
	app := newApp(nil, os.Stdin, os.Stdout, logger)
	defer func() {
		if err != nil {
			_ = app.Close(ctx)
		}
	}()

	rm, err := repomanager.New(cfg.Relational.Driver)
	if err != nil {
		return nil, err
	}

	if cfg.Relational.Driver == config.DriverSQLite {
		if _, err = filex.EnsureParentDir(cfg.Relational.SQLitePath); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(rm.DriverName(), cfg.RelationalDSN())
	if err != nil {
		return nil, fmt.Errorf("open relational store: %w", err)
	}
	app.closers = append(app.closers, func(context.Context) error { return db.Close() })

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Document.ConnectTimeout)
	defer cancel()

	if err = db.PingContext(connectCtx); err != nil {
		return nil, fmt.Errorf("relational store unreachable: %w", err)
	}
	if err = rm.RunMigrations(connectCtx, db); err != nil {
		return nil, fmt.Errorf("migrate relational store: %w", err)
	}
	logger.Info(ctx, "relational store ready", "driver", cfg.Relational.Driver)

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Document.URI))
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	app.closers = append(app.closers, client.Disconnect)

	if err = client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("document store unreachable: %w", err)
	}

	docs := documents.NewMongoRepository(client.Database(cfg.Document.Database))
	if err = docs.EnsureIndexes(connectCtx); err != nil {
		return nil, err
	}
	logger.Info(ctx, "document store ready", "database", cfg.Document.Database)

	hasher, err := cryptox.NewHasher(cfg.Hash.Algorithm, cfg.Hash.BcryptCost)
	if err != nil {
		return nil, err
	}

	activity := services.NewActivityLogger(docs, cfg.Origin, logger)
	app.authService = services.NewAuthService(db, rm, docs, hasher, activity, logger)

	return app, nil
}

// Run blocks in the REPL until the user exits or input ends. A session still
// open at that point is logged out.
func (a *App) Run(ctx context.Context) {
	a.println("===== Hybrid authentication system =====")
	runREPL(ctx, a, a.getStatus, a.reader)

	if a.isLoggedIn() {
		_ = a.Logout(context.WithoutCancel(ctx))
	}
}

// Close releases store connections in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.User.Username)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
