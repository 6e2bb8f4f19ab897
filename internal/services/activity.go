package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hybridauth/internal/logging"
	"github.com/dmitrijs2005/hybridauth/internal/models"
	"github.com/dmitrijs2005/hybridauth/internal/repositories/documents"
)

// LogOutcome reports what happened to one activity log write. Absorbed holds
// the document-store error that was swallowed, or nil when the entry was stored.
type LogOutcome struct {
	Entry    *models.ActivityLogEntry
	Absorbed error
}

// Written reports whether the entry reached the document store.
func (o LogOutcome) Written() bool { return o.Absorbed == nil }

// LogOption adjusts an entry before it is written.
type LogOption func(*models.ActivityLogEntry)

// WithSessionID attributes the entry to a login session.
func WithSessionID(id string) LogOption {
	return func(e *models.ActivityLogEntry) { e.SessionID = id }
}

// ActivityLogger appends audit entries to the activity_logs collection.
// Store failures never reach the caller; they are reported at WARN and
// returned in LogOutcome.
type ActivityLogger struct {
	repo   documents.Repository
	origin string
	logger logging.Logger
	now    func() time.Time
}

func NewActivityLogger(repo documents.Repository, origin string, logger logging.Logger) *ActivityLogger {
	return &ActivityLogger{
		repo:   repo,
		origin: origin,
		logger: logger,
		now:    time.Now,
	}
}

func (a *ActivityLogger) Log(ctx context.Context, userRef int64, action models.Action, detail string, opts ...LogOption) LogOutcome {
	entry := &models.ActivityLogEntry{
		UserRef:   userRef,
		Action:    action,
		Timestamp: a.now().UTC(),
		Origin:    a.origin,
		Detail:    detail,
	}
	for _, opt := range opts {
		opt(entry)
	}

	if err := a.repo.InsertLog(ctx, entry); err != nil {
		a.logger.Warn(ctx, "activity log write failed", "action", action, "user_ref", userRef, "error", err)
		return LogOutcome{Entry: entry, Absorbed: err}
	}

	a.logger.Debug(ctx, "activity logged", "action", action, "user_ref", userRef)
	return LogOutcome{Entry: entry}
}
