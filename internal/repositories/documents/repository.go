// Package documents stores user mirrors and the activity log in MongoDB.
package documents

import (
	"context"

	"github.com/dmitrijs2005/hybridauth/internal/models"
)

// Collection names in the document database.
const (
	UsersCollection        = "users"
	ActivityLogsCollection = "activity_logs"
)

type Repository interface {
	// InsertMirror yields common.ErrDuplicate when a mirror for the same
	// relational id already exists.
	InsertMirror(ctx context.Context, mirror *models.UserMirror) error
	// FindMirrorByRelationalID yields common.ErrorNotFound when no mirror exists.
	FindMirrorByRelationalID(ctx context.Context, relationalID int64) (*models.UserMirror, error)
	InsertLog(ctx context.Context, entry *models.ActivityLogEntry) error
}
