package models

import "time"

// Action tags an activity log entry.
type Action string

const (
	ActionLoginSuccess            Action = "login_success"
	ActionLoginFailure            Action = "login_failure"
	ActionLogout                  Action = "logout"
	ActionProfileEdit             Action = "profile_edit"
	ActionPasswordRecoveryRequest Action = "password_recovery_request"
)

// AnonymousUserRef is the user_ref recorded when no user is authenticated.
const AnonymousUserRef int64 = 0

// ActivityLogEntry is an append-only audit record in the document store.
type ActivityLogEntry struct {
	UserRef   int64     `bson:"user_ref"`
	Action    Action    `bson:"action"`
	Timestamp time.Time `bson:"timestamp"`
	Origin    string    `bson:"origin"`
	Detail    string    `bson:"detail,omitempty"`
	SessionID string    `bson:"session_id,omitempty"`
}
