// Package services implements the registration and login flows over the
// relational and document stores, together with the session operations
// the CLI offers once a user is logged in.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/hybridauth/internal/common"
	"github.com/dmitrijs2005/hybridauth/internal/cryptox"
	"github.com/dmitrijs2005/hybridauth/internal/logging"
	"github.com/dmitrijs2005/hybridauth/internal/models"
	"github.com/dmitrijs2005/hybridauth/internal/repositories/documents"
	"github.com/dmitrijs2005/hybridauth/internal/repositories/repomanager"
)

// RegistrationStatus distinguishes full success from degraded success.
type RegistrationStatus int

const (
	// RegistrationComplete means both the user row and its mirror were written.
	RegistrationComplete RegistrationStatus = iota + 1
	// RegistrationDegraded means the user row is committed but the mirror
	// write failed; Warning carries a *MirrorWriteError.
	RegistrationDegraded
)

func (s RegistrationStatus) String() string {
	switch s {
	case RegistrationComplete:
		return "complete"
	case RegistrationDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

type RegistrationResult struct {
	Status  RegistrationStatus
	User    *models.User
	Warning error
}

// Profile joins the session user with its mirror document. A missing mirror
// leaves MirrorFound false; a document-store failure is kept in MirrorErr.
type Profile struct {
	User        models.User
	Mirror      *models.UserMirror
	MirrorFound bool
	MirrorErr   error
}

// AuthService owns the credential flows. User rows are reached through the
// repository manager so the relational dialect stays configurable.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	docs        documents.Repository
	hasher      cryptox.Hasher
	activity    *ActivityLogger
	logger      logging.Logger
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, docs documents.Repository,
	hasher cryptox.Hasher, activity *ActivityLogger, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		docs:        docs,
		hasher:      hasher,
		activity:    activity,
		logger:      logger,
		now:         time.Now,
	}
}

// Register hashes the password, inserts the user row and then its mirror.
// A failed mirror write does not undo the row; the result is degraded instead.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*RegistrationResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, common.ErrEmptyField
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	encoded, err := s.hasher.Hash(pw)
	if err != nil {
		if errors.Is(err, common.ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: encoded,
		Active:       true,
		RegisteredAt: s.now().UTC(),
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return nil, &DuplicateIdentityError{Username: username, Email: email}
		}
		s.logger.Error(ctx, "user insert failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if err := s.docs.InsertMirror(ctx, models.NewUserMirror(user)); err != nil {
		s.logger.Warn(ctx, "user registered without mirror", "user_id", user.ID, "error", err)
		return &RegistrationResult{
			Status:  RegistrationDegraded,
			User:    user,
			Warning: &MirrorWriteError{RelationalID: user.ID, Err: err},
		}, nil
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return &RegistrationResult{Status: RegistrationComplete, User: user}, nil
}

// Login verifies the credentials of an active user. Unknown email, wrong
// password and an unreadable stored hash all yield common.ErrInvalidCredentials;
// only a relational failure is reported differently.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	user, err := s.repomanager.Users(s.db).GetActiveByEmail(ctx, email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if user == nil {
		// unknown emails still pay for one comparison
		_, _ = s.hasher.Verify(pw, s.dummy())
		return nil, s.loginFailed(ctx, email)
	}

	ok, err := s.hasher.Verify(pw, user.PasswordHash)
	if err != nil {
		s.logger.Warn(ctx, "stored password hash is unreadable", "user_id", user.ID, "error", err)
		ok = false
	}
	if !ok {
		return nil, s.loginFailed(ctx, email)
	}

	session := newSession(user, s.now())
	s.activity.Log(ctx, user.ID, models.ActionLoginSuccess, "", WithSessionID(session.ID))
	s.logger.Info(ctx, "user logged in", "user_id", user.ID, "session_id", session.ID)

	return session, nil
}

// Logout records the end of session. The caller drops the session afterwards.
func (s *AuthService) Logout(ctx context.Context, session *Session) error {
	if session == nil {
		return common.ErrNoSession
	}
	s.activity.Log(ctx, session.User.ID, models.ActionLogout, "", WithSessionID(session.ID))
	return nil
}

// Profile reads the mirror for the session user. Mirror problems are
// reported inside the Profile, never as an error.
func (s *AuthService) Profile(ctx context.Context, session *Session) (*Profile, error) {
	if session == nil {
		return nil, common.ErrNoSession
	}

	p := &Profile{User: session.User}

	mirror, err := s.docs.FindMirrorByRelationalID(ctx, session.User.ID)
	switch {
	case err == nil:
		p.Mirror = mirror
		p.MirrorFound = true
	case errors.Is(err, common.ErrorNotFound):
		s.logger.Warn(ctx, "user has no mirror", "user_id", session.User.ID)
	default:
		s.logger.Warn(ctx, "mirror lookup failed", "user_id", session.User.ID, "error", err)
		p.MirrorErr = err
	}

	return p, nil
}

// EditProfile is simulated: the requested change is only recorded in the
// activity log.
func (s *AuthService) EditProfile(ctx context.Context, session *Session, newEmail string) error {
	if session == nil {
		return common.ErrNoSession
	}
	if newEmail == "" {
		return common.ErrEmptyField
	}

	detail := fmt.Sprintf("requested email change to %s", newEmail)
	s.activity.Log(ctx, session.User.ID, models.ActionProfileEdit, detail, WithSessionID(session.ID))
	return nil
}

// RequestPasswordRecovery is simulated: nothing is sent and the account is
// not looked up, so the caller learns nothing about whether it exists.
func (s *AuthService) RequestPasswordRecovery(ctx context.Context, email string) error {
	if email == "" {
		return common.ErrEmptyField
	}

	s.activity.Log(ctx, models.AnonymousUserRef, models.ActionPasswordRecoveryRequest, "recovery requested for "+email)
	return nil
}

func (s *AuthService) loginFailed(ctx context.Context, email string) error {
	s.activity.Log(ctx, models.AnonymousUserRef, models.ActionLoginFailure, "attempted email: "+email)
	return common.ErrInvalidCredentials
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		random := common.GenerateRandByteArray(16)
		defer common.WipeByteArray(random)

		h, err := s.hasher.Hash(random)
		if err != nil {
			s.logger.Warn(context.Background(), "dummy hash unavailable", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
