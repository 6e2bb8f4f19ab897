package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/hybridauth/internal/common"
	"github.com/dmitrijs2005/hybridauth/internal/logging"
	"github.com/dmitrijs2005/hybridauth/internal/models"
	"github.com/dmitrijs2005/hybridauth/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	regArgs []string
	regRes  *services.RegistrationResult
	regErr  error

	loginArgs []string
	session   *services.Session
	loginErr  error

	logoutSession *services.Session
	logoutErr     error

	profile    *services.Profile
	profileErr error

	editEmail string
	editErr   error

	recoverEmail string
	recoverErr   error
}

func (f *fakeAuth) Register(_ context.Context, username, email, password string) (*services.RegistrationResult, error) {
	f.regArgs = []string{username, email, password}
	return f.regRes, f.regErr
}
func (f *fakeAuth) Login(_ context.Context, email, password string) (*services.Session, error) {
	f.loginArgs = []string{email, password}
	return f.session, f.loginErr
}
func (f *fakeAuth) Logout(_ context.Context, s *services.Session) error {
	f.logoutSession = s
	return f.logoutErr
}
func (f *fakeAuth) Profile(_ context.Context, s *services.Session) (*services.Profile, error) {
	return f.profile, f.profileErr
}
func (f *fakeAuth) EditProfile(_ context.Context, _ *services.Session, email string) error {
	f.editEmail = email
	return f.editErr
}
func (f *fakeAuth) RequestPasswordRecovery(_ context.Context, email string) error {
	f.recoverEmail = email
	return f.recoverErr
}

func newTestApp(f *fakeAuth) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return newApp(f, bytes.NewReader(nil), &out, logging.NewNopLogger()), &out
}

func aliceSession() *services.Session {
	return &services.Session{
		ID: "s-1",
		User: models.User{
			ID: 1, Username: "alice", Email: "a@x.com", Active: true,
			RegisteredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAuth{regRes: &services.RegistrationResult{Status: services.RegistrationComplete, User: &models.User{ID: 1}}}
	a, out := newTestApp(f)
	stubInputs(t, []string{"alice", "a@x.com"}, []byte("Secret123!"))

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, []string{"alice", "a@x.com", "Secret123!"}, f.regArgs)
	assert.Contains(t, out.String(), msgRegistered)
	assert.NotContains(t, out.String(), msgRegisteredDegraded)
}

func TestRegister_Degraded(t *testing.T) {
	f := &fakeAuth{regRes: &services.RegistrationResult{
		Status:  services.RegistrationDegraded,
		User:    &models.User{ID: 1},
		Warning: &services.MirrorWriteError{RelationalID: 1, Err: errors.New("mongo: no reachable servers")},
	}}
	a, out := newTestApp(f)
	stubInputs(t, []string{"alice", "a@x.com"}, []byte("Secret123!"))

	require.NoError(t, a.Register(context.Background()))
	assert.Contains(t, out.String(), msgRegisteredDegraded)
	assert.NotContains(t, out.String(), "no reachable servers")
}

func TestRegister_EmptyFieldRejectedBeforeService(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)
	stubInputs(t, []string{"alice", ""}, []byte("pw"))

	err := a.Register(context.Background())
	require.ErrorIs(t, err, common.ErrEmptyField)
	assert.Nil(t, f.regArgs)
	assert.Contains(t, out.String(), "All fields are required.")
}

func TestRegister_Duplicate(t *testing.T) {
	f := &fakeAuth{regErr: &services.DuplicateIdentityError{Username: "alice", Email: "a@x.com"}}
	a, out := newTestApp(f)
	stubInputs(t, []string{"alice", "a@x.com"}, []byte("pw"))

	require.Error(t, a.Register(context.Background()))
	assert.Contains(t, out.String(), "already registered")
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAuth{session: aliceSession()}
	a, out := newTestApp(f)
	stubInputs(t, []string{"a@x.com"}, []byte("Secret123!"))

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, []string{"a@x.com", "Secret123!"}, f.loginArgs)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(alice)", a.getStatus())
	assert.Contains(t, out.String(), "Welcome, alice!")
}

func TestLogin_FailureMessagesAreIdentical(t *testing.T) {
	render := func(loginErr error) string {
		f := &fakeAuth{loginErr: loginErr}
		a, out := newTestApp(f)
		stubInputs(t, []string{"a@x.com"}, []byte("pw"))
		require.Error(t, a.Login(context.Background()))
		assert.False(t, a.isLoggedIn())
		return out.String()
	}

	unknown := render(common.ErrInvalidCredentials)
	wrong := render(common.ErrInvalidCredentials)
	assert.Equal(t, unknown, wrong)
	assert.Contains(t, unknown, "Invalid email or password.")

	down := render(fmt.Errorf("%w: dial tcp 10.0.0.1:5432", common.ErrStoreUnavailable))
	assert.NotEqual(t, unknown, down)
	assert.NotContains(t, down, "10.0.0.1")
}

func TestRecover(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)
	stubInputs(t, []string{"who@x.com"}, nil)

	require.NoError(t, a.Recover(context.Background()))
	assert.Equal(t, "who@x.com", f.recoverEmail)
	assert.Contains(t, out.String(), msgRecoverySent)
}

func TestRecover_EmptyCancels(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)
	stubInputs(t, []string{""}, nil)

	require.NoError(t, a.Recover(context.Background()))
	assert.Empty(t, f.recoverEmail)
	assert.Contains(t, out.String(), msgCancelled)
}
