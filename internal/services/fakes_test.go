package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/hybridauth/internal/common"
	"github.com/dmitrijs2005/hybridauth/internal/cryptox"
	"github.com/dmitrijs2005/hybridauth/internal/dbx"
	"github.com/dmitrijs2005/hybridauth/internal/logging"
	"github.com/dmitrijs2005/hybridauth/internal/models"
	"github.com/dmitrijs2005/hybridauth/internal/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// --- users repository ---

type fakeUsersRepo struct {
	rows   []*models.User
	nextID int64

	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, r := range f.rows {
		if r.Username == u.Username || r.Email == u.Email {
			return nil, fmt.Errorf("%w: users", common.ErrDuplicate)
		}
	}
	f.nextID++
	u.ID = f.nextID
	row := *u
	f.rows = append(f.rows, &row)
	return u, nil
}

func (f *fakeUsersRepo) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.rows {
		if r.Email == email && r.Active {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) DriverName() string                           { return "fake" }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }

// --- documents repository ---

type fakeDocs struct {
	mirrors map[int64]*models.UserMirror
	logs    []*models.ActivityLogEntry

	mirrorErr error
	findErr   error
	logErr    error
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{mirrors: map[int64]*models.UserMirror{}}
}

func (f *fakeDocs) InsertMirror(ctx context.Context, m *models.UserMirror) error {
	if f.mirrorErr != nil {
		return f.mirrorErr
	}
	if _, ok := f.mirrors[m.RelationalID]; ok {
		return common.ErrDuplicate
	}
	f.mirrors[m.RelationalID] = m
	return nil
}

func (f *fakeDocs) FindMirrorByRelationalID(ctx context.Context, id int64) (*models.UserMirror, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	m, ok := f.mirrors[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (f *fakeDocs) InsertLog(ctx context.Context, e *models.ActivityLogEntry) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.logs = append(f.logs, e)
	return nil
}

// --- logger ---

type logRecord struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	records []logRecord
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{}
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, logRecord{level: level, msg: msg})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, _ ...any) { l.add("DEBUG", msg) }
func (l *recordingLogger) Info(_ context.Context, msg string, _ ...any)  { l.add("INFO", msg) }
func (l *recordingLogger) Warn(_ context.Context, msg string, _ ...any)  { l.add("WARN", msg) }
func (l *recordingLogger) Error(_ context.Context, msg string, _ ...any) { l.add("ERROR", msg) }
func (l *recordingLogger) With(_ ...any) logging.Logger                  { return l }

func (l *recordingLogger) has(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.level == level && r.msg == msg {
			return true
		}
	}
	return false
}

// --- service ---

type testEnv struct {
	svc    *AuthService
	users  *fakeUsersRepo
	docs   *fakeDocs
	logger *recordingLogger
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	u := &fakeUsersRepo{}
	d := newFakeDocs()
	l := newRecordingLogger()

	activity := NewActivityLogger(d, "127.0.0.1", l)
	activity.now = func() time.Time { return fixedNow }

	svc := NewAuthService(nil, &fakeRepoManager{u: u}, d, cryptox.NewBcryptHasher(bcrypt.MinCost), activity, l)
	svc.now = func() time.Time { return fixedNow }

	return &testEnv{svc: svc, users: u, docs: d, logger: l}
}

func (e *testEnv) logsWith(action models.Action) []*models.ActivityLogEntry {
	var out []*models.ActivityLogEntry
	for _, l := range e.docs.logs {
		if l.Action == action {
			out = append(out, l)
		}
	}
	return out
}
