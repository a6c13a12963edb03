package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront/internal/users"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/kv"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/notify"
)

var (
	noticeLoginSuccess = notify.Success("Congratulations!", "Login Successful")
	noticeLoginFailure = notify.Failure("Error", "Invalid credentials")
)

// State is the in-memory view of the session.
type State struct {
	LoggedIn bool        `json:"isLoggedIn"`
	User     *users.User `json:"currentUser,omitempty"`
}

// ManagerParams groups dependencies for the session manager.
type ManagerParams struct {
	Store    kv.Store
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Notifier notify.Notifier
}

// Manager owns the process-wide login state and mirrors it into durable storage.
//
// The in-memory view is what IsLoggedIn and CurrentUser report. Collections do
// not consult it; they call ReadIdentity against the store. A failed persist
// leaves the two views disagreeing until the next successful write.
type Manager struct {
	store    kv.Store
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	notifier notify.Notifier

	mu       sync.RWMutex
	loggedIn bool
	current  *users.User
}

// NewManager restores the session from durable storage. A stored login flag
// other than the literal "true" (including a missing key or a read error)
// starts the process logged out.
func NewManager(ctx context.Context, params ManagerParams) (*Manager, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = notify.Discard
	}

	m := &Manager{
		store:    params.Store,
		logg:     logg,
		metrics:  params.Metrics,
		notifier: notifier,
	}

	flag, err := params.Store.Get(ctx, KeyLogin)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		m.metrics.IncStorageFailure("get")
		m.logg.Error(ctx, "session.restore_flag_failed", err)
	}
	m.loggedIn = flag == loginTrue
	if !m.loggedIn {
		return m, nil
	}

	user, err := ReadIdentity(ctx, params.Store)
	if err != nil {
		m.metrics.IncStorageFailure("get")
		m.logg.Error(ctx, "session.restore_identity_failed", err)
	}
	m.current = user

	return m, nil
}

// Login validates creds against known and, on a match, marks the session
// logged in and persists the encoded identity plus the login flag.
func (m *Manager) Login(ctx context.Context, creds *users.Credentials, known []users.User) (bool, notify.Notice) {
	user := users.FindByCredentials(creds, known)
	if user == nil {
		m.metrics.IncSession("login", "invalid")
		m.logg.Info(ctx, "session.login_rejected")
		m.notifier.Notify(ctx, noticeLoginFailure)
		return false, noticeLoginFailure
	}

	m.mu.Lock()
	m.loggedIn = true
	m.current = user
	m.mu.Unlock()

	ctx = m.logg.WithUserID(ctx, user.ID)
	if err := m.persistIdentity(ctx, user); err != nil {
		m.metrics.IncStorageFailure("set")
		m.logg.Error(ctx, "session.persist_identity_failed", err)
	}

	m.metrics.IncSession("login", "success")
	m.logg.Info(ctx, "session.login")
	m.notifier.Notify(ctx, noticeLoginSuccess)
	return true, noticeLoginSuccess
}

// Logout clears the session unconditionally. Calling it twice is harmless.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.loggedIn = false
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Set(ctx, KeyCurrentUser, nullMarker); err != nil {
		m.metrics.IncStorageFailure("set")
		m.logg.Error(ctx, "session.clear_identity_failed", err)
	}
	if err := m.store.Set(ctx, KeyLogin, loginFalse); err != nil {
		m.metrics.IncStorageFailure("set")
		m.logg.Error(ctx, "session.clear_flag_failed", err)
	}

	m.metrics.IncSession("logout", "success")
	m.logg.Info(ctx, "session.logout")
}

// IsLoggedIn reports the in-memory login flag.
func (m *Manager) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loggedIn
}

// CurrentUser returns a copy of the in-memory identity, or nil.
func (m *Manager) CurrentUser() *users.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	user := *m.current
	return &user
}

// State returns the in-memory session view.
func (m *Manager) State() State {
	return State{LoggedIn: m.IsLoggedIn(), User: m.CurrentUser()}
}

func (m *Manager) persistIdentity(ctx context.Context, user *users.User) error {
	encoded, err := EncodeIdentity(user)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyCurrentUser, encoded); err != nil {
		return fmt.Errorf("write %s: %w", KeyCurrentUser, err)
	}
	if err := m.store.Set(ctx, KeyLogin, loginTrue); err != nil {
		return fmt.Errorf("write %s: %w", KeyLogin, err)
	}
	return nil
}
