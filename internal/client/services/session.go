// Package services contains the application services for the gymtrack
// client: the session manager, the profile update coordinator, and the
// training data service.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wroger/gymtrack/internal/client/api"
	"github.com/wroger/gymtrack/internal/client/models"
	"github.com/wroger/gymtrack/internal/client/repositories/session"
	"github.com/wroger/gymtrack/internal/logging"
)

// State is the session lifecycle state.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateRestoring       State = "restoring"
	StateAuthenticated   State = "authenticated"
)

var (
	// ErrNotAuthenticated is returned by operations that need an active session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionClosed is returned when an update arrives for a session
	// that has been signed out in the meantime. The update is discarded.
	ErrSessionClosed = errors.New("session closed")
)

// SessionManager owns the authenticated session: it restores it at
// startup, creates it on sign-in, destroys it on sign-out, and is the
// only path through which the session mutates.
//
// The session is either fully absent or fully populated; callers never
// observe a partial one. Every accepted mutation is persisted before it
// becomes visible in memory, so what the caller sees always survives a
// restart.
type SessionManager struct {
	client api.Client
	store  session.Repository
	log    logging.Logger

	mu    sync.Mutex
	state State
	user  models.User
	epoch uint64
}

func NewSessionManager(client api.Client, store session.Repository, log logging.Logger) *SessionManager {
	return &SessionManager{
		client: client,
		store:  store,
		log:    log.With("component", "session"),
		state:  StateUnauthenticated,
	}
}

// State returns the current lifecycle state.
func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns a copy of the session user, and whether one exists.
func (m *SessionManager) Current() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.state == StateAuthenticated
}

// Snapshot returns the session user together with the epoch to pass to
// UpdateSession later. The epoch pins the update to this sign-in: if the
// user signs out before the update lands, it is discarded.
func (m *SessionManager) Snapshot() (models.User, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.epoch, m.state == StateAuthenticated
}

// Restore loads the persisted session, if any. It runs once at startup
// and always settles: any failure means starting unauthenticated, never
// a hung or half-restored state. The returned value is the final state.
func (m *SessionManager) Restore(ctx context.Context) State {
	m.mu.Lock()
	m.state = StateRestoring
	m.mu.Unlock()

	rec, err := m.store.Get(ctx)
	if err != nil {
		m.log.Warn(ctx, "session restore failed, starting unauthenticated", "error", err)
		rec = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if rec == nil {
		m.state = StateUnauthenticated
		return m.state
	}

	m.client.SetTokens(rec.AccessToken, rec.RefreshToken)
	m.user = rec.User
	m.state = StateAuthenticated
	m.log.Info(ctx, "session restored", "user_id", rec.User.ID)
	return m.state
}

// SignIn exchanges credentials for a session. The durable write happens
// before the in-memory session is set: if persisting fails, SignIn
// reports failure even though the network call succeeded, because a
// session that would not survive a restart must not be reported as
// established.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) error {
	user, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	access, refresh := m.client.Tokens()
	rec := session.Record{User: *user, AccessToken: access, RefreshToken: refresh}
	if err := m.store.Save(ctx, rec); err != nil {
		m.client.ClearTokens()
		return fmt.Errorf("saving session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = *user
	m.state = StateAuthenticated
	m.log.Info(ctx, "signed in", "user_id", user.ID)
	return nil
}

// SignUp creates a new account. It does not establish a session; the
// user signs in afterwards.
func (m *SessionManager) SignUp(ctx context.Context, name, email, password string) error {
	return m.client.SignUp(ctx, name, email, password)
}

// SignOut destroys the session in memory and in the store. It always
// succeeds from the caller's perspective; a failed store clear is logged
// and the user still ends up unauthenticated. Bumping the epoch makes
// any in-flight profile update land on ErrSessionClosed instead of
// reviving the session.
func (m *SessionManager) SignOut(ctx context.Context) {
	m.mu.Lock()
	m.user = models.User{}
	m.state = StateUnauthenticated
	m.epoch++
	m.mu.Unlock()

	m.client.ClearTokens()
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear stored session", "error", err)
	}
	m.log.Info(ctx, "signed out")
}

// UpdateSession replaces the session user and re-persists it. epoch must
// come from the Snapshot taken before the server round-trip; a stale
// epoch (or no active session) yields ErrSessionClosed and no change.
// The lock is held across the durable write so a concurrent SignOut
// cannot interleave between persisting and publishing.
func (m *SessionManager) UpdateSession(ctx context.Context, epoch uint64, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated || epoch != m.epoch {
		return ErrSessionClosed
	}

	access, refresh := m.client.Tokens()
	rec := session.Record{User: user, AccessToken: access, RefreshToken: refresh}
	if err := m.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	m.user = user
	return nil
}
