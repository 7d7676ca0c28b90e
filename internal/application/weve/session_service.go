package weve

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aguulga/backend/internal/domain/weve"
)

// SessionService owns the login/logout/refresh lifecycle of the single
// process-wide Weve session. All components that need the session receive the
// same injected SessionStore; there is no hidden global.
type SessionService struct {
	client weve.Client
	store  *weve.SessionStore
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(client weve.Client, store *weve.SessionStore, logger *zap.Logger) *SessionService {
	return NewSessionServiceWithClock(client, store, logger, time.Now)
}

// NewSessionServiceWithClock creates a session service with an injectable clock
func NewSessionServiceWithClock(client weve.Client, store *weve.SessionStore, logger *zap.Logger, now func() time.Time) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		client: client,
		store:  store,
		logger: logger,
		now:    now,
	}
}

// Login authenticates against Weve and installs the resulting session,
// replacing any prior one. A failed login leaves the previous session intact.
func (s *SessionService) Login(ctx context.Context, username, password string) (*SessionView, error) {
	remote, err := s.client.Login(ctx, weve.Credentials{Username: username, Password: password})
	if err != nil {
		s.logger.Warn("weve login failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	session := weve.Session{
		Token:        remote.Token,
		RefreshToken: remote.RefreshToken,
		UserID:       remote.UserID,
		UserName:     remote.UserName,
		ExpiresAt:    s.now().Add(time.Duration(remote.ExpiresIn) * time.Second),
		IsActive:     true,
	}
	s.store.Put(session)

	s.logger.Info("weve login succeeded",
		zap.String("userName", session.UserName),
		zap.Time("expiresAt", session.ExpiresAt))

	return &SessionView{
		UserID:    session.UserID,
		UserName:  session.UserName,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout invalidates the remote token best-effort and always clears the local
// session. Calling it while logged out is a no-op.
func (s *SessionService) Logout(ctx context.Context) error {
	session, ok := s.store.Get()
	if ok {
		if err := s.client.Logout(ctx, session.Token); err != nil {
			// Remote logout failure never blocks the local logout
			s.logger.Warn("weve remote logout failed", zap.Error(err))
		}
	}
	s.store.Clear()
	return nil
}

// Session returns the active session view, if any. Reading past expiry clears
// the session as a side effect.
func (s *SessionService) Session() (*SessionView, bool) {
	session, ok := s.store.Get()
	if !ok {
		return nil, false
	}
	return &SessionView{
		UserID:    session.UserID,
		UserName:  session.UserName,
		ExpiresAt: session.ExpiresAt,
	}, true
}

// IsLoggedIn reports whether an unexpired session exists
func (s *SessionService) IsLoggedIn() bool {
	_, ok := s.Session()
	return ok
}

// Refresh exchanges the session's refresh token for a new access token and
// extends the expiry. Any failure destroys the session entirely; a stale token
// is never left in use.
func (s *SessionService) Refresh(ctx context.Context) (string, error) {
	session, ok := s.store.Get()
	if !ok {
		return "", weve.ErrNotLoggedIn
	}
	if session.RefreshToken == "" {
		return "", weve.ErrNoRefreshToken
	}

	refreshed, err := s.client.Refresh(ctx, session.RefreshToken)
	if err != nil {
		s.store.Clear()
		s.logger.Warn("weve token refresh failed, session destroyed", zap.Error(err))
		return "", err
	}

	expiresAt := s.now().Add(time.Duration(refreshed.ExpiresIn) * time.Second)
	if !s.store.Update(func(current *weve.Session) {
		current.Token = refreshed.Token
		current.ExpiresAt = expiresAt
	}) {
		return "", weve.ErrNotLoggedIn
	}

	s.logger.Info("weve token refreshed", zap.Time("expiresAt", expiresAt))
	return refreshed.Token, nil
}

// ValidateCredentials probes the credentials against Weve without touching the
// current session.
func (s *SessionService) ValidateCredentials(ctx context.Context, username, password string) error {
	return s.client.ValidateCredentials(ctx, weve.Credentials{Username: username, Password: password})
}
