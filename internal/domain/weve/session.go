package weve

import (
	"sync"
	"time"
)

// Session represents the single authenticated identity held against Weve
type Session struct {
	Token        string
	RefreshToken string
	UserID       int64
	UserName     string
	ExpiresAt    time.Time
	IsActive     bool
}

// Usable reports whether the session can still authenticate requests
func (s *Session) Usable(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}

// SessionStore holds the process-wide Weve session. At most one session exists
// at any time; a later login replaces the previous session without merging.
// Expiry is lazy: the first Get after the deadline observes and clears the
// session, there is no background sweep.
type SessionStore struct {
	mu      sync.Mutex
	session *Session
	now     func() time.Time
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{now: time.Now}
}

// NewSessionStoreWithClock creates a session store with an injectable clock
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{now: now}
}

// Put installs a session, replacing any prior one (last login wins)
func (s *SessionStore) Put(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
}

// Get returns a copy of the current session if it is still usable.
// An expired session is cleared as a side effect; this is the sole
// expiry-enforcement point.
func (s *SessionStore) Get() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return Session{}, false
	}
	if !s.session.Usable(s.now()) {
		s.session = nil
		return Session{}, false
	}
	return *s.session, true
}

// Update applies fn to the current usable session, if any
func (s *SessionStore) Update(fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || !s.session.Usable(s.now()) {
		s.session = nil
		return false
	}
	fn(s.session)
	return true
}

// Clear destroys the current session unconditionally
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Token returns the current bearer token, or "" when logged out.
// It satisfies the HTTP client's token provider.
func (s *SessionStore) Token() string {
	session, ok := s.Get()
	if !ok {
		return ""
	}
	return session.Token
}
