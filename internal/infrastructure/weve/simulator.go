package weve

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/aguulga/backend/internal/domain/weve"
)

// Simulator implements the weve.Client port without any network I/O.
// Every operation is a deterministic synthetic success; it is selected once at
// construction when simulation mode is on, so callers never branch per call.
type Simulator struct {
	sessionTTLSeconds int64
	seq               atomic.Int64
}

// NewSimulator creates a simulated Weve client issuing tokens with the given lifetime
func NewSimulator(sessionTTLSeconds int64) *Simulator {
	if sessionTTLSeconds <= 0 {
		sessionTTLSeconds = DefaultSimulatedSessionTTLSeconds
	}
	return &Simulator{sessionTTLSeconds: sessionTTLSeconds}
}

// Login always succeeds with a synthetic session
func (s *Simulator) Login(_ context.Context, creds weve.Credentials) (*weve.LoginSession, error) {
	return &weve.LoginSession{
		Token:        fmt.Sprintf("sim-token-%d", s.seq.Add(1)),
		RefreshToken: fmt.Sprintf("sim-refresh-%d", s.seq.Add(1)),
		UserID:       1,
		UserName:     creds.Username,
		ExpiresIn:    s.sessionTTLSeconds,
	}, nil
}

// Logout always succeeds
func (s *Simulator) Logout(context.Context, string) error {
	return nil
}

// Refresh always succeeds with a fresh synthetic token
func (s *Simulator) Refresh(context.Context, string) (*weve.RefreshedToken, error) {
	return &weve.RefreshedToken{
		Token:     fmt.Sprintf("sim-token-%d", s.seq.Add(1)),
		ExpiresIn: s.sessionTTLSeconds,
	}, nil
}

// ValidateCredentials always reports valid credentials
func (s *Simulator) ValidateCredentials(context.Context, weve.Credentials) error {
	return nil
}

// FetchProducts returns an empty catalog
func (s *Simulator) FetchProducts(context.Context, weve.ProductQuery) (*weve.ProductPage, error) {
	return &weve.ProductPage{Products: []weve.RemoteProduct{}, Total: 0}, nil
}

// PushOrder returns a synthetic Weve order id
func (s *Simulator) PushOrder(context.Context, *weve.OutboundOrder) (string, error) {
	return fmt.Sprintf("SIM-%06d", s.seq.Add(1)), nil
}

// Ensure Simulator implements the Client port
var _ weve.Client = (*Simulator)(nil)
