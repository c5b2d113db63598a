// Package services contains the session layer of the client: the
// supervisor that verifies an existing session against the remote service,
// and the controller that owns the anonymous/verifying/authenticated state
// machine the UI renders.
package services

import (
	"context"
	"time"

	"github.com/mlevkov/authgate/internal/client/gateway"
	"github.com/mlevkov/authgate/internal/client/tokenstore"
	"github.com/mlevkov/authgate/internal/logging"
)

// DefaultSignOutDelay is how long an invalid session keeps its transient
// "verifying" surface before the automatic sign-out fires. Purely a UX
// smoothing device; tune via config.
const DefaultSignOutDelay = time.Second

// Supervisor decides whether the current session is still valid and
// schedules the automatic sign-out when it is not.
//
// A session is valid only when a token is present locally AND the service
// accepts it for a profile lookup. Any verification failure, including an
// unreachable server, counts as invalid: fail closed, preferring a false
// sign-out over trusting stale local state.
type Supervisor struct {
	store   tokenstore.Store
	gw      gateway.Gateway
	log     logging.Logger
	delay   time.Duration
	signOut func()
}

// NewSupervisor wires the supervisor to its collaborators. signOut runs
// once, delay after a failed check; callers guard their own idempotency.
func NewSupervisor(store tokenstore.Store, gw gateway.Gateway, log logging.Logger, delay time.Duration, signOut func()) *Supervisor {
	if delay <= 0 {
		delay = DefaultSignOutDelay
	}
	return &Supervisor{store: store, gw: gw, log: log, delay: delay, signOut: signOut}
}

// Check verifies the current session. With no stored token it fails with
// gateway.ErrNoSession before any network I/O. On any failure the
// sign-out is scheduled after the configured delay; there is no second
// verification attempt.
func (s *Supervisor) Check(ctx context.Context) (*gateway.Identity, error) {
	ok, err := s.store.HasToken(ctx)
	if err == nil && !ok {
		err = gateway.ErrNoSession
	}

	var id *gateway.Identity
	if err == nil {
		id, err = s.gw.Profile(ctx)
	}

	if err != nil {
		s.log.Warn(ctx, "session verification failed, scheduling sign-out",
			"delay", s.delay, "error", err)
		time.AfterFunc(s.delay, s.signOut)
		return nil, err
	}

	return id, nil
}
