package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mlevkov/authgate/internal/client/gateway"
	"github.com/mlevkov/authgate/internal/client/tokenstore"
	"github.com/mlevkov/authgate/internal/logging"
)

// ErrBusy is returned when a login or signup is submitted while another
// authentication request is still in flight. The second submission is a
// no-op; no network call is made.
var ErrBusy = errors.New("authentication request already in flight")

// State is which surface the UI should render.
type State string

const (
	// StateAnonymous: no identity held, the authentication forms are active.
	StateAnonymous State = "anonymous"
	// StateVerifying: a stored token is being checked against the service.
	StateVerifying State = "verifying"
	// StateAuthenticated: a live identity is held, the home surface is active.
	StateAuthenticated State = "authenticated"
)

// Controller is the state machine that owns which surface is active. It
// mediates between the supervisor, the gateway, and the UI: the UI reads
// State/Identity/Busy and calls Login, Signup, Logout.
type Controller struct {
	gw    gateway.Gateway
	store tokenstore.Store
	log   logging.Logger
	sup   *Supervisor

	mu       sync.Mutex
	state    State
	identity *gateway.Identity
	busy     bool
}

// NewController builds the controller and its supervisor. signOutDelay <= 0
// selects DefaultSignOutDelay.
func NewController(store tokenstore.Store, gw gateway.Gateway, log logging.Logger, signOutDelay time.Duration) *Controller {
	c := &Controller{
		gw:    gw,
		store: store,
		log:   log,
		state: StateAnonymous,
	}
	c.sup = NewSupervisor(store, gw, log, signOutDelay, c.autoSignOut)
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity returns the authenticated identity, or nil outside
// StateAuthenticated.
func (c *Controller) Identity() *gateway.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Busy reports whether an authentication request is in flight. The UI is
// expected to keep submission controls inert while busy.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Start runs the mount-time session check. Without a stored token the
// controller stays Anonymous and no network call is made. With one, it
// enters Verifying and asks the supervisor; on success it becomes
// Authenticated, on failure it stays Verifying until the supervisor's
// delayed sign-out lands it in Anonymous with the store cleared.
func (c *Controller) Start(ctx context.Context) {
	ok, err := c.store.HasToken(ctx)
	if err != nil {
		c.log.Warn(ctx, "could not inspect token store on startup", "error", err)
	}
	if !ok {
		c.setState(StateAnonymous, nil)
		return
	}

	c.setState(StateVerifying, nil)
	c.runCheck(ctx)
}

// Verify re-runs the session check on demand. A failure takes the same
// automatic sign-out path as the startup check.
func (c *Controller) Verify(ctx context.Context) {
	c.runCheck(ctx)
}

func (c *Controller) runCheck(ctx context.Context) {
	id, err := c.sup.Check(ctx)
	if err != nil {
		// stay put; the supervisor's delayed sign-out finishes the
		// transition so the verifying surface stays visible for a moment
		return
	}
	c.setState(StateAuthenticated, id)
}

// Login validates the input locally, then authenticates. Validation
// failures and the busy gate return before any network I/O. On success the
// controller holds the new identity; on failure it remains Anonymous and
// the error is surfaced to the UI unchanged.
func (c *Controller) Login(ctx context.Context, identifier, password string) error {
	if err := (LoginInput{Identifier: identifier, Password: password}).Validate(); err != nil {
		return err
	}
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	id, err := c.gw.Login(ctx, identifier, password)
	if err != nil {
		return err
	}

	c.setState(StateAuthenticated, id)
	return nil
}

// Signup mirrors Login for account creation.
func (c *Controller) Signup(ctx context.Context, username, email, password string) error {
	if err := (SignupInput{Username: username, Email: email, Password: password}).Validate(); err != nil {
		return err
	}
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	id, err := c.gw.Signup(ctx, username, email, password)
	if err != nil {
		return err
	}

	c.setState(StateAuthenticated, id)
	return nil
}

// Logout ends the session. The remote call is best-effort and its outcome
// deliberately discarded; the local transition to Anonymous and the token
// clear always happen.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.gw.Logout(ctx); err != nil {
		c.log.Warn(ctx, "logout cleanup reported an error", "error", err)
	}
	c.setState(StateAnonymous, nil)
}

// autoSignOut is the supervisor's delayed callback. The state guard makes
// the sign-out idempotent: if a manual logout already ran, nothing happens
// and the store is not cleared a second time.
func (c *Controller) autoSignOut() {
	c.mu.Lock()
	if c.state == StateAnonymous {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	ctx := context.Background()
	c.log.Info(ctx, "session no longer valid, signing out")
	c.Logout(ctx)
}

func (c *Controller) setState(s State, id *gateway.Identity) {
	c.mu.Lock()
	c.state = s
	c.identity = id
	c.mu.Unlock()
}

func (c *Controller) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}
