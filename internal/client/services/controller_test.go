package services

import (
	"context"
	"testing"
	"time"

	"github.com/mlevkov/authgate/internal/client/gateway"
	"github.com/mlevkov/authgate/internal/client/tokenstore"
	"github.com/stretchr/testify/require"
)

func TestStart_NoTokenStaysAnonymous(t *testing.T) {
	store := &memStore{}
	gw := &fakeGateway{}
	c := NewController(store, gw, testLogger(), 10*time.Millisecond)

	c.Start(context.Background())

	require.Equal(t, StateAnonymous, c.State())
	require.Nil(t, c.Identity())
	require.Zero(t, gw.profileCalls.Load())
}

func TestStart_ValidTokenBecomesAuthenticated(t *testing.T) {
	store := &memStore{pair: tokenstore.NewPair("T1", "R1")}
	gw := &fakeGateway{store: store, profRet: &gateway.Identity{UserID: 7, Username: "a"}}
	c := NewController(store, gw, testLogger(), 10*time.Millisecond)

	c.Start(context.Background())

	require.Equal(t, StateAuthenticated, c.State())
	require.Equal(t, "a", c.Identity().Username)
}

func TestStart_RejectedTokenSignsOutAfterDelayExactlyOnce(t *testing.T) {
	store := &memStore{pair: tokenstore.NewPair("stale", "R")}
	gw := &fakeGateway{
		store:   store,
		profErr: &gateway.RejectedError{Status: 401, Message: "invalid token"},
	}
	c := NewController(store, gw, testLogger(), 40*time.Millisecond)

	c.Start(context.Background())

	// the verifying surface stays up until the delayed sign-out fires
	require.Equal(t, StateVerifying, c.State())
	require.Zero(t, store.clears())

	require.Eventually(t, func() bool { return c.State() == StateAnonymous },
		time.Second, 5*time.Millisecond)

	require.Equal(t, 1, store.clears(), "token store cleared exactly once")
	require.Equal(t, int64(1), gw.logoutCalls.Load())
	require.Nil(t, c.Identity())

	ok, err := store.HasToken(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLogin_ScenarioAuthenticatesAndStoresPair(t *testing.T) {
	store := &memStore{}
	gw := &fakeGateway{
		store:    store,
		loginRet: &gateway.Identity{UserID: 7, Username: "a", NewUser: false},
	}
	c := NewController(store, gw, testLogger(), 10*time.Millisecond)

	err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	require.Equal(t, StateAuthenticated, c.State())
	require.Equal(t, &gateway.Identity{UserID: 7, Username: "a", NewUser: false}, c.Identity())

	pair, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T1", pair.Access.Unveil())
	require.Equal(t, "R1", pair.Refresh.Unveil())
}

func TestLogin_MissingPasswordNeverReachesGateway(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(&memStore{}, gw, testLogger(), 10*time.Millisecond)

	err := c.Login(context.Background(), "a@b.com", "")
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, gw.loginCalls.Load())
	require.Equal(t, StateAnonymous, c.State())
}

func TestSignup_EmptyUsernameLeavesStoreUntouched(t *testing.T) {
	store := &memStore{}
	gw := &fakeGateway{store: store}
	c := NewController(store, gw, testLogger(), 10*time.Millisecond)

	err := c.Signup(context.Background(), "", "a@b.com", "pw")
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, gw.signupCalls.Load())

	pair, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, pair)
}

func TestSignup_MalformedEmailRejectedLocally(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(&memStore{}, gw, testLogger(), 10*time.Millisecond)

	for _, email := range []string{"no-at-sign.com", "user@nodot"} {
		err := c.Signup(context.Background(), "alice", email, "pw")
		require.ErrorIs(t, err, ErrValidation, "email %q", email)
	}
	require.Zero(t, gw.signupCalls.Load())
}

func TestLogin_FailureSurfacesErrorAndStaysAnonymous(t *testing.T) {
	gw := &fakeGateway{loginErr: &gateway.RejectedError{Status: 401, Message: "Invalid credentials"}}
	c := NewController(&memStore{}, gw, testLogger(), 10*time.Millisecond)

	err := c.Login(context.Background(), "alice", "wrong")

	var rej *gateway.RejectedError
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "Invalid credentials", rej.Message)
	require.Equal(t, StateAnonymous, c.State())
	require.False(t, c.Busy(), "busy flag released after failure")
}

func TestLogin_SecondSubmissionWhileBusyIsNoOp(t *testing.T) {
	gw := &fakeGateway{
		loginRet:     &gateway.Identity{UserID: 1, Username: "alice"},
		loginEntered: make(chan struct{}),
		loginRelease: make(chan struct{}),
	}
	c := NewController(&memStore{}, gw, testLogger(), 10*time.Millisecond)

	first := make(chan error, 1)
	go func() { first <- c.Login(context.Background(), "alice", "pw") }()

	<-gw.loginEntered
	require.True(t, c.Busy())

	err := c.Login(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, ErrBusy)

	close(gw.loginRelease)
	require.NoError(t, <-first)

	require.Equal(t, int64(1), gw.loginCalls.Load(), "only one network call observed")
	require.Equal(t, StateAuthenticated, c.State())
}

func TestLogout_DiscardsRemoteOutcome(t *testing.T) {
	store := &memStore{pair: tokenstore.NewPair("T1", "R1")}
	gw := &fakeGateway{store: store, profRet: &gateway.Identity{UserID: 7, Username: "a"}}
	c := NewController(store, gw, testLogger(), 10*time.Millisecond)

	c.Start(context.Background())
	require.Equal(t, StateAuthenticated, c.State())

	c.Logout(context.Background())

	require.Equal(t, StateAnonymous, c.State())
	require.Nil(t, c.Identity())
	require.Equal(t, 1, store.clears())
}

func TestAutoSignOut_SkippedWhenManualLogoutAlreadyRan(t *testing.T) {
	store := &memStore{pair: tokenstore.NewPair("stale", "R")}
	gw := &fakeGateway{
		store:   store,
		profErr: &gateway.RejectedError{Status: 401, Message: "invalid token"},
	}
	c := NewController(store, gw, testLogger(), 60*time.Millisecond)

	c.Start(context.Background())
	require.Equal(t, StateVerifying, c.State())

	// the user beats the timer
	c.Logout(context.Background())
	require.Equal(t, 1, store.clears())

	time.Sleep(150 * time.Millisecond)
	require.Equal(t, 1, store.clears(), "delayed sign-out must not clear again")
	require.Equal(t, int64(1), gw.logoutCalls.Load())
}

func TestVerify_FailureAfterAuthenticationSignsOut(t *testing.T) {
	store := &memStore{pair: tokenstore.NewPair("T1", "R1")}
	gw := &fakeGateway{store: store, profRet: &gateway.Identity{UserID: 7, Username: "a"}}
	c := NewController(store, gw, testLogger(), 20*time.Millisecond)

	c.Start(context.Background())
	require.Equal(t, StateAuthenticated, c.State())

	// the server stops accepting the token
	gw.profErr = &gateway.RejectedError{Status: 401, Message: "invalid token"}
	c.Verify(context.Background())

	require.Eventually(t, func() bool { return c.State() == StateAnonymous },
		time.Second, 5*time.Millisecond)
	require.Equal(t, 1, store.clears())
}
