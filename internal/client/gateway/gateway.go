// Package gateway is the request layer of the client. It issues the four
// authentication calls against the remote service, attaches bearer
// credentials, and normalizes success and failure into a small error
// taxonomy (see errors.go).
//
// The gateway owns the token side effects: a successful signup or login
// stores the returned pair, and logout clears the store no matter how the
// remote call went.
package gateway

import "context"

// Identity describes the authenticated user as reported by the service.
type Identity struct {
	UserID   int64
	Username string
	NewUser  bool
}

// Gateway defines the remote authentication operations.
//
// Contract:
//   - Signup: create an account; stores the returned token pair.
//   - Login: authenticate by username or email; stores the token pair.
//   - Logout: best-effort remote revocation; always clears the local pair.
//   - Profile: fetch the identity behind the stored access token; fails
//     with ErrNoSession before any network I/O when no token is stored.
//
// All methods honor context cancellation.
type Gateway interface {
	Signup(ctx context.Context, username, email, password string) (*Identity, error)
	Login(ctx context.Context, identifier, password string) (*Identity, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*Identity, error)
}
