// Package tokenstore persists the access/refresh token pair between runs.
//
// The pair is the only durable client state: it lives under two fixed keys
// in a local SQLite database, scoped to the client's state directory. The
// store knows nothing about token validity; it only answers presence.
package tokenstore

import (
	"context"

	"github.com/shoenig/go-conceal"
)

// Fixed storage keys for the token pair.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Pair is the credential pair issued by the authentication service.
// Values are concealed so accidental logging or formatting does not leak
// them; call Unveil at the point of use.
type Pair struct {
	Access  *conceal.Text
	Refresh *conceal.Text
}

// NewPair conceals raw token strings into a Pair.
func NewPair(access, refresh string) *Pair {
	return &Pair{Access: conceal.New(access), Refresh: conceal.New(refresh)}
}

// Store is the capability set handed to the gateway and the session layer.
//
// Get reports an absent pair as (nil, nil), not as an error. Set atomically
// overwrites both keys. Clear is idempotent and safe to call when nothing
// is stored.
type Store interface {
	Get(ctx context.Context) (*Pair, error)
	Set(ctx context.Context, pair *Pair) error
	Clear(ctx context.Context) error
	HasToken(ctx context.Context) (bool, error)
}
