package tokens

import (
	"sync"

	"github.com/hashicorp/go-set/v3"
)

// Blacklist records the jti of every refresh token revoked by a logout.
// Entries live until the process exits, which outlasts the tokens
// themselves.
type Blacklist struct {
	mu  sync.Mutex
	ids *set.Set[string]
}

func NewBlacklist() *Blacklist {
	return &Blacklist{ids: set.New[string](16)}
}

func (b *Blacklist) Revoke(jti string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ids.Insert(jti)
}

func (b *Blacklist) Revoked(jti string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ids.Contains(jti)
}
