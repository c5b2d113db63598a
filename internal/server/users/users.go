// Package users is the development server's in-memory account store.
// Accounts do not survive a restart; the only durable state in the
// system is the client's token pair.
package users

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Repository keeps accounts in memory, keyed by id, with unique
// usernames. IDs are assigned sequentially starting at 1.
type Repository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*User
}

func NewRepository() *Repository {
	return &Repository{nextID: 1, byID: make(map[int64]*User)}
}

// Create stores a new account. The username must be free; a taken email
// is rejected too so the email login path stays unambiguous.
func (r *Repository) Create(username, email string, passwordHash []byte) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == username || (email != "" && u.Email == email) {
			return nil, ErrUserExists
		}
	}

	u := &User{
		ID:           r.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.nextID++
	r.byID[u.ID] = u

	return u, nil
}

func (r *Repository) ByID(id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *Repository) ByUsername(username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *Repository) ByEmail(email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if email == "" {
		return nil, ErrUserNotFound
	}
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}
