// Package auth implements signup, login, logout and profile lookup for
// the development server.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mlevkov/authgate/internal/logging"
	"github.com/mlevkov/authgate/internal/server/tokens"
	"github.com/mlevkov/authgate/internal/server/users"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session is what a successful signup or login hands back.
type Session struct {
	User    *users.User
	Access  string
	Refresh string
}

type Service struct {
	users     *users.Repository
	minter    *tokens.Minter
	blacklist *tokens.Blacklist
	log       logging.Logger
}

func NewService(repo *users.Repository, minter *tokens.Minter, blacklist *tokens.Blacklist, log logging.Logger) *Service {
	return &Service{users: repo, minter: minter, blacklist: blacklist, log: log}
}

func (s *Service) Signup(ctx context.Context, username, email, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(username, email, hash)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user created", "user_id", u.ID, "username", u.Username)
	return s.newSession(u)
}

// Login accepts a username or an email address in the identifier. A
// username match wins over an email match, so an email used as someone
// else's username resolves to the username's owner.
func (s *Service) Login(ctx context.Context, identifier, password string) (*Session, error) {
	if identifier == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := s.users.ByUsername(identifier)
	if err != nil {
		u, err = s.users.ByEmail(identifier)
	}
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	s.log.Info(ctx, "user logged in", "user_id", u.ID)
	return s.newSession(u)
}

// Logout revokes the refresh token. A malformed or foreign token is
// logged and otherwise ignored; logout never fails.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}

	claims, err := s.minter.Parse(refreshToken, tokens.TypeRefresh)
	if err != nil {
		s.log.Warn(ctx, "could not revoke refresh token", "error", err)
		return
	}

	s.blacklist.Revoke(claims.ID)
}

func (s *Service) Profile(ctx context.Context, userID int64) (*users.User, error) {
	return s.users.ByID(userID)
}

func (s *Service) newSession(u *users.User) (*Session, error) {
	access, refresh, err := s.minter.MintPair(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Access: access, Refresh: refresh}, nil
}
