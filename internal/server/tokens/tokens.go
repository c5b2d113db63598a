// Package tokens mints and verifies the HS256 access/refresh token pairs
// the development server hands out.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mlevkov/authgate/internal/server/users"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongType    = errors.New("wrong token type")
)

// Claims carries the user identity plus the token kind, so a refresh
// token can never pass for an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
}

// Minter issues signed token pairs for one signing key.
type Minter struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewMinter(secret string, accessTTL, refreshTTL time.Duration) *Minter {
	return &Minter{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// MintPair issues a fresh access/refresh pair for the user. Each token
// gets its own jti so refresh tokens can be revoked individually.
func (m *Minter) MintPair(u *users.User) (access, refresh string, err error) {
	access, err = m.mint(u, TypeAccess, m.accessTTL)
	if err != nil {
		return "", "", err
	}

	refresh, err = m.mint(u, TypeRefresh, m.refreshTTL)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (m *Minter) mint(u *users.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    u.ID,
		Username:  u.Username,
		TokenType: tokenType,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and checks the token kind.
func (m *Minter) Parse(raw, wantType string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, ErrWrongType
	}

	return claims, nil
}
