package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlevkov/authgate/internal/dbx"
	"github.com/shoenig/go-conceal"
)

// SQLiteStore keeps the token pair in the tokens table of the client
// database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM tokens WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO tokens (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set tokens[%s]: %w", key, err)
	}
	return nil
}

// Get returns the stored pair, or (nil, nil) when no access token is
// present. A missing refresh token does not make the pair absent; logout
// simply sends an empty refresh token in that case.
func (s *SQLiteStore) Get(ctx context.Context) (*Pair, error) {
	access, err := s.get(ctx, s.db, KeyAccessToken)
	if err != nil {
		return nil, err
	}
	if len(access) == 0 {
		return nil, nil
	}
	refresh, err := s.get(ctx, s.db, KeyRefreshToken)
	if err != nil {
		return nil, err
	}
	return &Pair{
		Access:  conceal.New(string(access)),
		Refresh: conceal.New(string(refresh)),
	}, nil
}

// Set overwrites both keys in one transaction so a crash cannot leave a
// mixed pair behind.
func (s *SQLiteStore) Set(ctx context.Context, pair *Pair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, KeyAccessToken, []byte(pair.Access.Unveil())); err != nil {
			return err
		}
		return s.set(ctx, tx, KeyRefreshToken, []byte(pair.Refresh.Unveil()))
	})
}

// Clear removes both keys. Clearing an empty store is not an error.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tokens`)
	if err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

// HasToken reports whether a non-empty access token is stored. It says
// nothing about whether the remote service still accepts it.
func (s *SQLiteStore) HasToken(ctx context.Context) (bool, error) {
	access, err := s.get(ctx, s.db, KeyAccessToken)
	if err != nil {
		return false, err
	}
	return len(access) > 0, nil
}
