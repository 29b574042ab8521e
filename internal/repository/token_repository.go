package repository

import (
	"context"
	"database/sql"
	"errors"
)

// TokenRepo owns the 'auth' table, which maps the signature of every
// issued session token to its user. The literal bearer token is never
// persisted; callers derive the signature before touching this repo.
type TokenRepo struct{ db *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Store records a token signature for a user. REPLACE keeps re-login
// with an identical token idempotent.
func (r *TokenRepo) Store(ctx context.Context, signature string, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"REPLACE INTO auth (token, userId) VALUES (?, ?)",
		signature, userID)
	return err
}

// IsLoggedIn reports whether a signature row exists. A missing row is
// not an error; the check fails closed.
func (r *TokenRepo) IsLoggedIn(ctx context.Context, signature string) (bool, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT userId FROM auth WHERE token = ? LIMIT 1",
		signature).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke deletes a signature row. Revoking an unknown signature is a
// no-op, not an error.
func (r *TokenRepo) Revoke(ctx context.Context, signature string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM auth WHERE token = ?", signature)
	return err
}
