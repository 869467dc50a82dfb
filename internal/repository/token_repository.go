package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo stores refresh-token hashes and enforces their lifecycle.  Raw
// tokens never reach this layer; callers hash them first.  Expiry and
// revocation are evaluated in SQL against UTC_TIMESTAMP() so every server
// instance agrees on a token's validity regardless of local clocks.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh records a newly issued refresh token hash for a user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)`
	_, err := r.DB.ExecContext(ctx, q, userID, tokenHash, exp)
	return err
}

// ValidateRefresh resolves an active token hash to its owning user.  Revoked
// and expired tokens behave exactly like unknown ones: sql.ErrNoRows.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	const q = `SELECT user_id FROM refresh_tokens
		WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()
		LIMIT 1`
	var userID uint64
	if err := r.DB.QueryRowContext(ctx, q, tokenHash).Scan(&userID); err != nil {
		return 0, err
	}
	return userID, nil
}

// RevokeByHash invalidates a single token, typically on rotation or logout.
// Already-revoked rows are left untouched so the original revocation time
// survives.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
		WHERE token_hash = ? AND revoked_at IS NULL`
	_, err := r.DB.ExecContext(ctx, q, tokenHash)
	return err
}

// RevokeAllForUser invalidates every active session for a user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
		WHERE user_id = ? AND revoked_at IS NULL`
	_, err := r.DB.ExecContext(ctx, q, userID)
	return err
}
