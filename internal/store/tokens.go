package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RevokeToken records a token id so it is refused until the token would have
// expired on its own. Revoking the same id again is a no-op.
func RevokeToken(ctx context.Context, db *sql.DB, jti string, expiresAt time.Time) error {
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO revoked_tokens (jti, expires_at) VALUES (?, ?)`,
		jti, expiresAt,
	); err != nil {
		return fmt.Errorf("revoking token %s: %w", jti, err)
	}
	return nil
}

// IsTokenRevoked reports whether a token id is on the revocation list.
// Entries whose token has already expired no longer count; signature
// validation rejects those tokens regardless.
func IsTokenRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM revoked_tokens WHERE jti = ? AND expires_at > ?`,
		jti, time.Now(),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return n > 0, nil
}

// PurgeExpiredTokens drops revocation entries for tokens past their own
// expiry. Run at startup; entries age out with the token lifetime, so the
// list stays small.
func PurgeExpiredTokens(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at <= ?`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("purging expired revocations: %w", err)
	}
	return res.RowsAffected()
}
