package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
)

// signingSecretKey is the settings row holding the token signing secret.
const signingSecretKey = "auth.signing_secret"

// GetJWTSecret returns the persisted token signing secret, minting one on
// first use. Insert-if-absent followed by a read keeps concurrent first
// starts from ending up with different secrets.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	candidate, err := newSigningSecret()
	if err != nil {
		return "", err
	}

	if err := initSetting(ctx, db, signingSecretKey, candidate); err != nil {
		return "", fmt.Errorf("storing signing secret: %w", err)
	}

	secret, err := getSetting(ctx, db, signingSecretKey)
	if err != nil {
		return "", fmt.Errorf("loading signing secret: %w", err)
	}
	if secret == "" {
		return "", errors.New("signing secret missing after init")
	}
	return secret, nil
}

func newSigningSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating signing secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// initSetting writes a key only when it is not set yet.
func initSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// getSetting reads a key, returning the empty string when unset.
func getSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
