package store

import (
	"context"
	"testing"
	"time"

	"logitrack/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "shift-token-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("fresh token id must not be revoked")
	}

	if err := RevokeToken(ctx, database, "shift-token-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "shift-token-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected token id to be revoked")
	}

	// Revocation is per id, not global.
	revoked, err = IsTokenRevoked(ctx, database, "shift-token-2")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("other token ids must stay valid")
	}
}

func TestRevokeTokenIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiry := time.Now().Add(time.Hour)
	for i := 0; i < 2; i++ {
		if err := RevokeToken(ctx, database, "shift-token-1", expiry); err != nil {
			t.Fatalf("RevokeToken call %d: %v", i+1, err)
		}
	}
}

func TestExpiredRevocationNoLongerBlocks(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// The token itself expired a minute ago; its revocation entry is moot.
	if err := RevokeToken(ctx, database, "stale-token", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err := IsTokenRevoked(ctx, database, "stale-token")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("an entry past its token expiry must not count as revoked")
	}
}

func TestPurgeExpiredTokens(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := RevokeToken(ctx, database, "stale-token", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if err := RevokeToken(ctx, database, "live-token", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	purged, err := PurgeExpiredTokens(ctx, database)
	if err != nil {
		t.Fatalf("PurgeExpiredTokens: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged %d entries, want 1", purged)
	}

	revoked, err := IsTokenRevoked(ctx, database, "live-token")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("live revocation must survive the purge")
	}
}
