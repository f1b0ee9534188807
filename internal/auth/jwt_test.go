package auth

import (
	"testing"
	"time"

	"logitrack/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	const secret = "night-shift-secret"

	token, err := GenerateToken(secret, 7, "foreman", model.RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("user id = %d, want 7", claims.UserID)
	}
	if claims.Username != "foreman" {
		t.Errorf("username = %q, want foreman", claims.Username)
	}
	if claims.Role != model.RoleManager {
		t.Errorf("role = %q, want manager", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected a JTI for the revocation list")
	}
}

func TestEachTokenGetsFreshJTI(t *testing.T) {
	const secret = "night-shift-secret"

	first, err := GenerateToken(secret, 7, "foreman", model.RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	second, err := GenerateToken(secret, 7, "foreman", model.RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	a, _ := ValidateToken(secret, first)
	b, _ := ValidateToken(secret, second)
	if a.ID == b.ID {
		t.Error("two tokens share a JTI; revoking one would revoke both")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("day-shift-secret", 7, "foreman", model.RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("night-shift-secret", token); err == nil {
		t.Error("expected error for mismatched secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ValidateToken("night-shift-secret", input); err == nil {
			t.Errorf("expected error for input %q", input)
		}
	}
}

func TestTokenExpirySetFromLifetime(t *testing.T) {
	const secret = "night-shift-secret"

	token, err := GenerateToken(secret, 7, "foreman", model.RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	drift := time.Until(claims.ExpiresAt.Time) - TokenExpiry
	if drift < -5*time.Second || drift > 5*time.Second {
		t.Errorf("expiry drifts %v from the configured lifetime", drift)
	}
}
