package auth

import (
	"testing"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("email = %s, want admin@example.com", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %s, want admin", claims.Role)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-one").GenerateToken("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewJWTService("secret-two").ValidateToken(token); err == nil {
		t.Error("a token signed with another secret must not validate")
	}
}

func TestVerifyAdmin(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cfg := &config.Config{
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: hash,
	}

	if !VerifyAdmin(cfg, "admin@example.com", "correct-horse") {
		t.Error("expected valid credentials to verify")
	}
	if VerifyAdmin(cfg, "admin@example.com", "wrong") {
		t.Error("wrong password must not verify")
	}
	if VerifyAdmin(cfg, "other@example.com", "correct-horse") {
		t.Error("wrong email must not verify")
	}
	if VerifyAdmin(&config.Config{}, "admin@example.com", "correct-horse") {
		t.Error("unconfigured admin must never verify")
	}
}

func TestVerifyAdminPlainPasswordFallback(t *testing.T) {
	cfg := &config.Config{
		AdminEmail:    "admin@example.com",
		AdminPassword: "dev-password",
	}
	if !VerifyAdmin(cfg, "admin@example.com", "dev-password") {
		t.Error("plain password fallback should verify in development setups")
	}
}
