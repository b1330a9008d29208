package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

const bcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyAdmin checks a login attempt against the configured admin account.
// ADMIN_PASSWORD_HASH takes precedence; ADMIN_PASSWORD is accepted for
// development setups where no hash was generated.
func VerifyAdmin(cfg *config.Config, email, password string) bool {
	if cfg.AdminEmail == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(cfg.AdminEmail), []byte(email)) != 1 {
		return false
	}
	if cfg.AdminPasswordHash != "" {
		return CheckPassword(password, cfg.AdminPasswordHash)
	}
	if cfg.AdminPassword != "" {
		return subtle.ConstantTimeCompare([]byte(cfg.AdminPassword), []byte(password)) == 1
	}
	return false
}
