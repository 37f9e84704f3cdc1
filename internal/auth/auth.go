// Package auth implements the shared-password login check and the in-memory
// session registry behind the API's bearer tokens.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	// ErrBadCredentials indicates the supplied password does not match the
	// platform password.
	ErrBadCredentials = errors.New("invalid credentials")
	// ErrMissingField indicates a blank affiliation, name, or password.
	ErrMissingField = errors.New("missing required field")
)

// HashPassword returns the SHA-256 hex digest used for password comparison.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares password against the configured digest in
// constant time.
func VerifyPassword(password, passwordHash string) bool {
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(passwordHash))) == 1
}

// ValidateLogin checks the login form fields and the platform password.
func ValidateLogin(affiliation, name, password, passwordHash string) error {
	if strings.TrimSpace(affiliation) == "" {
		return errors.Join(ErrMissingField, errors.New("affiliation is required"))
	}
	if strings.TrimSpace(name) == "" {
		return errors.Join(ErrMissingField, errors.New("name is required"))
	}
	if strings.TrimSpace(password) == "" {
		return errors.Join(ErrMissingField, errors.New("password is required"))
	}
	if !VerifyPassword(password, passwordHash) {
		return ErrBadCredentials
	}
	return nil
}
