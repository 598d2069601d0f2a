// Package service provides the collaborator implementations behind the
// user use case ports: Argon2id password hashing, JWT access tokens and
// welcome email delivery.
package service

import (
	"fmt"

	"github.com/allisson/go-pwdhash"
)

// Argon2PasswordHasher hashes passwords with Argon2id. The interactive
// policy keeps login latency acceptable while staying within current
// hardening recommendations.
type Argon2PasswordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewArgon2PasswordHasher creates a new Argon2PasswordHasher.
func NewArgon2PasswordHasher() *Argon2PasswordHasher {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		// A fixed valid policy cannot fail to construct.
		panic(err)
	}

	return &Argon2PasswordHasher{hasher: hasher}
}

// Hash hashes a plaintext password into a self-describing encoded string.
func (h *Argon2PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := h.hasher.Hash([]byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hashed, nil
}

// Verify compares a plaintext password against an encoded hash in constant
// time. A malformed hash is an error, not a mismatch.
func (h *Argon2PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	ok, err := h.hasher.Verify([]byte(plaintext), hash)
	if err != nil {
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
	return ok, nil
}
