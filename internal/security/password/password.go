package password

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Hasher produces and checks password digests.
//
// Verify never returns an error: a wrong password and a malformed digest
// both report false.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// New builds the Hasher selected by cfg.
func New(cfg Config) (Hasher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Algorithm {
	case AlgorithmArgon2id:
		return &argon2idHasher{params: cfg.Argon2id}, nil
	default:
		return &bcryptHasher{cost: cfg.BcryptCost}, nil
	}
}

// Dummy hashes a random secret with h. Verifying any password against the
// result costs the same as a real verify and always fails.
func Dummy(h Hasher) (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("dummy secret: %w", err)
	}
	return h.Hash(hex.EncodeToString(secret))
}
