package credential

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Secret is the configured access token. When Hashed is set, Value holds a
// bcrypt hash and never the cleartext.
type Secret struct {
	Value  string
	Hashed bool
}

// IsSet reports whether authentication is configured at all.
func (s Secret) IsSet() bool {
	return s.Value != ""
}

// Verify checks the key supplied by a caller against the configured secret.
// An empty secret grants access to everybody.
func Verify(providedKey string, secret Secret) error {
	if !secret.IsSet() {
		return nil
	}
	if providedKey == "" {
		return AuthError{Reason: ReasonMissingKey}
	}

	if secret.Hashed {
		err := bcrypt.CompareHashAndPassword([]byte(secret.Value), []byte(providedKey))
		if err != nil {
			return AuthError{Reason: ReasonKeyMismatch}
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(providedKey), []byte(secret.Value)) != 1 {
		return AuthError{Reason: ReasonKeyMismatch}
	}
	return nil
}

// Hash returns the bcrypt hash of key.
func Hash(key string) (string, error) {
	if key == "" {
		return "", errors.New("cannot hash empty key")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash key: %w", err)
	}
	return string(hashed), nil
}
