package identity

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a bcrypt hash for storage on an Identity. An
// empty password is rejected here so federated identities, which carry
// no hash at all, cannot be confused with an identity whose password is
// the empty string.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("identity: password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a login attempt against the stored hash. A nil
// return means the password matches; an empty hash never matches.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("identity: no password set")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
