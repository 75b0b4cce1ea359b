package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt work factor applied to every password. Raising it
// makes each hash (and each future verification) more expensive for an
// attacker to brute-force.
const BcryptCost = 10

// PasswordHasher produces a salted, one-way hash of a plaintext password.
// The salt is generated per call and embedded in the returned hash string,
// so hashing the same password twice yields different outputs.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// BcryptHasher implements PasswordHasher with golang.org/x/crypto/bcrypt.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hashed), nil
}
