package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"filevault/internal/model"
)

// DefaultCost is the bcrypt work factor used for new password digests.
const DefaultCost = 12

// Bcrypt implements PasswordHasher on top of golang.org/x/crypto/bcrypt.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a Bcrypt hasher. A non-positive cost falls back to
// DefaultCost.
func NewBcrypt(cost int) model.PasswordHasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash derives a digest from the password.
func (b *Bcrypt) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether the password matches the digest.
func (b *Bcrypt) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
