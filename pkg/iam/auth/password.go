package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBcryptCost = 12
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
)

// PasswordService hashes and verifies user passwords. The pepper is appended
// before hashing and is never stored.
type PasswordService struct {
	cost   int
	pepper string
}

func NewPasswordService(cost int, pepper string) *PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordService{cost: cost, pepper: pepper}
}

// Validate enforces the password policy
func (s *PasswordService) Validate(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword().WithDetail("min_length", MinPasswordLength)
	}
	if len(password)+len(s.pepper) > maxPasswordBytes {
		return ErrWeakPassword().WithDetail("max_bytes", maxPasswordBytes-len(s.pepper))
	}
	return nil
}

func (s *PasswordService) Hash(password string) (string, error) {
	if err := s.Validate(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password+s.pepper), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is an error,
// a mismatch is not.
func (s *PasswordService) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+s.pepper))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("failed to verify password: %w", err)
}
