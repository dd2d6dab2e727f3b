// internal/pkg/auth/password.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/luxfakia/storefront/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPassword wraps every password policy violation
var ErrWeakPassword = errors.New("weak password")

const maxPasswordLength = 128

// PasswordManager handles password operations
type PasswordManager struct {
	config *config.Config
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	return &PasswordManager{
		config: cfg,
	}
}

// HashPassword hashes a password using bcrypt
func (p *PasswordManager) HashPassword(password string) (string, error) {
	if err := p.ValidatePassword(password); err != nil {
		return "", err
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost())
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against its hash
func (p *PasswordManager) VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword validates password strength
func (p *PasswordManager) ValidatePassword(password string) error {
	minLength := 8
	if p.config != nil && p.config.Security.MinPasswordLength > 0 {
		minLength = p.config.Security.MinPasswordLength
	}

	if len(password) < minLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: must be no more than %d characters long", ErrWeakPassword, maxPasswordLength)
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	if !hasLetter || !hasNumber {
		return fmt.Errorf("%w: must contain letters and numbers", ErrWeakPassword)
	}

	// Check for common weak passwords
	lower := strings.ToLower(password)
	for _, common := range []string{"password", "12345678", "azerty", "qwerty", "luxfakia"} {
		if strings.Contains(lower, common) {
			return fmt.Errorf("%w: too common and easily guessable", ErrWeakPassword)
		}
	}

	return nil
}

func (p *PasswordManager) cost() int {
	if p.config != nil && p.config.Security.BcryptCost >= bcrypt.MinCost {
		return p.config.Security.BcryptCost
	}
	return bcrypt.DefaultCost
}
