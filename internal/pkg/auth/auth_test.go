package auth

import (
	"testing"
	"time"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "LuxFakia"},
		Session:  config.SessionConfig{Secret: "test-secret-test-secret-test-secret", TTL: time.Hour},
		Security: config.SecurityConfig{BcryptCost: 4, MinPasswordLength: 8},
	}
}

func TestPasswordManager(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("Safran2024")
	require.NoError(t, err)
	assert.NoError(t, pm.VerifyPassword("Safran2024", hash))
	assert.Error(t, pm.VerifyPassword("safran2024", hash))

	for _, weak := range []string{"short1", "onlyletters", "1234567890", "MyPassword1", string(make([]byte, 129))} {
		_, err := pm.HashPassword(weak)
		assert.ErrorIs(t, err, ErrWeakPassword, weak)
	}
}

func TestSessionToken(t *testing.T) {
	cfg := testConfig()
	jm := NewJWTManager(cfg)

	token, err := jm.GenerateSessionToken("abc-123")
	require.NoError(t, err)

	sid, err := jm.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", sid)

	other := testConfig()
	other.Session.Secret = "another-secret-another-secret-12345"
	_, err = NewJWTManager(other).ValidateSessionToken(token)
	assert.Error(t, err)

	_, err = jm.ValidateSessionToken("not-a-token")
	assert.Error(t, err)
}
