package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseDriver(t *testing.T) {
	cases := []struct {
		url    string
		driver string
		dsn    string
	}{
		{"sqlite://luxfakia.db", "sqlite", "luxfakia.db"},
		{"sqlite::memory:", "sqlite", ":memory:"},
		{"postgres://u:p@db:5432/shop?sslmode=disable", "postgres", "postgres://u:p@db:5432/shop?sslmode=disable"},
		{"postgresql://u:p@db/shop", "postgres", "postgresql://u:p@db/shop"},
	}

	for _, tc := range cases {
		cfg := &Config{Database: DatabaseConfig{URL: tc.url}}
		driver, dsn, err := cfg.DatabaseDriver()
		require.NoError(t, err, tc.url)
		assert.Equal(t, tc.driver, driver)
		assert.Equal(t, tc.dsn, dsn)
	}

	cfg := &Config{Database: DatabaseConfig{URL: "mysql://x"}}
	_, _, err := cfg.DatabaseDriver()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "production", DefaultLang: "fr"},
			Server:   ServerConfig{Port: "5000"},
			Database: DatabaseConfig{URL: "sqlite://shop.db"},
			Session:  SessionConfig{Secret: "0123456789abcdef0123456789abcdef"},
		}
	}

	require.NoError(t, valid().Validate())

	short := valid()
	short.Session.Secret = "short"
	assert.Error(t, short.Validate())

	short.App.Environment = "development"
	assert.NoError(t, short.Validate())

	lang := valid()
	lang.App.DefaultLang = "en"
	assert.Error(t, lang.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("REDIS_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.UsesRedis())
	assert.Equal(t, "fr", cfg.App.DefaultLang)
	assert.Contains(t, cfg.Upload.AllowedExtensions, "webp")
}
