// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Security SecurityConfig
	Upload   UploadConfig
	Admin    AdminSeedConfig
	Company  CompanyConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name         string
	Version      string
	Environment  string
	DefaultLang  string
	TemplatesDir string
	Currency     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contains database connection configuration.
// URL selects the driver: sqlite://path (default) or postgres://...
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration. An empty Host keeps sessions in process.
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SessionConfig contains session cookie configuration
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost        int
	MinPasswordLength int
	TrustedProxies    []string
	LoginRateLimit    int // Attempts per minute and IP, 0 disables
}

// UploadConfig contains image upload configuration
type UploadConfig struct {
	MaxSize           int64
	AllowedExtensions []string
	ImageMaxWidth     int
	ImageMaxHeight    int
	ImageMaxPixels    int
	JPEGQuality       int
}

// AdminSeedConfig is the account created on first start when no admin exists
type AdminSeedConfig struct {
	Username string
	Password string
	Email    string
}

// CompanyConfig feeds the invoice header
type CompanyConfig struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:         getEnv("APP_NAME", "LuxFakia"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			Environment:  getEnv("APP_ENV", "development"),
			DefaultLang:  getEnv("DEFAULT_LANG", "fr"),
			TemplatesDir: getEnv("TEMPLATES_DIR", ""),
			Currency:     getEnv("CURRENCY", "MAD"),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "5000"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", "sqlite://luxfakia.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", ""),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		},
		Session: SessionConfig{
			Secret:     getEnv("SECRET_KEY", "dev-secret-key-luxfakia-change-me-please"),
			CookieName: getEnv("SESSION_COOKIE", "luxfakia_session"),
			TTL:        getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
			Secure:     getEnvAsBool("SESSION_SECURE", false),
		},
		Security: SecurityConfig{
			BcryptCost:        getEnvAsInt("BCRYPT_COST", 12),
			MinPasswordLength: getEnvAsInt("MIN_PASSWORD_LENGTH", 8),
			TrustedProxies:    getEnvAsSlice("TRUSTED_PROXIES", []string{}),
			LoginRateLimit:    getEnvAsInt("LOGIN_RATE_LIMIT", 10),
		},
		Upload: UploadConfig{
			MaxSize:           getEnvAsInt64("UPLOAD_MAX_SIZE", 10485760), // 10MB
			AllowedExtensions: getEnvAsSlice("UPLOAD_ALLOWED_EXTENSIONS", []string{"png", "jpg", "jpeg", "gif", "webp"}),
			ImageMaxWidth:     getEnvAsInt("IMAGE_MAX_WIDTH", 1200),
			ImageMaxHeight:    getEnvAsInt("IMAGE_MAX_HEIGHT", 1200),
			ImageMaxPixels:    getEnvAsInt("IMAGE_MAX_PIXELS", 40000000),
			JPEGQuality:       getEnvAsInt("IMAGE_JPEG_QUALITY", 82),
		},
		Admin: AdminSeedConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Email:    getEnv("ADMIN_EMAIL", "admin@luxfakia.ma"),
		},
		Company: CompanyConfig{
			Name:    getEnv("COMPANY_NAME", "LuxFakia"),
			Address: getEnv("COMPANY_ADDRESS", ""),
			Phone:   getEnv("COMPANY_PHONE", ""),
			Email:   getEnv("COMPANY_EMAIL", "contact@luxfakia.ma"),
			Website: getEnv("COMPANY_WEBSITE", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.IsProduction() && len(c.Session.Secret) < 32 {
		return fmt.Errorf("SECRET_KEY must be at least 32 characters long in production")
	}

	if _, _, err := c.DatabaseDriver(); err != nil {
		return err
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.App.DefaultLang {
	case "fr", "ar":
	default:
		return fmt.Errorf("DEFAULT_LANG must be fr or ar, got %q", c.App.DefaultLang)
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// DatabaseDriver splits DATABASE_URL into a driver name and the DSN the driver expects
func (c *Config) DatabaseDriver() (driver, dsn string, err error) {
	url := strings.TrimSpace(c.Database.URL)
	switch {
	case url == "":
		return "", "", fmt.Errorf("DATABASE_URL is required")
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"), strings.Contains(url, "host="):
		return "postgres", url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return "sqlite", strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "sqlite:"):
		return "sqlite", strings.TrimPrefix(url, "sqlite:"), nil
	default:
		return "", "", fmt.Errorf("unsupported DATABASE_URL scheme: %s", url)
	}
}

// UsesRedis reports whether sessions live in Redis
func (c *Config) UsesRedis() bool {
	return c.Redis.Host != ""
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
