package database

import (
	"testing"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/domain/content"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/luxfakia/storefront/internal/domain/user"
	"github.com/luxfakia/storefront/internal/pkg/auth"
	"github.com/luxfakia/storefront/internal/pkg/logger"
	"github.com/luxfakia/storefront/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Environment: "development"},
		Security: config.SecurityConfig{BcryptCost: 4, MinPasswordLength: 8},
		Admin:    config.AdminSeedConfig{Username: "admin", Password: "Safran2024x", Email: "admin@luxfakia.ma"},
	}
}

func migrated(t *testing.T, cfg *config.Config) *Migration {
	t.Helper()
	m := NewMigration(testutil.NewDB(t), cfg, logger.Discard())
	require.NoError(t, m.RunAutoMigrations())
	return m
}

func TestRunAutoMigrations(t *testing.T) {
	m := migrated(t, testConfig())
	for _, table := range []string{"users", "user_logs", "categories", "products", "product_pricings", "orders", "order_items", "home_sections", "site_settings", "db_images"} {
		assert.True(t, m.db.Migrator().HasTable(table), table)
	}
	assert.Zero(t, m.CreateIndexes())
	// idempotent
	require.NoError(t, m.RunAutoMigrations())
	assert.Zero(t, m.CreateIndexes())
}

func TestSeedInitialData(t *testing.T) {
	cfg := testConfig()
	m := migrated(t, cfg)

	require.NoError(t, m.SeedInitialData())
	require.NoError(t, m.SeedInitialData())

	var admins []user.User
	require.NoError(t, m.db.Where("username = ?", "admin").Find(&admins).Error)
	require.Len(t, admins, 1)
	admin := admins[0]
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.Capabilities().Has(authz.DeleteUser))
	assert.NoError(t, auth.NewPasswordManager(cfg).VerifyPassword("Safran2024x", admin.PasswordHash))

	var settings int64
	m.db.Model(&content.SiteSetting{}).Count(&settings)
	assert.EqualValues(t, len(content.DefaultSettings), settings)

	var categories int64
	m.db.Model(&product.Category{}).Count(&categories)
	assert.EqualValues(t, 5, categories)
}

func TestSeedAdminAcceptsBcryptHash(t *testing.T) {
	cfg := testConfig()
	cfg.App.Environment = "production"
	hash, err := bcrypt.GenerateFromPassword([]byte("Safran2024x"), 4)
	require.NoError(t, err)
	cfg.Admin.Password = string(hash)

	m := migrated(t, cfg)
	require.NoError(t, m.SeedInitialData())

	var admin user.User
	require.NoError(t, m.db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, string(hash), admin.PasswordHash)

	var categories int64
	m.db.Model(&product.Category{}).Count(&categories)
	assert.Zero(t, categories)
}

func TestSeedSkipsAdminWithoutPassword(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.Password = ""
	m := migrated(t, cfg)
	require.NoError(t, m.SeedInitialData())

	var users int64
	m.db.Model(&user.User{}).Count(&users)
	assert.Zero(t, users)
}

func TestDropAllTables(t *testing.T) {
	m := migrated(t, testConfig())
	require.NoError(t, m.DropAllTables())
	assert.False(t, m.db.Migrator().HasTable("users"))

	prod := testConfig()
	prod.App.Environment = "production"
	assert.Error(t, NewMigration(m.db, prod, logger.Discard()).DropAllTables())
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "shop.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("shop.db"))
	assert.Equal(t, "file::memory:?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("file::memory:?cache=shared"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(1)", sqliteDSN("x.db?_pragma=foreign_keys(1)"))
}
