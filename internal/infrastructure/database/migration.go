// internal/infrastructure/database/migration.go
package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/domain/content"
	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/luxfakia/storefront/internal/domain/upload"
	"github.com/luxfakia/storefront/internal/domain/user"
	"github.com/luxfakia/storefront/internal/pkg/auth"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&user.UserLog{},

		&product.Category{},
		&product.Product{},
		&product.PricingTier{},

		&order.Order{},
		&order.OrderItem{},

		&content.HomeSection{},
		&content.SiteSetting{},

		&upload.DbImage{},
	}
}

// Migration handles schema migration and first-start data
type Migration struct {
	db     *gorm.DB
	config *config.Config
	log    *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		config: cfg,
		log:    log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("running database auto-migrations")

	for _, model := range Models() {
		m.log.Debugf("migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("database auto-migrations completed")
	return nil
}

// CreateIndexes creates the composite indexes the listing queries use.
// Failures are logged and counted, never fatal.
func (m *Migration) CreateIndexes() int {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_hidden ON products(category_id, is_hidden)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_product_pricings_product_qty ON product_pricings(product_id, quantity)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_user_logs_user_created ON user_logs(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",
	}

	failed := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("failed to create index")
			failed++
		}
	}

	m.log.Infof("created %d indexes (%d failed)", len(indexes)-failed, failed)
	return failed
}

// SeedInitialData inserts the admin account and default settings.
// Demo categories are added only in development.
func (m *Migration) SeedInitialData() error {
	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := content.NewService(m.db, m.config).EnsureDefaults(); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	if m.config.IsDevelopment() {
		if err := m.seedCategories(); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
	}
	return nil
}

// seedAdminUser creates the configured admin account when it does not exist.
// ADMIN_PASSWORD may be plain text or a bcrypt hash printed by cmd/hashpw.
func (m *Migration) seedAdminUser() error {
	seed := m.config.Admin
	if seed.Username == "" || seed.Password == "" {
		m.log.Warn("ADMIN_USERNAME or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing user.User
	err := m.db.Where("username = ?", seed.Username).First(&existing).Error
	if err == nil {
		m.log.WithField("user_id", existing.ID).Debug("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash := seed.Password
	if !isBcryptHash(hash) {
		hash, err = auth.NewPasswordManager(m.config).HashPassword(seed.Password)
		if err != nil {
			return err
		}
	}

	admin := user.User{
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: hash,
		FullName:     "Administrateur",
		Role:         string(authz.RoleAdmin),
	}
	admin.SetCapabilities(authz.NewCapabilitySet(authz.AllCapabilities()...))
	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	m.log.WithFields(logrus.Fields{"user_id": admin.ID, "username": admin.Username}).Info("created admin user")
	return nil
}

func (m *Migration) seedCategories() error {
	names := []string{"Épices", "Fruits secs", "Huiles", "Miels", "Thés et infusions"}

	for _, name := range names {
		category := product.Category{Name: name}
		result := m.db.Where("name = ?", name).FirstOrCreate(&category)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			m.log.WithField("category", name).Debug("created category")
		}
	}
	return nil
}

// DropAllTables removes every table. Development and tests only.
func (m *Migration) DropAllTables() error {
	if m.config.IsProduction() {
		return errors.New("refusing to drop tables in production")
	}
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := m.db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", models[i], err)
		}
	}
	return nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
