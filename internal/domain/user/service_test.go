package user

import (
	"testing"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/pkg/logger"
	"github.com/luxfakia/storefront/internal/pkg/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{Security: config.SecurityConfig{BcryptCost: 4, MinPasswordLength: 8}}
}

func newUserDB(t *testing.T) *gorm.DB {
	return testutil.NewDB(t, &User{}, &UserLog{})
}

func register(t *testing.T, svc *Service, username, email string) *User {
	t.Helper()
	u, err := svc.Register(&RegisterRequest{
		Username: username, Email: email,
		Password: "Argan2024x", ConfirmPassword: "Argan2024x",
	}, "127.0.0.1")
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	db := newUserDB(t)
	svc := NewService(db, testConfig(), logger.Discard())

	u := register(t, svc, "  amina ", "Amina@Example.MA")
	assert.Equal(t, "amina", u.Username)
	assert.Equal(t, "amina@example.ma", u.Email)
	assert.Equal(t, string(authz.RoleCustomer), u.Role)
	assert.NotEqual(t, "Argan2024x", u.PasswordHash)
	assert.False(t, u.IsStaff())

	t.Run("duplicate username is case-insensitive", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{Username: "AMINA", Password: "Argan2024x", ConfirmPassword: "Argan2024x"}, "")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{Username: "other", Email: "amina@example.ma", Password: "Argan2024x", ConfirmPassword: "Argan2024x"}, "")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("empty emails do not collide", func(t *testing.T) {
		register(t, svc, "youssef", "")
		register(t, svc, "karim", "")
	})

	t.Run("password mismatch", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{Username: "x1", Password: "Argan2024x", ConfirmPassword: "Argan2024y"}, "")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	var logs int64
	require.NoError(t, db.Model(&UserLog{}).Where("action = ?", ActionRegister).Count(&logs).Error)
	assert.EqualValues(t, 3, logs)
}

func TestAuthenticate(t *testing.T) {
	db := newUserDB(t)
	svc := NewService(db, testConfig(), logger.Discard())
	u := register(t, svc, "amina", "amina@example.ma")

	got, err := svc.Authenticate(&LoginRequest{Login: "amina", Password: "Argan2024x"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = svc.Authenticate(&LoginRequest{Login: "AMINA@example.ma", Password: "Argan2024x"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(&LoginRequest{Login: "amina", Password: "wrong"}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(&LoginRequest{Login: "nobody", Password: "Argan2024x"}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	var failed []UserLog
	require.NoError(t, db.Where("action = ?", ActionLoginFailed).Order("id").Find(&failed).Error)
	require.Len(t, failed, 2)
	require.NotNil(t, failed[0].UserID)
	assert.Equal(t, u.ID, *failed[0].UserID)
	assert.Nil(t, failed[1].UserID)
	assert.False(t, failed[1].Success)
	assert.Equal(t, "10.0.0.1", failed[1].IPAddress)
}

func TestUpdateProfile(t *testing.T) {
	db := newUserDB(t)
	svc := NewService(db, testConfig(), logger.Discard())
	u := register(t, svc, "amina", "")
	register(t, svc, "karim", "karim@example.ma")

	updated, err := svc.UpdateProfile(u.ID, &ProfileUpdateRequest{
		Username: "amina", FullName: "Amina B.", City: "Fes", Address: "Derb 12",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Amina B.", updated.GetDisplayName())
	assert.Equal(t, "Fes", updated.City)

	_, err = svc.UpdateProfile(u.ID, &ProfileUpdateRequest{Username: "amina", Email: "karim@example.ma"}, "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.UpdateProfile(u.ID, &ProfileUpdateRequest{Username: "amina", NewPassword: "Nigella2025", CurrentPassword: "bad"}, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.UpdateProfile(u.ID, &ProfileUpdateRequest{Username: "amina", NewPassword: "Nigella2025", CurrentPassword: "Argan2024x"}, "")
	require.NoError(t, err)

	_, err = svc.Authenticate(&LoginRequest{Login: "amina", Password: "Nigella2025"}, "")
	assert.NoError(t, err)

	var changes int64
	require.NoError(t, db.Model(&UserLog{}).Where("action = ?", ActionPasswordEdit).Count(&changes).Error)
	assert.EqualValues(t, 1, changes)

	_, err = svc.GetProfile(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCapabilityColumns(t *testing.T) {
	db := newUserDB(t)
	u := User{Username: "mod", PasswordHash: "x", Role: "moderator"}
	u.SetCapabilities(authz.NewCapabilitySet(authz.ManageProducts, authz.AddProduct))
	require.NoError(t, db.Create(&u).Error)

	var loaded User
	require.NoError(t, db.First(&loaded, u.ID).Error)
	assert.True(t, loaded.CanManageProducts)
	assert.True(t, loaded.CanAddProduct)
	assert.False(t, loaded.CanDeleteProduct)

	p := loaded.AuthProfile()
	assert.True(t, p.Authenticated)
	assert.True(t, authz.Can(p, authz.CreateProduct))
	assert.False(t, authz.Can(p, authz.RemoveProduct))
	assert.True(t, loaded.IsStaff())

	updates := FlagUpdates(authz.NewCapabilitySet(authz.ManageOrders))
	assert.Len(t, updates, len(authz.AllCapabilities()))
	assert.Equal(t, true, updates["can_manage_orders"])
	assert.Equal(t, false, updates["can_manage_products"])
}

func TestLogWriteFailureIsReported(t *testing.T) {
	db := newUserDB(t)
	log, hook := logtest.NewNullLogger()
	svc := NewService(db, testConfig(), log)

	svc.Log(nil, ActionLogin, "ok", "", true)
	assert.Empty(t, hook.Entries)

	require.NoError(t, db.Migrator().DropTable(&UserLog{}))
	svc.Log(nil, ActionLoginFailed, "unknown login: ghost", "10.0.0.2", false)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, ActionLoginFailed, entry.Data["action"])
	assert.NotNil(t, entry.Data[logrus.ErrorKey])
}
