// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/pkg/auth"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidUser        = errors.New("invalid user data")
)

// Log actions written to user_logs
const (
	ActionLogin        = "login"
	ActionLoginFailed  = "login_failed"
	ActionRegister     = "register"
	ActionLogout       = "logout"
	ActionProfileEdit  = "profile_update"
	ActionAdminChange  = "admin_update"
	ActionPasswordEdit = "password_change"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	logger          *logrus.Logger
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		logger:          logger,
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username        string `form:"username" binding:"required"`
	Email           string `form:"email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
	FullName        string `form:"full_name"`
	Phone           string `form:"phone"`
}

// LoginRequest represents user login data; Login is a username or an email
type LoginRequest struct {
	Login    string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ProfileUpdateRequest represents the editable part of a customer profile
type ProfileUpdateRequest struct {
	Username        string `form:"username" binding:"required"`
	Email           string `form:"email"`
	FullName        string `form:"full_name"`
	Phone           string `form:"phone"`
	Address         string `form:"address"`
	City            string `form:"city"`
	CurrentPassword string `form:"current_password"`
	NewPassword     string `form:"new_password"`
}

// Register creates a new customer account
func (s *Service) Register(req *RegisterRequest, ip string) (*User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidUser)
	}

	if err := ensureUnique(s.db, username, req.Email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Username:     username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         string(authz.RoleCustomer),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Log(&user.ID, ActionRegister, "account created", ip, true)
	return &user, nil
}

// Authenticate checks credentials by username or email. Every attempt is logged.
func (s *Service) Authenticate(req *LoginRequest, ip string) (*User, error) {
	login := strings.TrimSpace(req.Login)

	var user User
	err := s.db.Where("username = ? OR (email <> '' AND email = ?)", login, strings.ToLower(login)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.Log(nil, ActionLoginFailed, "unknown login: "+login, ip, false)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		s.Log(&user.ID, ActionLoginFailed, "wrong password", ip, false)
		return nil, ErrInvalidCredentials
	}

	s.Log(&user.ID, ActionLogin, "role="+user.Role, ip, true)
	return &user, nil
}

// GetProfile retrieves a user by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the caller's own profile. Changing the password
// requires the current one.
func (s *Service) UpdateProfile(userID uint, req *ProfileUpdateRequest, ip string) (*User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	if err := ensureUnique(s.db, username, req.Email, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"username":  username,
		"email":     strings.ToLower(strings.TrimSpace(req.Email)),
		"full_name": strings.TrimSpace(req.FullName),
		"phone":     strings.TrimSpace(req.Phone),
		"address":   strings.TrimSpace(req.Address),
		"city":      strings.TrimSpace(req.City),
	}

	if req.NewPassword != "" {
		if err := s.passwordManager.VerifyPassword(req.CurrentPassword, user.PasswordHash); err != nil {
			return nil, ErrInvalidCredentials
		}
		hashed, err := s.passwordManager.HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hashed
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.Log(&userID, ActionProfileEdit, "profile updated", ip, true)
	if _, ok := updates["password_hash"]; ok {
		s.Log(&userID, ActionPasswordEdit, "password changed", ip, true)
	}
	return s.GetProfile(userID)
}

// Log writes an audit row. A failed write is logged and never blocks the caller.
func (s *Service) Log(userID *uint, action, details, ip string, success bool) {
	writeLog(s.db, s.logger, userID, action, details, ip, success)
}

func writeLog(db *gorm.DB, log *logrus.Logger, userID *uint, action, details, ip string, success bool) {
	entry := UserLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ip,
		Success:   success,
	}
	if err := db.Create(&entry).Error; err != nil && log != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"action":  action,
			"details": details,
		}).Warn("Failed to write user log")
	}
}

// ensureUnique checks username and (when set) email against every other account
func ensureUnique(db *gorm.DB, username, email string, exceptID uint) error {
	var count int64
	q := db.Model(&User{}).Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username)))
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	q = db.Model(&User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}
