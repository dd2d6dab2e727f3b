// internal/domain/user/admin_service.go
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
	ErrForbidden        = errors.New("not allowed")
	ErrSelfModification = errors.New("cannot change own role, permissions or account")
)

// AdminService handles admin user management operations
type AdminService struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	logger          *logrus.Logger
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *AdminService {
	return &AdminService{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		logger:          logger,
	}
}

// AdminUserRequest represents user data entered in the admin console.
// Role and flags are only honoured when the actor is an admin.
type AdminUserRequest struct {
	Username string   `form:"username" binding:"required"`
	Email    string   `form:"email"`
	Password string   `form:"password"`
	FullName string   `form:"full_name"`
	Phone    string   `form:"phone"`
	Address  string   `form:"address"`
	City     string   `form:"city"`
	Role     string   `form:"role"`
	Flags    []string `form:"permissions"`
}

// UserDirectory splits accounts the way the console lists them
type UserDirectory struct {
	Staff     []User `json:"staff"`
	Customers []User `json:"customers"`
}

// ParseFlags turns submitted flag names into a set, ignoring unknown names
func ParseFlags(names []string) authz.CapabilitySet {
	var set authz.CapabilitySet
	for _, n := range names {
		if c, ok := authz.CapabilityByName(strings.TrimSpace(n)); ok {
			set = set.With(c)
		}
	}
	return set
}

// GetUsers lists every account, staff first, with an optional username/email search
func (s *AdminService) GetUsers(search string) (*UserDirectory, error) {
	var users []User
	query := s.db.Model(&User{}).Order("username ASC")
	if q := strings.TrimSpace(search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", like, like, like)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}

	dir := &UserDirectory{Staff: []User{}, Customers: []User{}}
	for _, u := range users {
		if u.IsStaff() {
			dir.Staff = append(dir.Staff, u)
		} else {
			dir.Customers = append(dir.Customers, u)
		}
	}
	return dir, nil
}

// GetUser retrieves one account
func (s *AdminService) GetUser(userID uint) (*User, error) {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &user, nil
}

// CreateUser creates an account from the console
func (s *AdminService) CreateUser(actor authz.Profile, req *AdminUserRequest, ip string) (*User, error) {
	if d := authz.Decide(actor, authz.CreateUser); !d.Allowed() {
		return nil, ErrForbidden
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	if err := ensureUnique(s.db, username, req.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Username:     username,
		Email:        req.Email,
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		Role:         string(authz.RoleCustomer),
	}
	if actor.IsAdmin() {
		user.Role = string(authz.ParseRole(req.Role))
		user.SetCapabilities(ParseFlags(req.Flags))
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit(actor, user.ID, "created user "+user.Username, ip)
	return &user, nil
}

// UpdateUser edits contact details and optionally resets the password
func (s *AdminService) UpdateUser(actor authz.Profile, userID uint, req *AdminUserRequest, ip string) (*User, error) {
	user, err := s.check(actor, userID, authz.MutateDetails)
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
	if req.Password != "" {
		hashed, err := s.passwordManager.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hashed
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit(actor, userID, "updated details", ip)
	return s.GetUser(userID)
}

// SetPermissions replaces the role and every flag of another account
func (s *AdminService) SetPermissions(actor authz.Profile, userID uint, role string, caps authz.CapabilitySet, ip string) (*User, error) {
	if _, err := s.check(actor, userID, authz.MutatePermissions); err != nil {
		return nil, err
	}
	return s.applyPrivileges(actor, userID, authz.ParseRole(role), caps, "set permissions", ip)
}

// PromoteToModerator gives a customer the moderator role with order management
func (s *AdminService) PromoteToModerator(actor authz.Profile, userID uint, ip string) (*User, error) {
	user, err := s.check(actor, userID, authz.MutateRole)
	if err != nil {
		return nil, err
	}
	caps := user.Capabilities().With(authz.ManageOrders)
	return s.applyPrivileges(actor, userID, authz.RoleModerator, caps, "promoted to moderator", ip)
}

// DemoteToCustomer strips the staff role and every flag
func (s *AdminService) DemoteToCustomer(actor authz.Profile, userID uint, ip string) (*User, error) {
	if _, err := s.check(actor, userID, authz.MutateRole); err != nil {
		return nil, err
	}
	return s.applyPrivileges(actor, userID, authz.RoleCustomer, 0, "demoted to customer", ip)
}

// DeleteUser removes another account. Its orders stay, detached from the account.
func (s *AdminService) DeleteUser(actor authz.Profile, userID uint, ip string) error {
	user, err := s.check(actor, userID, authz.MutateDelete)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("orders").Where("user_id = ?", userID).Update("user_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach orders: %w", err)
		}
		if err := tx.Delete(&User{}, userID).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit(actor, userID, "deleted user "+user.Username, ip)
	return nil
}

// GetLogs returns the newest audit rows, optionally for one user
func (s *AdminService) GetLogs(userID *uint, limit int) ([]UserLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []UserLog
	query := s.db.Order("created_at DESC, id DESC").Limit(limit)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve user logs: %w", err)
	}
	return logs, nil
}

func (s *AdminService) applyPrivileges(actor authz.Profile, userID uint, role authz.Role, caps authz.CapabilitySet, note, ip string) (*User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	updates := FlagUpdates(caps)
	updates["role"] = string(role)
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update permissions: %w", err)
	}

	s.audit(actor, userID, fmt.Sprintf("%s: role=%s flags=%s", note, role, strings.Join(caps.Names(), ",")), ip)
	return s.GetUser(userID)
}

// check loads the target account and applies the mutation rules to it
func (s *AdminService) check(actor authz.Profile, targetID uint, m authz.Mutation) (*User, error) {
	user, err := s.GetUser(targetID)
	if err != nil {
		return nil, err
	}
	d := authz.CheckUserMutation(actor, authz.Target{ID: user.ID, Role: authz.ParseRole(user.Role)}, m)
	if d.Allowed() {
		return user, nil
	}
	if strings.HasPrefix(d.Reason, "self_") {
		return nil, ErrSelfModification
	}
	return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
}

func (s *AdminService) audit(actor authz.Profile, targetID uint, details, ip string) {
	actorID := actor.UserID
	writeLog(s.db, s.logger, &actorID, ActionAdminChange, fmt.Sprintf("user #%d: %s", targetID, details), ip, true)
}
