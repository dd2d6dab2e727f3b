// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"github.com/luxfakia/storefront/internal/domain/authz"
	"gorm.io/gorm"
)

// User represents an account: customer, moderator or admin
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email        string    `gorm:"index;size:150" json:"email"` // Optional, unique when set
	PasswordHash string    `gorm:"not null;size:256" json:"-"` // Don't return in JSON
	FullName     string    `gorm:"size:150" json:"full_name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`
	City         string    `gorm:"size:50" json:"city"`
	Role         string    `gorm:"size:20;not null;default:'customer'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Section flags
	CanManageOrders   bool `gorm:"default:false" json:"can_manage_orders"`
	CanManageUsers    bool `gorm:"default:false" json:"can_manage_users"`
	CanManageProducts bool `gorm:"default:false" json:"can_manage_products"`
	CanManageContent  bool `gorm:"default:false" json:"can_manage_content"`

	// CRUD flags
	CanAddProduct     bool `gorm:"default:false" json:"can_add_product"`
	CanEditProduct    bool `gorm:"default:false" json:"can_edit_product"`
	CanDeleteProduct  bool `gorm:"default:false" json:"can_delete_product"`
	CanAddCategory    bool `gorm:"default:false" json:"can_add_category"`
	CanEditCategory   bool `gorm:"default:false" json:"can_edit_category"`
	CanDeleteCategory bool `gorm:"default:false" json:"can_delete_category"`
	CanAddUser        bool `gorm:"default:false" json:"can_add_user"`
	CanEditUser       bool `gorm:"default:false" json:"can_edit_user"`
	CanDeleteUser     bool `gorm:"default:false" json:"can_delete_user"`
}

// UserLog is an audit row for login attempts and account events
type UserLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"` // Nil when the login name matched nobody
	Action    string    `gorm:"size:50;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for UserLog
func (UserLog) TableName() string {
	return "user_logs"
}

// BeforeSave hook normalizes identity fields
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = string(authz.RoleCustomer)
	}
	return nil
}

// flagFields pairs every capability with the column backing it
func (u *User) flagFields() map[authz.Capability]*bool {
	return map[authz.Capability]*bool{
		authz.ManageOrders:   &u.CanManageOrders,
		authz.ManageUsers:    &u.CanManageUsers,
		authz.ManageProducts: &u.CanManageProducts,
		authz.ManageContent:  &u.CanManageContent,
		authz.AddProduct:     &u.CanAddProduct,
		authz.EditProduct:    &u.CanEditProduct,
		authz.DeleteProduct:  &u.CanDeleteProduct,
		authz.AddCategory:    &u.CanAddCategory,
		authz.EditCategory:   &u.CanEditCategory,
		authz.DeleteCategory: &u.CanDeleteCategory,
		authz.AddUser:        &u.CanAddUser,
		authz.EditUser:       &u.CanEditUser,
		authz.DeleteUser:     &u.CanDeleteUser,
	}
}

// Capabilities collects the flag columns into a set
func (u *User) Capabilities() authz.CapabilitySet {
	var set authz.CapabilitySet
	for c, field := range u.flagFields() {
		if *field {
			set = set.With(c)
		}
	}
	return set
}

// SetCapabilities overwrites every flag column from set
func (u *User) SetCapabilities(set authz.CapabilitySet) {
	for c, field := range u.flagFields() {
		*field = set.Has(c)
	}
}

// FlagUpdates is the column map for persisting set with Updates
func FlagUpdates(set authz.CapabilitySet) map[string]interface{} {
	updates := make(map[string]interface{}, len(authz.AllCapabilities()))
	for _, c := range authz.AllCapabilities() {
		updates[c.String()] = set.Has(c)
	}
	return updates
}

// AuthProfile is the value object the authorization engine decides on
func (u *User) AuthProfile() authz.Profile {
	return authz.Profile{
		UserID:        u.ID,
		Authenticated: true,
		Role:          authz.ParseRole(u.Role),
		Caps:          u.Capabilities(),
	}
}

// IsAdmin reports whether the account has the admin role
func (u *User) IsAdmin() bool {
	return authz.ParseRole(u.Role) == authz.RoleAdmin
}

// IsStaff reports whether the account can pass the admin gate
func (u *User) IsStaff() bool {
	return authz.Gate(u.AuthProfile(), "").Allowed()
}

// GetDisplayName returns display name (full name or username)
func (u *User) GetDisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return u.Username
}
