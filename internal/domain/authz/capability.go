// internal/domain/authz/capability.go
package authz

import "strings"

// Role is the coarse account type
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleCustomer  Role = "customer"
)

// ParseRole maps a stored role string to a Role, treating anything unknown as customer
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleModerator:
		return RoleModerator
	default:
		return RoleCustomer
	}
}

// Capability is a single permission flag
type Capability uint16

// Coarse flags gate whole admin sections
const (
	ManageOrders Capability = 1 << iota
	ManageUsers
	ManageProducts
	ManageContent

	// Fine flags gate individual mutations
	AddProduct
	EditProduct
	DeleteProduct
	AddCategory
	EditCategory
	DeleteCategory
	AddUser
	EditUser
	DeleteUser
)

// CoarseCapabilities lists the four section flags in landing order
var CoarseCapabilities = []Capability{ManageOrders, ManageProducts, ManageUsers, ManageContent}

// FineCapabilities lists the nine CRUD flags
var FineCapabilities = []Capability{
	AddProduct, EditProduct, DeleteProduct,
	AddCategory, EditCategory, DeleteCategory,
	AddUser, EditUser, DeleteUser,
}

var capabilityNames = map[Capability]string{
	ManageOrders:   "can_manage_orders",
	ManageUsers:    "can_manage_users",
	ManageProducts: "can_manage_products",
	ManageContent:  "can_manage_content",
	AddProduct:     "can_add_product",
	EditProduct:    "can_edit_product",
	DeleteProduct:  "can_delete_product",
	AddCategory:    "can_add_category",
	EditCategory:   "can_edit_category",
	DeleteCategory: "can_delete_category",
	AddUser:        "can_add_user",
	EditUser:       "can_edit_user",
	DeleteUser:     "can_delete_user",
}

// String returns the flag's column name
func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsCoarse reports whether c is one of the four section flags
func (c Capability) IsCoarse() bool {
	return c&(ManageOrders|ManageUsers|ManageProducts|ManageContent) != 0
}

// CapabilityByName resolves a column name such as "can_delete_category"
func CapabilityByName(name string) (Capability, bool) {
	for c, n := range capabilityNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// AllCapabilities returns every flag, coarse first
func AllCapabilities() []Capability {
	all := make([]Capability, 0, len(capabilityNames))
	all = append(all, ManageOrders, ManageUsers, ManageProducts, ManageContent)
	return append(all, FineCapabilities...)
}

// CapabilitySet is a bitmask of granted flags
type CapabilitySet uint16

// NewCapabilitySet builds a set from individual flags
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= CapabilitySet(c)
	}
	return s
}

// Has reports whether c is granted
func (s CapabilitySet) Has(c Capability) bool {
	return c != 0 && s&CapabilitySet(c) == CapabilitySet(c)
}

// With returns a copy of s with c granted
func (s CapabilitySet) With(c Capability) CapabilitySet {
	return s | CapabilitySet(c)
}

// HasAnyCoarse reports whether at least one section flag is granted
func (s CapabilitySet) HasAnyCoarse() bool {
	for _, c := range CoarseCapabilities {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// Names lists granted flags by column name
func (s CapabilitySet) Names() []string {
	var names []string
	for _, c := range AllCapabilities() {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	return names
}
