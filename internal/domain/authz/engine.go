// internal/domain/authz/engine.go
package authz

import "net/url"

// Profile is everything the engine needs to know about an actor
type Profile struct {
	UserID        uint
	Authenticated bool
	Role          Role
	Caps          CapabilitySet
}

// Anonymous is the profile of a visitor without a session login
var Anonymous = Profile{Role: RoleCustomer}

// IsAdmin reports whether the actor bypasses every flag check
func (p Profile) IsAdmin() bool {
	return p.Authenticated && p.Role == RoleAdmin
}

// Action names a protected admin operation
type Action string

const (
	ViewDashboard Action = "dashboard.view"

	ViewOrders        Action = "orders.view"
	UpdateOrderStatus Action = "orders.status"
	DownloadInvoice   Action = "orders.invoice"

	ViewProducts      Action = "products.view"
	ExportProducts    Action = "products.export"
	CreateProduct     Action = "products.create"
	UpdateProduct     Action = "products.update"
	ToggleProduct     Action = "products.toggle"
	RemoveProduct     Action = "products.delete"
	ViewCategories    Action = "categories.view"
	CreateCategory    Action = "categories.create"
	UpdateCategory    Action = "categories.update"
	RemoveCategory    Action = "categories.delete"
	ViewUsers         Action = "users.view"
	ViewUserLogs      Action = "users.logs"
	CreateUser        Action = "users.create"
	UpdateUser        Action = "users.update"
	RemoveUser        Action = "users.delete"
	ManagePermissions Action = "users.permissions"

	ManageHomeContent Action = "content.manage"
	UploadImages      Action = "content.upload"
)

// Tier says which layer of the model an action is checked against
type Tier int

const (
	TierCoarse Tier = iota
	TierFine
	// TierStaff actions only need the admin-surface gate
	TierStaff
	// TierAdminOnly actions ignore flags and require the admin role
	TierAdminOnly
)

// Requirement is the capability an action needs
type Requirement struct {
	Capability Capability
	Tier       Tier
}

var requirements = map[Action]Requirement{
	ViewDashboard: {Tier: TierStaff},

	ViewOrders:        {ManageOrders, TierCoarse},
	UpdateOrderStatus: {ManageOrders, TierCoarse},
	DownloadInvoice:   {ManageOrders, TierCoarse},

	ViewProducts:   {ManageProducts, TierCoarse},
	ExportProducts: {ManageProducts, TierCoarse},
	CreateProduct:  {AddProduct, TierFine},
	UpdateProduct:  {EditProduct, TierFine},
	ToggleProduct:  {EditProduct, TierFine},
	RemoveProduct:  {DeleteProduct, TierFine},

	ViewCategories: {ManageProducts, TierCoarse},
	CreateCategory: {AddCategory, TierFine},
	UpdateCategory: {EditCategory, TierFine},
	RemoveCategory: {DeleteCategory, TierFine},

	ViewUsers:         {ManageUsers, TierCoarse},
	ViewUserLogs:      {ManageUsers, TierCoarse},
	CreateUser:        {AddUser, TierFine},
	UpdateUser:        {EditUser, TierFine},
	RemoveUser:        {DeleteUser, TierFine},
	ManagePermissions: {Tier: TierAdminOnly},

	ManageHomeContent: {ManageContent, TierCoarse},
	UploadImages:      {ManageContent, TierCoarse},
}

// RequirementFor returns the mapped requirement of an action
func RequirementFor(a Action) (Requirement, bool) {
	r, ok := requirements[a]
	return r, ok
}

// Actions lists every mapped action
func Actions() []Action {
	actions := make([]Action, 0, len(requirements))
	for a := range requirements {
		actions = append(actions, a)
	}
	return actions
}

// Outcome of an authorization decision
type Outcome int

const (
	Allow Outcome = iota
	// DenyLogin sends the actor to the login page
	DenyLogin
	// DenyHome sends the actor back to the storefront
	DenyHome
	// DenyForbidden keeps the actor in the admin surface with a notice
	DenyForbidden
)

// Decision is the result of an authorization check. Denials are normal
// control flow and always carry a redirect target.
type Decision struct {
	Outcome  Outcome
	Redirect string
	Reason   string
}

// Allowed reports whether the decision grants access
func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

const (
	LoginPath = "/login"
	HomePath  = "/"
	AdminPath = "/admin/"
)

// Gate is the check in front of the whole admin surface. next is the path
// the actor wanted, carried to the login page.
func Gate(p Profile, next string) Decision {
	if !p.Authenticated {
		target := LoginPath
		if next != "" {
			target += "?next=" + url.QueryEscape(next)
		}
		return Decision{Outcome: DenyLogin, Redirect: target, Reason: "login_required"}
	}
	if p.Role == RoleCustomer && !p.Caps.HasAnyCoarse() {
		return Decision{Outcome: DenyHome, Redirect: HomePath, Reason: "staff_only"}
	}
	return Decision{Outcome: Allow}
}

// Decide answers whether p may perform a. It applies the gate first, then the
// action's mapped requirement. Unmapped actions are denied.
func Decide(p Profile, a Action) Decision {
	if d := Gate(p, ""); !d.Allowed() {
		return d
	}
	if p.IsAdmin() {
		return Decision{Outcome: Allow}
	}

	req, ok := requirements[a]
	if !ok {
		return forbidden("unmapped_action")
	}

	switch req.Tier {
	case TierStaff:
		return Decision{Outcome: Allow}
	case TierAdminOnly:
		return forbidden("admin_only")
	default:
		if p.Caps.Has(req.Capability) {
			return Decision{Outcome: Allow}
		}
		return forbidden(req.Capability.String())
	}
}

// Can is Decide reduced to a boolean, for view models
func Can(p Profile, a Action) bool {
	return Decide(p, a).Allowed()
}

func forbidden(reason string) Decision {
	return Decision{Outcome: DenyForbidden, Redirect: AdminPath, Reason: reason}
}

// landingOrder is the section each staff member lands on, first allowed wins
var landingOrder = []struct {
	action Action
	path   string
}{
	{ViewOrders, "/admin/orders"},
	{ViewProducts, "/admin/products"},
	{ViewCategories, "/admin/categories"},
	{ViewUsers, "/admin/users"},
	{ManageHomeContent, "/admin/content"},
}

// LandingSection returns the first admin section p can open, or "" when none
func LandingSection(p Profile) string {
	for _, l := range landingOrder {
		if Can(p, l.action) {
			return l.path
		}
	}
	return ""
}
