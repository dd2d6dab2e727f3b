// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/domain/user"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const usersPath = "/admin/users"

// AdminUserHandler handles account management in the admin console
type AdminUserHandler struct {
	base
	adminService *user.AdminService
}

// NewAdminUserHandler creates a new admin user handler
func NewAdminUserHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		base:         newBase(cfg, renderer, logger),
		adminService: user.NewAdminService(db, cfg, logger),
	}
}

// GetUsers handles GET /admin/users
func (h *AdminUserHandler) GetUsers(c *gin.Context) {
	search := c.Query("search")
	dir, err := h.adminService.GetUsers(search)
	if err != nil {
		h.serverError(c, err, "failed to list users")
		return
	}
	h.render(c, http.StatusOK, "admin_users", gin.H{
		"staff":     dir.Staff,
		"customers": dir.Customers,
		"search":    search,
	})
}

// NewUserForm handles GET /admin/users/add
func (h *AdminUserHandler) NewUserForm(c *gin.Context) {
	h.showForm(c, http.StatusOK, nil, &user.AdminUserRequest{}, "")
}

// CreateUser handles POST /admin/users/add
func (h *AdminUserHandler) CreateUser(c *gin.Context) {
	var req user.AdminUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.showForm(c, http.StatusBadRequest, nil, &req, "invalid_input")
		return
	}
	req.Flags = formArray(c, "permissions")

	u, err := h.adminService.CreateUser(middleware.GetProfile(c), &req, c.ClientIP())
	if err != nil {
		h.mutationFailed(c, err, nil, &req, "failed to create user")
		return
	}
	h.redirect(c, fmt.Sprintf("%s/%d", usersPath, u.ID), "success", "user_added")
}

// GetUser handles GET /admin/users/:id
func (h *AdminUserHandler) GetUser(c *gin.Context) {
	u, ok := h.loadUser(c)
	if !ok {
		return
	}
	logs, err := h.adminService.GetLogs(&u.ID, 50)
	if err != nil {
		h.serverError(c, err, "failed to load user logs")
		return
	}
	h.render(c, http.StatusOK, "admin_user_detail", gin.H{
		"user":         u,
		"logs":         logs,
		"capabilities": capabilityOptions(u.Capabilities()),
	})
}

// EditUserForm handles GET /admin/users/:id/edit
func (h *AdminUserHandler) EditUserForm(c *gin.Context) {
	u, ok := h.loadUser(c)
	if !ok {
		return
	}
	h.showForm(c, http.StatusOK, u, &user.AdminUserRequest{
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Address:  u.Address,
		City:     u.City,
		Role:     u.Role,
	}, "")
}

// UpdateUser handles POST /admin/users/:id/edit
func (h *AdminUserHandler) UpdateUser(c *gin.Context) {
	u, ok := h.loadUser(c)
	if !ok {
		return
	}
	var req user.AdminUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.showForm(c, http.StatusBadRequest, u, &req, "invalid_input")
		return
	}

	if _, err := h.adminService.UpdateUser(middleware.GetProfile(c), u.ID, &req, c.ClientIP()); err != nil {
		h.mutationFailed(c, err, u, &req, "failed to update user")
		return
	}
	h.redirect(c, fmt.Sprintf("%s/%d", usersPath, u.ID), "success", "user_updated")
}

// SetPermissions handles POST /admin/users/:id/permissions
func (h *AdminUserHandler) SetPermissions(c *gin.Context) {
	h.privilegeChange(c, "permissions_saved", func(actor authz.Profile, id uint) (*user.User, error) {
		caps := user.ParseFlags(formArray(c, "permissions"))
		return h.adminService.SetPermissions(actor, id, c.PostForm("role"), caps, c.ClientIP())
	})
}

// Promote handles POST /admin/users/:id/promote
func (h *AdminUserHandler) Promote(c *gin.Context) {
	h.privilegeChange(c, "user_promoted", func(actor authz.Profile, id uint) (*user.User, error) {
		return h.adminService.PromoteToModerator(actor, id, c.ClientIP())
	})
}

// Demote handles POST /admin/users/:id/demote
func (h *AdminUserHandler) Demote(c *gin.Context) {
	h.privilegeChange(c, "user_demoted", func(actor authz.Profile, id uint) (*user.User, error) {
		return h.adminService.DemoteToCustomer(actor, id, c.ClientIP())
	})
}

// DeleteUser handles POST /admin/users/:id/delete
func (h *AdminUserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	err := h.adminService.DeleteUser(middleware.GetProfile(c), id, c.ClientIP())
	switch {
	case err == nil:
		h.redirect(c, usersPath, "success", "user_deleted")
	case errors.Is(err, user.ErrUserNotFound):
		h.notFound(c)
	case errors.Is(err, user.ErrSelfModification):
		h.redirect(c, usersPath, "danger", "self_modification")
	case errors.Is(err, user.ErrForbidden):
		h.redirect(c, usersPath, "danger", "access_denied")
	default:
		h.serverError(c, err, "failed to delete user")
	}
}

// GetLogs handles GET /admin/users/logs
func (h *AdminUserHandler) GetLogs(c *gin.Context) {
	logs, err := h.adminService.GetLogs(nil, 200)
	if err != nil {
		h.serverError(c, err, "failed to load user logs")
		return
	}
	h.render(c, http.StatusOK, "admin_user_logs", gin.H{"logs": logs})
}

func (h *AdminUserHandler) privilegeChange(c *gin.Context, key string, apply func(authz.Profile, uint) (*user.User, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	target := fmt.Sprintf("%s/%d", usersPath, id)

	u, err := apply(middleware.GetProfile(c), id)
	switch {
	case err == nil:
		h.logger.WithFields(logrus.Fields{
			"target_id": id,
			"role":      u.Role,
			"flags":     u.Capabilities().Names(),
			"user_id":   middleware.GetProfile(c).UserID,
		}).Info("user privileges changed")
		h.redirect(c, target, "success", key)
	case errors.Is(err, user.ErrUserNotFound):
		h.notFound(c)
	case errors.Is(err, user.ErrSelfModification):
		h.redirect(c, target, "danger", "self_modification")
	case errors.Is(err, user.ErrForbidden):
		h.redirect(c, target, "danger", "access_denied")
	default:
		h.serverError(c, err, "failed to change privileges")
	}
}

func (h *AdminUserHandler) mutationFailed(c *gin.Context, err error, u *user.User, req *user.AdminUserRequest, msg string) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		h.notFound(c)
	case errors.Is(err, user.ErrSelfModification):
		h.showForm(c, http.StatusForbidden, u, req, "self_modification")
	case errors.Is(err, user.ErrForbidden):
		h.showForm(c, http.StatusForbidden, u, req, "access_denied")
	default:
		if key := accountErrorKey(err); key != "" {
			h.showForm(c, http.StatusBadRequest, u, req, key)
			return
		}
		h.serverError(c, err, msg)
	}
}

func (h *AdminUserHandler) showForm(c *gin.Context, status int, u *user.User, req *user.AdminUserRequest, errKey string) {
	req.Password = ""
	data := gin.H{
		"user":         u,
		"form":         req,
		"roles":        []authz.Role{authz.RoleCustomer, authz.RoleModerator, authz.RoleAdmin},
		"capabilities": capabilityOptions(user.ParseFlags(req.Flags)),
	}
	if u != nil {
		data["capabilities"] = capabilityOptions(u.Capabilities())
	}
	if errKey != "" {
		data["error"] = message(c, errKey)
	}
	h.render(c, status, "admin_user_form", data)
}

func (h *AdminUserHandler) loadUser(c *gin.Context) (*user.User, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return nil, false
	}
	u, err := h.adminService.GetUser(id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			h.notFound(c)
			return nil, false
		}
		h.serverError(c, err, "failed to load user")
		return nil, false
	}
	return u, true
}

// capabilityOptions lists every flag with its checked state for the permission form
func capabilityOptions(granted authz.CapabilitySet) []gin.H {
	all := authz.AllCapabilities()
	out := make([]gin.H, 0, len(all))
	for _, cp := range all {
		out = append(out, gin.H{
			"name":    cp.String(),
			"coarse":  cp.IsCoarse(),
			"checked": granted.Has(cp),
		})
	}
	return out
}
