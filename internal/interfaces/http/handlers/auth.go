// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/domain/user"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/luxfakia/storefront/internal/pkg/auth"
	"github.com/luxfakia/storefront/internal/pkg/i18n"
	"github.com/luxfakia/storefront/internal/pkg/session"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthHandler handles customer accounts and the session language
type AuthHandler struct {
	base
	userService  *user.Service
	orderService *order.Service
	sessions     *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions *session.Manager, renderer Renderer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		base:         newBase(cfg, renderer, logger),
		userService:  user.NewService(db, cfg, logger),
		orderService: order.NewService(db, cfg),
		sessions:     sessions,
	}
}

// UserService exposes the account lookup used by the session middleware
func (h *AuthHandler) UserService() *user.Service {
	return h.userService
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "login", gin.H{"next": safeNext(c.Query("next"), "")})
}

// Login handles POST /login. The login field takes a username or an email.
func (h *AuthHandler) Login(c *gin.Context) {
	next := safeNext(c.PostForm("next"), safeNext(c.Query("next"), ""))

	var req user.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusBadRequest, "login", gin.H{"next": next, "error": message(c, "login_invalid")})
		return
	}

	u, err := h.userService.Authenticate(&req, c.ClientIP())
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			h.render(c, http.StatusUnauthorized, "login", gin.H{
				"next":     next,
				"username": req.Login,
				"error":    message(c, "login_invalid"),
			})
			return
		}
		h.serverError(c, err, "failed to authenticate")
		return
	}

	if err := h.startSession(c, u.ID); err != nil {
		h.serverError(c, err, "failed to start session")
		return
	}

	target := next
	if target == "" {
		target = "/"
		if u.IsStaff() {
			target = authz.AdminPath
		}
	}
	h.redirect(c, target, "success", "login_success")
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "register", gin.H{})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.registerError(c, &req, "invalid_input")
		return
	}

	u, err := h.userService.Register(&req, c.ClientIP())
	if err != nil {
		if key := accountErrorKey(err); key != "" {
			h.registerError(c, &req, key)
			return
		}
		h.serverError(c, err, "failed to register user")
		return
	}

	if err := h.startSession(c, u.ID); err != nil {
		h.serverError(c, err, "failed to start session")
		return
	}
	h.redirect(c, "/", "success", "register_success")
}

// Logout handles GET /logout. The cart is dropped, the language is kept.
func (h *AuthHandler) Logout(c *gin.Context) {
	if uid := currentUserID(c); uid != nil {
		h.userService.Log(uid, user.ActionLogout, "logout", c.ClientIP(), true)
	}
	if err := h.sessions.Destroy(c.Request.Context(), c.Writer, middleware.GetSession(c)); err != nil {
		h.serverError(c, err, "failed to end session")
		return
	}
	h.redirect(c, "/", "info", "logged_out")
}

// Profile handles GET /profile
func (h *AuthHandler) Profile(c *gin.Context) {
	u, _ := middleware.GetCurrentUser(c)
	h.render(c, http.StatusOK, "profile", gin.H{"user": u})
}

// UpdateProfile handles POST /profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	u, _ := middleware.GetCurrentUser(c)

	var req user.ProfileUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusBadRequest, "profile", gin.H{"user": u, "error": message(c, "invalid_input")})
		return
	}

	updated, err := h.userService.UpdateProfile(u.ID, &req, c.ClientIP())
	if err != nil {
		key := accountErrorKey(err)
		if errors.Is(err, user.ErrInvalidCredentials) {
			key = "password_incorrect"
		}
		if key != "" {
			h.render(c, http.StatusBadRequest, "profile", gin.H{"user": u, "error": message(c, key)})
			return
		}
		h.serverError(c, err, "failed to update profile")
		return
	}

	c.Set(middleware.KeyUser, updated)
	h.redirect(c, "/profile", "success", "profile_updated")
}

// ForgotPasswordForm handles GET /forgot_password
func (h *AuthHandler) ForgotPasswordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "forgot_password", gin.H{})
}

// ForgotPassword handles POST /forgot_password. No mail is sent; the answer
// is the same whether or not the address is known.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if email == "" {
		h.render(c, http.StatusBadRequest, "forgot_password", gin.H{"error": message(c, "invalid_input")})
		return
	}
	h.logger.WithField("client_ip", c.ClientIP()).Info("password reset requested")
	h.redirect(c, "/login", "info", "reset_sent", email)
}

// MyOrders handles GET /my-orders
func (h *AuthHandler) MyOrders(c *gin.Context) {
	uid, _ := middleware.GetUserIDFromContext(c)
	orders, err := h.orderService.GetUserOrders(uid)
	if err != nil {
		h.serverError(c, err, "failed to load user orders")
		return
	}
	h.render(c, http.StatusOK, "my_orders", gin.H{"orders": orders})
}

// SetLang handles GET /set_lang/:code. Unknown codes are ignored.
func (h *AuthHandler) SetLang(c *gin.Context) {
	code := strings.ToLower(c.Param("code"))
	if i18n.Supported(code) {
		if err := middleware.GetSession(c).SetLang(c.Request.Context(), code); err != nil {
			h.serverError(c, err, "failed to store language")
			return
		}
	}
	c.Redirect(http.StatusSeeOther, backOr(c, "/"))
}

// startSession rotates the session id and records the login on it
func (h *AuthHandler) startSession(c *gin.Context, userID uint) error {
	s := middleware.GetSession(c)
	if err := h.sessions.Renew(c.Request.Context(), c.Writer, s); err != nil {
		return err
	}
	return s.SetUser(c.Request.Context(), userID)
}

func (h *AuthHandler) registerError(c *gin.Context, req *user.RegisterRequest, key string) {
	h.render(c, http.StatusBadRequest, "register", gin.H{
		"username":  req.Username,
		"email":     req.Email,
		"full_name": req.FullName,
		"phone":     req.Phone,
		"error":     message(c, key),
	})
}

// accountErrorKey maps account validation errors to message keys, "" for others
func accountErrorKey(err error) string {
	switch {
	case errors.Is(err, user.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, user.ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, user.ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, auth.ErrWeakPassword):
		return "password_weak"
	case errors.Is(err, user.ErrInvalidUser):
		return "invalid_input"
	default:
		return ""
	}
}
