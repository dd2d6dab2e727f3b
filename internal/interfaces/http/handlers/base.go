// internal/interfaces/http/handlers/base.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/luxfakia/storefront/internal/pkg/i18n"
	"github.com/sirupsen/logrus"
)

// base carries what every handler needs to answer a request
type base struct {
	config   *config.Config
	renderer Renderer
	logger   *logrus.Logger
}

func newBase(cfg *config.Config, renderer Renderer, logger *logrus.Logger) base {
	if renderer == nil {
		renderer = JSONRenderer{}
	}
	return base{config: cfg, renderer: renderer, logger: logger}
}

// render adds the layout fields to data and hands it to the renderer.
// Flashes are consumed here.
func (b *base) render(c *gin.Context, status int, view string, data gin.H) {
	lang := middleware.GetLang(c)
	page := gin.H{
		"lang":       lang,
		"dir":        i18n.Dir(lang),
		"currency":   i18n.T(lang, "currency"),
		"cart_count": 0,
		"path":       c.Request.URL.Path,
	}

	if s := middleware.GetSession(c); s != nil {
		if items, err := s.LoadCart(c.Request.Context()); err == nil {
			page["cart_count"] = len(items)
		}
		flashes, err := s.PopFlashes(c.Request.Context())
		if err != nil {
			b.logger.WithError(err).Warn("failed to pop flashes")
		}
		page["flashes"] = flashes
	}

	if u, ok := middleware.GetCurrentUser(c); ok {
		page["current_user"] = gin.H{
			"id":           u.ID,
			"username":     u.Username,
			"display_name": u.GetDisplayName(),
			"role":         u.Role,
			"is_staff":     u.IsStaff(),
		}
		if u.IsStaff() {
			page["can"] = permissionMap(middleware.GetProfile(c))
		}
	}

	for k, v := range data {
		page[k] = v
	}
	b.renderer.Render(c, status, view, page)
}

func permissionMap(p authz.Profile) map[string]bool {
	actions := authz.Actions()
	can := make(map[string]bool, len(actions))
	for _, a := range actions {
		can[string(a)] = authz.Can(p, a)
	}
	return can
}

// redirect queues a translated flash and redirects with 303, or answers XHR
// callers with JSON
func (b *base) redirect(c *gin.Context, target, category, key string, args ...interface{}) {
	if middleware.IsXHR(c) {
		status := "success"
		if category == "danger" || category == "warning" {
			status = "error"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   status,
			"message":  message(c, key, args...),
			"redirect": target,
		})
		return
	}
	if key != "" {
		middleware.Flash(c, category, key, args...)
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (b *base) notFound(c *gin.Context) {
	if middleware.IsXHR(c) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": message(c, "not_found")})
		return
	}
	b.render(c, http.StatusNotFound, "404", gin.H{"message": message(c, "not_found")})
}

// serverError logs err and answers with the generic error page
func (b *base) serverError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	b.logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.KeyRequestID),
		"path":       c.Request.URL.Path,
	}).Error(msg)

	if middleware.IsXHR(c) {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": message(c, "server_error")})
		return
	}
	b.render(c, http.StatusInternalServerError, "500", gin.H{"message": message(c, "server_error")})
}

func message(c *gin.Context, key string, args ...interface{}) string {
	lang := middleware.GetLang(c)
	if len(args) > 0 {
		return i18n.Tf(lang, key, args...)
	}
	return i18n.T(lang, key)
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseQuantity reads a quantity field, accepting a decimal comma.
// An empty field yields fallback.
func parseQuantity(raw string, fallback float64) (float64, bool) {
	raw = strings.TrimSpace(strings.Replace(raw, ",", ".", 1))
	if raw == "" {
		return fallback, true
	}
	q, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}

// safeNext keeps only same-site relative redirect targets
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

// backOr is the Referer path when it points at this site, else fallback
func backOr(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	if i := strings.Index(ref, c.Request.Host); c.Request.Host != "" && i >= 0 {
		ref = ref[i+len(c.Request.Host):]
	}
	return safeNext(ref, fallback)
}

func currentUserID(c *gin.Context) *uint {
	if id, ok := middleware.GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}
