// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/analytics"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AnalyticsHandler serves the admin dashboard
type AnalyticsHandler struct {
	base
	analyticsService *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		base:             newBase(cfg, renderer, logger),
		analyticsService: analytics.NewService(db, cfg),
	}
}

// Dashboard handles GET /admin/. Admins get the statistics; other staff
// land on the first section they may open.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	profile := middleware.GetProfile(c)
	if !profile.IsAdmin() {
		if landing := authz.LandingSection(profile); landing != "" {
			c.Redirect(http.StatusFound, landing)
			return
		}
		h.render(c, http.StatusOK, "admin_dashboard", gin.H{"stats": nil})
		return
	}

	stats, err := h.analyticsService.GetDashboardStats()
	if err != nil {
		h.serverError(c, err, "failed to load dashboard statistics")
		return
	}
	h.render(c, http.StatusOK, "admin_dashboard", gin.H{"stats": stats})
}
