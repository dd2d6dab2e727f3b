// internal/interfaces/http/handlers/content.go
package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/content"
	"github.com/luxfakia/storefront/internal/domain/upload"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const contentPath = "/admin/content"

// ContentHandler handles homepage sections and site settings
type ContentHandler struct {
	base
	contentService *content.Service
	uploadService  *upload.Service
}

// NewContentHandler creates a new content handler
func NewContentHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		base:           newBase(cfg, renderer, logger),
		contentService: content.NewService(db, cfg),
		uploadService:  upload.NewService(db, cfg),
	}
}

// GetContent handles GET /admin/content
func (h *ContentHandler) GetContent(c *gin.Context) {
	h.showContent(c, http.StatusOK, "")
}

// CreateSection handles POST /admin/content/sections
func (h *ContentHandler) CreateSection(c *gin.Context) {
	req, ok := h.bindSection(c)
	if !ok {
		return
	}
	if _, err := h.contentService.CreateSection(req); err != nil {
		h.sectionFailed(c, err)
		return
	}
	h.redirect(c, contentPath, "success", "content_saved")
}

// EditSectionForm handles GET /admin/content/sections/:id/edit
func (h *ContentHandler) EditSectionForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	section, err := h.contentService.GetSection(id)
	if err != nil {
		h.sectionFailed(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_section_form", gin.H{"section": section})
}

// UpdateSection handles POST /admin/content/sections/:id/edit
func (h *ContentHandler) UpdateSection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	req, ok := h.bindSection(c)
	if !ok {
		return
	}
	if _, err := h.contentService.UpdateSection(id, req); err != nil {
		h.sectionFailed(c, err)
		return
	}
	h.redirect(c, contentPath, "success", "content_saved")
}

// DeleteSection handles POST /admin/content/sections/:id/delete
func (h *ContentHandler) DeleteSection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	if err := h.contentService.DeleteSection(id); err != nil {
		h.sectionFailed(c, err)
		return
	}
	h.redirect(c, contentPath, "success", "section_deleted")
}

// UpdateSettings handles POST /admin/content/settings. Only known keys are read from the form.
func (h *ContentHandler) UpdateSettings(c *gin.Context) {
	values := make(map[string]string, len(content.DefaultSettings))
	for key := range content.DefaultSettings {
		if v, ok := c.GetPostForm(key); ok {
			values[key] = v
		}
	}
	if err := h.contentService.UpdateSettings(values); err != nil {
		h.serverError(c, err, "failed to save settings")
		return
	}
	h.redirect(c, contentPath, "success", "content_saved")
}

func (h *ContentHandler) bindSection(c *gin.Context) (*content.SectionInput, bool) {
	var req content.SectionInput
	if err := c.ShouldBind(&req); err != nil {
		h.redirect(c, contentPath, "warning", "invalid_input")
		return nil, false
	}
	imageURL, err := storeFormImage(c, h.uploadService, "image")
	if err != nil {
		if isUploadRejection(err) {
			h.redirect(c, contentPath, "warning", "invalid_input")
			return nil, false
		}
		h.serverError(c, err, "failed to store section image")
		return nil, false
	}
	req.ImageURL = imageURL
	return &req, true
}

func (h *ContentHandler) sectionFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrSectionNotFound):
		h.notFound(c)
	case errors.Is(err, content.ErrDuplicateSection), errors.Is(err, content.ErrInvalidSection):
		h.redirect(c, contentPath, "warning", "invalid_input")
	default:
		h.serverError(c, err, "failed to save section")
	}
}

func (h *ContentHandler) showContent(c *gin.Context, status int, errKey string) {
	sections, err := h.contentService.ListSections(false)
	if err != nil {
		h.serverError(c, err, "failed to list sections")
		return
	}
	settings, err := h.contentService.GetSettings()
	if err != nil {
		h.serverError(c, err, "failed to load settings")
		return
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := gin.H{
		"sections":     sections,
		"settings":     settings,
		"setting_keys": keys,
	}
	if errKey != "" {
		data["error"] = message(c, errKey)
	}
	h.render(c, status, "admin_content", data)
}
