// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/upload"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UploadHandler serves stored images and the admin media library
type UploadHandler struct {
	base
	uploadService *upload.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		base:          newBase(cfg, renderer, logger),
		uploadService: upload.NewService(db, cfg),
	}
}

// ServeImage handles GET /images/:id
func (h *UploadHandler) ServeImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	img, err := h.uploadService.GetImage(id)
	if err != nil {
		if errors.Is(err, upload.ErrImageNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.serverError(c, err, "failed to load image")
		return
	}

	etag := fmt.Sprintf(`"img-%d-%d"`, img.ID, img.Size)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("ETag", etag)
	c.Data(http.StatusOK, img.MimeType, img.Data)
}

// ListImages handles GET /admin/uploads
func (h *UploadHandler) ListImages(c *gin.Context) {
	images, err := h.uploadService.ListImages(100)
	if err != nil {
		h.serverError(c, err, "failed to list images")
		return
	}
	h.render(c, http.StatusOK, "admin_uploads", gin.H{"images": images})
}

// UploadImage handles POST /admin/uploads. XHR callers get the image URL back.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		h.redirect(c, "/admin/uploads", "warning", "invalid_input")
		return
	}

	img, err := h.uploadService.UploadImage(header, currentUserID(c))
	if err != nil {
		if isUploadRejection(err) {
			h.redirect(c, "/admin/uploads", "warning", "invalid_input")
			return
		}
		h.serverError(c, err, "failed to store image")
		return
	}

	if isXHRUpload(c) {
		c.JSON(http.StatusCreated, gin.H{
			"status": "success",
			"id":     img.ID,
			"url":    img.URL(),
			"width":  img.Width,
			"height": img.Height,
		})
		return
	}
	h.redirect(c, "/admin/uploads", "success", "image_uploaded")
}

// DeleteImage handles POST /admin/uploads/:id/delete
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	if err := h.uploadService.DeleteImage(id); err != nil {
		if errors.Is(err, upload.ErrImageNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err, "failed to delete image")
		return
	}
	h.redirect(c, "/admin/uploads", "success", "image_deleted")
}

// storeFormImage stores the optional file in field and returns its URL.
// Without a file the image_url text field is used as is.
func storeFormImage(c *gin.Context, svc *upload.Service, field string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return strings.TrimSpace(c.PostForm("image_url")), nil
		}
		return "", fmt.Errorf("%w: %v", upload.ErrInvalidFile, err)
	}
	img, err := svc.UploadImage(header, currentUserID(c))
	if err != nil {
		return "", err
	}
	return img.URL(), nil
}

func isUploadRejection(err error) bool {
	return errors.Is(err, upload.ErrInvalidFile) || errors.Is(err, upload.ErrFileTooLarge) || errors.Is(err, upload.ErrEmptyFile)
}

func isXHRUpload(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest" || strings.Contains(c.GetHeader("Accept"), "application/json")
}
