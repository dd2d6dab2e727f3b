// internal/interfaces/http/handlers/category.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/luxfakia/storefront/internal/domain/upload"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const categoriesPath = "/admin/categories"

// CategoryHandler handles category management in the admin console
type CategoryHandler struct {
	base
	categoryService *product.CategoryService
	uploadService   *upload.Service
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		base:            newBase(cfg, renderer, logger),
		categoryService: product.NewCategoryService(db, cfg),
		uploadService:   upload.NewService(db, cfg),
	}
}

// ListCategories handles GET /admin/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListWithProductCount()
	if err != nil {
		h.serverError(c, err, "failed to list categories")
		return
	}
	h.render(c, http.StatusOK, "admin_categories", gin.H{"categories": categories})
}

// CreateCategory handles POST /admin/categories/add
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	req, ok := h.bindInput(c)
	if !ok {
		return
	}

	if _, err := h.categoryService.Create(req); err != nil {
		h.saveFailed(c, err)
		return
	}
	h.redirect(c, categoriesPath, "success", "category_added")
}

// EditCategoryForm handles GET /admin/categories/:id/edit
func (h *CategoryHandler) EditCategoryForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	category, err := h.categoryService.Get(id)
	if err != nil {
		if errors.Is(err, product.ErrCategoryNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err, "failed to load category")
		return
	}
	h.render(c, http.StatusOK, "admin_category_form", gin.H{"category": category})
}

// UpdateCategory handles POST /admin/categories/:id/edit
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	req, ok := h.bindInput(c)
	if !ok {
		return
	}

	if _, err := h.categoryService.Update(id, req); err != nil {
		h.saveFailed(c, err)
		return
	}
	h.redirect(c, categoriesPath, "success", "category_updated")
}

// DeleteCategory handles POST /admin/categories/:id/delete. Categories that
// still hold products are kept.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	err := h.categoryService.Delete(id)
	switch {
	case err == nil:
		h.redirect(c, categoriesPath, "success", "category_deleted")
	case errors.Is(err, product.ErrCategoryInUse):
		h.redirect(c, categoriesPath, "danger", "category_in_use")
	case errors.Is(err, product.ErrCategoryNotFound):
		h.notFound(c)
	default:
		h.serverError(c, err, "failed to delete category")
	}
}

func (h *CategoryHandler) bindInput(c *gin.Context) (*product.CategoryInput, bool) {
	var req product.CategoryInput
	if err := c.ShouldBind(&req); err != nil {
		h.redirect(c, categoriesPath, "warning", "invalid_input")
		return nil, false
	}

	imageURL, err := storeFormImage(c, h.uploadService, "image")
	if err != nil {
		if isUploadRejection(err) {
			h.redirect(c, categoriesPath, "warning", "invalid_input")
			return nil, false
		}
		h.serverError(c, err, "failed to store category image")
		return nil, false
	}
	req.ImageURL = imageURL
	return &req, true
}

func (h *CategoryHandler) saveFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrDuplicateCategory):
		h.redirect(c, categoriesPath, "danger", "category_exists")
	case errors.Is(err, product.ErrInvalidCategory):
		h.redirect(c, categoriesPath, "warning", "invalid_input")
	case errors.Is(err, product.ErrCategoryNotFound):
		h.notFound(c)
	default:
		h.serverError(c, err, "failed to save category")
	}
}
