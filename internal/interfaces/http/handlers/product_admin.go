// internal/interfaces/http/handlers/product_admin.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/luxfakia/storefront/internal/domain/upload"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminProductHandler handles product management in the admin console
type AdminProductHandler struct {
	base
	productService  *product.Service
	categoryService *product.CategoryService
	uploadService   *upload.Service
}

// NewAdminProductHandler creates a new admin product handler
func NewAdminProductHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *AdminProductHandler {
	return &AdminProductHandler{
		base:            newBase(cfg, renderer, logger),
		productService:  product.NewService(db, cfg),
		categoryService: product.NewCategoryService(db, cfg),
		uploadService:   upload.NewService(db, cfg),
	}
}

// ListProducts handles GET /admin/products
func (h *AdminProductHandler) ListProducts(c *gin.Context) {
	req := product.ProductListRequest{
		Category:      c.Query("category"),
		Search:        c.DefaultQuery("search", c.Query("q")),
		Sort:          c.Query("sort"),
		IncludeHidden: true,
	}

	products, err := h.productService.List(&req)
	if err != nil {
		h.serverError(c, err, "failed to list products")
		return
	}
	categories, err := h.categoryService.List()
	if err != nil {
		h.serverError(c, err, "failed to load categories")
		return
	}

	h.render(c, http.StatusOK, "admin_products", gin.H{
		"products":         products,
		"categories":       categories,
		"search":           req.Search,
		"current_category": req.Category,
		"sort":             req.Sort,
	})
}

// ExportProducts handles GET /admin/products/export
func (h *AdminProductHandler) ExportProducts(c *gin.Context) {
	filename := fmt.Sprintf("produits-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.productService.ExportXLSX(c.Writer); err != nil {
		h.logger.WithError(err).Error("failed to export products")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// NewProductForm handles GET /admin/products/add
func (h *AdminProductHandler) NewProductForm(c *gin.Context) {
	h.showForm(c, http.StatusOK, nil, "")
}

// CreateProduct handles POST /admin/products/add
func (h *AdminProductHandler) CreateProduct(c *gin.Context) {
	req, ok := h.bindInput(c, nil)
	if !ok {
		return
	}

	p, err := h.productService.Create(req)
	if err != nil {
		h.saveFailed(c, nil, err)
		return
	}

	h.logger.WithField("product_id", p.ID).Info("product created")
	h.redirect(c, "/admin/products", "success", "product_added")
}

// EditProductForm handles GET /admin/products/:id/edit
func (h *AdminProductHandler) EditProductForm(c *gin.Context) {
	p, ok := h.loadProduct(c)
	if !ok {
		return
	}
	h.showForm(c, http.StatusOK, p, "")
}

// UpdateProduct handles POST /admin/products/:id/edit
func (h *AdminProductHandler) UpdateProduct(c *gin.Context) {
	p, ok := h.loadProduct(c)
	if !ok {
		return
	}
	req, ok := h.bindInput(c, p)
	if !ok {
		return
	}

	if _, err := h.productService.Update(p.ID, req); err != nil {
		h.saveFailed(c, p, err)
		return
	}
	h.redirect(c, "/admin/products", "success", "product_updated")
}

// DeleteProduct handles POST /admin/products/:id/delete
func (h *AdminProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	if err := h.productService.Delete(id); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err, "failed to delete product")
		return
	}

	h.logger.WithField("product_id", id).Info("product deleted")
	h.redirect(c, "/admin/products", "success", "product_deleted")
}

// ToggleHidden handles POST /admin/products/:id/toggle-hidden
func (h *AdminProductHandler) ToggleHidden(c *gin.Context) {
	h.toggle(c, h.productService.ToggleHidden)
}

// ToggleOutOfStock handles POST /admin/products/:id/toggle-stock
func (h *AdminProductHandler) ToggleOutOfStock(c *gin.Context) {
	h.toggle(c, h.productService.ToggleOutOfStock)
}

func (h *AdminProductHandler) toggle(c *gin.Context, fn func(uint) (*product.Product, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	p, err := fn(id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err, "failed to toggle product flag")
		return
	}

	if isXHRUpload(c) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "success",
			"id":              p.ID,
			"is_hidden":       p.IsHidden,
			"is_out_of_stock": p.IsOutOfStock,
		})
		return
	}
	h.redirect(c, backOr(c, "/admin/products"), "success", "product_updated")
}

func (h *AdminProductHandler) loadProduct(c *gin.Context) (*product.Product, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return nil, false
	}
	p, err := h.productService.Get(id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			h.notFound(c)
			return nil, false
		}
		h.serverError(c, err, "failed to load product")
		return nil, false
	}
	return p, true
}

// bindInput reads the product form, its tier rows and its optional image
func (h *AdminProductHandler) bindInput(c *gin.Context, current *product.Product) (*product.ProductInput, bool) {
	var req product.ProductInput
	if err := c.ShouldBind(&req); err != nil {
		h.showForm(c, http.StatusBadRequest, current, "invalid_input")
		return nil, false
	}

	tiers, err := product.ParseTierRows(
		formArray(c, "pricing_quantity"),
		formArray(c, "pricing_price"),
		formArray(c, "pricing_unit"),
		req.Unit,
	)
	if err != nil {
		h.showForm(c, http.StatusBadRequest, current, "invalid_input")
		return nil, false
	}
	req.Pricings = tiers

	imageURL, err := storeFormImage(c, h.uploadService, "image")
	if err != nil {
		if isUploadRejection(err) {
			h.showForm(c, http.StatusBadRequest, current, "invalid_input")
			return nil, false
		}
		h.serverError(c, err, "failed to store product image")
		return nil, false
	}
	req.ImageURL = imageURL
	return &req, true
}

func (h *AdminProductHandler) saveFailed(c *gin.Context, current *product.Product, err error) {
	if errors.Is(err, product.ErrInvalidProduct) || errors.Is(err, product.ErrInvalidTier) || errors.Is(err, product.ErrCategoryNotFound) {
		h.showForm(c, http.StatusBadRequest, current, "invalid_input")
		return
	}
	if errors.Is(err, product.ErrProductNotFound) {
		h.notFound(c)
		return
	}
	h.serverError(c, err, "failed to save product")
}

func (h *AdminProductHandler) showForm(c *gin.Context, status int, p *product.Product, errKey string) {
	categories, err := h.categoryService.List()
	if err != nil {
		h.serverError(c, err, "failed to load categories")
		return
	}
	data := gin.H{"product": p, "categories": categories}
	if errKey != "" {
		data["error"] = message(c, errKey)
	}
	h.render(c, status, "admin_product_form", data)
}

// formArray reads a repeated form field sent as name[] or name
func formArray(c *gin.Context, name string) []string {
	if values := c.PostFormArray(name + "[]"); len(values) > 0 {
		return values
	}
	return c.PostFormArray(name)
}
