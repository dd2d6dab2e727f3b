// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/content"
	"github.com/luxfakia/storefront/internal/domain/pricing"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const featuredLimit = 6

// ProductHandler handles the storefront pages
type ProductHandler struct {
	base
	productService  *product.Service
	categoryService *product.CategoryService
	contentService  *content.Service
}

// NewProductHandler creates a new storefront handler
func NewProductHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		base:            newBase(cfg, renderer, logger),
		productService:  product.NewService(db, cfg),
		categoryService: product.NewCategoryService(db, cfg),
		contentService:  content.NewService(db, cfg),
	}
}

// Home handles GET /
func (h *ProductHandler) Home(c *gin.Context) {
	lang := middleware.GetLang(c)

	featured, err := h.productService.List(&product.ProductListRequest{Limit: featuredLimit})
	if err != nil {
		h.serverError(c, err, "failed to load featured products")
		return
	}
	categories, err := h.categoryService.List()
	if err != nil {
		h.serverError(c, err, "failed to load categories")
		return
	}
	sections, err := h.contentService.ListSections(true)
	if err != nil {
		h.serverError(c, err, "failed to load home sections")
		return
	}
	settings, err := h.contentService.GetSettings()
	if err != nil {
		h.serverError(c, err, "failed to load settings")
		return
	}

	h.render(c, http.StatusOK, "index", gin.H{
		"featured_products": productCards(featured, lang),
		"categories":        categories,
		"sections":          sectionViews(sections, lang),
		"settings":          settings,
	})
}

// Shop handles GET /shop
func (h *ProductHandler) Shop(c *gin.Context) {
	var req product.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		req = product.ProductListRequest{}
	}
	req.IncludeHidden = false

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

	h.render(c, http.StatusOK, "shop", gin.H{
		"products":         productCards(products, middleware.GetLang(c)),
		"categories":       categories,
		"current_category": req.Category,
		"search":           req.Search,
		"sort":             req.Sort,
	})
}

// Product handles GET /product/:id
func (h *ProductHandler) Product(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	p, err := h.productService.Get(id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err, "failed to load product")
		return
	}
	if p.IsHidden {
		h.notFound(c)
		return
	}

	lang := middleware.GetLang(c)
	tiers := make([]gin.H, 0, len(p.Pricings))
	for _, t := range p.Pricings {
		tiers = append(tiers, gin.H{
			"quantity":         t.Quantity,
			"display_quantity": pricing.DisplayQuantity(t.Quantity, t.DisplayUnit),
			"display_unit":     t.DisplayUnit,
			"price":            t.Price,
		})
	}

	view := productCard(p, lang)
	view["description"] = p.LocalizedDescription(lang)
	view["tiers"] = tiers

	h.render(c, http.StatusOK, "product_detail", gin.H{"product": view})
}

func productCards(products []product.Product, lang string) []gin.H {
	cards := make([]gin.H, 0, len(products))
	for i := range products {
		cards = append(cards, productCard(&products[i], lang))
	}
	return cards
}

func productCard(p *product.Product, lang string) gin.H {
	start := p.StartingPrice()
	return gin.H{
		"id":           p.ID,
		"name":         p.LocalizedName(lang),
		"unit":         p.Unit,
		"price":        p.Price,
		"image_url":    p.ImageURL,
		"out_of_stock": p.IsOutOfStock,
		"category_id":  p.CategoryID,
		"category":     p.Category.Name,
		"starting_price": gin.H{
			"price":            start.Price,
			"quantity":         start.Quantity,
			"display_quantity": pricing.DisplayQuantity(start.Quantity, start.DisplayUnit),
			"display_unit":     start.DisplayUnit,
		},
	}
}

func sectionViews(sections []content.HomeSection, lang string) []gin.H {
	views := make([]gin.H, 0, len(sections))
	for i := range sections {
		s := &sections[i]
		views = append(views, gin.H{
			"key":       s.Key,
			"title":     s.LocalizedTitle(lang),
			"subtitle":  s.LocalizedSubtitle(lang),
			"body":      s.LocalizedBody(lang),
			"image_url": s.ImageURL,
			"link_url":  s.LinkURL,
		})
	}
	return views
}
