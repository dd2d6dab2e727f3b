// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/pricing"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrInvalidTier      = errors.New("invalid pricing tier")
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Category      string `form:"category"` // Category id or part of its name
	Search        string `form:"q"`
	Sort          string `form:"sort"`
	Limit         int    `form:"limit"`
	IncludeHidden bool   `form:"-"`
}

// ProductInput represents product create and edit data
type ProductInput struct {
	Name          string        `form:"name" binding:"required"`
	NameAr        string        `form:"name_ar"`
	Description   string        `form:"description"`
	DescriptionAr string        `form:"description_ar"`
	Price         float64       `form:"price"`
	Unit          string        `form:"unit"`
	CategoryID    uint          `form:"category_id" binding:"required"`
	ImageURL      string        `form:"-"`
	IsHidden      bool          `form:"is_hidden"`
	IsOutOfStock  bool          `form:"is_out_of_stock"`
	Pricings      []PricingTier `form:"-"`
}

// Sort keys accepted by List
const (
	SortNewest    = "newest"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

func preloadPricings(db *gorm.DB) *gorm.DB {
	return db.Order("quantity ASC, id ASC")
}

// List retrieves products with filtering and sorting
func (s *Service) List(req *ProductListRequest) ([]Product, error) {
	var products []Product

	query := s.db.Model(&Product{}).
		Preload("Category").
		Preload("Pricings", preloadPricings)

	if !req.IncludeHidden {
		query = query.Where("products.is_hidden = ?", false)
	}

	if c := strings.TrimSpace(req.Category); c != "" {
		if id, err := strconv.ParseUint(c, 10, 64); err == nil {
			query = query.Where("products.category_id = ?", id)
		} else {
			query = query.Joins("JOIN categories ON categories.id = products.category_id").
				Where("LOWER(categories.name) LIKE ?", "%"+strings.ToLower(c)+"%")
		}
	}

	if q := strings.TrimSpace(req.Search); q != "" {
		search := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.name_ar) LIKE ?", search, search)
	}

	query = query.Order(buildOrderClause(req.Sort))
	if req.Limit > 0 {
		query = query.Limit(req.Limit)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, nil
}

// Get retrieves a single product with its category and tiers
func (s *Service) Get(id uint) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Pricings", preloadPricings).
		Where("id = ?", id).
		First(&product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// FindByIDs loads the products that still exist among ids, keyed by id
func (s *Service) FindByIDs(ids []uint) (map[uint]*Product, error) {
	found := make(map[uint]*Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var products []Product
	if err := s.db.Preload("Pricings", preloadPricings).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	for i := range products {
		found[products[i].ID] = &products[i]
	}
	return found, nil
}

// Create creates a product and its pricing tiers
func (s *Service) Create(req *ProductInput) (*Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	product := Product{
		Name:          strings.TrimSpace(req.Name),
		NameAr:        strings.TrimSpace(req.NameAr),
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		Price:         req.Price,
		Unit:          unitOrDefault(req.Unit),
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		IsHidden:      req.IsHidden,
		IsOutOfStock:  req.IsOutOfStock,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Pricings", "Category").Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return replaceTiers(tx, product.ID, req.Pricings)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(product.ID)
}

// Update edits a product and replaces its tier set. An empty ImageURL keeps the current image.
func (s *Service) Update(id uint, req *ProductInput) (*Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	var product Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	updates := map[string]interface{}{
		"name":            strings.TrimSpace(req.Name),
		"name_ar":         strings.TrimSpace(req.NameAr),
		"description":     req.Description,
		"description_ar":  req.DescriptionAr,
		"price":           req.Price,
		"unit":            unitOrDefault(req.Unit),
		"category_id":     req.CategoryID,
		"is_hidden":       req.IsHidden,
		"is_out_of_stock": req.IsOutOfStock,
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return replaceTiers(tx, product.ID, req.Pricings)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes a product and its tiers. Order lines keep their snapshot and lose the reference.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&PricingTier{}).Error; err != nil {
			return fmt.Errorf("failed to delete pricing tiers: %w", err)
		}

		if err := tx.Table("order_items").Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach order items: %w", err)
		}

		result := tx.Delete(&Product{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// ToggleHidden flips the storefront visibility of a product
func (s *Service) ToggleHidden(id uint) (*Product, error) {
	return s.toggle(id, "is_hidden")
}

// ToggleOutOfStock flips the purchasable flag of a product
func (s *Service) ToggleOutOfStock(id uint) (*Product, error) {
	return s.toggle(id, "is_out_of_stock")
}

func (s *Service) toggle(id uint, column string) (*Product, error) {
	result := s.db.Model(&Product{}).Where("id = ?", id).Update(column, gorm.Expr("NOT "+column))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to toggle %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return s.Get(id)
}

// ParseTierRows builds tiers from the parallel quantity/price/unit form arrays.
// Rows with a blank quantity or price are skipped. Quantities entered in grams
// are stored in kilograms.
func ParseTierRows(quantities, prices, units []string, nativeUnit string) ([]PricingTier, error) {
	var tiers []PricingTier

	for i := range quantities {
		if i >= len(prices) {
			break
		}
		rawQty := strings.TrimSpace(quantities[i])
		rawPrice := strings.TrimSpace(prices[i])
		if rawQty == "" || rawPrice == "" {
			continue
		}

		qty, err := strconv.ParseFloat(strings.ReplaceAll(rawQty, ",", "."), 64)
		if err != nil || !finite(qty) || qty <= 0 {
			return nil, fmt.Errorf("%w: quantity %q", ErrInvalidTier, rawQty)
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(rawPrice, ",", "."), 64)
		if err != nil || !finite(price) || price < 0 {
			return nil, fmt.Errorf("%w: price %q", ErrInvalidTier, rawPrice)
		}

		unit := ""
		if i < len(units) {
			unit = units[i]
		}
		canonical, display := pricing.NormalizeQuantity(qty, unit, nativeUnit)

		tiers = append(tiers, PricingTier{
			Quantity:    canonical,
			Price:       price,
			DisplayUnit: display,
		})
	}

	return tiers, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func replaceTiers(tx *gorm.DB, productID uint, tiers []PricingTier) error {
	if err := tx.Where("product_id = ?", productID).Delete(&PricingTier{}).Error; err != nil {
		return fmt.Errorf("failed to clear pricing tiers: %w", err)
	}

	for _, t := range tiers {
		tier := PricingTier{
			ProductID:   productID,
			Quantity:    t.Quantity,
			Price:       t.Price,
			DisplayUnit: t.DisplayUnit,
		}
		if err := tx.Create(&tier).Error; err != nil {
			return fmt.Errorf("failed to create pricing tier: %w", err)
		}
	}
	return nil
}

func (s *Service) validate(req *ProductInput) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if !finite(req.Price) || req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	var count int64
	if err := s.db.Model(&Category{}).Where("id = ?", req.CategoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// buildOrderClause builds ORDER BY clause for sorting
func buildOrderClause(sort string) string {
	switch sort {
	case SortNameAsc:
		return "products.name ASC"
	case SortNameDesc:
		return "products.name DESC"
	case SortPriceAsc:
		return "products.price ASC"
	case SortPriceDesc:
		return "products.price DESC"
	default:
		return "products.created_at DESC, products.id DESC"
	}
}

func unitOrDefault(unit string) string {
	if u := strings.TrimSpace(unit); u != "" {
		return u
	}
	return pricing.UnitPiece
}
