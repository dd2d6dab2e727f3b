// internal/domain/product/category_service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luxfakia/storefront/internal/config"
	"gorm.io/gorm"
)

var (
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category still has products")
	ErrInvalidCategory   = errors.New("invalid category")
)

// CategoryService handles category business logic
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryInput represents category create and edit data
type CategoryInput struct {
	Name     string `form:"name" binding:"required"`
	ImageURL string `form:"-"`
}

// CategoryWithProductCount represents category with product count
type CategoryWithProductCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}

// List retrieves all categories by name
func (s *CategoryService) List() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// ListWithProductCount retrieves categories with the number of products in each
func (s *CategoryService) ListWithProductCount() ([]CategoryWithProductCount, error) {
	categories, err := s.List()
	if err != nil {
		return nil, err
	}

	type countRow struct {
		CategoryID uint
		Total      int64
	}
	var rows []countRow
	if err := s.db.Model(&Product{}).
		Select("category_id, COUNT(*) AS total").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Total
	}

	result := make([]CategoryWithProductCount, 0, len(categories))
	for _, cat := range categories {
		result = append(result, CategoryWithProductCount{
			Category:     cat,
			ProductCount: counts[cat.ID],
		})
	}
	return result, nil
}

// Get retrieves a single category by ID
func (s *CategoryService) Get(id uint) (*Category, error) {
	var category Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}
	return &category, nil
}

// Create creates a new category with a case-insensitively unique name
func (s *CategoryService) Create(req *CategoryInput) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if err := s.ensureUniqueName(name, 0); err != nil {
		return nil, err
	}

	category := Category{Name: name, ImageURL: req.ImageURL}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// Update renames a category. An empty ImageURL keeps the current image.
func (s *CategoryService) Update(id uint, req *CategoryInput) (*Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if err := s.ensureUniqueName(name, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"name": name}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return s.Get(id)
}

// Delete removes a category that no product references
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		return fmt.Errorf("%w: %d products", ErrCategoryInUse, productCount)
	}

	if err := s.db.Delete(&Category{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *CategoryService) ensureUniqueName(name string, exceptID uint) error {
	query := s.db.Model(&Category{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if count > 0 {
		return ErrDuplicateCategory
	}
	return nil
}
