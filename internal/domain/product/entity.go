// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/luxfakia/storefront/internal/domain/pricing"
)

// Product represents a catalog item sold by quantity of its unit
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;size:100" json:"name"`
	NameAr        string    `gorm:"size:100" json:"name_ar"`
	Description   string    `gorm:"type:text" json:"description"`
	DescriptionAr string    `gorm:"type:text" json:"description_ar"`
	Price         float64   `gorm:"not null" json:"price"` // Price for one Unit
	Unit          string    `gorm:"size:20;default:'pcs'" json:"unit"`
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	ImageURL      string    `gorm:"size:500" json:"image_url"`
	IsHidden      bool      `gorm:"default:false;index" json:"is_hidden"`
	IsOutOfStock  bool      `gorm:"default:false" json:"is_out_of_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Category Category      `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Pricings []PricingTier `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pricings,omitempty"`
}

// PricingTier is a flat price for one exact quantity of a product
type PricingTier struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	Quantity    float64 `gorm:"not null" json:"quantity"` // Canonical unit
	Price       float64 `gorm:"not null" json:"price"`    // Absolute price for Quantity
	DisplayUnit string  `gorm:"size:20;default:'Kg'" json:"display_unit"`
}

// Category represents product categories
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:50" json:"name"`
	ImageURL  string    `gorm:"size:500" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName overrides
func (Product) TableName() string     { return "products" }
func (PricingTier) TableName() string { return "product_pricings" }
func (Category) TableName() string    { return "categories" }

// Tiers converts the stored pricing rows for the resolver
func (p *Product) Tiers() []pricing.Tier {
	tiers := make([]pricing.Tier, 0, len(p.Pricings))
	for _, t := range p.Pricings {
		tiers = append(tiers, pricing.Tier{
			Quantity:    t.Quantity,
			Price:       t.Price,
			DisplayUnit: t.DisplayUnit,
		})
	}
	return tiers
}

// PriceFor resolves the line price for quantity
func (p *Product) PriceFor(quantity float64) pricing.Line {
	return pricing.ResolveLinePrice(p.Price, p.Tiers(), quantity)
}

// StartingPrice is the "from" price shown in listings
func (p *Product) StartingPrice() pricing.Tier {
	return pricing.StartingPrice(p.Price, p.Unit, p.Tiers())
}

// LocalizedName picks the Arabic name when lang is "ar" and one is set
func (p *Product) LocalizedName(lang string) string {
	if lang == "ar" && p.NameAr != "" {
		return p.NameAr
	}
	return p.Name
}

// LocalizedDescription picks the Arabic description when lang is "ar" and one is set
func (p *Product) LocalizedDescription(lang string) string {
	if lang == "ar" && p.DescriptionAr != "" {
		return p.DescriptionAr
	}
	return p.Description
}
