// internal/domain/product/export.go
package product

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/luxfakia/storefront/internal/domain/pricing"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Name", "NameAr", "Category", "Price", "Unit",
	"Tiers", "Hidden", "OutOfStock", "CreatedAt", "UpdatedAt",
}

// ExportXLSX writes the whole catalog, hidden products included, as a spreadsheet
func (s *Service) ExportXLSX(w io.Writer) error {
	products, err := s.List(&ProductListRequest{IncludeHidden: true, Sort: SortNameAsc})
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	// Header row
	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	// Data rows
	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.NameAr)
		row.AddCell().SetValue(p.Category.Name)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Unit)
		row.AddCell().SetValue(formatTiers(p.Pricings))
		row.AddCell().SetValue(yesNo(p.IsHidden))
		row.AddCell().SetValue(yesNo(p.IsOutOfStock))
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

// formatTiers renders tiers as "250g=35; 1Kg=110"
func formatTiers(tiers []PricingTier) string {
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		qty := pricing.DisplayQuantity(t.Quantity, t.DisplayUnit)
		parts = append(parts, fmt.Sprintf("%s%s=%s",
			strconv.FormatFloat(qty, 'f', -1, 64), t.DisplayUnit,
			strconv.FormatFloat(t.Price, 'f', 2, 64)))
	}
	return strings.Join(parts, "; ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
