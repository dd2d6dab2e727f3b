// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/domain/pricing"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
	tmpl   *template.Template
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		tmpl:   template.Must(template.New("invoice").Funcs(templateFuncs).Parse(invoiceTemplate)),
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Currency      string
	Order         *order.Order
	Company       config.CompanyConfig
}

// InvoiceFilename is the download name for an order invoice
func InvoiceFilename(o *order.Order) string {
	return fmt.Sprintf("facture-%06d.pdf", o.ID)
}

// GenerateInvoice renders the invoice of an order to PDF
func (s *Service) GenerateInvoice(o *order.Order) ([]byte, error) {
	htmlContent, err := s.RenderHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Title.Set(fmt.Sprintf("Facture %06d", o.ID))

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.Encoding.Set("utf-8")
	page.FooterRight.Set("[page]/[topage]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return pdfg.Bytes(), nil
}

// RenderHTML renders the invoice page fed to wkhtmltopdf
func (s *Service) RenderHTML(o *order.Order) (string, error) {
	currency := s.config.App.Currency
	if currency == "" {
		currency = "MAD"
	}
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("F-%s-%06d", o.CreatedAt.Format("2006"), o.ID),
		InvoiceDate:   time.Now().Format("02/01/2006"),
		Currency:      currency,
		Order:         o,
		Company:       s.config.Company,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

var templateFuncs = template.FuncMap{
	"money": func(v float64) string {
		return strconv.FormatFloat(pricing.RoundMoney(v), 'f', 2, 64)
	},
	"quantity": formatQuantity,
}

// formatQuantity prints sub-kilogram weights in grams
func formatQuantity(qty float64, unit string) string {
	if unit == pricing.UnitKilogram && qty < 1 {
		return strconv.FormatFloat(pricing.DisplayQuantity(qty, pricing.UnitGram), 'f', -1, 64) + " " + pricing.UnitGram
	}
	return strconv.FormatFloat(qty, 'f', -1, 64) + " " + unit
}

const invoiceTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <title>Facture {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #8a5a19; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right; }
        .total-row { font-size: 18px; font-weight: bold; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Tél : {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>E-mail : {{.Company.Email}}</p>{{end}}
            {{if .Company.Website}}<p>{{.Company.Website}}</p>{{end}}
        </div>
        <div class="invoice-info">
            <div class="invoice-title">FACTURE</div>
            <p><strong>N° :</strong> {{.InvoiceNumber}}</p>
            <p><strong>Date :</strong> {{.InvoiceDate}}</p>
            <p><strong>Commande :</strong> #{{.Order.ID}} du {{.Order.CreatedAt.Format "02/01/2006"}}</p>
            <p><strong>Statut :</strong> {{.Order.Status}}</p>
        </div>
    </div>

    <div class="customer">
        <div class="section-title">Client</div>
        <p><strong>{{.Order.CustomerName}}</strong></p>
        <p>{{.Order.Address}}, {{.Order.City}}</p>
        <p>Tél : {{.Order.CustomerPhone}}</p>
        {{if .Order.CustomerEmail}}<p>E-mail : {{.Order.CustomerEmail}}</p>{{end}}
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Produit</th>
                <th class="num">Quantité</th>
                <th class="num">Prix unitaire ({{$.Currency}})</th>
                <th class="num">Total ({{$.Currency}})</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="num">{{quantity .Quantity .Unit}}</td>
                <td class="num">{{money .PriceAtPurchase}}</td>
                <td class="num">{{money .LineTotal}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td colspan="3" class="num">Total</td>
                <td class="num">{{money .Order.TotalAmount}} {{.Currency}}</td>
            </tr>
        </tbody>
    </table>

    <div class="footer">
        <p>Merci pour votre confiance !</p>
        {{if .Company.Email}}<p>Pour toute question concernant cette facture : {{.Company.Email}}</p>{{end}}
    </div>
</body>
</html>
`
