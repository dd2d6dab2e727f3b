// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/pkg/pdf"
)

// DownloadInvoice handles GET /admin/orders/:id/invoice. ?format=html, or a
// host without wkhtmltopdf, gets the printable HTML page instead of a PDF.
func (h *OrderHandler) DownloadInvoice(c *gin.Context) {
	o, ok := h.loadOrder(c)
	if !ok {
		return
	}

	if c.Query("format") != "html" {
		data, err := h.pdfService.GenerateInvoice(o)
		if err == nil {
			c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.InvoiceFilename(o)))
			c.Data(http.StatusOK, "application/pdf", data)
			return
		}
		h.logger.WithError(err).WithField("order_id", o.ID).Warn("PDF generation failed, serving HTML invoice")
	}

	page, err := h.pdfService.RenderHTML(o)
	if err != nil {
		h.serverError(c, err, "failed to render invoice")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
