// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/gaming-palace/storefront/internal/config"
	"github.com/gaming-palace/storefront/internal/domain/order"
)

// Service renders order invoices as PDF through wkhtmltopdf
type Service struct {
	company  CompanyInfo
	template *template.Template
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		company: CompanyInfo{
			Name:    cfg.Invoice.CompanyName,
			Address: cfg.Invoice.CompanyAddress,
			Phone:   cfg.Invoice.CompanyPhone,
			Email:   cfg.Invoice.CompanyEmail,
			Website: cfg.Invoice.CompanyWebsite,
		},
		template: template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	OrderNumber   string
	OrderDate     string
	Status        string
	Currency      string
	CustomerName  string
	CustomerEmail string
	Lines         []InvoiceLine
	Total         string
	Company       CompanyInfo
}

// InvoiceLine is one priced row of the invoice
type InvoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// Customer identifies who the invoice is addressed to
type Customer struct {
	Name  string
	Email string
}

// BuildInvoiceData prices an order for the invoice template. Prices are the
// ones captured on the order, never the live catalog.
func (s *Service) BuildInvoiceData(o *order.Order, customer Customer, now time.Time) InvoiceData {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   now.Format("January 2, 2006"),
		OrderNumber:   o.OrderNumber,
		OrderDate:     o.CreatedAt.Format("January 2, 2006"),
		Status:        string(o.Status),
		Currency:      strings.ToUpper(o.Currency),
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Total:         o.TotalAmount.StringFixed(2),
		Company:       s.company,
	}

	for i := range o.Items {
		item := &o.Items[i]
		data.Lines = append(data.Lines, InvoiceLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}

	return data
}

// RenderHTML renders the invoice markup
func (s *Service) RenderHTML(data InvoiceData) (string, error) {
	var buf bytes.Buffer
	if err := s.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order, customer Customer) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(s.BuildInvoiceData(o, customer, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}
