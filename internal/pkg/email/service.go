// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gaming-palace/storefront/internal/config"
	"github.com/gaming-palace/storefront/internal/domain/order"
	"github.com/gaming-palace/storefront/internal/domain/user"
	"github.com/sirupsen/logrus"
)

// Service sends transactional email
type Service struct {
	config   *config.Config
	logger   *logrus.Logger
	template *template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		config:   cfg,
		logger:   logger,
		template: template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
	}
}

// SendEmail sends an email using the configured provider
func (s *Service) SendEmail(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "log":
		s.logger.WithFields(logrus.Fields{
			"to":      strings.Join(email.To, ", "),
			"subject": email.Subject,
			"type":    email.Type,
		}).Info("Email (log provider)")
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// OrderConfirmed sends the order confirmation email
func (s *Service) OrderConfirmed(ctx context.Context, u *user.User, o *order.Order) error {
	html, err := s.RenderOrderConfirmation(s.confirmationData(u, o))
	if err != nil {
		return err
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{u.Email},
		Subject:     fmt.Sprintf("Your %s order %s", s.config.App.Name, o.OrderNumber),
		HTMLContent: html,
		Type:        EmailTypeOrderConfirmation,
	})
}

// RenderOrderConfirmation renders the confirmation body
func (s *Service) RenderOrderConfirmation(data OrderConfirmationData) (string, error) {
	var buf bytes.Buffer
	if err := s.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template order_confirmation: %w", err)
	}
	return buf.String(), nil
}

func (s *Service) confirmationData(u *user.User, o *order.Order) OrderConfirmationData {
	data := OrderConfirmationData{
		SiteName:    s.config.App.Name,
		SiteURL:     s.config.App.BaseURL,
		UserName:    u.GetDisplayName(),
		OrderNumber: o.OrderNumber,
		OrderDate:   o.CreatedAt.Format("January 2, 2006"),
		Status:      string(o.Status),
		Currency:    strings.ToUpper(o.Currency),
		Total:       o.TotalAmount.StringFixed(2),
		NeedsReview: o.Status == order.OrderStatusNeedsReview,
		Year:        time.Now().Year(),
	}

	for i := range o.Items {
		item := &o.Items[i]
		data.Items = append(data.Items, OrderLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}

	return data
}

const orderConfirmationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>Thanks for your order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}}.</p>
        {{if .NeedsReview}}<p>Our team is double-checking your payment and will contact you if anything needs attention.</p>{{end}}
        <table style="width: 100%; border-collapse: collapse;">
            <tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
            {{range .Items}}
            <tr><td>{{.Name}}</td><td align="center">{{.Quantity}}</td><td align="right">{{.UnitPrice}}</td><td align="right">{{.LineTotal}}</td></tr>
            {{end}}
        </table>
        <p style="text-align: right;"><strong>Total: {{.Total}} {{.Currency}}</strong></p>
        <p><a href="{{.SiteURL}}/orders">View your orders</a></p>
        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
    </div>
</body>
</html>`
