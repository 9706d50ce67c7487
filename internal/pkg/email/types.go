// internal/pkg/email/types.go
package email

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// OrderConfirmationData contains data for order confirmation email
type OrderConfirmationData struct {
	SiteName    string
	SiteURL     string
	UserName    string
	OrderNumber string
	OrderDate   string
	Status      string
	Currency    string
	Total       string
	NeedsReview bool
	Items       []OrderLine
	Year        int
}

// OrderLine is one row of the confirmation table
type OrderLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}
