package notify

import (
	"github.com/rs/zerolog"

	"github.com/yourusername/crossover-billing/logger"
	"github.com/yourusername/crossover-billing/models"
)

// Recipient selects which party's copy of the invoice is sent.
const (
	RecipientBusiness = "business"
	RecipientCustomer = "customer"
)

// Notifier delivers an invoice document to one of its parties.
type Notifier interface {
	SendInvoice(invoice models.Invoice, attachment string, recipientType string) error
}

// MockNotifier simulates email delivery by logging the send. It always
// succeeds, matching the demo scope.
type MockNotifier struct {
	log zerolog.Logger
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{log: logger.WithComponent("notify")}
}

func (n *MockNotifier) SendInvoice(invoice models.Invoice, attachment string, recipientType string) error {
	recipient := invoice.BusinessEmail
	if recipientType == RecipientCustomer {
		recipient = invoice.CustomerEmail
	}
	n.log.Info().
		Str("invoice_number", invoice.InvoiceNumber).
		Str("recipient", recipient).
		Str("recipient_type", recipientType).
		Str("attachment", attachment).
		Msg("simulated invoice email sent")
	return nil
}
