package models

// Invoice status values. Transitions UNPAID -> PAID exactly once.
const (
	StatusUnpaid = "UNPAID"
	StatusPaid   = "PAID"
)

// LineItem is a single billed position on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Invoice carries business and customer identity, the billed line items and
// the derived totals. Total == Subtotal + VATAmount always holds.
type Invoice struct {
	ID              string     `json:"id"`
	InvoiceNumber   string     `json:"invoice_number"`
	Business        string     `json:"business"`
	BusinessAddress string     `json:"business_address"`
	BusinessEmail   string     `json:"business_email"`
	BusinessVAT     string     `json:"business_vat"`
	Customer        string     `json:"customer"`
	CustomerAddress string     `json:"customer_address"`
	CustomerEmail   string     `json:"customer_email"`
	CustomerVAT     string     `json:"customer_vat"`
	Date            string     `json:"date"`
	DueDate         string     `json:"due_date"`
	PaymentTerms    string     `json:"payment_terms"`
	LineItems       []LineItem `json:"line_items"`
	Subtotal        float64    `json:"subtotal"`
	VATRate         float64    `json:"vat_rate"`
	VATAmount       float64    `json:"vat_amount"`
	Total           float64    `json:"total"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`

	// Empty until the invoice is paid.
	RouteDetails      string             `json:"route_details"`
	ConversionDetails *ConversionDetails `json:"conversion_details,omitempty"`
}

// Paid reports whether the invoice has been settled.
func (i *Invoice) Paid() bool {
	return i.Status == StatusPaid
}
