package billing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/crossover-billing/models"
	"github.com/yourusername/crossover-billing/rates"
)

// InvoiceParams carries everything needed to create an invoice. Line items
// come in fully formed; there is no hidden session state.
type InvoiceParams struct {
	Business        string
	BusinessAddress string
	BusinessEmail   string
	BusinessVAT     string
	Customer        string
	CustomerAddress string
	CustomerEmail   string
	CustomerVAT     string
	InvoiceNumber   string
	Date            string
	DueDate         string
	PaymentTerms    string
	LineItems       []models.LineItem
	VATRate         float64
	Currency        string
}

// CreateInvoice computes subtotal, VAT and total, assigns a fresh id and
// returns a new UNPAID invoice. Rejects empty line items and negative
// amounts with a ValidationError.
func CreateInvoice(p InvoiceParams) (*models.Invoice, error) {
	if len(p.LineItems) == 0 {
		return nil, &ValidationError{Field: "line_items", Reason: "at least one line item is required"}
	}
	for _, item := range p.LineItems {
		if item.Amount < 0 {
			return nil, &ValidationError{Field: "line_items", Reason: "amounts must not be negative"}
		}
	}
	if p.VATRate < 0 {
		return nil, &ValidationError{Field: "vat_rate", Reason: "must not be negative"}
	}

	var subtotal float64
	for _, item := range p.LineItems {
		subtotal += item.Amount
	}
	vatAmount := subtotal * p.VATRate / 100
	total := subtotal + vatAmount

	return &models.Invoice{
		ID:              uuid.NewString(),
		InvoiceNumber:   p.InvoiceNumber,
		Business:        p.Business,
		BusinessAddress: p.BusinessAddress,
		BusinessEmail:   p.BusinessEmail,
		BusinessVAT:     p.BusinessVAT,
		Customer:        p.Customer,
		CustomerAddress: p.CustomerAddress,
		CustomerEmail:   p.CustomerEmail,
		CustomerVAT:     p.CustomerVAT,
		Date:            p.Date,
		DueDate:         p.DueDate,
		PaymentTerms:    p.PaymentTerms,
		LineItems:       p.LineItems,
		Subtotal:        subtotal,
		VATRate:         p.VATRate,
		VATAmount:       vatAmount,
		Total:           total,
		Currency:        p.Currency,
		Status:          models.StatusUnpaid,
	}, nil
}

// MarkPaid transitions the invoice UNPAID -> PAID using the chosen route and
// builds the settlement snapshot. Returns ErrAlreadyPaid when the invoice
// was settled before. The caller appends the settlement to the ledger and
// persists the mutated invoice; this function knows nothing about storage.
func MarkPaid(invoice *models.Invoice, route *rates.Route, customerCurrency string) (*models.Settlement, error) {
	if invoice.Paid() {
		return nil, ErrAlreadyPaid
	}

	// Separate copies so neither record can mutate the other afterwards.
	invConversion := route.Conversion
	setConversion := route.Conversion
	invoice.Status = models.StatusPaid
	invoice.RouteDetails = route.RouteDetails
	invoice.ConversionDetails = &invConversion

	return &models.Settlement{
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		Business:        invoice.Business,
		BusinessAddress: invoice.BusinessAddress,
		BusinessEmail:   invoice.BusinessEmail,
		BusinessVAT:     invoice.BusinessVAT,
		Customer:        invoice.Customer,
		CustomerAddress: invoice.CustomerAddress,
		CustomerEmail:   invoice.CustomerEmail,
		CustomerVAT:     invoice.CustomerVAT,
		Date:            invoice.Date,
		DueDate:         invoice.DueDate,
		PaymentTerms:    invoice.PaymentTerms,

		Subtotal:  invoice.Subtotal,
		VATRate:   invoice.VATRate,
		VATAmount: invoice.VATAmount,
		Total:     invoice.Total,
		Currency:  invoice.Currency,

		CustomerCurrency: strings.ToUpper(customerCurrency),
		CustomerAmount:   route.CustomerAmount,
		Stablecoin:       strings.ToUpper(route.Stablecoin),
		AmountStablecoin: route.StablecoinNeeded,
		USDReceived:      invoice.Total,
		CompanyFee:       route.CompanyFee,
		OnrampFee:        route.OnrampFee,
		OfframpFee:       route.OfframpFee,

		RouteDetails:      route.RouteDetails,
		ConversionDetails: &setConversion,
		Status:            models.StatusPaid,
	}, nil
}
