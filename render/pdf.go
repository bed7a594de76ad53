package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/yourusername/crossover-billing/models"
)

// Renderer produces an invoice document for download or email attachment.
type Renderer interface {
	InvoicePDF(invoice models.Invoice, recipientType string) ([]byte, error)
}

// PDFRenderer renders invoices with gofpdf. The customer copy of a paid
// invoice additionally carries the conversion summary.
type PDFRenderer struct {
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyVAT     string
}

func NewPDFRenderer(name, address, email, vat string) *PDFRenderer {
	return &PDFRenderer{CompanyName: name, CompanyAddress: address, CompanyEmail: email, CompanyVAT: vat}
}

func (r *PDFRenderer) InvoicePDF(invoice models.Invoice, recipientType string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	line(pdf, r.CompanyName)
	line(pdf, r.CompanyAddress)
	line(pdf, r.CompanyEmail)
	line(pdf, "VAT: "+r.CompanyVAT)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	line(pdf, "Invoice No: "+invoice.InvoiceNumber)
	line(pdf, "Date: "+invoice.Date)
	line(pdf, "Due Date: "+invoice.DueDate)
	line(pdf, "Payment Terms: "+invoice.PaymentTerms)
	line(pdf, "Status: "+invoice.Status)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	line(pdf, "Bill To:")
	pdf.SetFont("Arial", "", 10)
	line(pdf, invoice.Customer)
	line(pdf, invoice.CustomerAddress)
	line(pdf, invoice.CustomerEmail)
	if invoice.CustomerVAT != "" {
		line(pdf, "VAT: "+invoice.CustomerVAT)
	}
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	line(pdf, "Line Items:")
	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.LineItems {
		line(pdf, fmt.Sprintf("%s: %.2f %s", item.Description, item.Amount, invoice.Currency))
	}
	pdf.Ln(5)

	line(pdf, fmt.Sprintf("Subtotal: %.2f %s", invoice.Subtotal, invoice.Currency))
	line(pdf, fmt.Sprintf("VAT (%.1f%%): %.2f %s", invoice.VATRate, invoice.VATAmount, invoice.Currency))
	pdf.SetFont("Arial", "B", 10)
	line(pdf, fmt.Sprintf("Total: %.2f %s", invoice.Total, invoice.Currency))

	if recipientType == "customer" && invoice.Paid() && invoice.ConversionDetails != nil {
		cd := invoice.ConversionDetails
		pdf.Ln(10)
		pdf.SetFont("Arial", "B", 10)
		line(pdf, "Conversion Summary")
		pdf.SetFont("Arial", "", 10)
		line(pdf, "Stablecoin Used: "+cd.Stablecoin)
		line(pdf, "On-Ramp Provider: "+cd.OnrampProvider)
		line(pdf, "Off-Ramp Provider: "+cd.OfframpProvider)
		line(pdf, fmt.Sprintf("On-Ramp Rate: %.6f", cd.OnrampRate))
		line(pdf, fmt.Sprintf("Off-Ramp Rate: %.6f", cd.OfframpRate))
		line(pdf, fmt.Sprintf("Total Conversion Fees: %.2f USD", cd.ConversionCosts.TotalFees))
		line(pdf, fmt.Sprintf("Customer Paid: %.2f %s", cd.CustomerAmount, cd.CustomerCurrency))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func line(pdf *gofpdf.Fpdf, text string) {
	pdf.CellFormat(0, 10, text, "", 1, "", false, 0, "")
}
