package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yourusername/crossover-billing/billing"
	"github.com/yourusername/crossover-billing/config"
	"github.com/yourusername/crossover-billing/contract"
	"github.com/yourusername/crossover-billing/logger"
	"github.com/yourusername/crossover-billing/models"
	"github.com/yourusername/crossover-billing/notify"
	"github.com/yourusername/crossover-billing/rates"
	"github.com/yourusername/crossover-billing/render"
	"github.com/yourusername/crossover-billing/storage"
)

type BillingHandler struct {
	invoices  *storage.InvoiceStore
	ledger    *storage.LedgerStore
	cfg       *config.Config
	selector  *rates.Selector
	picker    rates.ProviderPicker
	simulator contract.Simulator
	notifier  notify.Notifier
	renderer  render.Renderer
	log       zerolog.Logger
}

func NewBillingHandler(invoices *storage.InvoiceStore, ledger *storage.LedgerStore, cfg *config.Config) *BillingHandler {
	source := rates.NewClient(cfg.FiatRateURL, cfg.StablecoinRateURL)
	return &BillingHandler{
		invoices:  invoices,
		ledger:    ledger,
		cfg:       cfg,
		selector:  rates.NewSelector(source, cfg.PlatformFeePct, cfg.OnrampSpreadPct, cfg.OfframpSpreadPct),
		picker:    rates.RandomPicker{Onramps: cfg.OnrampProviders, Offramps: cfg.OfframpProviders},
		simulator: contract.NewSimulator(cfg.CompanyName, cfg.ContractNetwork),
		notifier:  notify.NewMockNotifier(),
		renderer:  render.NewPDFRenderer(cfg.CompanyName, cfg.CompanyAddress, cfg.CompanyEmail, cfg.CompanyVAT),
		log:       logger.WithComponent("handlers"),
	}
}

type CreateInvoiceRequest struct {
	Business        string            `json:"business"`
	BusinessAddress string            `json:"business_address"`
	BusinessEmail   string            `json:"business_email"`
	BusinessVAT     string            `json:"business_vat"`
	Customer        string            `json:"customer" binding:"required"`
	CustomerAddress string            `json:"customer_address"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerVAT     string            `json:"customer_vat"`
	InvoiceNumber   string            `json:"invoice_number"`
	Date            string            `json:"date"`
	DueDate         string            `json:"due_date"`
	PaymentTerms    string            `json:"payment_terms"`
	LineItems       []models.LineItem `json:"line_items" binding:"required"`
	VATRate         float64           `json:"vat_rate"`
	Currency        string            `json:"currency" binding:"required"`
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.cfg.SupportsCurrency(req.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported currency %q", req.Currency)})
		return
	}

	h.applyDefaults(&req)

	invoice, err := billing.CreateInvoice(billing.InvoiceParams{
		Business:        req.Business,
		BusinessAddress: req.BusinessAddress,
		BusinessEmail:   req.BusinessEmail,
		BusinessVAT:     req.BusinessVAT,
		Customer:        req.Customer,
		CustomerAddress: req.CustomerAddress,
		CustomerEmail:   req.CustomerEmail,
		CustomerVAT:     req.CustomerVAT,
		InvoiceNumber:   req.InvoiceNumber,
		Date:            req.Date,
		DueDate:         req.DueDate,
		PaymentTerms:    req.PaymentTerms,
		LineItems:       req.LineItems,
		VATRate:         req.VATRate,
		Currency:        req.Currency,
	})
	if err != nil {
		if billing.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	if err := h.invoices.Add(*invoice); err != nil {
		h.log.Error().Err(err).Msg("failed to persist invoice")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save invoice"})
		return
	}

	// Business copy goes out on creation. Delivery is simulated.
	if err := h.notifier.SendInvoice(*invoice, invoice.InvoiceNumber+".pdf", notify.RecipientBusiness); err != nil {
		h.log.Warn().Err(err).Msg("invoice notification failed")
	}

	c.JSON(http.StatusCreated, invoice)
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, h.invoices.All())
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoices.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type PayInvoiceRequest struct {
	CustomerCurrency string `json:"customer_currency" binding:"required"`
}

// PayInvoice runs one settlement simulation: fetch rates, select the best
// stablecoin route, mark the invoice paid and append the settlement to the
// ledger. A failed rate fetch yields "no route" and leaves the invoice
// UNPAID; the caller may retry.
func (h *BillingHandler) PayInvoice(c *gin.Context) {
	var req PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.cfg.SupportsCurrency(req.CustomerCurrency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported currency %q", req.CustomerCurrency)})
		return
	}

	invoice, err := h.invoices.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	if invoice.Paid() {
		c.JSON(http.StatusConflict, gin.H{"error": billing.ErrAlreadyPaid.Error()})
		return
	}

	best, summaries, all := h.selector.BestRoute(c.Request.Context(), invoice.Total, req.CustomerCurrency, h.cfg.Stablecoins)
	if best == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": rates.ErrNoViableRoute.Error()})
		return
	}
	rates.Decorate(h.picker, best, all)

	var settlement *models.Settlement
	updated, err := h.invoices.Update(invoice.ID, func(inv *models.Invoice) error {
		s, err := billing.MarkPaid(inv, best, req.CustomerCurrency)
		if err != nil {
			return err
		}
		settlement = s
		return nil
	})
	if err != nil {
		if errors.Is(err, billing.ErrAlreadyPaid) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("failed to mark invoice paid")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	if err := h.ledger.Append(*settlement); err != nil {
		h.log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("failed to append settlement to ledger")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record settlement"})
		return
	}

	h.log.Info().
		Str("invoice_id", invoice.ID).
		Str("stablecoin", settlement.Stablecoin).
		Float64("customer_amount", settlement.CustomerAmount).
		Msg("invoice settled")

	c.JSON(http.StatusOK, gin.H{
		"invoice":       updated,
		"settlement":    settlement,
		"route_options": summaries,
	})
}

func (h *BillingHandler) GetLedger(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.All())
}

// GetSmartContracts reshapes ledger entries that carry conversion details
// into simulated contract-execution records.
func (h *BillingHandler) GetSmartContracts(c *gin.Context) {
	records := []models.ContractRecord{}
	for _, entry := range h.ledger.All() {
		if entry.ConversionDetails == nil {
			continue
		}
		records = append(records, h.simulator.Execute(*entry.ConversionDetails))
	}
	c.JSON(http.StatusOK, records)
}

func (h *BillingHandler) DownloadInvoicePDF(c *gin.Context) {
	invoice, err := h.invoices.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	recipient := c.DefaultQuery("recipient", notify.RecipientBusiness)
	data, err := h.renderer.InvoicePDF(invoice, recipient)
	if err != nil {
		h.log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("pdf render failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render invoice"})
		return
	}

	filename := fmt.Sprintf("invoice_%s_%s.pdf", invoice.InvoiceNumber, recipient)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *BillingHandler) applyDefaults(req *CreateInvoiceRequest) {
	if req.Business == "" {
		req.Business = h.cfg.CompanyName
	}
	if req.BusinessAddress == "" {
		req.BusinessAddress = h.cfg.CompanyAddress
	}
	if req.BusinessEmail == "" {
		req.BusinessEmail = h.cfg.CompanyEmail
	}
	if req.BusinessVAT == "" {
		req.BusinessVAT = h.cfg.CompanyVAT
	}
	if req.InvoiceNumber == "" {
		req.InvoiceNumber = fmt.Sprintf("INV%04d", h.invoices.Count()+1)
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}
	if req.DueDate == "" {
		req.DueDate = time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	}
	if req.PaymentTerms == "" {
		req.PaymentTerms = "30 days"
	}
}
