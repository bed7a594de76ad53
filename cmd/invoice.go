package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/crossover-billing/billing"
	"github.com/yourusername/crossover-billing/logger"
	"github.com/yourusername/crossover-billing/models"
	"github.com/yourusername/crossover-billing/notify"
	"github.com/yourusername/crossover-billing/render"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create and inspect invoices",
}

var (
	invCustomer        string
	invCustomerAddress string
	invCustomerEmail   string
	invCustomerVAT     string
	invNumber          string
	invCurrency        string
	invVATRate         float64
	invPaymentTerms    string
	invItemsFile       string
)

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice from a JSON line-items file",
	Example: `  # items.json: [{"description": "Consulting", "amount": 100.0}]
  crossover-billing invoice create --customer "Acme BV" --currency USD -f items.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, invoices, _, err := loadApp()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(invItemsFile)
		if err != nil {
			return fmt.Errorf("failed to read line items file: %w", err)
		}
		var items []models.LineItem
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to parse line items file: %w", err)
		}

		if invNumber == "" {
			invNumber = fmt.Sprintf("INV%04d", invoices.Count()+1)
		}
		if !cfg.SupportsCurrency(invCurrency) {
			return fmt.Errorf("unsupported currency %q", invCurrency)
		}

		now := time.Now()
		invoice, err := billing.CreateInvoice(billing.InvoiceParams{
			Business:        cfg.CompanyName,
			BusinessAddress: cfg.CompanyAddress,
			BusinessEmail:   cfg.CompanyEmail,
			BusinessVAT:     cfg.CompanyVAT,
			Customer:        invCustomer,
			CustomerAddress: invCustomerAddress,
			CustomerEmail:   invCustomerEmail,
			CustomerVAT:     invCustomerVAT,
			InvoiceNumber:   invNumber,
			Date:            now.Format("2006-01-02"),
			DueDate:         now.AddDate(0, 0, 30).Format("2006-01-02"),
			PaymentTerms:    invPaymentTerms,
			LineItems:       items,
			VATRate:         invVATRate,
			Currency:        invCurrency,
		})
		if err != nil {
			return err
		}

		if err := invoices.Add(*invoice); err != nil {
			return err
		}

		renderer := render.NewPDFRenderer(cfg.CompanyName, cfg.CompanyAddress, cfg.CompanyEmail, cfg.CompanyVAT)
		pdfName := fmt.Sprintf("invoice_%s_business.pdf", invoice.InvoiceNumber)
		invLog := logger.WithComponent("invoice")
		if data, err := renderer.InvoicePDF(*invoice, notify.RecipientBusiness); err != nil {
			invLog.Warn().Err(err).Msg("pdf render failed")
		} else if err := os.WriteFile(filepath.Join(cfg.DataDir, pdfName), data, 0o644); err != nil {
			invLog.Warn().Err(err).Msg("pdf write failed")
		}

		notify.NewMockNotifier().SendInvoice(*invoice, pdfName, notify.RecipientBusiness)

		fmt.Printf("Created invoice %s (%s): total %.2f %s\n",
			invoice.InvoiceNumber, invoice.ID, invoice.Total, invoice.Currency)
		return nil
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, invoices, _, err := loadApp()
		if err != nil {
			return err
		}

		all := invoices.All()
		if len(all) == 0 {
			fmt.Println("No invoices yet.")
			return nil
		}
		for _, inv := range all {
			fmt.Printf("%s  %-10s  %-8s  %10.2f %s  %s\n",
				inv.ID, inv.InvoiceNumber, inv.Status, inv.Total, inv.Currency, inv.Customer)
		}
		return nil
	},
}

func init() {
	invoiceCreateCmd.Flags().StringVar(&invCustomer, "customer", "", "customer name")
	invoiceCreateCmd.Flags().StringVar(&invCustomerAddress, "customer-address", "", "customer address")
	invoiceCreateCmd.Flags().StringVar(&invCustomerEmail, "customer-email", "", "customer email")
	invoiceCreateCmd.Flags().StringVar(&invCustomerVAT, "customer-vat", "", "customer VAT number")
	invoiceCreateCmd.Flags().StringVar(&invNumber, "number", "", "invoice number (default: next sequential)")
	invoiceCreateCmd.Flags().StringVar(&invCurrency, "currency", "USD", "invoice currency")
	invoiceCreateCmd.Flags().Float64Var(&invVATRate, "vat-rate", 21.0, "VAT rate in percent")
	invoiceCreateCmd.Flags().StringVar(&invPaymentTerms, "terms", "30 days", "payment terms")
	invoiceCreateCmd.Flags().StringVarP(&invItemsFile, "items", "f", "", "path to JSON line-items file")
	invoiceCreateCmd.MarkFlagRequired("customer")
	invoiceCreateCmd.MarkFlagRequired("items")

	invoiceCmd.AddCommand(invoiceCreateCmd)
	invoiceCmd.AddCommand(invoiceListCmd)
	rootCmd.AddCommand(invoiceCmd)
}
