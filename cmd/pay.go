package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/crossover-billing/billing"
	"github.com/yourusername/crossover-billing/models"
	"github.com/yourusername/crossover-billing/rates"
)

var payCurrency string

var payCmd = &cobra.Command{
	Use:   "pay <invoice-id>",
	Short: "Simulate settlement of an unpaid invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, invoices, ledger, err := loadApp()
		if err != nil {
			return err
		}
		if !cfg.SupportsCurrency(payCurrency) {
			return fmt.Errorf("unsupported currency %q", payCurrency)
		}

		invoice, err := invoices.Get(args[0])
		if err != nil {
			return err
		}
		if invoice.Paid() {
			return billing.ErrAlreadyPaid
		}

		source := rates.NewClient(cfg.FiatRateURL, cfg.StablecoinRateURL)
		selector := rates.NewSelector(source, cfg.PlatformFeePct, cfg.OnrampSpreadPct, cfg.OfframpSpreadPct)

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		best, summaries, all := selector.BestRoute(ctx, invoice.Total, payCurrency, cfg.Stablecoins)
		if best == nil {
			return rates.ErrNoViableRoute
		}
		picker := rates.RandomPicker{Onramps: cfg.OnrampProviders, Offramps: cfg.OfframpProviders}
		rates.Decorate(picker, best, all)

		var settlement *models.Settlement
		if _, err := invoices.Update(invoice.ID, func(inv *models.Invoice) error {
			s, err := billing.MarkPaid(inv, best, payCurrency)
			if err != nil {
				return err
			}
			settlement = s
			return nil
		}); err != nil {
			return err
		}
		if err := ledger.Append(*settlement); err != nil {
			return err
		}

		fmt.Printf("Customer pays: %.2f %s (via %s route, incl. all provider fees).\n",
			best.CustomerAmount, strings.ToUpper(payCurrency), strings.ToUpper(best.Stablecoin))
		fmt.Printf("Company receives exactly %.2f USD (company fee: %.2f USD).\n",
			invoice.Total, best.CompanyFee)
		fmt.Println("Conversion options:")
		for _, line := range summaries {
			fmt.Println("  " + line)
		}
		return nil
	},
}

func init() {
	payCmd.Flags().StringVar(&payCurrency, "currency", "USD", "customer payment currency")
	rootCmd.AddCommand(payCmd)
}
