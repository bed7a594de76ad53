package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/crossover-billing/config"
	"github.com/yourusername/crossover-billing/storage"
)

var rootCmd = &cobra.Command{
	Use:   "crossover-billing",
	Short: "Demo billing platform with simulated stablecoin settlement",
	Long: `Crossover Billing creates invoices, simulates their settlement via the
cheapest stablecoin conversion route, and records settlements to an
append-only ledger.

Run "crossover-billing serve" to expose the HTTP API, or use the invoice
and pay subcommands to drive the same flows from the terminal.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadApp builds the shared application state used by every subcommand.
func loadApp() (*config.Config, *storage.InvoiceStore, *storage.LedgerStore, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, storage.NewInvoiceStore(cfg.InvoiceFile), storage.NewLedgerStore(cfg.LedgerFile), nil
}
