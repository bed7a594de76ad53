package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/crossover-billing/handlers"
	"github.com/yourusername/crossover-billing/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the billing HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, invoices, ledger, err := loadApp()
		if err != nil {
			return err
		}

		handler := handlers.NewBillingHandler(invoices, ledger, cfg)
		router := handlers.NewRouter(handler)

		port := cfg.Port
		if port == "" {
			port = "8080"
		}

		log := logger.WithComponent("serve")
		log.Info().Str("port", port).Msg("starting crossover-billing API server")

		if err := router.Run(":" + port); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
