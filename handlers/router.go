package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/crossover-billing/middleware"
)

// NewRouter wires the billing handler into a gin engine.
func NewRouter(h *BillingHandler) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "crossover-billing-api",
		})
	})

	api := router.Group("/api")
	api.Use(middleware.DemoUser())
	{
		// Read-only surface for ERP and reporting integrations.
		api.GET("/invoices", h.ListInvoices)
		api.GET("/invoices/:id", h.GetInvoice)
		api.GET("/invoices/:id/pdf", h.DownloadInvoicePDF)
		api.GET("/ledger", h.GetLedger)
		api.GET("/smart-contracts", h.GetSmartContracts)

		// Mutating endpoints sit behind the role stub.
		accounting := api.Group("")
		accounting.Use(middleware.RequireRole("accountant"))
		accounting.POST("/invoices", h.CreateInvoice)
		accounting.POST("/invoices/:id/pay", h.PayInvoice)
	}

	return router
}
